package cryptology

// ParamLevel names a preset parameter set.
type ParamLevel string

const (
	// TOY16 uses moduli around 2^15, small enough for every attack to finish instantly.
	TOY16 ParamLevel = "TOY-16"
	// TOY24 uses moduli around 2^20-2^25; brute force still finishes in well under a second.
	TOY24 ParamLevel = "TOY-24"
)

// =============================================================================
// Number Theory Types
// =============================================================================

// FactorMap maps each prime factor of a number to its exponent.
// The product of p^e over all entries equals the factored number.
type FactorMap map[int]int

// Product multiplies the factors back together.
func (f FactorMap) Product() int {
	result := 1
	for p, e := range f {
		for i := 0; i < e; i++ {
			result *= p
		}
	}
	return result
}

// DiscreteLogProblem is the congruence Base^x ≡ Target (mod Modulus).
type DiscreteLogProblem struct {
	Base    int `json:"base"`
	Target  int `json:"target"`
	Modulus int `json:"modulus"`
}

// SearchStatus classifies the outcome of a bounded search.
type SearchStatus int

const (
	// Found means X holds a solution.
	Found SearchStatus = iota
	// NotFound means the search space was exhausted without a solution.
	NotFound
	// BoundExceeded means the search stopped at its bound before the space was exhausted.
	BoundExceeded
	// Cancelled means the context ended the search.
	Cancelled
	// Invalid means the problem was rejected before any search ran.
	Invalid
)

func (s SearchStatus) String() string {
	switch s {
	case Found:
		return "found"
	case NotFound:
		return "not-found"
	case BoundExceeded:
		return "bounded-out"
	case Cancelled:
		return "cancelled"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// DiscreteLogResult is the classified answer to a DiscreteLogProblem.
type DiscreteLogResult struct {
	X      int          // Valid only when Status == Found
	Status SearchStatus
	Err    error
}

// =============================================================================
// Parameter Types
// =============================================================================

// DHParams are the public Diffie-Hellman domain parameters.
type DHParams struct {
	P int `json:"p"` // Prime modulus
	G int `json:"g"` // Primitive root mod P
}

// ElGamalParams are the public ElGamal domain parameters.
type ElGamalParams struct {
	P int `json:"p"` // Prime modulus
	G int `json:"g"` // Primitive root mod P
}

// RSAParams select an RSA modulus and public exponent.
type RSAParams struct {
	P1 int `json:"p1"`
	P2 int `json:"p2"`
	E  int `json:"e"`
}

// KnapsackParams are the private Merkle-Hellman parameters.
type KnapsackParams struct {
	W []int `json:"w"` // Superincreasing sequence
	Q int   `json:"q"` // Modulus, greater than sum(W)
	R int   `json:"r"` // Multiplier, coprime to Q
}

// SchnorrParams are the public Schnorr group parameters.
type SchnorrParams struct {
	P int `json:"p"` // Prime modulus
	Q int `json:"q"` // Prime divisor of P-1
	G int `json:"g"` // Element of order Q
}

// ThreePassParams hold the shared prime of the three-pass protocol.
type ThreePassParams struct {
	P int `json:"p"`
}

// ClassicParams is a complete preset parameter set.
type ClassicParams struct {
	Level     ParamLevel      `json:"level"`
	DH        DHParams        `json:"dh"`
	ElGamal   ElGamalParams   `json:"elgamal"`
	RSA       RSAParams       `json:"rsa"`
	Knapsack  KnapsackParams  `json:"knapsack"`
	Schnorr   SchnorrParams   `json:"schnorr"`
	ThreePass ThreePassParams `json:"threepass"`
}

// =============================================================================
// Diffie-Hellman Types
// =============================================================================

// DHKeyPair is one party's Diffie-Hellman key material.
type DHKeyPair struct {
	Params DHParams
	Secret int
	Public int // G^Secret mod P
}

// =============================================================================
// ElGamal Types
// =============================================================================

// ElGamalPublicKey is (p, g, y = g^x mod p).
type ElGamalPublicKey struct {
	P, G, Y int
}

// ElGamalPrivateKey adds the secret exponent x.
type ElGamalPrivateKey struct {
	ElGamalPublicKey
	X int
}

// ElGamalCiphertext is (a = g^k, b = Q*y^k) mod p.
type ElGamalCiphertext struct {
	A, B int
}

// ElGamalSignature is (r = g^k mod p, s = (Q - x*r)*k^-1 mod (p-1)).
type ElGamalSignature struct {
	R, S int
}

// =============================================================================
// RSA Types
// =============================================================================

// RSAPublicKey is the modulus N = p1*p2 and public exponent E.
type RSAPublicKey struct {
	N, E int
}

// RSAPrivateKey adds the decryption exponent and the factors of N.
type RSAPrivateKey struct {
	RSAPublicKey
	D      int
	P1, P2 int
}

// =============================================================================
// Merkle-Hellman Types
// =============================================================================

// KnapsackPublicKey is the disguised sequence b[i] = r*w[i] mod q.
type KnapsackPublicKey struct {
	B []int
}

// KnapsackPrivateKey is the superincreasing sequence with its modulus and multiplier.
type KnapsackPrivateKey struct {
	W []int
	Q int
	R int
}

// KnapsackKeyPair contains both halves of a Merkle-Hellman key.
type KnapsackKeyPair struct {
	PublicKey  KnapsackPublicKey
	PrivateKey KnapsackPrivateKey
}

// =============================================================================
// Schnorr Types
// =============================================================================

// SchnorrPublicKey is the group plus y = g^-k mod p.
type SchnorrPublicKey struct {
	SchnorrParams
	Y int
}

// SchnorrPrivateKey adds the secret k.
type SchnorrPrivateKey struct {
	SchnorrPublicKey
	K int
}

// SchnorrCommitment is the prover's first message r = g^a mod p.
// The nonce a stays with the prover and is passed to Respond.
type SchnorrCommitment struct {
	R int
}

// =============================================================================
// Three-Pass Types
// =============================================================================

// ThreePassKey is one party's exponent pair over prime P, E*D ≡ 1 (mod φ(P)).
type ThreePassKey struct {
	P int
	E int
	D int
}

// ThreePassTranscript holds the three values that cross the wire.
type ThreePassTranscript struct {
	M1 int // m^a mod p, A to B
	M2 int // M1^b mod p, B to A
	M3 int // M2^alpha mod p, A to B
}
