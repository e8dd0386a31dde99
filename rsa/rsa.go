// Package rsa implements textbook RSA over small moduli.
package rsa

import (
	"github.com/cronokirby/safenum"
	"github.com/pkg/errors"

	cryptology "github.com/BackendStack21/cryptology-go"
	"github.com/BackendStack21/cryptology-go/core"
	"github.com/BackendStack21/cryptology-go/numtheory"
	"github.com/BackendStack21/cryptology-go/utils"
)

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(cryptology.ErrInvalidArgument, format, args...)
}

// Exp computes base^exp mod n. Odd moduli go through safenum's constant-time
// exponentiation; the rare even modulus falls back to the kernel.
func Exp(base, exp, n int) (int, error) {
	md, err := numtheory.NewModulus(n)
	if err != nil {
		return 0, err
	}
	if exp < 0 {
		return 0, invalid("negative exponent %d", exp)
	}
	if n%2 == 0 {
		return md.Pow(base, exp), nil
	}
	m := safenum.ModulusFromUint64(uint64(n))
	x := new(safenum.Nat).SetUint64(uint64(md.Reduce(base)))
	e := new(safenum.Nat).SetUint64(uint64(exp))
	return int(new(safenum.Nat).Exp(x, e, m).Uint64()), nil
}

// =============================================================================
// Keys
// =============================================================================

// PrivateExponent computes d = e^-1 mod φ. φ is composite, so the general inverse is used.
func PrivateExponent(e, phi int) (int, error) {
	return numtheory.ModInverseGeneral(e, phi)
}

// NewPrivateKey builds a key from distinct primes p1, p2 and public exponent e.
func NewPrivateKey(p1, p2, e int) (*cryptology.RSAPrivateKey, error) {
	if err := core.ValidateRSA(cryptology.RSAParams{P1: p1, P2: p2, E: e}); err != nil {
		return nil, err
	}
	phi := (p1 - 1) * (p2 - 1)
	d, err := PrivateExponent(e, phi)
	if err != nil {
		return nil, err
	}
	return &cryptology.RSAPrivateKey{
		RSAPublicKey: cryptology.RSAPublicKey{N: p1 * p2, E: e},
		D:            d,
		P1:           p1,
		P2:           p2,
	}, nil
}

// GenerateKey returns the preset key for the given level.
func GenerateKey(level cryptology.ParamLevel) (*cryptology.RSAPrivateKey, error) {
	params, err := core.GetParams(level)
	if err != nil {
		return nil, err
	}
	return NewPrivateKey(params.RSA.P1, params.RSA.P2, params.RSA.E)
}

// GenerateKeyWithPrimes picks a random public exponent coprime to φ(p1*p2).
func GenerateKeyWithPrimes(p1, p2 int) (*cryptology.RSAPrivateKey, error) {
	phi := (p1 - 1) * (p2 - 1)
	if phi <= 3 {
		return nil, invalid("primes %d, %d too small", p1, p2)
	}
	e, err := utils.RandomMatching(3, phi, func(e int) bool {
		return numtheory.GCD(e, phi) == 1
	})
	if err != nil {
		return nil, err
	}
	return NewPrivateKey(p1, p2, e)
}

// NewPublicKey validates a published modulus and exponent.
func NewPublicKey(n, e int) (*cryptology.RSAPublicKey, error) {
	if n < 6 {
		return nil, invalid("modulus %d too small", n)
	}
	if e <= 1 || e >= n {
		return nil, invalid("exponent %d outside (1, %d)", e, n)
	}
	return &cryptology.RSAPublicKey{N: n, E: e}, nil
}

// =============================================================================
// Encryption
// =============================================================================

// Encrypt computes m^e mod N for m in [0, N).
func Encrypt(pub *cryptology.RSAPublicKey, m int) (int, error) {
	if m < 0 || m >= pub.N {
		return 0, invalid("message %d outside [0, %d)", m, pub.N)
	}
	return Exp(m, pub.E, pub.N)
}

// Decrypt computes c^d mod N.
func Decrypt(priv *cryptology.RSAPrivateKey, c int) (int, error) {
	return DecryptWithExponent(c, priv.D, priv.N)
}

// DecryptWithExponent computes c^d mod n for c in [0, n).
func DecryptWithExponent(c, d, n int) (int, error) {
	if c < 0 || c >= n {
		return 0, invalid("ciphertext %d outside [0, %d)", c, n)
	}
	return Exp(c, d, n)
}

// =============================================================================
// Serialization
// =============================================================================

// SerializePublicKey encodes (N, e).
func SerializePublicKey(pub *cryptology.RSAPublicKey) []byte {
	return utils.EncodeInts(pub.N, pub.E)
}

// DeserializePublicKey decodes and validates a key written by SerializePublicKey.
func DeserializePublicKey(data []byte) (*cryptology.RSAPublicKey, error) {
	values, err := utils.DecodeInts(data, 2)
	if err != nil {
		return nil, errors.Wrap(err, "rsa public key")
	}
	if len(values) != 2 {
		return nil, invalid("rsa public key has %d values, want 2", len(values))
	}
	return NewPublicKey(values[0], values[1])
}
