// Package attack recovers keys and plaintexts from the classical schemes by
// solving the discrete logarithm or exploiting protocol misuse. Every search is
// bounded and honours its context.
package attack

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	cryptology "github.com/BackendStack21/cryptology-go"
	"github.com/BackendStack21/cryptology-go/elgamal"
	"github.com/BackendStack21/cryptology-go/numtheory"
	"github.com/BackendStack21/cryptology-go/problems/dlog"
	"github.com/BackendStack21/cryptology-go/rsa"
	"github.com/BackendStack21/cryptology-go/schnorr"
)

const checkInterval = 1024

var debugAttack = os.Getenv("DEBUG_ATTACK") != ""

func logAttack(format string, args ...interface{}) {
	if debugAttack {
		fmt.Fprintf(os.Stderr, "[ATTACK-Go] "+format+"\n", args...)
	}
}

func solverOrDefault(solver dlog.Solver) dlog.Solver {
	if solver == nil {
		return dlog.Bruteforce
	}
	return solver
}

// =============================================================================
// ElGamal
// =============================================================================

// RecoverElGamalKey solves g^x ≡ y (mod p) for the private exponent.
func RecoverElGamalKey(ctx context.Context, pub *cryptology.ElGamalPublicKey, solver dlog.Solver) (*cryptology.ElGamalPrivateKey, error) {
	x, err := solverOrDefault(solver)(ctx, pub.G, pub.Y, pub.P)
	if err != nil {
		return nil, errors.Wrap(err, "elgamal secret exponent")
	}
	x %= pub.P - 1
	logAttack("elgamal p=%d g=%d y=%d: x=%d", pub.P, pub.G, pub.Y, x)
	return elgamal.NewPrivateKey(pub.P, pub.G, x)
}

// DecryptElGamal recovers the private key and decrypts ct with it.
func DecryptElGamal(ctx context.Context, pub *cryptology.ElGamalPublicKey, ct cryptology.ElGamalCiphertext, solver dlog.Solver) (int, error) {
	priv, err := RecoverElGamalKey(ctx, pub, solver)
	if err != nil {
		return 0, err
	}
	return elgamal.Decrypt(priv, ct)
}

// CompleteElGamalSignature forges s for message Q given a commitment r = g^k.
// It recovers both k and x by discrete logarithm and checks the result verifies.
func CompleteElGamalSignature(ctx context.Context, pub *cryptology.ElGamalPublicKey, q, r int, solver dlog.Solver) (cryptology.ElGamalSignature, error) {
	solve := solverOrDefault(solver)
	k, err := solve(ctx, pub.G, r, pub.P)
	if err != nil {
		return cryptology.ElGamalSignature{}, errors.Wrap(err, "session key")
	}
	k %= pub.P - 1
	priv, err := RecoverElGamalKey(ctx, pub, solve)
	if err != nil {
		return cryptology.ElGamalSignature{}, err
	}
	sig, err := elgamal.Sign(priv, q, k)
	if err != nil {
		return cryptology.ElGamalSignature{}, err
	}
	if sig.R != r || !elgamal.Verify(pub, q, sig) {
		return cryptology.ElGamalSignature{}, errors.Wrapf(cryptology.ErrVerification, "forged signature (%d, %d)", sig.R, sig.S)
	}
	logAttack("elgamal forged Q=%d: k=%d s=%d", q, k, sig.S)
	return sig, nil
}

// =============================================================================
// Schnorr
// =============================================================================

// RecoverSchnorrKey searches k = 1, 2, ... for y*g^k ≡ 1 (mod p), scanning at
// most bound values; bound <= 0 means q.
func RecoverSchnorrKey(ctx context.Context, pub *cryptology.SchnorrPublicKey, bound int) (*cryptology.SchnorrPrivateKey, error) {
	md, err := numtheory.NewModulus(pub.P)
	if err != nil {
		return nil, err
	}
	limit := bound
	if limit <= 0 || limit > pub.Q {
		limit = pub.Q
	}
	cur := md.Mul(pub.Y, pub.G)
	for k := 1; k <= limit; k++ {
		if k%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if cur == 1 {
			logAttack("schnorr p=%d y=%d: k=%d", pub.P, pub.Y, k)
			return schnorr.NewPrivateKey(pub.SchnorrParams, k)
		}
		cur = md.Mul(cur, pub.G)
	}
	if limit < pub.Q {
		return nil, errors.Wrapf(cryptology.ErrBoundExceeded, "schnorr key after %d steps", limit)
	}
	return nil, errors.Wrapf(cryptology.ErrNotFound, "schnorr key for y = %d", pub.Y)
}

// RecoverSchnorrKeyWith solves g^k ≡ y^-1 (mod p) with solver and reduces k mod q.
func RecoverSchnorrKeyWith(ctx context.Context, pub *cryptology.SchnorrPublicKey, solver dlog.Solver) (*cryptology.SchnorrPrivateKey, error) {
	yInv, err := numtheory.ModInverse(pub.Y, pub.P)
	if err != nil {
		return nil, err
	}
	k, err := solverOrDefault(solver)(ctx, pub.G, yInv, pub.P)
	if err != nil {
		return nil, errors.Wrap(err, "schnorr secret")
	}
	return schnorr.NewPrivateKey(pub.SchnorrParams, k%pub.Q)
}

// =============================================================================
// Diffie-Hellman and Three-Pass
// =============================================================================

// RecoverDHSharedKey recovers the key two parties agreed on from their public
// values x = g^a and y = g^b by solving for a.
func RecoverDHSharedKey(ctx context.Context, params cryptology.DHParams, x, y int, solver dlog.Solver) (int, error) {
	a, err := solverOrDefault(solver)(ctx, params.G, x, params.P)
	if err != nil {
		return 0, errors.Wrap(err, "dh secret")
	}
	logAttack("dh p=%d: a=%d", params.P, a)
	return numtheory.ModPow(y, a, params.P)
}

// BreakThreePass recovers the message from an intercepted transcript. It solves
// m1^b ≡ m2 for B's exponent; since m3 = m^b, applying b^-1 modulo the order
// of m1 (which equals the order of m) to m3 yields m.
func BreakThreePass(ctx context.Context, p int, tr cryptology.ThreePassTranscript, solver dlog.Solver) (int, error) {
	b, err := solverOrDefault(solver)(ctx, tr.M1, tr.M2, p)
	if err != nil {
		return 0, errors.Wrap(err, "three-pass exponent")
	}
	order, err := numtheory.MultiplicativeOrder(tr.M1, p)
	if err != nil {
		return 0, err
	}
	if order == 1 {
		return 1, nil
	}
	beta, err := numtheory.ModInverseGeneral(b, order)
	if err != nil {
		return 0, errors.Wrapf(err, "recovered exponent %d", b)
	}
	logAttack("three-pass p=%d: b=%d beta=%d", p, b, beta)
	return numtheory.ModPow(tr.M3, beta, p)
}

// =============================================================================
// RSA
// =============================================================================

// NoKeyReadResult is the outcome of RSANoKeyRead.
type NoKeyReadResult struct {
	K         int // Smallest k >= 1 with (c^e)^k ≡ c (mod N)
	Plaintext int // c^K mod N
}

// RSANoKeyRead reads c without the private key. With c1 = c^e it finds the
// smallest k with c1^k ≡ c; then e*k ≡ 1 modulo the order of c and c^k is the
// plaintext. At most bound values of k are tried; bound <= 0 means N.
func RSANoKeyRead(ctx context.Context, pub *cryptology.RSAPublicKey, c, bound int) (NoKeyReadResult, error) {
	md, err := numtheory.NewModulus(pub.N)
	if err != nil {
		return NoKeyReadResult{}, err
	}
	if c < 0 || c >= pub.N {
		return NoKeyReadResult{}, errors.Wrapf(cryptology.ErrInvalidArgument, "ciphertext %d outside [0, %d)", c, pub.N)
	}
	limit := bound
	if limit <= 0 || limit > pub.N {
		limit = pub.N
	}
	c1, err := rsa.Exp(c, pub.E, pub.N)
	if err != nil {
		return NoKeyReadResult{}, err
	}
	cur := c1
	for k := 1; k <= limit; k++ {
		if k%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return NoKeyReadResult{}, err
			}
		}
		if cur == c {
			m, err := rsa.Exp(c, k, pub.N)
			if err != nil {
				return NoKeyReadResult{}, err
			}
			logAttack("rsa no-key read N=%d: k=%d m=%d", pub.N, k, m)
			return NoKeyReadResult{K: k, Plaintext: m}, nil
		}
		cur = md.Mul(cur, c1)
	}
	if limit < pub.N {
		return NoKeyReadResult{}, errors.Wrapf(cryptology.ErrBoundExceeded, "no-key read after %d steps", limit)
	}
	return NoKeyReadResult{}, errors.Wrapf(cryptology.ErrNotFound, "no-key read of %d", c)
}

// RSACommonModulus recovers m from c1 = m^e1 and c2 = m^e2 under the same
// modulus with gcd(e1, e2) = 1, using e1*x + e2*y = 1. A negative coefficient
// is applied through the inverse of its ciphertext mod N.
func RSACommonModulus(pubA, pubB *cryptology.RSAPublicKey, c1, c2 int) (int, error) {
	if pubA.N != pubB.N {
		return 0, errors.Wrapf(cryptology.ErrInvalidArgument, "moduli differ: %d and %d", pubA.N, pubB.N)
	}
	n := pubA.N
	g, x, y := numtheory.ExtendedGCD(pubA.E, pubB.E)
	if g != 1 {
		return 0, errors.Wrapf(cryptology.ErrInvalidArgument, "exponents %d and %d share factor %d", pubA.E, pubB.E, g)
	}
	md, err := numtheory.NewModulus(n)
	if err != nil {
		return 0, err
	}
	part := func(c, exp int) (int, error) {
		if exp < 0 {
			inv, err := numtheory.ModInverseGeneral(c, n)
			if err != nil {
				return 0, err
			}
			return rsa.Exp(inv, -exp, n)
		}
		return rsa.Exp(c, exp, n)
	}
	a, err := part(c1, x)
	if err != nil {
		return 0, err
	}
	b, err := part(c2, y)
	if err != nil {
		return 0, err
	}
	logAttack("rsa common modulus N=%d: x=%d y=%d", n, x, y)
	return md.Mul(a, b), nil
}

// RecoverRSAKey factors N by trial division and rebuilds the private key.
func RecoverRSAKey(pub *cryptology.RSAPublicKey) (*cryptology.RSAPrivateKey, error) {
	factors, err := numtheory.Factorize(pub.N)
	if err != nil {
		return nil, err
	}
	primes := make([]int, 0, 2)
	for p, e := range factors {
		if e != 1 {
			return nil, errors.Wrapf(cryptology.ErrInvalidArgument, "modulus %d is not square-free", pub.N)
		}
		primes = append(primes, p)
	}
	if len(primes) != 2 {
		return nil, errors.Wrapf(cryptology.ErrInvalidArgument, "modulus %d has %d prime factors", pub.N, len(primes))
	}
	if primes[0] > primes[1] {
		primes[0], primes[1] = primes[1], primes[0]
	}
	return rsa.NewPrivateKey(primes[0], primes[1], pub.E)
}
