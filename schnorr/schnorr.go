// Package schnorr implements Schnorr identification in a prime-order subgroup.
//
// The prover holds k with public y = g^-k mod p. One round is: the prover
// commits r = g^a mod p, the verifier picks a challenge e, the prover answers
// s = a + k*e mod q, and the verifier accepts iff g^s * y^e ≡ r (mod p).
// Each step is a plain function over the exchanged values.
package schnorr

import (
	"context"

	"github.com/pkg/errors"

	cryptology "github.com/BackendStack21/cryptology-go"
	"github.com/BackendStack21/cryptology-go/core"
	"github.com/BackendStack21/cryptology-go/numtheory"
	"github.com/BackendStack21/cryptology-go/problems/dlog"
	"github.com/BackendStack21/cryptology-go/utils"
)

const (
	DomainChallenge = "cryptology-schnorr-challenge-v1"
)

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(cryptology.ErrInvalidArgument, format, args...)
}

// =============================================================================
// Parameters and Keys
// =============================================================================

// NewParams validates (p, q, g).
func NewParams(p, q, g int) (*cryptology.SchnorrParams, error) {
	params := cryptology.SchnorrParams{P: p, Q: q, G: g}
	if err := core.ValidateSchnorr(params); err != nil {
		return nil, err
	}
	return &params, nil
}

// FindGenerator returns the smallest g > 1 with g^q ≡ 1 (mod p).
// For prime q this g has order exactly q.
func FindGenerator(ctx context.Context, p, q int) (int, error) {
	return dlog.SolvePowerBruteforce(ctx, q, 1, p, func(x int) bool { return x > 1 })
}

// NewPrivateKey builds a key from secret k in [1, q) with y = (g^k)^-1 mod p.
func NewPrivateKey(params cryptology.SchnorrParams, k int) (*cryptology.SchnorrPrivateKey, error) {
	if err := core.ValidateSchnorr(params); err != nil {
		return nil, err
	}
	if k < 1 || k >= params.Q {
		return nil, invalid("secret %d outside [1, %d)", k, params.Q)
	}
	md, _ := numtheory.NewModulus(params.P)
	y, err := numtheory.ModInverse(md.Pow(params.G, k), params.P)
	if err != nil {
		return nil, err
	}
	return &cryptology.SchnorrPrivateKey{
		SchnorrPublicKey: cryptology.SchnorrPublicKey{SchnorrParams: params, Y: y},
		K:                k,
	}, nil
}

// GenerateKeyPair generates a key with a random secret for the given preset.
func GenerateKeyPair(level cryptology.ParamLevel) (*cryptology.SchnorrPrivateKey, error) {
	params, err := core.GetParams(level)
	if err != nil {
		return nil, err
	}
	return GenerateKeyPairWithParams(params.Schnorr)
}

// GenerateKeyPairWithParams generates a key with a random secret.
func GenerateKeyPairWithParams(params cryptology.SchnorrParams) (*cryptology.SchnorrPrivateKey, error) {
	if err := core.ValidateSchnorr(params); err != nil {
		return nil, err
	}
	k, err := utils.RandomRange(1, params.Q)
	if err != nil {
		return nil, err
	}
	return NewPrivateKey(params, k)
}

// =============================================================================
// Protocol Steps
// =============================================================================

// Commit picks a random nonce a in [1, q) and returns r = g^a mod p with a.
// The prover keeps a secret until Respond.
func Commit(params cryptology.SchnorrParams) (cryptology.SchnorrCommitment, int, error) {
	a, err := utils.RandomRange(1, params.Q)
	if err != nil {
		return cryptology.SchnorrCommitment{}, 0, err
	}
	c, err := CommitWith(params, a)
	return c, a, err
}

// CommitWith returns r = g^a mod p for a chosen nonce.
func CommitWith(params cryptology.SchnorrParams, a int) (cryptology.SchnorrCommitment, error) {
	if a < 0 {
		return cryptology.SchnorrCommitment{}, invalid("negative nonce %d", a)
	}
	md, err := numtheory.NewModulus(params.P)
	if err != nil {
		return cryptology.SchnorrCommitment{}, err
	}
	return cryptology.SchnorrCommitment{R: md.Pow(params.G, a)}, nil
}

// NewChallenge draws a random challenge in [0, q).
func NewChallenge(params cryptology.SchnorrParams) (int, error) {
	return utils.RandomInt(params.Q)
}

// ChallengeFromMessage derives a challenge in [0, q) from the commitment and a
// message, which turns one identification round into a signature.
func ChallengeFromMessage(params cryptology.SchnorrParams, r int, message []byte) int {
	return utils.HashToInt(DomainChallenge, utils.HashConcat(utils.IntBytes(r), message), params.Q)
}

// Respond computes s = a + k*e mod q.
func Respond(priv *cryptology.SchnorrPrivateKey, a, e int) (int, error) {
	if e < 0 {
		return 0, invalid("negative challenge %d", e)
	}
	order, err := numtheory.NewModulus(priv.Q)
	if err != nil {
		return 0, err
	}
	return order.Add(a, order.Mul(priv.K, e)), nil
}

// Verify accepts iff g^s * y^e ≡ r (mod p).
func Verify(pub *cryptology.SchnorrPublicKey, r, e, s int) bool {
	return Check(pub.G, s, pub.Y, e, pub.P, r)
}

// Check is Verify on raw values.
func Check(g, s, y, e, p, r int) bool {
	if s < 0 || e < 0 {
		return false
	}
	md, err := numtheory.NewModulus(p)
	if err != nil {
		return false
	}
	return md.Mul(md.Pow(g, s), md.Pow(y, e)) == md.Reduce(r)
}

// =============================================================================
// Signatures
// =============================================================================

// Sign runs one round non-interactively, taking e from ChallengeFromMessage.
// The signature is (e, s); r is recomputed by the verifier.
func Sign(priv *cryptology.SchnorrPrivateKey, message []byte) (e, s int, err error) {
	if err := utils.CheckLength(len(message), utils.MaxMessageSize); err != nil {
		return 0, 0, errors.Wrap(err, "message")
	}
	commit, a, err := Commit(priv.SchnorrParams)
	if err != nil {
		return 0, 0, err
	}
	e = ChallengeFromMessage(priv.SchnorrParams, commit.R, message)
	s, err = Respond(priv, a, e)
	return e, s, err
}

// VerifySignature recomputes r = g^s * y^e and checks that it hashes back to e.
func VerifySignature(pub *cryptology.SchnorrPublicKey, message []byte, e, s int) bool {
	if e < 0 || e >= pub.Q || s < 0 || s >= pub.Q {
		return false
	}
	md, err := numtheory.NewModulus(pub.P)
	if err != nil {
		return false
	}
	r := md.Mul(md.Pow(pub.G, s), md.Pow(pub.Y, e))
	return ChallengeFromMessage(pub.SchnorrParams, r, message) == e
}
