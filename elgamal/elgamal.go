// Package elgamal implements ElGamal encryption and signatures over a prime field.
package elgamal

import (
	"github.com/pkg/errors"

	cryptology "github.com/BackendStack21/cryptology-go"
	"github.com/BackendStack21/cryptology-go/core"
	"github.com/BackendStack21/cryptology-go/numtheory"
	"github.com/BackendStack21/cryptology-go/utils"
)

const (
	DomainMessage = "cryptology-elgamal-msg-v1"
)

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(cryptology.ErrInvalidArgument, format, args...)
}

// =============================================================================
// Keys
// =============================================================================

// NewPrivateKey builds a key from prime p, primitive root g and secret x in [1, p-2].
func NewPrivateKey(p, g, x int) (*cryptology.ElGamalPrivateKey, error) {
	if err := core.ValidateElGamal(cryptology.ElGamalParams{P: p, G: g}); err != nil {
		return nil, err
	}
	if x < 1 || x > p-2 {
		return nil, invalid("secret %d outside [1, %d]", x, p-2)
	}
	md, _ := numtheory.NewModulus(p)
	return &cryptology.ElGamalPrivateKey{
		ElGamalPublicKey: cryptology.ElGamalPublicKey{P: p, G: g, Y: md.Pow(g, x)},
		X:                x,
	}, nil
}

// NewPublicKey validates a published key.
func NewPublicKey(p, g, y int) (*cryptology.ElGamalPublicKey, error) {
	if err := core.ValidateElGamal(cryptology.ElGamalParams{P: p, G: g}); err != nil {
		return nil, err
	}
	if y < 1 || y >= p {
		return nil, invalid("public value %d outside [1, %d)", y, p)
	}
	return &cryptology.ElGamalPublicKey{P: p, G: g, Y: y}, nil
}

// GenerateKeyPair generates a key with a random secret for the given preset.
func GenerateKeyPair(level cryptology.ParamLevel) (*cryptology.ElGamalPrivateKey, error) {
	params, err := core.GetParams(level)
	if err != nil {
		return nil, err
	}
	return GenerateKeyPairWithParams(params.ElGamal)
}

// GenerateKeyPairWithParams generates a key with a random secret.
func GenerateKeyPairWithParams(params cryptology.ElGamalParams) (*cryptology.ElGamalPrivateKey, error) {
	if err := core.ValidateElGamal(params); err != nil {
		return nil, err
	}
	x, err := utils.RandomRange(1, params.P-1)
	if err != nil {
		return nil, err
	}
	return NewPrivateKey(params.P, params.G, x)
}

// =============================================================================
// Encryption
// =============================================================================

// Encrypt computes (a, b) = (g^k, Q*y^k) mod p for message Q in [1, p) and session key k in [1, p-2].
func Encrypt(pub *cryptology.ElGamalPublicKey, q, k int) (cryptology.ElGamalCiphertext, error) {
	if q < 1 || q >= pub.P {
		return cryptology.ElGamalCiphertext{}, invalid("message %d outside [1, %d)", q, pub.P)
	}
	if k < 1 || k > pub.P-2 {
		return cryptology.ElGamalCiphertext{}, invalid("session key %d outside [1, %d]", k, pub.P-2)
	}
	md, err := numtheory.NewModulus(pub.P)
	if err != nil {
		return cryptology.ElGamalCiphertext{}, err
	}
	return cryptology.ElGamalCiphertext{
		A: md.Pow(pub.G, k),
		B: md.Mul(q, md.Pow(pub.Y, k)),
	}, nil
}

// EncryptRandom encrypts Q under a fresh random session key.
func EncryptRandom(pub *cryptology.ElGamalPublicKey, q int) (cryptology.ElGamalCiphertext, error) {
	k, err := utils.RandomRange(1, pub.P-1)
	if err != nil {
		return cryptology.ElGamalCiphertext{}, err
	}
	return Encrypt(pub, q, k)
}

// Decrypt computes b * (a^x)^-1 mod p.
func Decrypt(priv *cryptology.ElGamalPrivateKey, ct cryptology.ElGamalCiphertext) (int, error) {
	p := priv.P
	if ct.A < 1 || ct.A >= p || ct.B < 0 || ct.B >= p {
		return 0, invalid("ciphertext (%d, %d) outside the group mod %d", ct.A, ct.B, p)
	}
	md, err := numtheory.NewModulus(p)
	if err != nil {
		return 0, err
	}
	mask, err := numtheory.ModInverse(md.Pow(ct.A, priv.X), p)
	if err != nil {
		return 0, err
	}
	return md.Mul(ct.B, mask), nil
}

// DecryptReusedSession recovers Q2 = b2*Q1*b1^-1 mod p from two ciphertexts
// that share a session key, given the plaintext Q1 of the first. No private
// key is needed.
func DecryptReusedSession(p, b1, b2, q1 int) (int, error) {
	md, err := numtheory.NewModulus(p)
	if err != nil {
		return 0, err
	}
	inv, err := numtheory.ModInverse(b1, p)
	if err != nil {
		return 0, err
	}
	return md.Mul(md.Mul(b2, q1), inv), nil
}

// =============================================================================
// Signatures
// =============================================================================

// Sign computes r = g^k mod p and s = (Q - x*r) * k^-1 mod (p-1).
// k must lie in [1, p-2] and be coprime to p-1.
func Sign(priv *cryptology.ElGamalPrivateKey, q, k int) (cryptology.ElGamalSignature, error) {
	p := priv.P
	if k < 1 || k > p-2 || numtheory.GCD(k, p-1) != 1 {
		return cryptology.ElGamalSignature{}, invalid("session key %d must be in [1, %d] and coprime to %d", k, p-2, p-1)
	}
	if q < 0 {
		return cryptology.ElGamalSignature{}, invalid("negative message %d", q)
	}
	md, err := numtheory.NewModulus(p)
	if err != nil {
		return cryptology.ElGamalSignature{}, err
	}
	order, err := numtheory.NewModulus(p - 1)
	if err != nil {
		return cryptology.ElGamalSignature{}, err
	}
	kInv, err := numtheory.ModInverseGeneral(k, p-1)
	if err != nil {
		return cryptology.ElGamalSignature{}, err
	}
	r := md.Pow(priv.G, k)
	s := order.Mul(order.Sub(q, order.Mul(priv.X, r)), kInv)
	return cryptology.ElGamalSignature{R: r, S: s}, nil
}

// SignRandom signs Q with a fresh session key coprime to p-1.
func SignRandom(priv *cryptology.ElGamalPrivateKey, q int) (cryptology.ElGamalSignature, error) {
	k, err := utils.RandomMatching(1, priv.P-1, func(k int) bool {
		return numtheory.GCD(k, priv.P-1) == 1
	})
	if err != nil {
		return cryptology.ElGamalSignature{}, err
	}
	return Sign(priv, q, k)
}

// Verify checks y^r * r^s ≡ g^Q (mod p) with 0 < r < p and 0 <= s < p-1.
func Verify(pub *cryptology.ElGamalPublicKey, q int, sig cryptology.ElGamalSignature) bool {
	if sig.R <= 0 || sig.R >= pub.P || sig.S < 0 || sig.S >= pub.P-1 || q < 0 {
		return false
	}
	md, err := numtheory.NewModulus(pub.P)
	if err != nil {
		return false
	}
	lhs := md.Mul(md.Pow(pub.Y, sig.R), md.Pow(sig.R, sig.S))
	return lhs == md.Pow(pub.G, q)
}

// MessageDigest hashes a byte message to an integer in [0, p-1).
func MessageDigest(pub *cryptology.ElGamalPublicKey, message []byte) (int, error) {
	if err := utils.CheckLength(len(message), utils.MaxMessageSize); err != nil {
		return 0, errors.Wrap(err, "message")
	}
	return utils.HashToInt(DomainMessage, message, pub.P-1), nil
}

// SignMessage signs the digest of a byte message with a random session key.
func SignMessage(priv *cryptology.ElGamalPrivateKey, message []byte) (cryptology.ElGamalSignature, error) {
	q, err := MessageDigest(&priv.ElGamalPublicKey, message)
	if err != nil {
		return cryptology.ElGamalSignature{}, err
	}
	return SignRandom(priv, q)
}

// VerifyMessage verifies a signature made by SignMessage.
func VerifyMessage(pub *cryptology.ElGamalPublicKey, message []byte, sig cryptology.ElGamalSignature) bool {
	q, err := MessageDigest(pub, message)
	if err != nil {
		return false
	}
	return Verify(pub, q, sig)
}

// =============================================================================
// Serialization
// =============================================================================

// SerializePublicKey encodes (p, g, y).
func SerializePublicKey(pub *cryptology.ElGamalPublicKey) []byte {
	return utils.EncodeInts(pub.P, pub.G, pub.Y)
}

// DeserializePublicKey decodes and validates a key written by SerializePublicKey.
func DeserializePublicKey(data []byte) (*cryptology.ElGamalPublicKey, error) {
	if err := utils.CheckLength(len(data), utils.MaxEncodedKeySize); err != nil {
		return nil, errors.Wrap(err, "elgamal public key")
	}
	values, err := utils.DecodeInts(data, 3)
	if err != nil {
		return nil, errors.Wrap(err, "elgamal public key")
	}
	if len(values) != 3 {
		return nil, invalid("elgamal public key has %d values, want 3", len(values))
	}
	return NewPublicKey(values[0], values[1], values[2])
}
