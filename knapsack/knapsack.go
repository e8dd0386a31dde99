// Package knapsack implements the Merkle-Hellman knapsack cipher.
//
// A symbol is encoded as a bit vector, one bit per element of the public
// sequence, and encrypted as the sum of the selected elements. The private
// superincreasing sequence makes the subset sum easy to invert greedily.
package knapsack

import (
	"github.com/pkg/errors"

	cryptology "github.com/BackendStack21/cryptology-go"
	"github.com/BackendStack21/cryptology-go/codec"
	"github.com/BackendStack21/cryptology-go/core"
	"github.com/BackendStack21/cryptology-go/numtheory"
	"github.com/BackendStack21/cryptology-go/utils"
)

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(cryptology.ErrInvalidArgument, format, args...)
}

// NewPrivateKey validates (w, q, r) and copies w.
func NewPrivateKey(w []int, q, r int) (*cryptology.KnapsackPrivateKey, error) {
	params := cryptology.KnapsackParams{W: w, Q: q, R: r}
	if err := core.ValidateKnapsack(params); err != nil {
		return nil, err
	}
	return &cryptology.KnapsackPrivateKey{W: append([]int(nil), w...), Q: q, R: r}, nil
}

// DerivePublicKey computes b[i] = r*w[i] mod q.
func DerivePublicKey(priv *cryptology.KnapsackPrivateKey) cryptology.KnapsackPublicKey {
	md, _ := numtheory.NewModulus(priv.Q)
	b := make([]int, len(priv.W))
	for i, w := range priv.W {
		b[i] = md.Mul(priv.R, w)
	}
	return cryptology.KnapsackPublicKey{B: b}
}

// NewKeyPair builds both halves of a key from (w, q, r).
func NewKeyPair(w []int, q, r int) (*cryptology.KnapsackKeyPair, error) {
	priv, err := NewPrivateKey(w, q, r)
	if err != nil {
		return nil, err
	}
	return &cryptology.KnapsackKeyPair{PublicKey: DerivePublicKey(priv), PrivateKey: *priv}, nil
}

// GenerateKeyPair returns the preset key pair for the given level.
func GenerateKeyPair(level cryptology.ParamLevel) (*cryptology.KnapsackKeyPair, error) {
	params, err := core.GetParams(level)
	if err != nil {
		return nil, err
	}
	return NewKeyPair(params.Knapsack.W, params.Knapsack.Q, params.Knapsack.R)
}

// GenerateKeyPairWithSequence picks a random multiplier coprime to q.
func GenerateKeyPairWithSequence(w []int, q int) (*cryptology.KnapsackKeyPair, error) {
	if q <= 2 {
		return nil, invalid("modulus %d too small", q)
	}
	total, err := utils.SafeSum(w)
	if err != nil {
		return nil, errors.Wrap(err, "knapsack sum")
	}
	if q <= total {
		return nil, invalid("q = %d must exceed sum(w) = %d", q, total)
	}
	r, err := utils.RandomMatching(2, q, func(r int) bool {
		return numtheory.GCD(r, q) == 1
	})
	if err != nil {
		return nil, err
	}
	return NewKeyPair(w, q, r)
}

// EncryptBits returns Σ bits[i]*b[i] for a bit vector as long as the key.
func EncryptBits(pub cryptology.KnapsackPublicKey, bits []byte) (int, error) {
	if len(bits) != len(pub.B) {
		return 0, invalid("got %d bits for a key of length %d", len(bits), len(pub.B))
	}
	sum := 0
	for i, bit := range bits {
		switch bit {
		case 0:
		case 1:
			var err error
			if sum, err = utils.SafeAdd(sum, pub.B[i]); err != nil {
				return 0, err
			}
		default:
			return 0, invalid("bit %d has value %d", i, bit)
		}
	}
	return sum, nil
}

// Encrypt encodes text with c and encrypts one block per symbol.
func Encrypt(pub cryptology.KnapsackPublicKey, c codec.Codec, text string) ([]int, error) {
	blocks, err := c.Encode(text)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(blocks))
	for i, bits := range blocks {
		if out[i], err = EncryptBits(pub, bits); err != nil {
			return nil, errors.Wrapf(err, "symbol %d", i)
		}
	}
	return out, nil
}

// DecryptBlock recovers the bit vector of one ciphertext block. It multiplies
// by s = r^-1 mod q and subtracts w[i] greedily from the largest element down.
// A residue left after the scan means ct was not produced by this key.
func DecryptBlock(priv *cryptology.KnapsackPrivateKey, ct int) ([]byte, error) {
	if ct < 0 {
		return nil, invalid("negative ciphertext %d", ct)
	}
	s, err := numtheory.ModInverseGeneral(priv.R, priv.Q)
	if err != nil {
		return nil, err
	}
	md, _ := numtheory.NewModulus(priv.Q)
	c := md.Mul(ct, s)

	bits := make([]byte, len(priv.W))
	for i := len(priv.W) - 1; i >= 0 && c > 0; i-- {
		if priv.W[i] <= c {
			bits[i] = 1
			c -= priv.W[i]
		}
	}
	if c != 0 {
		return nil, invalid("ciphertext %d leaves residue %d", ct, c)
	}
	return bits, nil
}

// Decrypt inverts Encrypt.
func Decrypt(priv *cryptology.KnapsackPrivateKey, c codec.Codec, cts []int) (string, error) {
	blocks := make([][]byte, len(cts))
	for i, ct := range cts {
		bits, err := DecryptBlock(priv, ct)
		if err != nil {
			return "", errors.Wrapf(err, "block %d", i)
		}
		blocks[i] = bits
	}
	return c.Decode(blocks)
}

// SerializePublicKey encodes the public sequence.
func SerializePublicKey(pub cryptology.KnapsackPublicKey) []byte {
	return utils.EncodeInts(pub.B...)
}

// DeserializePublicKey decodes a sequence written by SerializePublicKey.
func DeserializePublicKey(data []byte) (cryptology.KnapsackPublicKey, error) {
	values, err := utils.DecodeInts(data, utils.MaxSequenceLength)
	if err != nil {
		return cryptology.KnapsackPublicKey{}, errors.Wrap(err, "knapsack public key")
	}
	if len(values) == 0 {
		return cryptology.KnapsackPublicKey{}, invalid("empty knapsack public key")
	}
	return cryptology.KnapsackPublicKey{B: values}, nil
}
