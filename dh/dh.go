// Package dh implements Diffie-Hellman key agreement over a prime field.
package dh

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"

	cryptology "github.com/BackendStack21/cryptology-go"
	"github.com/BackendStack21/cryptology-go/core"
	"github.com/BackendStack21/cryptology-go/numtheory"
	"github.com/BackendStack21/cryptology-go/utils"
)

const (
	DomainKDF = "cryptology-dh-kdf-v1"

	// MaxDerivedKeySize is the HKDF-SHA3-256 output limit, 255 hash blocks.
	MaxDerivedKeySize = 255 * 32
)

// SharedKey computes value^exponent mod mod. Both parties call it: with the
// generator and their secret to publish, then with the peer's public value to agree.
func SharedKey(value, exponent, mod int) (int, error) {
	return numtheory.ModPow(value, exponent, mod)
}

// PublicValue computes g^secret mod p.
func PublicValue(params cryptology.DHParams, secret int) (int, error) {
	return SharedKey(params.G, secret, params.P)
}

// NewKeyPair builds a key pair from a chosen secret in [1, p-2].
func NewKeyPair(params cryptology.DHParams, secret int) (*cryptology.DHKeyPair, error) {
	if err := core.ValidateDH(params); err != nil {
		return nil, err
	}
	if secret < 1 || secret > params.P-2 {
		return nil, errors.Wrapf(cryptology.ErrInvalidArgument, "secret %d outside [1, %d]", secret, params.P-2)
	}
	public, err := PublicValue(params, secret)
	if err != nil {
		return nil, err
	}
	return &cryptology.DHKeyPair{Params: params, Secret: secret, Public: public}, nil
}

// GenerateKeyPair generates a key pair with a random secret for the given preset.
func GenerateKeyPair(level cryptology.ParamLevel) (*cryptology.DHKeyPair, error) {
	params, err := core.GetParams(level)
	if err != nil {
		return nil, err
	}
	return GenerateKeyPairWithParams(params.DH)
}

// GenerateKeyPairWithParams generates a key pair with a random secret.
func GenerateKeyPairWithParams(params cryptology.DHParams) (*cryptology.DHKeyPair, error) {
	if err := core.ValidateDH(params); err != nil {
		return nil, err
	}
	secret, err := utils.RandomRange(1, params.P-1)
	if err != nil {
		return nil, err
	}
	return NewKeyPair(params, secret)
}

// Agree returns peerPublic^secret mod p after checking the peer value is a group element.
func Agree(kp *cryptology.DHKeyPair, peerPublic int) (int, error) {
	if kp == nil {
		return 0, errors.Wrap(cryptology.ErrInvalidArgument, "nil key pair")
	}
	if peerPublic < 1 || peerPublic >= kp.Params.P {
		return 0, errors.Wrapf(cryptology.ErrInvalidArgument, "peer value %d outside [1, %d)", peerPublic, kp.Params.P)
	}
	return SharedKey(peerPublic, kp.Secret, kp.Params.P)
}

// DeriveKey expands the integer shared secret into n key bytes with HKDF-SHA3-256.
func DeriveKey(shared int, info []byte, n int) ([]byte, error) {
	if err := utils.CheckPositive(n, "key length"); err != nil {
		return nil, errors.Wrap(cryptology.ErrInvalidArgument, err.Error())
	}
	if n > MaxDerivedKeySize {
		return nil, errors.Wrapf(cryptology.ErrInvalidArgument, "key length %d exceeds %d", n, MaxDerivedKeySize)
	}
	r := hkdf.New(sha3.New256, utils.IntBytes(shared), []byte(DomainKDF), info)
	key := make([]byte, n)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, errors.Wrap(err, "hkdf")
	}
	return key, nil
}
