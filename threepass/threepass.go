// Package threepass implements Shamir's three-pass protocol: two parties move
// a message across an open channel without sharing any key. Each holds an
// exponent pair (e, d) with e*d ≡ 1 (mod φ(p)) over a shared prime p.
//
//	A -> B: m1 = m^eA
//	B -> A: m2 = m1^eB
//	A -> B: m3 = m2^dA
//	B:      m  = m3^dB
package threepass

import (
	"github.com/pkg/errors"

	cryptology "github.com/BackendStack21/cryptology-go"
	"github.com/BackendStack21/cryptology-go/core"
	"github.com/BackendStack21/cryptology-go/numtheory"
	"github.com/BackendStack21/cryptology-go/utils"
)

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(cryptology.ErrInvalidArgument, format, args...)
}

// NewKey builds the exponent pair for e over prime p.
func NewKey(p, e int) (*cryptology.ThreePassKey, error) {
	if err := core.ValidateThreePass(cryptology.ThreePassParams{P: p}); err != nil {
		return nil, err
	}
	phi, err := numtheory.EulerTotient(p)
	if err != nil {
		return nil, err
	}
	if e < 1 || e >= phi {
		return nil, invalid("exponent %d outside [1, %d)", e, phi)
	}
	d, err := numtheory.ModInverseGeneral(e, phi)
	if err != nil {
		return nil, err
	}
	return &cryptology.ThreePassKey{P: p, E: e, D: d}, nil
}

// GenerateKey picks a random exponent coprime to φ(p).
func GenerateKey(p int) (*cryptology.ThreePassKey, error) {
	if err := core.ValidateThreePass(cryptology.ThreePassParams{P: p}); err != nil {
		return nil, err
	}
	phi := p - 1
	e, err := utils.RandomMatching(3, phi, func(e int) bool {
		return numtheory.GCD(e, phi) == 1
	})
	if err != nil {
		return nil, err
	}
	return NewKey(p, e)
}

// GenerateKeyPair generates a key over the preset prime for the given level.
func GenerateKeyPair(level cryptology.ParamLevel) (*cryptology.ThreePassKey, error) {
	params, err := core.GetParams(level)
	if err != nil {
		return nil, err
	}
	return GenerateKey(params.ThreePass.P)
}

func apply(key *cryptology.ThreePassKey, v, exp int) (int, error) {
	if v < 1 || v >= key.P {
		return 0, invalid("value %d outside [1, %d)", v, key.P)
	}
	return numtheory.ModPow(v, exp, key.P)
}

// FirstPass is A's opening message m1 = m^eA mod p.
func FirstPass(keyA *cryptology.ThreePassKey, m int) (int, error) {
	return apply(keyA, m, keyA.E)
}

// SecondPass is B's reply m2 = m1^eB mod p.
func SecondPass(keyB *cryptology.ThreePassKey, m1 int) (int, error) {
	return apply(keyB, m1, keyB.E)
}

// ThirdPass is A removing its lock, m3 = m2^dA mod p.
func ThirdPass(keyA *cryptology.ThreePassKey, m2 int) (int, error) {
	return apply(keyA, m2, keyA.D)
}

// Receive is B removing its lock, m = m3^dB mod p.
func Receive(keyB *cryptology.ThreePassKey, m3 int) (int, error) {
	return apply(keyB, m3, keyB.D)
}

// Run carries m from A to B and returns the wire transcript with B's result.
func Run(keyA, keyB *cryptology.ThreePassKey, m int) (cryptology.ThreePassTranscript, int, error) {
	var tr cryptology.ThreePassTranscript
	if keyA.P != keyB.P {
		return tr, 0, invalid("parties use different primes %d and %d", keyA.P, keyB.P)
	}
	var err error
	if tr.M1, err = FirstPass(keyA, m); err != nil {
		return tr, 0, errors.Wrap(err, "first pass")
	}
	if tr.M2, err = SecondPass(keyB, tr.M1); err != nil {
		return tr, 0, errors.Wrap(err, "second pass")
	}
	if tr.M3, err = ThirdPass(keyA, tr.M2); err != nil {
		return tr, 0, errors.Wrap(err, "third pass")
	}
	out, err := Receive(keyB, tr.M3)
	if err != nil {
		return tr, 0, errors.Wrap(err, "receive")
	}
	return tr, out, nil
}
