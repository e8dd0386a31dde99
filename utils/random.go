package utils

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"
)

// RandReader is the entropy source for every random choice in the library.
// Tests swap it for a deterministic or failing reader.
var RandReader io.Reader = rand.Reader

// maxRejections caps RandomMatching so a predicate nothing satisfies cannot spin forever.
const maxRejections = 1 << 12

// ErrNoCandidate indicates RandomMatching gave up.
var ErrNoCandidate = errors.New("no random candidate satisfied the constraint")

// SecureRandomBytes generates n cryptographically secure random bytes.
func SecureRandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(RandReader, buf); err != nil {
		return nil, errors.Wrap(err, "reading random bytes")
	}
	return buf, nil
}

// RandomInt generates a cryptographically secure random integer in [0, max).
// It uses rejection sampling to ensure a uniform distribution.
func RandomInt(max int) (int, error) {
	if max <= 0 {
		return 0, errors.New("max must be positive")
	}
	if max == 1 {
		return 0, nil
	}

	bitsNeeded := 0
	for m := max - 1; m > 0; m >>= 1 {
		bitsNeeded++
	}
	bytesNeeded := (bitsNeeded + 7) / 8
	mask := (1 << bitsNeeded) - 1

	for {
		bytes, err := SecureRandomBytes(bytesNeeded)
		if err != nil {
			return 0, err
		}

		var value int
		for i := 0; i < bytesNeeded; i++ {
			value = (value << 8) | int(bytes[i])
		}
		value &= mask

		if value < max {
			return value, nil
		}
	}
}

// RandomRange returns a uniform integer in [lo, hi).
func RandomRange(lo, hi int) (int, error) {
	if hi <= lo {
		return 0, errors.Errorf("empty range [%d, %d)", lo, hi)
	}
	v, err := RandomInt(hi - lo)
	if err != nil {
		return 0, err
	}
	return lo + v, nil
}

// RandomMatching draws from [lo, hi) until accept returns true.
// Session keys that must be coprime to a modulus are drawn this way.
func RandomMatching(lo, hi int, accept func(int) bool) (int, error) {
	for attempt := 0; attempt < maxRejections; attempt++ {
		v, err := RandomRange(lo, hi)
		if err != nil {
			return 0, err
		}
		if accept == nil || accept(v) {
			return v, nil
		}
	}
	return 0, errors.Wrapf(ErrNoCandidate, "range [%d, %d)", lo, hi)
}
