// Package utils provides shared helpers for the cryptology packages.
// This file contains overflow-checked arithmetic and bounds-checked reads
// used by the key serializers.

package utils

import (
	"math"
	"math/bits"

	"github.com/pkg/errors"
)

// Limits applied when decoding untrusted input.
const (
	// MaxSequenceLength is the maximum knapsack sequence length (one element per code bit).
	MaxSequenceLength = 64

	// MaxMessageSize is the maximum message size in bytes accepted by the hashing signers.
	MaxMessageSize = 1 << 20 // 1MB

	// MaxEncodedKeySize is the maximum size of a serialized public key.
	MaxEncodedKeySize = 1 << 12
)

var (
	// ErrOverflow indicates an integer overflow occurred.
	ErrOverflow = errors.New("integer overflow")

	// ErrExceedsLimit indicates a value exceeds the allowed limit.
	ErrExceedsLimit = errors.New("value exceeds allowed limit")

	// ErrInvalidLength indicates an invalid length value.
	ErrInvalidLength = errors.New("invalid length")
)

// SafeMultiply multiplies two non-negative integers and returns an error if overflow occurs.
func SafeMultiply(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, ErrInvalidLength
	}
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > math.MaxInt/b {
		return 0, ErrOverflow
	}
	return a * b, nil
}

// SafeAdd adds two non-negative integers and returns an error if overflow occurs.
func SafeAdd(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, ErrInvalidLength
	}
	if a > math.MaxInt-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// SafeSum adds a slice of non-negative integers with overflow checking.
func SafeSum(values []int) (int, error) {
	total := 0
	for _, v := range values {
		var err error
		if total, err = SafeAdd(total, v); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// MulMod returns a*b mod m for a, b < m using a full 128-bit product.
func MulMod(a, b, m uint64) uint64 {
	return mulMod(a, b, m)
}

func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi >= m {
		hi %= m
	}
	_, rem := bits.Div64(hi, lo, m)
	return rem
}

// CheckLength validates that length is within [0, maxAllowed].
func CheckLength(length, maxAllowed int) error {
	if length < 0 {
		return ErrInvalidLength
	}
	if length > maxAllowed {
		return ErrExceedsLimit
	}
	return nil
}

// CheckPositive validates that value is > 0.
func CheckPositive(value int, name string) error {
	if value <= 0 {
		return errors.Errorf("%s must be positive", name)
	}
	return nil
}

// SafeReadLength reads a uint32 length from data at offset, validates it, and returns the value.
// Returns error if not enough bytes available or length exceeds maxAllowed.
func SafeReadLength(data []byte, offset, maxAllowed int) (length int, newOffset int, err error) {
	if offset < 0 || offset+4 > len(data) {
		return 0, offset, errors.New("truncated length field")
	}
	raw := uint32(data[offset]) | uint32(data[offset+1])<<8 | uint32(data[offset+2])<<16 | uint32(data[offset+3])<<24
	if uint64(raw) > uint64(maxAllowed) {
		return 0, offset, ErrExceedsLimit
	}
	return int(raw), offset + 4, nil
}

// SafeReadUint64 reads a little-endian uint64 from data at offset.
func SafeReadUint64(data []byte, offset int) (value uint64, newOffset int, err error) {
	if err := ValidateSliceAccess(data, offset, 8); err != nil {
		return 0, offset, err
	}
	for i := 7; i >= 0; i-- {
		value = value<<8 | uint64(data[offset+i])
	}
	return value, offset + 8, nil
}

// ValidateSliceAccess checks that accessing data[offset:offset+size] is safe.
func ValidateSliceAccess(data []byte, offset, size int) error {
	if offset < 0 || size < 0 {
		return ErrInvalidLength
	}
	if offset+size < offset {
		return ErrOverflow
	}
	if offset+size > len(data) {
		return errors.New("slice access out of bounds")
	}
	return nil
}
