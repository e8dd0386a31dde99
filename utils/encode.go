package utils

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// EncodeInts serializes non-negative integers as a little-endian uint32 count
// followed by one little-endian uint64 per value.
func EncodeInts(values ...int) []byte {
	result := make([]byte, 4, 4+8*len(values))
	binary.LittleEndian.PutUint32(result, uint32(len(values)))
	buf := make([]byte, 8)
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf, uint64(v))
		result = append(result, buf...)
	}
	return result
}

// DecodeInts parses the output of EncodeInts. It rejects more than maxCount
// values, values that do not fit a non-negative int, and trailing bytes.
func DecodeInts(data []byte, maxCount int) ([]int, error) {
	count, offset, err := SafeReadLength(data, 0, maxCount)
	if err != nil {
		return nil, errors.Wrap(err, "value count")
	}
	size, err := SafeMultiply(count, 8)
	if err != nil {
		return nil, err
	}
	if err := ValidateSliceAccess(data, offset, size); err != nil {
		return nil, errors.Wrap(err, "values")
	}
	if offset+size != len(data) {
		return nil, errors.Errorf("%d trailing bytes", len(data)-offset-size)
	}

	values := make([]int, count)
	for i := range values {
		var raw uint64
		raw, offset, err = SafeReadUint64(data, offset)
		if err != nil {
			return nil, err
		}
		if raw > math.MaxInt64 {
			return nil, errors.Wrapf(ErrOverflow, "value %d", i)
		}
		values[i] = int(raw)
	}
	return values, nil
}
