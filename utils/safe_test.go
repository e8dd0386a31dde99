package utils

import (
	"math"
	"math/big"
	"testing"
)

func TestSafeMultiply(t *testing.T) {
	// Normal cases
	result, err := SafeMultiply(10, 20)
	if err != nil || result != 200 {
		t.Errorf("SafeMultiply(10, 20) = %d, %v; want 200, nil", result, err)
	}

	// Zero cases
	result, err = SafeMultiply(0, 100)
	if err != nil || result != 0 {
		t.Errorf("SafeMultiply(0, 100) = %d, %v; want 0, nil", result, err)
	}

	// Negative input should error
	_, err = SafeMultiply(-1, 10)
	if err == nil {
		t.Error("SafeMultiply(-1, 10) should return error")
	}

	_, err = SafeMultiply(1<<32, 1<<32)
	if err == nil {
		t.Error("SafeMultiply with overflow should return error")
	}
}

func TestSafeAdd(t *testing.T) {
	result, err := SafeAdd(2, 3)
	if err != nil || result != 5 {
		t.Errorf("SafeAdd(2, 3) = %d, %v", result, err)
	}
	if _, err := SafeAdd(math.MaxInt, 1); err != ErrOverflow {
		t.Errorf("expected ErrOverflow, got %v", err)
	}
	if _, err := SafeAdd(-1, 1); err != ErrInvalidLength {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
}

func TestSafeSum(t *testing.T) {
	total, err := SafeSum([]int{2, 3, 7, 14, 29, 57})
	if err != nil || total != 112 {
		t.Errorf("SafeSum = %d, %v; want 112", total, err)
	}
	if _, err := SafeSum([]int{math.MaxInt, 1}); err == nil {
		t.Error("SafeSum should detect overflow")
	}
}

func TestMulMod(t *testing.T) {
	cases := []struct{ a, b, m uint64 }{
		{3, 4, 5},
		{1<<62 + 7, 1<<62 + 11, 1<<63 - 25},
		{math.MaxUint64 - 1, math.MaxUint64 - 2, math.MaxUint64},
		{0, 12345, 97},
	}
	for _, c := range cases {
		want := new(big.Int).Mul(new(big.Int).SetUint64(c.a), new(big.Int).SetUint64(c.b))
		want.Mod(want, new(big.Int).SetUint64(c.m))
		if got := MulMod(c.a%c.m, c.b%c.m, c.m); got != want.Uint64() {
			t.Errorf("MulMod(%d, %d, %d) = %d, want %s", c.a, c.b, c.m, got, want)
		}
	}
}

func TestCheckLength(t *testing.T) {
	if err := CheckLength(10, MaxSequenceLength); err != nil {
		t.Errorf("CheckLength(10) should pass: %v", err)
	}

	if err := CheckLength(MaxSequenceLength+1, MaxSequenceLength); err == nil {
		t.Error("CheckLength over limit should fail")
	}

	if err := CheckLength(-1, MaxSequenceLength); err == nil {
		t.Error("CheckLength(-1) should fail")
	}
}

func TestCheckPositive(t *testing.T) {
	if err := CheckPositive(1, "p"); err != nil {
		t.Error(err)
	}
	if err := CheckPositive(0, "p"); err == nil || err.Error() != "p must be positive" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestSafeReadLength(t *testing.T) {
	// Valid data
	data := []byte{0x10, 0x00, 0x00, 0x00} // 16 in little-endian
	length, offset, err := SafeReadLength(data, 0, 100)
	if err != nil || length != 16 || offset != 4 {
		t.Errorf("SafeReadLength failed: length=%d, offset=%d, err=%v", length, offset, err)
	}

	// Truncated data
	_, _, err = SafeReadLength([]byte{0x10, 0x00}, 0, 100)
	if err == nil {
		t.Error("SafeReadLength with truncated data should error")
	}

	// Exceeds max
	data = []byte{0xFF, 0xFF, 0xFF, 0x7F}
	_, _, err = SafeReadLength(data, 0, 100)
	if err == nil {
		t.Error("SafeReadLength exceeding max should error")
	}
}

func TestSafeReadUint64(t *testing.T) {
	data := []byte{0xAA, 0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}
	v, off, err := SafeReadUint64(data, 1)
	if err != nil || off != 9 || v != 0x0102030405060708 {
		t.Errorf("SafeReadUint64 = %x, %d, %v", v, off, err)
	}
	if _, _, err := SafeReadUint64(data, 2); err == nil {
		t.Error("expected truncation error")
	}
}

func TestValidateSliceAccess(t *testing.T) {
	data := make([]byte, 100)

	if err := ValidateSliceAccess(data, 0, 50); err != nil {
		t.Errorf("ValidateSliceAccess(0, 50) should pass: %v", err)
	}

	if err := ValidateSliceAccess(data, 90, 20); err == nil {
		t.Error("ValidateSliceAccess(90, 20) should fail (out of bounds)")
	}

	if err := ValidateSliceAccess(data, -1, 10); err == nil {
		t.Error("ValidateSliceAccess with negative offset should fail")
	}
}
