// Package codec maps symbols of a contiguous alphabet to fixed-width bit
// vectors and back. The knapsack cipher encrypts one symbol per block.
package codec

import (
	"unicode"

	"github.com/pkg/errors"

	cryptology "github.com/BackendStack21/cryptology-go"
	"github.com/BackendStack21/cryptology-go/utils"
)

// Codec encodes rune r as the width-bit big-endian value r - First + Shift.
// Last, when set, closes the alphabet before the width runs out.
// A symbol outside the alphabet is retried in the other letter case.
type Codec struct {
	First rune
	Last  rune
	Width int
	Shift int
}

// Cyrillic covers А..Я with А encoded as 000001. Lowercase input is folded to upper.
var Cyrillic = Codec{First: 'А', Last: 'Я', Width: 6, Shift: 1}

// New validates and returns a codec.
func New(first rune, width, shift int) (Codec, error) {
	if err := utils.CheckLength(width, utils.MaxSequenceLength); err != nil || width == 0 || width > 30 {
		return Codec{}, errors.Wrapf(cryptology.ErrInvalidArgument, "codec width %d", width)
	}
	if shift < 0 || shift >= 1<<width {
		return Codec{}, errors.Wrapf(cryptology.ErrInvalidArgument, "codec shift %d for width %d", shift, width)
	}
	return Codec{First: first, Width: width, Shift: shift}, nil
}

// Size is the number of symbols the codec can represent.
func (c Codec) Size() int {
	n := 1<<c.Width - c.Shift
	if c.Last != 0 {
		if span := int(c.Last-c.First) + 1; span < n {
			n = span
		}
	}
	if n < 0 {
		return 0
	}
	return n
}

func (c Codec) code(r rune) (int, bool) {
	if r < c.First || int(r-c.First) >= c.Size() {
		return 0, false
	}
	return int(r-c.First) + c.Shift, true
}

// ToBits encodes r as Width bits, most significant first.
func (c Codec) ToBits(r rune) ([]byte, error) {
	v, ok := c.code(r)
	if !ok {
		folded := unicode.ToUpper(r)
		if folded == r {
			folded = unicode.ToLower(r)
		}
		v, ok = c.code(folded)
	}
	if !ok {
		return nil, errors.Wrapf(cryptology.ErrInvalidArgument, "symbol %q outside the codec alphabet", r)
	}
	bits := make([]byte, c.Width)
	for i := c.Width - 1; i >= 0; i-- {
		bits[i] = byte(v & 1)
		v >>= 1
	}
	return bits, nil
}

// ToRune decodes a bit vector produced by ToBits.
func (c Codec) ToRune(bits []byte) (rune, error) {
	if len(bits) != c.Width {
		return 0, errors.Wrapf(cryptology.ErrInvalidArgument, "got %d bits, codec width is %d", len(bits), c.Width)
	}
	v := 0
	for _, b := range bits {
		if b > 1 {
			return 0, errors.Wrapf(cryptology.ErrInvalidArgument, "bit value %d", b)
		}
		v = v<<1 | int(b)
	}
	if v < c.Shift {
		return 0, errors.Wrapf(cryptology.ErrInvalidArgument, "code %d below codec shift %d", v, c.Shift)
	}
	if v-c.Shift >= c.Size() {
		return 0, errors.Wrapf(cryptology.ErrInvalidArgument, "code %d past the end of the codec alphabet", v)
	}
	return c.First + rune(v-c.Shift), nil
}

// Encode converts text into one bit vector per symbol.
func (c Codec) Encode(text string) ([][]byte, error) {
	out := make([][]byte, 0, len(text))
	for _, r := range text {
		bits, err := c.ToBits(r)
		if err != nil {
			return nil, err
		}
		out = append(out, bits)
	}
	return out, nil
}

// Decode is the inverse of Encode up to letter case.
func (c Codec) Decode(blocks [][]byte) (string, error) {
	runes := make([]rune, len(blocks))
	for i, bits := range blocks {
		r, err := c.ToRune(bits)
		if err != nil {
			return "", errors.Wrapf(err, "block %d", i)
		}
		runes[i] = r
	}
	return string(runes), nil
}
