package bitvector

import (
	"strings"

	"github.com/bits-and-blooms/bitset"

	"opal/internal/common"
)

// Hex layout: bit i lives in digit i/4, and the first bit of each digit is
// its most significant. Bit 4d has weight 8 and bit 4d+3 has weight 1. Bits
// past the vector length in the final digit are always zero.

const hexDigits = "0123456789abcdef"

// Op selects the digit-wise operation of CombineHex.
type Op uint8

const (
	OpOr Op = iota
	OpAnd
)

func (op Op) String() string {
	if op == OpAnd {
		return "and"
	}
	return "or"
}

// HexLen returns the number of hex digits that encode length bits.
func HexLen(length uint64) uint64 {
	return (length + 3) / 4
}

func (b *bitVectorImpl) Hex() string {
	n := HexLen(b.length)
	var sb strings.Builder
	sb.Grow(int(n))
	for d := uint64(0); d < n; d++ {
		var v byte
		for j := uint64(0); j < 4; j++ {
			i := 4*d + j
			if i < b.length && b.bits.Test(uint(i)) {
				v |= 8 >> j
			}
		}
		sb.WriteByte(hexDigits[v])
	}
	return sb.String()
}

// FromHex decodes a vector of length bits from its Hex encoding. Upper and
// lower case digits are accepted.
func FromHex(length uint64, s string) (BitVector, error) {
	if err := checkLen("FromHex", length); err != nil {
		return nil, err
	}
	if want := HexLen(length); uint64(len(s)) != want {
		return nil, common.Errorf(common.KindParse, "FromHex",
			"%d bits need %d hex digits, got %d", length, want, len(s))
	}

	bs := bitset.New(uint(length))
	for d := 0; d < len(s); d++ {
		v, ok := hexValue(s[d])
		if !ok {
			return nil, common.Errorf(common.KindParse, "FromHex", "invalid hex digit %q at %d", s[d], d)
		}
		for j := uint64(0); j < 4; j++ {
			if v&(8>>j) == 0 {
				continue
			}
			i := 4*uint64(d) + j
			if i >= length {
				return nil, common.Errorf(common.KindParse, "FromHex",
					"padding bit %d set beyond length %d", i, length)
			}
			bs.Set(uint(i))
		}
	}
	return &bitVectorImpl{bits: bs, length: length}, nil
}

// CombineHex applies op digit by digit to two hex bodies of equal length.
// Because digits are 4-bit aligned the result equals the Hex of the combined
// vectors, so serialized filters can be merged without decoding them.
func CombineHex(op Op, a, b string) (string, error) {
	if len(a) != len(b) {
		return "", common.Errorf(common.KindIncompatibleOperand, "CombineHex",
			"digit count mismatch: %d != %d", len(a), len(b))
	}
	out := make([]byte, len(a))
	for d := 0; d < len(a); d++ {
		x, ok := hexValue(a[d])
		if !ok {
			return "", common.Errorf(common.KindParse, "CombineHex", "invalid hex digit %q at %d", a[d], d)
		}
		y, ok := hexValue(b[d])
		if !ok {
			return "", common.Errorf(common.KindParse, "CombineHex", "invalid hex digit %q at %d", b[d], d)
		}
		if op == OpAnd {
			out[d] = hexDigits[x&y]
		} else {
			out[d] = hexDigits[x|y]
		}
	}
	return string(out), nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
