package bitvector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"opal/internal/common"
)

func TestHexBitLayout(t *testing.T) {
	tests := []struct {
		name   string
		length uint64
		set    []uint64
		want   string
	}{
		{"FirstBitIsMSB", 4, []uint64{0}, "8"},
		{"LastBitIsLSB", 4, []uint64{3}, "1"},
		{"TwoDigits", 8, []uint64{0, 7}, "81"},
		{"AllSet", 8, []uint64{0, 1, 2, 3, 4, 5, 6, 7}, "ff"},
		{"PartialDigit", 30, []uint64{29}, "00000004"},
		{"PartialDigitFirst", 30, []uint64{28}, "00000008"},
		{"Twenty", 20, []uint64{3, 7, 11, 15, 19}, "11111"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustNew(t, tt.length)
			for _, i := range tt.set {
				require.NoError(t, b.Set(i))
			}
			require.Equal(t, tt.want, b.Hex())

			decoded, err := FromHex(tt.length, tt.want)
			require.NoError(t, err)
			require.True(t, b.Equal(decoded))
		})
	}
}

func TestFromHexRoundTrip(t *testing.T) {
	original := mustNew(t, 100)
	positions := []uint64{0, 1, 7, 8, 15, 16, 31, 32, 63, 64, 99}
	for _, pos := range positions {
		require.NoError(t, original.Set(pos))
	}

	s := original.Hex()
	require.Len(t, s, 25)

	restored, err := FromHex(100, s)
	require.NoError(t, err)
	for i := uint64(0); i < 100; i++ {
		want, _ := original.Get(i)
		got, _ := restored.Get(i)
		require.Equal(t, want, got, "bit %d mismatch", i)
	}

	upper, err := FromHex(100, strings.ToUpper(s))
	require.NoError(t, err)
	require.True(t, original.Equal(upper))
}

func TestFromHexRejects(t *testing.T) {
	tests := []struct {
		name   string
		length uint64
		s      string
		want   error
	}{
		{"ZeroLength", 0, "", common.ErrConfiguration},
		{"TooLong", MaxLen + 1, "", common.ErrSize},
		{"TooFewDigits", 30, "11111", common.ErrParse},
		{"TooManyDigits", 4, "00", common.ErrParse},
		{"NonHex", 8, "0g", common.ErrParse},
		{"Sign", 8, "-1", common.ErrParse},
		{"PaddingBitSet", 30, "00000001", common.ErrParse},
		{"PaddingBitSetHigh", 30, "00000002", common.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := FromHex(tt.length, tt.s)
			require.ErrorIs(t, err, tt.want)
			require.Nil(t, b)
		})
	}
}

func TestCombineHex(t *testing.T) {
	or, err := CombineHex(OpOr, "11111", "22222")
	require.NoError(t, err)
	require.Equal(t, "33333", or)

	and, err := CombineHex(OpAnd, "11111", "22222")
	require.NoError(t, err)
	require.Equal(t, "00000", and)

	mixed, err := CombineHex(OpAnd, "FfA0", "0f3c")
	require.NoError(t, err)
	require.Equal(t, "0f20", mixed)

	_, err = CombineHex(OpOr, "111", "1111")
	require.ErrorIs(t, err, common.ErrIncompatibleOperand)

	_, err = CombineHex(OpOr, "11x", "111")
	require.ErrorIs(t, err, common.ErrParse)

	_, err = CombineHex(OpOr, "111", "11x")
	require.ErrorIs(t, err, common.ErrParse)

	require.Equal(t, "or", OpOr.String())
	require.Equal(t, "and", OpAnd.String())
}

func TestCombineHexMatchesVectorAlgebra(t *testing.T) {
	a := mustNew(t, 37)
	b := mustNew(t, 37)
	for i := uint64(0); i < 37; i += 3 {
		require.NoError(t, a.Set(i))
	}
	for i := uint64(0); i < 37; i += 5 {
		require.NoError(t, b.Set(i))
	}

	for _, op := range []Op{OpOr, OpAnd} {
		text, err := CombineHex(op, a.Hex(), b.Hex())
		require.NoError(t, err)

		c := a.Clone()
		if op == OpOr {
			require.NoError(t, c.Or(b))
		} else {
			require.NoError(t, c.And(b))
		}
		require.Equal(t, c.Hex(), text, "op %s", op)
	}
}
