package common

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitFields(t *testing.T) {
	fields, err := SplitFields("decode", "BF1|murmur3|default|3|20:00000", '|', 5)
	require.NoError(t, err)
	require.Equal(t, []string{"BF1", "murmur3", "default", "3", "20:00000"}, fields)

	_, err = SplitFields("decode", "20:00000", '|', 5)
	require.ErrorIs(t, err, ErrParse)

	_, err = SplitFields("decode", "a|b|c|d|e|f", '|', 5)
	require.ErrorIs(t, err, ErrParse)
}

func TestParseUint(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  uint64
		ok    bool
	}{
		{"Zero", "0", 0, true},
		{"Small", "30", 30, true},
		{"MaxUint64", "18446744073709551615", 1<<64 - 1, true},
		{"Empty", "", 0, false},
		{"Negative", "-1", 0, false},
		{"Plus", "+4", 0, false},
		{"Space", " 4", 0, false},
		{"Hex", "0x10", 0, false},
		{"Overflow", "18446744073709551616", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseUint("decode", "length", tt.field)
			if !tt.ok {
				require.ErrorIs(t, err, ErrParse)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, v)
			require.Equal(t, tt.field, FormatUint(v))
		})
	}
}

func TestParseUintKeepsCause(t *testing.T) {
	_, err := ParseUint("decode", "length", "99999999999999999999")
	var numErr *strconv.NumError
	require.True(t, errors.As(err, &numErr))
	require.Equal(t, KindParse, KindOf(err))
}

func TestHex32(t *testing.T) {
	for _, v := range []uint32{0, 1, 0xdeadbeef, 0xffffffff} {
		s := FormatHex32(v)
		require.Len(t, s, 8)
		got, err := ParseHex32("decode", "seed", s)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}

	got, err := ParseHex32("decode", "seed", "DEADBEEF")
	require.NoError(t, err)
	require.Equal(t, uint32(0xdeadbeef), got)

	for _, bad := range []string{"", "123", "123456789", "zzzzzzzz", "-0000001"} {
		_, err := ParseHex32("decode", "seed", bad)
		require.ErrorIs(t, err, ErrParse, "input %q", bad)
	}
}
