package common

import (
	"strconv"
	"strings"
)

// SplitFields splits s on sep and requires exactly n fields.
func SplitFields(op, s string, sep byte, n int) ([]string, error) {
	fields := strings.Split(s, string(sep))
	if len(fields) != n {
		return nil, Errorf(KindParse, op, "expected %d %q-separated fields, got %d", n, sep, len(fields))
	}
	return fields, nil
}

// ParseUint parses a strictly decimal, unsigned field named what.
// Signs, whitespace and empty input are rejected.
func ParseUint(op, what, field string) (uint64, error) {
	if field == "" {
		return 0, Errorf(KindParse, op, "empty %s", what)
	}
	for i := 0; i < len(field); i++ {
		if field[i] < '0' || field[i] > '9' {
			return 0, Errorf(KindParse, op, "%s %q is not a decimal number", what, field)
		}
	}
	v, err := strconv.ParseUint(field, 10, 64)
	if err != nil {
		return 0, Wrapf(KindParse, op, err, "invalid %s", what)
	}
	return v, nil
}

// FormatUint is the inverse of ParseUint.
func FormatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// ParseHex32 parses exactly 8 hex digits into a uint32.
func ParseHex32(op, what, field string) (uint32, error) {
	if len(field) != 8 {
		return 0, Errorf(KindParse, op, "%s %q must be 8 hex digits", what, field)
	}
	v, err := strconv.ParseUint(field, 16, 32)
	if err != nil {
		return 0, Wrapf(KindParse, op, err, "invalid %s", what)
	}
	return uint32(v), nil
}

// FormatHex32 renders v as 8 lowercase hex digits.
func FormatHex32(v uint32) string {
	s := strconv.FormatUint(uint64(v), 16)
	return strings.Repeat("0", 8-len(s)) + s
}
