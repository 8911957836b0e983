package bloom

import (
	"strings"

	"opal/internal/bitvector"
	"opal/internal/common"
)

// FormatV1 tags the full serialized form.
const FormatV1 = "BF1"

const (
	fieldSep   = '|'
	fullFields = 5
)

// SerializedBitSet returns "<m>:<hex>".
func (f *Filter) SerializedBitSet() string {
	return common.FormatUint(f.bits.Len()) + ":" + f.bits.Hex()
}

// Serialized returns the self-contained form
//
//	BF1|<hasher>|<family kind>|<family params>|<m>:<hex>
//
// It fails with a configuration error unless NewFromSerialized can rebuild
// the result: the family must be a SerializableFamily of a registered kind
// and the hasher must be registered under its name.
func (f *Filter) Serialized() (string, error) {
	name, err := encodeHasher("Serialized", f.hasher)
	if err != nil {
		return "", err
	}
	kind, params, err := encodeFamily("Serialized", f.family)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, field := range []string{FormatV1, name, kind, params} {
		sb.WriteString(field)
		sb.WriteByte(fieldSep)
	}
	sb.WriteString(f.SerializedBitSet())
	return sb.String(), nil
}

// NewFromSerialized rebuilds a filter from Serialized output. The hasher
// and family kind must be registered.
func NewFromSerialized(s string) (*Filter, error) {
	const op = "NewFromSerialized"
	fields, err := common.SplitFields(op, s, fieldSep, fullFields)
	if err != nil {
		return nil, err
	}
	if fields[0] != FormatV1 {
		return nil, common.Errorf(common.KindParse, op, "unsupported format %q", fields[0])
	}
	hasher, err := HasherByName(fields[1])
	if err != nil {
		return nil, common.Wrapf(common.KindParse, op, err, "hasher")
	}
	family, err := DecodeFamily(fields[2], fields[3])
	if err != nil {
		return nil, err
	}
	bits, err := parseBitSet(op, fields[4])
	if err != nil {
		return nil, err
	}
	common.Debugf("bloom: decoded %s filter m=%d k=%d", family.Kind(), bits.Len(), family.FunctionCount())
	return &Filter{bits: bits, family: family, hasher: hasher}, nil
}

// splitBitSet splits "<m>:<hex>" and checks the header without decoding
// the body.
func splitBitSet(op, s string) (uint64, string, error) {
	lengthText, body, ok := strings.Cut(s, ":")
	if !ok {
		return 0, "", common.Errorf(common.KindParse, op, "bit set %q has no ':'", truncate(s))
	}
	m, err := common.ParseUint(op, "bit length", lengthText)
	if err != nil {
		return 0, "", err
	}
	if m == 0 || m > MaxBits {
		return 0, "", common.Errorf(common.KindParse, op, "bit length %d out of range [1, %d]", m, MaxBits)
	}
	if want := bitvector.HexLen(m); uint64(len(body)) != want {
		return 0, "", common.Errorf(common.KindParse, op,
			"%d bits need %d hex digits, got %d", m, want, len(body))
	}
	return m, body, nil
}

func parseBitSet(op, s string) (bitvector.BitVector, error) {
	m, body, err := splitBitSet(op, s)
	if err != nil {
		return nil, err
	}
	bits, err := bitvector.FromHex(m, body)
	if err != nil {
		return nil, common.Wrapf(common.KindParse, op, err, "bit set")
	}
	return bits, nil
}

// UniteSerialized ORs two "<m>:<hex>" bit sets digit by digit. The result
// equals SerializedBitSet of the united filters.
func UniteSerialized(a, b string) (string, error) {
	return combineSerialized("UniteSerialized", bitvector.OpOr, a, b)
}

// IntersectSerialized ANDs two "<m>:<hex>" bit sets digit by digit.
func IntersectSerialized(a, b string) (string, error) {
	return combineSerialized("IntersectSerialized", bitvector.OpAnd, a, b)
}

func combineSerialized(op string, bop bitvector.Op, a, b string) (string, error) {
	ma, bodyA, err := splitBitSet(op, a)
	if err != nil {
		return "", err
	}
	mb, bodyB, err := splitBitSet(op, b)
	if err != nil {
		return "", err
	}
	if ma != mb {
		return "", common.Errorf(common.KindIncompatibleOperand, op, "bit length mismatch: %d != %d", ma, mb)
	}
	if err := checkPadding(op, ma, bodyA); err != nil {
		return "", err
	}
	if err := checkPadding(op, mb, bodyB); err != nil {
		return "", err
	}
	body, err := bitvector.CombineHex(bop, bodyA, bodyB)
	if err != nil {
		return "", err
	}
	return common.FormatUint(ma) + ":" + body, nil
}

// checkPadding rejects a final digit with bits set past m, which FromHex
// would also reject.
func checkPadding(op string, m uint64, body string) error {
	used := m % 4
	if used == 0 {
		return nil
	}
	if _, err := bitvector.FromHex(used, body[len(body)-1:]); err != nil {
		return common.Wrapf(common.KindParse, op, err, "final digit")
	}
	return nil
}

func truncate(s string) string {
	const max = 32
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
