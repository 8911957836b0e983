package bloom

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"opal/internal/common"
)

// Family is a set of FunctionCount independent hash functions.
//
// ComputeHash maps the content hash h through function index to a value in
// [0, maxHash]. It must be pure: the same triple always yields the same
// result and concurrent calls need no synchronization.
type Family interface {
	FunctionCount() int
	ComputeHash(index int, maxHash uint64, h uint64) (uint64, error)
}

// SerializableFamily is a Family that can be written into the full
// serialized form and rebuilt by the decoder registered for its Kind.
type SerializableFamily interface {
	Family
	// Kind is the registry tag, [a-z0-9-]+.
	Kind() string
	// Params is the text the registered decoder rebuilds the family from.
	// It never contains '|'.
	Params() string
}

// FamilyDecoder rebuilds a family from its Params text.
type FamilyDecoder func(params string) (SerializableFamily, error)

var (
	familiesMu sync.RWMutex
	families   = map[string]FamilyDecoder{}
)

func init() {
	RegisterFamily(DefaultFamilyKind, func(params string) (SerializableFamily, error) {
		return NewDefaultFamilyFromParams(params)
	})
	RegisterFamily(DoubleHashFamilyKind, func(params string) (SerializableFamily, error) {
		return NewDoubleHashFamilyFromParams(params)
	})
}

// RegisterFamily makes a family kind decodable by NewFromSerialized.
// It panics if kind is invalid, dec is nil or kind is already registered.
func RegisterFamily(kind string, dec FamilyDecoder) {
	if !validTag(kind) {
		panic("bloom: invalid family kind " + kind)
	}
	if dec == nil {
		panic("bloom: RegisterFamily decoder is nil")
	}
	familiesMu.Lock()
	defer familiesMu.Unlock()
	if _, dup := families[kind]; dup {
		panic("bloom: RegisterFamily called twice for " + kind)
	}
	families[kind] = dec
}

// DecodeFamily rebuilds a family of the given kind from its params.
func DecodeFamily(kind, params string) (SerializableFamily, error) {
	familiesMu.RLock()
	dec, ok := families[kind]
	familiesMu.RUnlock()
	if !ok {
		return nil, common.Errorf(common.KindParse, "DecodeFamily", "unknown family kind %q", kind)
	}
	f, err := dec(params)
	if err != nil {
		return nil, err
	}
	if f.Kind() != kind {
		return nil, common.Errorf(common.KindParse, "DecodeFamily",
			"decoder for %q produced kind %q", kind, f.Kind())
	}
	return f, nil
}

// FamilyKinds lists the registered family kinds in sorted order.
func FamilyKinds() []string {
	familiesMu.RLock()
	defer familiesMu.RUnlock()
	kinds := make([]string, 0, len(families))
	for kind := range families {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// NewFamily builds a registered built-in family by kind with k functions.
func NewFamily(kind string, k int) (SerializableFamily, error) {
	switch kind {
	case DefaultFamilyKind:
		return NewDefaultFamily(k)
	case DoubleHashFamilyKind:
		return NewDoubleHashFamily(k)
	}
	return nil, common.Errorf(common.KindConfiguration, "NewFamily", "unknown family kind %q", kind)
}

func encodeFamily(op string, f Family) (kind, params string, err error) {
	sf, ok := f.(SerializableFamily)
	if !ok {
		return "", "", common.Errorf(common.KindConfiguration, op, "family %T is not serializable", f)
	}
	kind, params = sf.Kind(), sf.Params()
	if !validTag(kind) || strings.ContainsRune(params, '|') {
		return "", "", common.Errorf(common.KindConfiguration, op, "family %T has invalid kind or params", f)
	}
	familiesMu.RLock()
	_, registered := families[kind]
	familiesMu.RUnlock()
	if !registered {
		return "", "", common.Errorf(common.KindConfiguration, op, "family kind %q is not registered", kind)
	}
	return kind, params, nil
}

// SameFamily reports whether a and b are known to compute identical hashes:
// the same instance, or serializable families with equal kind and params.
func SameFamily(a, b Family) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.FunctionCount() != b.FunctionCount() {
		return false
	}
	if samePointer(a, b) {
		return true
	}
	sa, okA := a.(SerializableFamily)
	sb, okB := b.(SerializableFamily)
	if !okA || !okB {
		return false
	}
	return sa.Kind() == sb.Kind() && sa.Params() == sb.Params()
}

// samePointer reports whether a and b are the same pointer. Other dynamic
// types are never compared with ==, which panics on uncomparable values.
func samePointer(a, b interface{}) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != reflect.Ptr || vb.Kind() != reflect.Ptr || va.Type() != vb.Type() {
		return false
	}
	return va.Pointer() == vb.Pointer()
}

func checkFunctionIndex(op string, index, count int) error {
	if index < 0 || index >= count {
		return common.Errorf(common.KindIndex, op, "function index %d out of range [0, %d)", index, count)
	}
	return nil
}

// reduce maps x into [0, maxHash] without overflowing when maxHash is the
// largest uint64.
func reduce(x, maxHash uint64) uint64 {
	if maxHash == ^uint64(0) {
		return x
	}
	return x % (maxHash + 1)
}
