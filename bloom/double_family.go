package bloom

import "opal/internal/common"

// DoubleHashFamilyKind tags DoubleHashFamily in serialized filters.
const DoubleHashFamilyKind = "double"

// DoubleHashFamily derives function i as h1 + i*h2 (Kirsch-Mitzenmacher),
// with h1 and h2 two independent mixes of the content hash. It spreads keys
// better than DefaultFamily when the content hash is weak in its low bits.
type DoubleHashFamily struct {
	k int
}

var _ SerializableFamily = (*DoubleHashFamily)(nil)

// NewDoubleHashFamily creates a family of k functions.
func NewDoubleHashFamily(k int) (*DoubleHashFamily, error) {
	if k <= 0 {
		return nil, common.Errorf(common.KindConfiguration, "NewDoubleHashFamily", "function count must be positive, got %d", k)
	}
	return &DoubleHashFamily{k: k}, nil
}

// NewDoubleHashFamilyFromParams parses Params output, "<k>".
func NewDoubleHashFamilyFromParams(params string) (*DoubleHashFamily, error) {
	k, err := common.ParseUint("NewDoubleHashFamilyFromParams", "function count", params)
	if err != nil {
		return nil, err
	}
	if k == 0 || k > maxFunctions {
		return nil, common.Errorf(common.KindParse, "NewDoubleHashFamilyFromParams",
			"function count %d out of range [1, %d]", k, maxFunctions)
	}
	return &DoubleHashFamily{k: int(k)}, nil
}

func (f *DoubleHashFamily) FunctionCount() int {
	return f.k
}

func (f *DoubleHashFamily) ComputeHash(index int, maxHash uint64, h uint64) (uint64, error) {
	if err := checkFunctionIndex("ComputeHash", index, f.k); err != nil {
		return 0, err
	}
	h1 := mix64(h)
	// Odd h2 never degenerates to a single bit position.
	h2 := mix64(h^0x9e3779b97f4a7c15) | 1
	return reduce(h1+uint64(index)*h2, maxHash), nil
}

func (f *DoubleHashFamily) Kind() string {
	return DoubleHashFamilyKind
}

func (f *DoubleHashFamily) Params() string {
	return common.FormatUint(uint64(f.k))
}

// mix64 is the murmur3 64 bit finalizer.
func mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}
