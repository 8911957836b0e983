package bloom

import (
	"math"

	"opal/internal/bitvector"
	"opal/internal/common"
)

// Filter is a Bloom filter over a fixed-length bit vector.
//
// A Filter is not safe for concurrent use when any goroutine mutates it
// (Add, Unite, Intersect, Clear); callers provide their own locking.
type Filter struct {
	bits   bitvector.BitVector
	family Family
	hasher Hasher
}

// New creates a filter sized for capacity keys at errorRate false
// positives, hashed by a DefaultFamily with the optimal function count.
// WithFamily replaces that family while keeping the computed bit length.
func New(capacity int, errorRate float64, opts ...Option) (*Filter, error) {
	m, k, err := OptimalParams(capacity, errorRate)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	family := o.Family
	if family == nil {
		if family, err = NewDefaultFamily(k); err != nil {
			return nil, err
		}
	}
	common.Debugf("bloom: sized capacity=%d errorRate=%v m=%d k=%d", capacity, errorRate, m, k)
	return newFilter("New", m, family, o)
}

// NewWithFamily creates a filter for capacity keys hashed by family, whose
// function count fixes the bit length, see BitsForFunctions.
func NewWithFamily(capacity int, family Family, opts ...Option) (*Filter, error) {
	if err := checkFamily("NewWithFamily", family); err != nil {
		return nil, err
	}
	m, err := BitsForFunctions(capacity, family.FunctionCount())
	if err != nil {
		return nil, err
	}
	common.Debugf("bloom: sized capacity=%d k=%d m=%d", capacity, family.FunctionCount(), m)
	return newFilter("NewWithFamily", m, family, buildOptions(opts))
}

// NewWithBits creates an empty filter of exactly m bits.
func NewWithBits(m uint64, family Family, opts ...Option) (*Filter, error) {
	return newFilter("NewWithBits", m, family, buildOptions(opts))
}

// NewFromBitSet rebuilds a filter from SerializedBitSet output and the
// family it was built with.
func NewFromBitSet(serializedBitSet string, family Family, opts ...Option) (*Filter, error) {
	if err := checkFamily("NewFromBitSet", family); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	if err := checkHasher("NewFromBitSet", o.Hasher); err != nil {
		return nil, err
	}
	bits, err := parseBitSet("NewFromBitSet", serializedBitSet)
	if err != nil {
		return nil, err
	}
	return &Filter{bits: bits, family: family, hasher: o.Hasher}, nil
}

func newFilter(op string, m uint64, family Family, o Options) (*Filter, error) {
	if err := checkFamily(op, family); err != nil {
		return nil, err
	}
	if err := checkHasher(op, o.Hasher); err != nil {
		return nil, err
	}
	bits, err := bitvector.New(m)
	if err != nil {
		return nil, err
	}
	return &Filter{bits: bits, family: family, hasher: o.Hasher}, nil
}

func checkFamily(op string, family Family) error {
	if family == nil {
		return common.Errorf(common.KindConfiguration, op, "hash family is nil")
	}
	if family.FunctionCount() <= 0 {
		return common.Errorf(common.KindConfiguration, op, "hash family has %d functions", family.FunctionCount())
	}
	return nil
}

func checkHasher(op string, h Hasher) error {
	if h == nil {
		return common.Errorf(common.KindConfiguration, op, "hasher is nil")
	}
	return nil
}

// indexes computes the k bit positions of content hash h, validating each
// against the vector length.
func (f *Filter) indexes(op string, h uint64, dst []uint64) ([]uint64, error) {
	maxHash := f.bits.Len() - 1
	k := f.family.FunctionCount()
	for i := 0; i < k; i++ {
		idx, err := f.family.ComputeHash(i, maxHash, h)
		if err != nil {
			return nil, err
		}
		if idx > maxHash {
			return nil, common.Errorf(common.KindIndex, op,
				"family returned index %d for function %d, maximum is %d", idx, i, maxHash)
		}
		dst = append(dst, idx)
	}
	return dst, nil
}

// Add inserts key.
func (f *Filter) Add(key []byte) error {
	return f.AddHash(f.hasher.Sum64(key))
}

// AddHash inserts a key by its precomputed content hash.
func (f *Filter) AddHash(h uint64) error {
	idx, err := f.indexes("Add", h, make([]uint64, 0, f.family.FunctionCount()))
	if err != nil {
		return err
	}
	return f.setAll(idx)
}

// AddAll inserts every key, or none of them if any fails.
func (f *Filter) AddAll(keys [][]byte) error {
	idx := make([]uint64, 0, len(keys)*f.family.FunctionCount())
	var err error
	for _, key := range keys {
		if idx, err = f.indexes("AddAll", f.hasher.Sum64(key), idx); err != nil {
			return err
		}
	}
	return f.setAll(idx)
}

func (f *Filter) setAll(idx []uint64) error {
	for _, i := range idx {
		if err := f.bits.Set(i); err != nil {
			return err
		}
	}
	return nil
}

// Contains reports whether key was probably added. A false result is exact.
func (f *Filter) Contains(key []byte) (bool, error) {
	return f.ContainsHash(f.hasher.Sum64(key))
}

// ContainsHash is Contains for a precomputed content hash.
func (f *Filter) ContainsHash(h uint64) (bool, error) {
	maxHash := f.bits.Len() - 1
	for i := 0; i < f.family.FunctionCount(); i++ {
		idx, err := f.family.ComputeHash(i, maxHash, h)
		if err != nil {
			return false, err
		}
		set, err := f.bits.Get(idx)
		if err != nil {
			return false, err
		}
		if !set {
			return false, nil
		}
	}
	return true, nil
}

// ContainsAll reports whether every key was probably added. It stops at the
// first key that is definitely absent. An empty keys is trivially true.
func (f *Filter) ContainsAll(keys [][]byte) (bool, error) {
	for _, key := range keys {
		ok, err := f.Contains(key)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Unite ORs other's bits into f. Afterwards f reports every key either
// filter reported. Only the bit lengths are checked; see SameFamily.
func (f *Filter) Unite(other *Filter) error {
	if err := f.checkOperand("Unite", other); err != nil {
		return err
	}
	return f.bits.Or(other.bits)
}

// Intersect ANDs other's bits into f. A key added to both filters stays
// reported when both use the same family; with different families its
// bit positions may differ and it can be lost.
func (f *Filter) Intersect(other *Filter) error {
	if err := f.checkOperand("Intersect", other); err != nil {
		return err
	}
	return f.bits.And(other.bits)
}

func (f *Filter) checkOperand(op string, other *Filter) error {
	if other == nil {
		return common.Errorf(common.KindIncompatibleOperand, op, "nil filter")
	}
	if f.bits.Len() != other.bits.Len() {
		return common.Errorf(common.KindIncompatibleOperand, op,
			"bit length mismatch: %d != %d", f.bits.Len(), other.bits.Len())
	}
	if !SameFamily(f.family, other.family) {
		common.Debugf("bloom: %s of filters with different hash families", op)
	}
	return nil
}

// IsEmpty reports whether nothing has been added.
func (f *Filter) IsEmpty() bool {
	return f.bits.IsEmpty()
}

// Clear removes every key.
func (f *Filter) Clear() {
	f.bits.Clear()
}

// BitLen returns m, the number of bits.
func (f *Filter) BitLen() uint64 {
	return f.bits.Len()
}

// FunctionCount returns k, the number of hash functions.
func (f *Filter) FunctionCount() int {
	return f.family.FunctionCount()
}

func (f *Filter) Family() Family {
	return f.family
}

func (f *Filter) Hasher() Hasher {
	return f.hasher
}

// Count returns the number of set bits.
func (f *Filter) Count() uint64 {
	return f.bits.Count()
}

// FillRatio returns the fraction of set bits.
func (f *Filter) FillRatio() float64 {
	return float64(f.bits.Count()) / float64(f.bits.Len())
}

// EstimatedFalsePositiveRate is EstimateFalsePositiveRate for this filter
// after n distinct insertions.
func (f *Filter) EstimatedFalsePositiveRate(n uint64) float64 {
	return EstimateFalsePositiveRate(f.bits.Len(), f.family.FunctionCount(), n)
}

// EstimatedCount approximates the number of distinct keys added from the
// fill ratio: -(m/k) * ln(1 - set/m). A saturated filter returns +Inf.
func (f *Filter) EstimatedCount() float64 {
	m := float64(f.bits.Len())
	set := float64(f.bits.Count())
	if set == m {
		return math.Inf(1)
	}
	return -m / float64(f.family.FunctionCount()) * math.Log(1-set/m)
}

// Clone returns a filter with a copy of f's bits sharing f's family.
func (f *Filter) Clone() *Filter {
	return &Filter{bits: f.bits.Clone(), family: f.family, hasher: f.hasher}
}

// Equal reports whether other has the same bits, hasher and family.
func (f *Filter) Equal(other *Filter) bool {
	if other == nil {
		return false
	}
	return f.bits.Equal(other.bits) &&
		f.hasher.Name() == other.hasher.Name() &&
		SameFamily(f.family, other.family)
}
