package bitvector

import (
	"math"

	"github.com/bits-and-blooms/bitset"

	"opal/internal/common"
)

// MaxLen is the largest supported vector length in bits.
const MaxLen uint64 = math.MaxUint32

// bitVectorImpl is a concrete implementation of the BitVector interface.
type bitVectorImpl struct {
	bits   *bitset.BitSet
	length uint64
}

var _ BitVector = (*bitVectorImpl)(nil)

// New creates a zero-filled vector of length bits.
func New(length uint64) (BitVector, error) {
	if err := checkLen("New", length); err != nil {
		return nil, err
	}
	return &bitVectorImpl{
		bits:   bitset.New(uint(length)),
		length: length,
	}, nil
}

func checkLen(op string, length uint64) error {
	if length == 0 {
		return common.Errorf(common.KindConfiguration, op, "length must be positive")
	}
	if length > MaxLen {
		return common.Errorf(common.KindSize, op, "length %d exceeds maximum %d", length, MaxLen)
	}
	return nil
}

func (b *bitVectorImpl) Len() uint64 {
	return b.length
}

func (b *bitVectorImpl) checkIndex(op string, i uint64) error {
	if i >= b.length {
		return common.Errorf(common.KindIndex, op, "index %d out of range [0, %d)", i, b.length)
	}
	return nil
}

func (b *bitVectorImpl) Set(i uint64) error {
	if err := b.checkIndex("Set", i); err != nil {
		return err
	}
	b.bits.Set(uint(i))
	return nil
}

func (b *bitVectorImpl) Get(i uint64) (bool, error) {
	if err := b.checkIndex("Get", i); err != nil {
		return false, err
	}
	return b.bits.Test(uint(i)), nil
}

// operand returns other's backing set, converting foreign implementations.
func (b *bitVectorImpl) operand(op string, other BitVector) (*bitset.BitSet, error) {
	if other == nil {
		return nil, common.Errorf(common.KindIncompatibleOperand, op, "nil operand")
	}
	if other.Len() != b.length {
		return nil, common.Errorf(common.KindIncompatibleOperand, op,
			"length mismatch: %d != %d", b.length, other.Len())
	}
	if o, ok := other.(*bitVectorImpl); ok {
		return o.bits, nil
	}
	bs := bitset.New(uint(b.length))
	for i := uint64(0); i < b.length; i++ {
		set, err := other.Get(i)
		if err != nil {
			return nil, err
		}
		if set {
			bs.Set(uint(i))
		}
	}
	return bs, nil
}

func (b *bitVectorImpl) Or(other BitVector) error {
	bs, err := b.operand("Or", other)
	if err != nil {
		return err
	}
	b.bits.InPlaceUnion(bs)
	return nil
}

func (b *bitVectorImpl) And(other BitVector) error {
	bs, err := b.operand("And", other)
	if err != nil {
		return err
	}
	b.bits.InPlaceIntersection(bs)
	return nil
}

func (b *bitVectorImpl) Count() uint64 {
	return uint64(b.bits.Count())
}

func (b *bitVectorImpl) IsEmpty() bool {
	return b.bits.None()
}

func (b *bitVectorImpl) Clear() {
	b.bits.ClearAll()
}

func (b *bitVectorImpl) Clone() BitVector {
	return &bitVectorImpl{
		bits:   b.bits.Clone(),
		length: b.length,
	}
}

func (b *bitVectorImpl) Equal(other BitVector) bool {
	if other == nil || other.Len() != b.length {
		return false
	}
	if o, ok := other.(*bitVectorImpl); ok {
		return b.bits.Equal(o.bits)
	}
	return b.Hex() == other.Hex()
}
