package bitvector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"opal/internal/common"
)

func mustNew(t *testing.T, length uint64) BitVector {
	t.Helper()
	b, err := New(length)
	require.NoError(t, err)
	return b
}

func TestNewBitVector(t *testing.T) {
	tests := []struct {
		length    uint64
		hexDigits int
	}{
		{1, 1},
		{4, 1},
		{5, 2},
		{8, 2},
		{9, 3},
		{30, 8},
		{64, 16},
		{65, 17},
	}

	for _, tt := range tests {
		b := mustNew(t, tt.length)
		require.Equal(t, tt.length, b.Len())
		require.True(t, b.IsEmpty(), "New(%d) should be empty", tt.length)
		require.Len(t, b.Hex(), tt.hexDigits, "New(%d) hex digits", tt.length)

		for i := uint64(0); i < tt.length; i++ {
			set, err := b.Get(i)
			require.NoError(t, err)
			require.False(t, set, "New(%d): bit %d should be 0", tt.length, i)
		}
	}
}

func TestNewRejectsBadLength(t *testing.T) {
	_, err := New(0)
	require.ErrorIs(t, err, common.ErrConfiguration)

	_, err = New(MaxLen + 1)
	require.ErrorIs(t, err, common.ErrSize)
}

func TestSetAndGet(t *testing.T) {
	b := mustNew(t, 64)

	positions := map[uint64]struct{}{
		0: {}, 1: {}, 7: {}, 8: {}, 15: {}, 16: {}, 31: {}, 32: {}, 63: {},
	}
	for pos := range positions {
		require.NoError(t, b.Set(pos))
	}

	for i := uint64(0); i < 64; i++ {
		_, shouldBeSet := positions[i]
		set, err := b.Get(i)
		require.NoError(t, err)
		require.Equal(t, shouldBeSet, set, "bit %d set status", i)
	}
	require.Equal(t, uint64(len(positions)), b.Count())
}

func TestIdempotent(t *testing.T) {
	b := mustNew(t, 64)

	require.NoError(t, b.Set(42))
	require.NoError(t, b.Set(42))
	require.NoError(t, b.Set(42))

	require.Equal(t, uint64(1), b.Count())
	set, err := b.Get(42)
	require.NoError(t, err)
	require.True(t, set)

	b.Clear()
	require.True(t, b.IsEmpty())
}

func TestBoundsChecking(t *testing.T) {
	b := mustNew(t, 64)

	err := b.Set(64)
	require.ErrorIs(t, err, common.ErrIndex)

	_, err = b.Get(64)
	require.ErrorIs(t, err, common.ErrIndex)

	_, err = b.Get(1 << 40)
	require.ErrorIs(t, err, common.ErrIndex)
	require.True(t, b.IsEmpty())
}

func TestOrAnd(t *testing.T) {
	a := mustNew(t, 16)
	b := mustNew(t, 16)
	for _, i := range []uint64{0, 3, 9} {
		require.NoError(t, a.Set(i))
	}
	for _, i := range []uint64{3, 9, 15} {
		require.NoError(t, b.Set(i))
	}

	union := a.Clone()
	require.NoError(t, union.Or(b))
	require.Equal(t, uint64(4), union.Count())

	inter := a.Clone()
	require.NoError(t, inter.And(b))
	require.Equal(t, uint64(2), inter.Count())
	for _, i := range []uint64{3, 9} {
		set, err := inter.Get(i)
		require.NoError(t, err)
		require.True(t, set)
	}

	// Operands are untouched by the clones' mutation.
	require.Equal(t, uint64(3), a.Count())
	require.Equal(t, uint64(3), b.Count())
}

func TestOrAndRejectLengthMismatch(t *testing.T) {
	a := mustNew(t, 16)
	require.NoError(t, a.Set(1))
	b := mustNew(t, 17)
	require.NoError(t, b.Set(2))

	require.ErrorIs(t, a.Or(b), common.ErrIncompatibleOperand)
	require.ErrorIs(t, a.And(b), common.ErrIncompatibleOperand)
	require.ErrorIs(t, a.Or(nil), common.ErrIncompatibleOperand)

	require.Equal(t, "4000", a.Hex())
	require.Equal(t, "20000", b.Hex())
}

// sliceVector is a minimal foreign BitVector used to exercise the
// conversion path in Or/And/Equal.
type sliceVector struct{ bits []bool }

func (s *sliceVector) Len() uint64 { return uint64(len(s.bits)) }
func (s *sliceVector) Set(i uint64) error {
	s.bits[i] = true
	return nil
}
func (s *sliceVector) Get(i uint64) (bool, error) { return s.bits[i], nil }
func (s *sliceVector) Or(BitVector) error         { return nil }
func (s *sliceVector) And(BitVector) error        { return nil }
func (s *sliceVector) Count() uint64              { return 0 }
func (s *sliceVector) IsEmpty() bool              { return false }
func (s *sliceVector) Clear()                     {}
func (s *sliceVector) Clone() BitVector           { return s }
func (s *sliceVector) Equal(BitVector) bool       { return false }
func (s *sliceVector) Hex() string {
	b, _ := New(s.Len())
	for i, set := range s.bits {
		if set {
			_ = b.Set(uint64(i))
		}
	}
	return b.Hex()
}

func TestOrWithForeignImplementation(t *testing.T) {
	a := mustNew(t, 8)
	require.NoError(t, a.Set(0))
	foreign := &sliceVector{bits: make([]bool, 8)}
	foreign.bits[7] = true

	require.NoError(t, a.Or(foreign))
	require.Equal(t, "81", a.Hex())
	require.False(t, a.Equal(foreign))

	require.NoError(t, a.And(foreign))
	require.Equal(t, "01", a.Hex())
	require.True(t, a.Equal(foreign))
}

func TestCloneAndEqual(t *testing.T) {
	a := mustNew(t, 100)
	require.NoError(t, a.Set(99))
	c := a.Clone()
	require.True(t, a.Equal(c))

	require.NoError(t, c.Set(0))
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(mustNew(t, 99)))
	require.False(t, a.Equal(nil))
}
