package bitvector

// BitVector is a fixed-length sequence of bits. It is not safe for
// concurrent mutation; callers synchronize externally.
type BitVector interface {
	// Len returns the number of bits.
	Len() uint64

	// Set sets bit i to 1.
	Set(i uint64) error

	// Get reports whether bit i is set.
	Get(i uint64) (bool, error)

	// Or sets every bit that is set in other. Lengths must match.
	Or(other BitVector) error

	// And clears every bit that is clear in other. Lengths must match.
	And(other BitVector) error

	// Count returns the number of set bits.
	Count() uint64

	// IsEmpty reports whether no bit is set.
	IsEmpty() bool

	// Clear resets every bit to 0.
	Clear()

	// Clone returns an independent copy.
	Clone() BitVector

	// Equal reports whether other has the same length and bits.
	Equal(other BitVector) bool

	// Hex returns the ceil(Len/4) digit hex encoding, see FromHex.
	Hex() string
}
