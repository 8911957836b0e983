/*
Package bloom implements a serializable Bloom filter with pluggable hash
function families.

# What the filter answers

  - Contains == false: the key was never added.
  - Contains == true: the key was probably added. False positives occur at a
    rate that approaches the configured error rate as the filter fills to
    its capacity.

Keys cannot be removed.

# Sizing

For capacity n and error rate p:

	m = ceil(-(n * ln p) / ln(2)^2)   bits
	k = round((m / n) * ln 2)          hash functions, at least 1

NewWithFamily takes k from the family and solves the same relation for m.
Lengths above MaxBits are rejected with a size error.

# Hash families and hashers

A Family maps (function index, maxHash, content hash) to a bit index. Keys
are reduced to a 64 bit content hash by the filter's Hasher first, so any
value type can be stored once it has a stable byte or hash representation.
Families are immutable and may be shared between filters and goroutines. A
Filter itself is not synchronized.

# Text forms

The bit set form is

	<m>:<hex>

with ceil(m/4) hex digits; bit i lives in digit i/4, most significant bit
first. Two bit sets of equal m combine digit by digit, see UniteSerialized.

The full form carries everything needed to rebuild the filter:

	BF1|<hasher>|<family kind>|<family params>|<m>:<hex>

Combining filters only checks that the bit lengths match. Combining filters
whose families differ is allowed and yields a filter whose answers are
meaningless; SameFamily reports the difference for callers that care.
*/
package bloom
