package bloom

import (
	"math"

	"opal/internal/bitvector"
	"opal/internal/common"
)

// MaxBits is the largest supported bit vector length.
const MaxBits = bitvector.MaxLen

// maxFunctions bounds the function count accepted from serialized text.
const maxFunctions = 1 << 20

// OptimalParams computes the bit length m and function count k for a filter
// holding capacity keys at errorRate false positives:
//
//	m = ceil(-(capacity * ln(errorRate)) / ln(2)^2)
//	k = round((m / capacity) * ln(2)), at least 1
func OptimalParams(capacity int, errorRate float64) (m uint64, k int, err error) {
	if capacity <= 0 {
		return 0, 0, common.Errorf(common.KindConfiguration, "OptimalParams", "capacity must be positive, got %d", capacity)
	}
	// NaN fails both comparisons.
	if !(errorRate > 0 && errorRate < 1) {
		return 0, 0, common.Errorf(common.KindConfiguration, "OptimalParams", "error rate must be in (0, 1), got %v", errorRate)
	}

	mf := math.Ceil(-(float64(capacity) * math.Log(errorRate)) / (math.Ln2 * math.Ln2))
	if mf > float64(MaxBits) {
		return 0, 0, common.Errorf(common.KindSize, "OptimalParams",
			"capacity %d at error rate %v needs %.0f bits, maximum is %d", capacity, errorRate, mf, MaxBits)
	}
	m = uint64(mf)
	if m == 0 {
		m = 1
	}

	k = int(math.Round(float64(m) / float64(capacity) * math.Ln2))
	if k < 1 {
		k = 1
	}
	return m, k, nil
}

// BitsForFunctions solves the sizing relation for m given k functions:
//
//	m = ceil(capacity * k / ln(2))
func BitsForFunctions(capacity int, k int) (uint64, error) {
	if capacity <= 0 {
		return 0, common.Errorf(common.KindConfiguration, "BitsForFunctions", "capacity must be positive, got %d", capacity)
	}
	if k <= 0 {
		return 0, common.Errorf(common.KindConfiguration, "BitsForFunctions", "function count must be positive, got %d", k)
	}

	mf := math.Ceil(float64(capacity) * float64(k) / math.Ln2)
	if mf > float64(MaxBits) {
		return 0, common.Errorf(common.KindSize, "BitsForFunctions",
			"capacity %d with %d functions needs %.0f bits, maximum is %d", capacity, k, mf, MaxBits)
	}
	return uint64(mf), nil
}

// EstimateFalsePositiveRate returns (1 - e^(-k*n/m))^k, the expected false
// positive rate of an m bit, k function filter after n distinct insertions.
func EstimateFalsePositiveRate(m uint64, k int, n uint64) float64 {
	if m == 0 || k <= 0 {
		return 1
	}
	return math.Pow(1-math.Exp(-float64(k)*float64(n)/float64(m)), float64(k))
}
