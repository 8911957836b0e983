package bloom

import (
	"math"
	"testing"

	bbloom "github.com/bits-and-blooms/bloom/v3"
	"github.com/stretchr/testify/require"
)

func TestOptimalParams(t *testing.T) {
	tests := []struct {
		n         int
		p         float64
		expectedK int
		expectedM uint64
	}{
		{100, 0.01, 7, 959},    // 958.5 bits
		{1000, 0.01, 7, 9586},  // 9585.06 bits
		{100, 0.001, 10, 1438}, // 1437.76 bits
		{1, 0.5, 1, 2},
	}

	for _, tt := range tests {
		m, k, err := OptimalParams(tt.n, tt.p)
		require.NoError(t, err)
		require.Equal(t, tt.expectedK, k, "k for n=%d p=%f", tt.n, tt.p)
		require.Equal(t, tt.expectedM, m, "m for n=%d p=%f", tt.n, tt.p)
	}
}

func TestOptimalParamsMatchesReferenceEstimate(t *testing.T) {
	for _, n := range []int{1, 10, 1000, 123457} {
		for _, p := range []float64{0.3, 0.01, 0.0001} {
			m, _, err := OptimalParams(n, p)
			require.NoError(t, err)
			refM, _ := bbloom.EstimateParameters(uint(n), p)
			require.InDelta(t, float64(refM), float64(m), 1, "n=%d p=%v", n, p)
		}
	}
}

func TestOptimalParamsRejects(t *testing.T) {
	for _, n := range []int{0, -1, math.MinInt} {
		_, _, err := OptimalParams(n, 0.01)
		require.ErrorIs(t, err, ErrConfiguration, "capacity %d", n)
	}
	for _, p := range []float64{0, 1, -0.1, 1.5, math.NaN(), math.Inf(1)} {
		_, _, err := OptimalParams(100, p)
		require.ErrorIs(t, err, ErrConfiguration, "error rate %v", p)
	}

	_, _, err := OptimalParams(math.MaxInt32, 0.0001)
	require.ErrorIs(t, err, ErrSize)
}

func TestBitsForFunctions(t *testing.T) {
	m, err := BitsForFunctions(100, 7)
	require.NoError(t, err)
	require.Equal(t, uint64(1010), m)

	m, err = BitsForFunctions(1000000, 5)
	require.NoError(t, err)
	require.Equal(t, uint64(7213476), m)

	_, err = BitsForFunctions(math.MaxInt32, 10000)
	require.ErrorIs(t, err, ErrSize)

	_, err = BitsForFunctions(0, 3)
	require.ErrorIs(t, err, ErrConfiguration)
	_, err = BitsForFunctions(10, 0)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestBitsForFunctionsInvertsOptimalParams(t *testing.T) {
	for _, n := range []int{10, 1000, 50000} {
		for _, p := range []float64{0.1, 0.01, 0.001} {
			_, k, err := OptimalParams(n, p)
			require.NoError(t, err)
			m, err := BitsForFunctions(n, k)
			require.NoError(t, err)
			back := int(math.Round(float64(m) / float64(n) * math.Ln2))
			require.Equal(t, k, back, "n=%d p=%v", n, p)
		}
	}
}

func TestEstimateFalsePositiveRate(t *testing.T) {
	m, k, err := OptimalParams(1000, 0.01)
	require.NoError(t, err)
	require.InDelta(t, 0.01, EstimateFalsePositiveRate(m, k, 1000), 0.001)
	require.Equal(t, 0.0, EstimateFalsePositiveRate(m, k, 0))
	require.Equal(t, 1.0, EstimateFalsePositiveRate(0, k, 10))
	require.Equal(t, 1.0, EstimateFalsePositiveRate(m, 0, 10))
}
