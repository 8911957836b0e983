package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"opal/bloom"
)

func TestDescribe(t *testing.T) {
	f, err := bloom.New(1000, 0.01)
	require.NoError(t, err)
	require.NoError(t, f.Add([]byte("apple")))

	var buf bytes.Buffer
	Describe(&buf, f, 1000)
	out := buf.String()

	require.Contains(t, out, "murmur3")
	require.Contains(t, out, "default(7)")
	require.Contains(t, out, "9,586")
	require.Contains(t, out, "1.2 KiB")
	require.Contains(t, out, "seeds")
	require.Contains(t, out, "est. fp rate")
	require.Contains(t, out, "n=1,000")
}

func TestDescribeWithoutEstimate(t *testing.T) {
	family, err := bloom.NewDoubleHashFamily(3)
	require.NoError(t, err)
	f, err := bloom.NewWithBits(64, family)
	require.NoError(t, err)

	var buf bytes.Buffer
	Describe(&buf, f, 0)
	out := buf.String()

	require.Contains(t, out, "double(3)")
	require.NotContains(t, out, "seeds")
	require.NotContains(t, out, "est. fp rate")
	require.Equal(t, uint64(8), SizeBytes(f))
}

func TestFormatSeeds(t *testing.T) {
	require.Equal(t, "00000001 0000000a", formatSeeds([]uint32{1, 10}, 8))
	require.Equal(t, "00000001 ... 2 more", formatSeeds([]uint32{1, 2, 3}, 1))
}
