package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"opal/bloom"
)

// Describe writes a human-readable summary of f. A positive n adds the
// estimated false positive rate after n distinct insertions.
func Describe(w io.Writer, f *bloom.Filter, n uint64) {
	fmt.Fprintf(w, "%-16s %s\n", "format", bloom.FormatV1)
	fmt.Fprintf(w, "%-16s %s\n", "hasher", f.Hasher().Name())
	fmt.Fprintf(w, "%-16s %s\n", "family", FamilyName(f.Family()))
	if d, ok := f.Family().(*bloom.DefaultFamily); ok {
		fmt.Fprintf(w, "%-16s %s\n", "seeds", formatSeeds(d.Seeds(), 8))
	}
	fmt.Fprintf(w, "%-16s %s (%s)\n", "bits (m)", humanize.Comma(int64(f.BitLen())), humanize.IBytes(SizeBytes(f)))
	fmt.Fprintf(w, "%-16s %d\n", "functions (k)", f.FunctionCount())
	fmt.Fprintf(w, "%-16s %s\n", "set bits", humanize.Comma(int64(f.Count())))
	fmt.Fprintf(w, "%-16s %s%%\n", "fill ratio", humanize.FtoaWithDigits(f.FillRatio()*100, 3))
	if n > 0 {
		fmt.Fprintf(w, "%-16s %s at n=%s\n", "est. fp rate",
			humanize.FtoaWithDigits(f.EstimatedFalsePositiveRate(n), 6), humanize.Comma(int64(n)))
	}
}

// SizeBytes is the in-memory size of the bit vector, rounded up to a byte.
func SizeBytes(f *bloom.Filter) uint64 {
	return (f.BitLen() + 7) / 8
}

// FamilyName returns "<kind>(<k>)" for serializable families.
func FamilyName(family bloom.Family) string {
	if sf, ok := family.(bloom.SerializableFamily); ok {
		return fmt.Sprintf("%s(%d)", sf.Kind(), sf.FunctionCount())
	}
	return fmt.Sprintf("%T(%d)", family, family.FunctionCount())
}

func formatSeeds(seeds []uint32, max int) string {
	parts := make([]string, 0, max+1)
	for i, s := range seeds {
		if i == max {
			parts = append(parts, fmt.Sprintf("... %d more", len(seeds)-max))
			break
		}
		parts = append(parts, fmt.Sprintf("%08x", s))
	}
	return strings.Join(parts, " ")
}
