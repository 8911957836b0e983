package main

import (
	"fmt"
	"strings"
)

// dumpDigits is the number of hex digits per dump row, 256 bits.
const dumpDigits = 64

// dumpBits prints the bit set in fixed-width rows labelled with the first
// bit of each row, skipping all-zero rows.
func (s *shell) dumpBits() {
	text := s.filter.SerializedBitSet()
	_, hex, _ := strings.Cut(text, ":")

	fmt.Fprintf(s.out, "%-10s %s\n", "BIT", "HEX")
	fmt.Fprintln(s.out)

	skipped := 0
	for d := 0; d < len(hex); d += dumpDigits {
		end := d + dumpDigits
		if end > len(hex) {
			end = len(hex)
		}
		row := hex[d:end]
		if strings.Trim(row, "0") == "" {
			skipped++
			continue
		}
		fmt.Fprintf(s.out, "%-10d %s\n", d*4, row)
	}

	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "Total bits: %d, set: %d, empty rows skipped: %d\n",
		s.filter.BitLen(), s.filter.Count(), skipped)
}
