package main

import (
	"fmt"
	"math/rand"
	"time"

	"opal/internal/common"
)

var seedWords = []string{
	"apple", "banana", "cherry", "durian", "elderberry", "fig", "grapefruit",
	"honeydew", "imbe", "jackfruit", "kiwi", "lime", "mango", "nectarine",
	"orange", "peach", "quince", "raspberry", "strawberry", "tangerine",
	"ugni", "voavanga", "watermelon", "ximenia", "yuzu", "zarzamora",
}

// seedKey is the key that seed adds for word at index.
func seedKey(word string, index int) []byte {
	return []byte(fmt.Sprintf("%s%d", word, index))
}

// runSeed adds len(seedWords)*x generated keys in one AddAll, continuing
// the numbering where the previous seed stopped.
func (s *shell) runSeed(x int) error {
	start := time.Now()
	startIndex := s.seedIndex

	// Randomize the order of fruits for more realistic workload
	shuffled := make([]string, len(seedWords))
	copy(shuffled, seedWords)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	keys := make([][]byte, 0, x*len(shuffled))
	for i := 0; i < x; i++ {
		for _, word := range shuffled {
			keys = append(keys, seedKey(word, s.seedIndex+i))
		}
	}
	if err := s.filter.AddAll(keys); err != nil {
		return err
	}
	s.seedIndex += x
	s.added += uint64(len(keys))

	common.LogDuration(start, "seeded %d keys (%d * %d, index %d-%d)",
		len(keys), len(seedWords), x, startIndex, s.seedIndex-1)
	fmt.Fprintf(s.out, "seeded %d keys\n", len(keys))
	return nil
}
