package main

import (
	"fmt"
	"os"
	"strings"

	"opal/bloom"
	"opal/internal/report"
)

// readFilterFile loads a filter saved by "save".
func readFilterFile(path string) (*bloom.Filter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return bloom.NewFromSerialized(strings.TrimSpace(string(data)))
}

func (s *shell) inspectFile(path string) error {
	f, err := readFilterFile(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Inspecting filter: %s\n", path)
	fmt.Fprintln(s.out)
	report.Describe(s.out, f, 0)
	return nil
}
