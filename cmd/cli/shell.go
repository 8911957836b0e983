package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"opal/bloom"
	"opal/internal/common"
	"opal/internal/config"
	"opal/internal/report"
)

const usage = `commands:
  new [capacity [error-rate]]   replace the filter with an empty one
  add <key...>                  add keys, all or none
  has <key...>                  test keys
  seed <x>                      add 26*x generated keys
  bits                          print <m>:<hex>
  dump                          print non-empty rows of the bit set
  save <file> | load <file>     write or read the self-contained form
  unite <file>                  OR a saved filter into this one
  intersect <file>              AND a saved filter into this one
  inspect <file>                describe a saved filter
  clear                         remove every key
  stats                         describe this filter
  history [n]                   list recent commands
  help | exit`

// shell holds one filter and runs commands against it.
type shell struct {
	cfg     config.Config
	filter  *bloom.Filter
	history *History
	out     io.Writer

	// added counts insertions since the filter was created or loaded,
	// feeding the false positive estimate in stats.
	added     uint64
	seedIndex int
}

func newShell(cfg config.Config, history *History, out io.Writer) (*shell, error) {
	f, err := cfg.NewFilter(0, 0)
	if err != nil {
		return nil, err
	}
	return &shell{cfg: cfg, filter: f, history: history, out: out}, nil
}

// exec runs one command line and reports whether the shell should keep
// reading.
func (s *shell) exec(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	var err error
	switch cmd {
	case "new":
		err = s.cmdNew(args)
	case "add":
		err = s.cmdAdd(args)
	case "has":
		err = s.cmdHas(args)
	case "seed":
		err = s.cmdSeed(args)
	case "bits":
		fmt.Fprintln(s.out, s.filter.SerializedBitSet())
	case "dump":
		s.dumpBits()
	case "save":
		err = s.withFile(cmd, args, s.save)
	case "load":
		err = s.withFile(cmd, args, s.load)
	case "unite":
		err = s.withFile(cmd, args, s.unite)
	case "intersect":
		err = s.withFile(cmd, args, s.intersect)
	case "inspect":
		err = s.withFile(cmd, args, s.inspectFile)
	case "clear":
		s.filter.Clear()
		s.added = 0
		fmt.Fprintln(s.out, "ok")
	case "stats":
		report.Describe(s.out, s.filter, s.added)
	case "history":
		err = s.cmdHistory(args)
	case "help":
		fmt.Fprintln(s.out, usage)
	case "exit", "quit":
		return false
	default:
		fmt.Fprintf(s.out, "unknown command %q, try help\n", cmd)
	}

	if err != nil {
		fmt.Fprintf(s.out, "%s error: %v\n", cmd, err)
	}
	return true
}

func (s *shell) cmdNew(args []string) error {
	if len(args) > 2 {
		return fmt.Errorf("usage: new [capacity [error-rate]]")
	}
	var (
		capacity  int
		errorRate float64
		err       error
	)
	if len(args) > 0 {
		if capacity, err = strconv.Atoi(args[0]); err != nil || capacity <= 0 {
			return fmt.Errorf("capacity must be a positive integer, got %q", args[0])
		}
	}
	if len(args) > 1 {
		if errorRate, err = strconv.ParseFloat(args[1], 64); err != nil {
			return fmt.Errorf("error rate must be a number, got %q", args[1])
		}
		if errorRate <= 0 {
			return fmt.Errorf("error rate must be in (0, 1), got %v", errorRate)
		}
	}

	f, err := s.cfg.NewFilter(capacity, errorRate)
	if err != nil {
		return err
	}
	s.replace(f)
	fmt.Fprintf(s.out, "new filter m=%d k=%d\n", f.BitLen(), f.FunctionCount())
	return nil
}

func (s *shell) cmdAdd(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: add <key...>")
	}
	if err := s.filter.AddAll(keys(args)); err != nil {
		return err
	}
	s.added += uint64(len(args))
	fmt.Fprintf(s.out, "added %d\n", len(args))
	return nil
}

func (s *shell) cmdHas(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: has <key...>")
	}
	for _, key := range args {
		ok, err := s.filter.Contains([]byte(key))
		if err != nil {
			return err
		}
		answer := "no"
		if ok {
			answer = "maybe"
		}
		fmt.Fprintf(s.out, "%s: %s\n", key, answer)
	}
	return nil
}

func (s *shell) cmdSeed(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: seed <x>")
	}
	x, err := strconv.Atoi(args[0])
	if err != nil || x < 1 {
		return fmt.Errorf("x must be a positive integer")
	}
	return s.runSeed(x)
}

func (s *shell) cmdHistory(args []string) error {
	if s.history == nil {
		return nil
	}
	n := 0
	if len(args) == 1 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("usage: history [n]")
		}
	}
	for _, cmd := range s.history.list(n) {
		fmt.Fprintln(s.out, cmd)
	}
	return nil
}

func (s *shell) withFile(cmd string, args []string, fn func(path string) error) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <file>", cmd)
	}
	return fn(args[0])
}

func (s *shell) save(path string) error {
	text, err := s.filter.Serialized()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return err
	}
	common.Logf("saved filter m=%d k=%d to %s", s.filter.BitLen(), s.filter.FunctionCount(), path)
	fmt.Fprintln(s.out, "ok")
	return nil
}

func (s *shell) load(path string) error {
	f, err := readFilterFile(path)
	if err != nil {
		return err
	}
	s.replace(f)
	fmt.Fprintf(s.out, "loaded filter m=%d k=%d\n", f.BitLen(), f.FunctionCount())
	return nil
}

func (s *shell) unite(path string) error {
	other, err := readFilterFile(path)
	if err != nil {
		return err
	}
	if err := s.filter.Unite(other); err != nil {
		return err
	}
	s.added = unitedCount(s.added, s.filter)
	fmt.Fprintln(s.out, "ok")
	return nil
}

// unitedCount is the insertion count used for stats after a union: the
// fill-ratio estimate of the united filter, never less than before.
func unitedCount(before uint64, f *bloom.Filter) uint64 {
	est := f.EstimatedCount()
	if math.IsInf(est, 1) {
		return before + f.BitLen()
	}
	if n := uint64(math.Round(est)); n > before {
		return n
	}
	return before
}

func (s *shell) intersect(path string) error {
	other, err := readFilterFile(path)
	if err != nil {
		return err
	}
	if err := s.filter.Intersect(other); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "ok")
	return nil
}

func (s *shell) replace(f *bloom.Filter) {
	s.filter = f
	s.added = 0
	s.seedIndex = 0
}

func keys(args []string) [][]byte {
	out := make([][]byte, len(args))
	for i, a := range args {
		out[i] = []byte(a)
	}
	return out
}
