package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"opal/internal/common"
	"opal/internal/config"
)

var (
	configPath string
	capacity   int
	errorRate  float64
	hasherName string
	familyKind string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:          "opal",
	Short:        "opal - interactive bloom filter shell",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		setupLogging(cfg.Quiet)
		return runShell(cfg)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file")
	flags.IntVar(&capacity, "capacity", 0, "expected number of keys")
	flags.Float64Var(&errorRate, "error-rate", 0, "target false positive rate")
	flags.StringVar(&hasherName, "hasher", "", "key hasher (murmur3, xxhash)")
	flags.StringVar(&familyKind, "family", "", "hash function family (default, double)")
	flags.BoolVarP(&quiet, "quiet", "q", false, "disable logging")
}

// loadConfig reads the config file, if any, and applies explicitly set flags
// over it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("capacity") {
		cfg.Capacity = capacity
	}
	if flags.Changed("error-rate") {
		cfg.ErrorRate = errorRate
		cfg.Functions = 0
	}
	if flags.Changed("hasher") {
		cfg.Hasher = hasherName
	}
	if flags.Changed("family") {
		cfg.Family = familyKind
	}
	if flags.Changed("quiet") {
		cfg.Quiet = quiet
	}
	return cfg, cfg.Validate()
}

func setupLogging(quiet bool) {
	if quiet {
		common.LoggingEnabled = false
		return
	}
	logger, err := common.NewConsoleLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		return
	}
	common.SetLogger(logger)
}

func runShell(cfg config.Config) error {
	history, err := newHistory(cfg.HistoryFile)
	if err != nil {
		common.Logf("ignoring history file %s: %v", cfg.HistoryFile, err)
		history, _ = newHistory("")
	}

	sh, err := newShell(cfg, history, os.Stdout)
	if err != nil {
		return err
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeCommand)
	history.attach(line)

	fmt.Println("opal - bloom filter shell")
	fmt.Printf("config: %s\n", cfg)
	fmt.Printf("filter: m=%d k=%d\n", sh.filter.BitLen(), sh.filter.FunctionCount())
	fmt.Println("type help for commands")

	for {
		input, err := line.Prompt("> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "input error: %v\n", err)
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if history.add(input) {
			line.AppendHistory(input)
		}
		if !sh.exec(input) {
			break
		}
	}

	if err := history.save(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to save history: %v\n", err)
	}
	return nil
}

var commandNames = []string{
	"add", "bits", "clear", "dump", "exit", "has", "help", "history",
	"inspect", "intersect", "load", "new", "save", "seed", "stats", "unite",
}

func completeCommand(line string) []string {
	var out []string
	for _, name := range commandNames {
		if strings.HasPrefix(name, strings.ToLower(line)) {
			out = append(out, name)
		}
	}
	return out
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
