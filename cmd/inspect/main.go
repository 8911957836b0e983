package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"opal/bloom"
	"opal/internal/common"
	"opal/internal/report"
)

var (
	insertions uint64
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:          "opal-inspect [file]",
	Short:        "describe a serialized bloom filter",
	Long:         "Reads a filter in the BF1 form from file, or from stdin when no file or \"-\" is given.",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			if logger, err := common.NewConsoleLogger(true); err == nil {
				common.SetLogger(logger)
			}
		}

		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		f, err := readFilter(path, cmd.InOrStdin())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if path == "-" {
			fmt.Fprintln(out, "Inspecting filter: <stdin>")
		} else {
			fmt.Fprintf(out, "Inspecting filter: %s\n", path)
		}
		fmt.Fprintln(out)
		report.Describe(out, f, insertions)
		return nil
	},
}

func init() {
	rootCmd.Flags().Uint64VarP(&insertions, "n", "n", 0, "estimate the false positive rate after n insertions")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log decoding details")
}

func readFilter(path string, stdin io.Reader) (*bloom.Filter, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return bloom.NewFromSerialized(strings.TrimSpace(string(data)))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
