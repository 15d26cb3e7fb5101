package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nihei9/ll1/spec/table"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	format   *string
	logLevel *string
}{}

var rootCmd = &cobra.Command{
	Use:   "ll1",
	Short: "Run a table-driven LL(1) parser",
	Long: `ll1 reads a description of an LL(1) parsing table and provides the following features:
- Decides whether a text is derivable from the start symbol.
- Prints the parsing table as a grid.
- Runs test cases against the table.
- Checks the table for conflicts, unreachable non-terminals, and left recursion.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.format = rootCmd.PersistentFlags().String("format", "", "format of a table description: json, yaml, or toml (default: determined by the file extension)")
	rootFlags.logLevel = rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, or error")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

func newLogger() (*slog.Logger, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(*rootFlags.logLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %v", *rootFlags.logLevel)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})), nil
}

func readDescription(path string) (*table.Description, error) {
	if *rootFlags.format == "" {
		return table.ReadFile(path)
	}
	format, err := table.ParseFormat(*rootFlags.format)
	if err != nil {
		return nil, err
	}
	return table.ReadFileAs(path, format)
}
