package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nihei9/ll1/driver/parser"
	"github.com/nihei9/ll1/tester"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "test <table file path> <test file path>|<test directory path>",
		Short:   "Test a parsing table",
		Example: `  ll1 test arith.yaml test`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	desc, err := readDescription(args[0])
	if err != nil {
		return fmt.Errorf("cannot read a table description: %w", err)
	}
	tab, err := desc.Build()
	if err != nil {
		return err
	}
	tok, err := desc.Tokenizer()
	if err != nil {
		return err
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[1])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("cannot run test")
		}
	}

	t := &tester.Tester{
		Table:     tab,
		Start:     desc.StartSymbol(),
		Tokenizer: tok,
		Options: []parser.ParserOption{
			parser.Logger(logger),
		},
		Cases: cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("test failed")
	}
	return nil
}
