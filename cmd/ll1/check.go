package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nihei9/ll1/grammar"
	"github.com/nihei9/ll1/grammar/symbol"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "check <table file path>",
		Short:   "Check a parsing table for conflicts, unreachable non-terminals, and left recursion",
		Example: `  ll1 check arith.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCheck,
	}
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	desc, err := readDescription(args[0])
	if err != nil {
		return err
	}
	tab, err := desc.Build()
	if err != nil {
		return err
	}

	ok := writeCheckReport(os.Stdout, tab, desc.StartSymbol())
	if !ok {
		return fmt.Errorf("the parsing table is left-recursive")
	}
	return nil
}

// writeCheckReport writes a summary of a table and warnings. It returns false when a parser using the table can
// expand non-terminals forever.
func writeCheckReport(w io.Writer, tab *grammar.ParsingTable, start symbol.Symbol) bool {
	fmt.Fprintf(w, "%v non-terminals, %v terminals, %v entries\n", len(tab.NonTerminals()), len(tab.Terminals()), tab.EntryCount())

	for _, nonTerm := range grammar.FindUnreachableNonTerminals(tab, start) {
		fmt.Fprintf(w, "warning: %v is unreachable from the start symbol %v\n", nonTerm, start)
	}

	recs := grammar.FindLeftRecursions(tab)
	for _, rec := range recs {
		fmt.Fprintf(w, "error: left recursion on %v: %v\n", rec.Terminal, symbol.Join(rec.Cycle, " → "))
	}
	return len(recs) == 0
}
