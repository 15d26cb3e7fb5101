package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/nihei9/ll1/grammar"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <table file path>",
		Short:   "Print a parsing table as a grid",
		Example: `  ll1 show arith.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	desc, err := readDescription(args[0])
	if err != nil {
		return err
	}
	tab, err := desc.Build()
	if err != nil {
		return err
	}

	if desc.Name != "" {
		fmt.Fprintf(os.Stdout, "%v (start: %v)\n", desc.Name, desc.Start)
	} else {
		fmt.Fprintf(os.Stdout, "start: %v\n", desc.Start)
	}
	return writeTable(os.Stdout, tab)
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	nonTermStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// writeTable writes a grid whose rows are non-terminals and whose columns are look-ahead terminals. A cell holds
// the production registered for the pair; an epsilon production is written as ε.
func writeTable(w io.Writer, tab *grammar.ParsingTable) error {
	terms := tab.Terminals()
	headers := make([]string, 0, len(terms)+1)
	headers = append(headers, "")
	for _, term := range terms {
		headers = append(headers, term.String())
	}

	var rows [][]string
	for _, nonTerm := range tab.NonTerminals() {
		row := make([]string, 0, len(terms)+1)
		row = append(row, nonTerm.String())
		for _, term := range terms {
			prod, err := tab.Lookup(nonTerm, term)
			if err != nil {
				row = append(row, "")
				continue
			}
			row = append(row, prod.String())
		}
		rows = append(rows, row)
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == ltable.HeaderRow:
				return headerStyle
			case col == 0:
				return nonTermStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	_, err := fmt.Fprintln(w, t.String())
	return err
}
