package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/nihei9/ll1/driver/lexer"
	"github.com/nihei9/ll1/driver/parser"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source      *string
	input       *string
	maxSteps    *int
	maxStack    *int
	maxInput    *int
	showSymbols *bool
}{}

var errRejected = errors.New("the input was rejected")

func init() {
	cmd := &cobra.Command{
		Use:   "parse <table file path>",
		Short: "Decide whether a text is derivable from the start symbol",
		Example: `  cat src | ll1 parse arith.yaml
  ll1 parse arith.yaml -i '(i+i)*i'`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.input = cmd.Flags().StringP("input", "i", "", "source text given directly; it takes precedence over --source")
	parseFlags.maxSteps = cmd.Flags().Int("max-steps", 0, "maximum number of parser steps (default: unlimited)")
	parseFlags.maxStack = cmd.Flags().Int("max-stack", 0, "maximum depth of the parse stack (default: unlimited)")
	parseFlags.maxInput = cmd.Flags().Int("max-input", 0, "maximum number of input symbols (default: unlimited)")
	parseFlags.showSymbols = cmd.Flags().Bool("show-symbols", false, "print the terminal symbols the parser reads")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	desc, err := readDescription(args[0])
	if err != nil {
		return err
	}
	tab, err := desc.Build()
	if err != nil {
		return err
	}
	tok, err := desc.Tokenizer()
	if err != nil {
		return err
	}

	var p *parser.Parser
	{
		opts := []parser.ParserOption{
			parser.MaxSteps(*parseFlags.maxSteps),
			parser.MaxStackDepth(*parseFlags.maxStack),
			parser.MaxInputLength(*parseFlags.maxInput),
			parser.Logger(logger),
		}
		p, err = parser.NewParser(tab, desc.StartSymbol(), opts...)
		if err != nil {
			return err
		}
	}

	var src io.Reader
	switch {
	case cmd.Flags().Changed("input"):
		src = strings.NewReader(*parseFlags.input)
	case *parseFlags.source != "":
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("cannot open the source file %s: %w", *parseFlags.source, err)
		}
		defer f.Close()
		src = f
	default:
		src = os.Stdin
	}

	toks, err := tok.Tokenize(src)
	if err != nil {
		return err
	}
	if *parseFlags.showSymbols {
		for _, t := range toks {
			fmt.Fprintf(os.Stdout, "%v:%v: %v %q\n", t.Row+1, t.Col+1, t.Symbol, t.Text)
		}
	}

	logger.Info("parse", "table", args[0], "symbols", len(toks))
	o := p.Parse(lexer.Symbols(toks))
	if o.Accepted {
		fmt.Fprintln(os.Stdout, "accepted")
		return nil
	}

	fmt.Fprintln(os.Stderr, formatRejection(toks, o))
	if parser.IsDefect(o.Error) {
		fmt.Fprintln(os.Stderr, "the parsing table may be left-recursive or broken; try `ll1 check`")
	}
	return errRejected
}

// formatRejection describes a rejection in the form `<row>:<col>: <error kind>: <message>`. A position past the
// last token points just after the token.
func formatRejection(toks []*lexer.Token, o *parser.Outcome) string {
	row, col := locate(toks, o.Position)
	return fmt.Sprintf("%v:%v: %v: %v", row+1, col+1, parser.ErrorKind(o.Error), o.Error)
}

func locate(toks []*lexer.Token, pos int) (int, int) {
	if pos < 0 || len(toks) == 0 {
		return 0, 0
	}
	if pos < len(toks) {
		return toks[pos].Row, toks[pos].Col
	}
	last := toks[len(toks)-1]
	return last.Row, last.Col + utf8.RuneCountInString(last.Text)
}
