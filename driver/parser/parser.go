package parser

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nihei9/ll1/grammar"
	"github.com/nihei9/ll1/grammar/symbol"
)

// Outcome is a result of parsing. When an input is rejected, `Error` describes why, and `Position` is the input
// position where the parser stopped.
type Outcome struct {
	Accepted bool
	Error    error
	Position int
}

func accept(pos int) *Outcome {
	return &Outcome{
		Accepted: true,
		Position: pos,
	}
}

func reject(err error, pos int) *Outcome {
	return &Outcome{
		Error:    err,
		Position: pos,
	}
}

// ParserOption configures a Parser. NewParser applies options in order and fails when one of them returns an error.
type ParserOption func(p *Parser) error

// MaxInputLength limits the number of input symbols. 0 means no limit.
func MaxInputLength(n int) ParserOption {
	return func(p *Parser) error {
		if n < 0 {
			return fmt.Errorf("the maximum input length must be 0 or more: %v", n)
		}
		p.maxInputLen = n
		return nil
	}
}

// MaxStackDepth limits the number of symbols on the stack, including the bottom marker. 0 means no limit.
func MaxStackDepth(n int) ParserOption {
	return func(p *Parser) error {
		if n < 0 {
			return fmt.Errorf("the maximum stack depth must be 0 or more: %v", n)
		}
		p.maxStackDepth = n
		return nil
	}
}

// MaxSteps limits the number of steps the parser takes for an input. 0 means no limit; the parser still stops
// when it expands a non-terminal again without consuming an input.
func MaxSteps(n int) ParserOption {
	return func(p *Parser) error {
		if n < 0 {
			return fmt.Errorf("the maximum step count must be 0 or more: %v", n)
		}
		p.maxSteps = n
		return nil
	}
}

// Logger makes the parser trace each step at the debug level.
func Logger(logger *slog.Logger) ParserOption {
	return func(p *Parser) error {
		if logger == nil {
			return fmt.Errorf("a logger must not be nil")
		}
		p.logger = logger
		return nil
	}
}

// Parser is an LL(1) predictive parser. A Parser has no state specific to an input, so it can parse any number of
// inputs at the same time.
type Parser struct {
	tab           *grammar.ParsingTable
	start         symbol.Symbol
	maxInputLen   int
	maxStackDepth int
	maxSteps      int
	logger        *slog.Logger
}

// NewParser returns a parser deriving inputs from `start` using `tab`. `start` must be a non-terminal of the table.
func NewParser(tab *grammar.ParsingTable, start symbol.Symbol, opts ...ParserOption) (*Parser, error) {
	if tab == nil {
		return nil, fmt.Errorf("a parsing table must not be nil")
	}
	if !tab.IsNonTerminal(start) {
		return nil, fmt.Errorf("a start symbol must be a non-terminal of the parsing table: %v", start)
	}

	p := &Parser{
		tab:    tab,
		start:  start,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Parse parses an input with a fresh parser. When the parser cannot be made, for instance, because the start
// symbol is not a non-terminal, the outcome is a rejection carrying the error.
func Parse(input []symbol.Symbol, start symbol.Symbol, tab *grammar.ParsingTable, opts ...ParserOption) *Outcome {
	p, err := NewParser(tab, start, opts...)
	if err != nil {
		return reject(err, 0)
	}
	return p.Parse(input)
}

// Parse decides whether an input is derivable from the start symbol. The input is read-only; the parser never
// modifies it.
func (p *Parser) Parse(input []symbol.Symbol) *Outcome {
	if p.maxInputLen > 0 && len(input) > p.maxInputLen {
		return reject(&CapacityError{
			Position: p.maxInputLen,
			Resource: ResourceInput,
			Limit:    p.maxInputLen,
		}, p.maxInputLen)
	}

	stack := NewStack(p.maxStackDepth)
	for _, sym := range []symbol.Symbol{symbol.EOF, p.start} {
		err := stack.Push(sym)
		if err != nil {
			return rejectAt(err, 0)
		}
	}

	var trail expansionTrail

	tracing := p.logger.Enabled(context.Background(), slog.LevelDebug)

	// `cursor` reaches `len(input) + 1` when the EOF symbol following the input is consumed.
	cursor := 0
	steps := 0
	for stack.Len() > 1 {
		if p.maxSteps > 0 && steps >= p.maxSteps {
			return reject(&InternalLimitError{
				Position: cursor,
				Steps:    p.maxSteps,
			}, cursor)
		}
		steps++

		top, err := stack.Pop()
		if err != nil {
			return rejectAt(err, cursor)
		}
		lookahead := lookaheadAt(input, cursor)
		trail.shrink(stack.Len())

		if p.tab.IsNonTerminal(top) {
			prod, err := p.tab.Lookup(top, lookahead)
			if err != nil {
				synErr := &SyntaxError{
					Position:   cursor,
					Unexpected: lookahead,
					Expanding:  top,
					Expected:   p.expected(top),
				}
				if noProdErr, ok := err.(*grammar.NoProductionError); ok {
					synErr.Cause = noProdErr
				}
				return reject(synErr, cursor)
			}
			if !trail.add(top, stack.Len()) {
				return reject(&InternalLimitError{
					Position:    cursor,
					Steps:       steps,
					NonTerminal: top,
				}, cursor)
			}
			if tracing {
				p.logger.Debug("expand",
					slog.Int("position", cursor),
					slog.String("non_terminal", top.String()),
					slog.String("lookahead", lookahead.String()),
					slog.String("production", prod.String()))
			}
			err = stack.PushProduction(prod)
			if err != nil {
				return rejectAt(err, cursor)
			}
			continue
		}

		switch {
		case top.IsEpsilon():
			// The epsilon symbol never consumes an input.
			if tracing {
				p.logger.Debug("skip epsilon", slog.Int("position", cursor))
			}
		case cursor > len(input):
			remaining := []symbol.Symbol{top}
			syms := stack.Symbols()
			for i := len(syms) - 1; i > 0; i-- {
				remaining = append(remaining, syms[i])
			}
			return reject(&IncompleteDerivationError{
				Position:  cursor,
				Remaining: remaining,
			}, cursor)
		case top == lookahead:
			if tracing {
				p.logger.Debug("match",
					slog.Int("position", cursor),
					slog.String("terminal", top.String()))
			}
			cursor++
			trail.reset()
		default:
			return reject(&MismatchError{
				Position: cursor,
				Expected: top,
				Found:    lookahead,
			}, cursor)
		}
	}

	if stack.Len() != 1 || !stack.TopEquals(symbol.EOF) {
		return reject(&EmptyStackError{
			Position: cursor,
		}, cursor)
	}
	if cursor <= len(input) {
		return reject(&TrailingInputError{
			Position: cursor,
			Found:    lookaheadAt(input, cursor),
		}, cursor)
	}

	if tracing {
		p.logger.Debug("accept", slog.Int("steps", steps))
	}

	return accept(cursor)
}

func lookaheadAt(input []symbol.Symbol, cursor int) symbol.Symbol {
	if cursor < len(input) {
		return input[cursor]
	}
	return symbol.EOF
}

// rejectAt fills the position of errors the stack returns because the stack doesn't know it.
func rejectAt(err error, pos int) *Outcome {
	switch e := err.(type) {
	case *CapacityError:
		e.Position = pos
	case *EmptyStackError:
		e.Position = pos
	}
	return reject(err, pos)
}

func (p *Parser) expected(nonTerm symbol.Symbol) []symbol.Symbol {
	prodTab, ok := p.tab.ProductionTable(nonTerm)
	if !ok {
		return nil
	}
	return prodTab.Terminals()
}

type expansion struct {
	nonTerm symbol.Symbol
	height  int
}

// expansionTrail holds the non-terminals expanded since the cursor last moved, each with the stack height below
// it. An expansion stays on the trail while the stack below it is untouched. Expanding a non-terminal on the trail
// again repeats the same expansions forever because the look-ahead symbol never changes.
type expansionTrail struct {
	exps   []expansion
	active map[symbol.Symbol]struct{}
}

// add records an expansion and returns false when the non-terminal is already on the trail.
func (t *expansionTrail) add(nonTerm symbol.Symbol, height int) bool {
	if t.active == nil {
		t.active = map[symbol.Symbol]struct{}{}
	}
	if _, ok := t.active[nonTerm]; ok {
		return false
	}
	t.active[nonTerm] = struct{}{}
	t.exps = append(t.exps, expansion{
		nonTerm: nonTerm,
		height:  height,
	})
	return true
}

// shrink drops the expansions whose stack below was popped. The heights on the trail never decrease from the
// bottom to the top.
func (t *expansionTrail) shrink(height int) {
	for len(t.exps) > 0 && t.exps[len(t.exps)-1].height > height {
		delete(t.active, t.exps[len(t.exps)-1].nonTerm)
		t.exps = t.exps[:len(t.exps)-1]
	}
}

func (t *expansionTrail) reset() {
	t.exps = t.exps[:0]
	clear(t.active)
}
