package lexer

import (
	"bufio"
	"fmt"
	"io"
	"unicode"

	"github.com/nihei9/ll1/grammar/symbol"
)

// Token is a terminal symbol read from a source text.
type Token struct {
	Symbol symbol.Symbol

	// Text is the part of the source text the token was made from.
	Text string

	// Row and Col are zero-based. Col is counted in code points.
	Row int
	Col int
}

// Tokenizer splits a source text into tokens. A tokenizer doesn't append the EOF symbol to the tokens because
// a parser treats the end of an input as the EOF symbol.
type Tokenizer interface {
	Tokenize(src io.Reader) ([]*Token, error)
}

// Symbols returns the symbols of tokens in order.
func Symbols(toks []*Token) []symbol.Symbol {
	syms := make([]symbol.Symbol, len(toks))
	for i, tok := range toks {
		syms[i] = tok.Symbol
	}
	return syms
}

// LexicalError means that a part of a source text matches no token.
type LexicalError struct {
	Text string
	Row  int
	Col  int
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("%v:%v: invalid token: %q", e.Row+1, e.Col+1, e.Text)
}

var _ Tokenizer = &RuneTokenizer{}

// RuneTokenizer makes one token per rune. This suits grammars whose terminals are single characters.
type RuneTokenizer struct {
	skip map[rune]struct{}
}

// NewRuneTokenizer returns a RuneTokenizer that drops runes in `skip`.
func NewRuneTokenizer(skip ...rune) *RuneTokenizer {
	t := &RuneTokenizer{
		skip: map[rune]struct{}{},
	}
	for _, r := range skip {
		t.skip[r] = struct{}{}
	}
	return t
}

func (t *RuneTokenizer) Tokenize(src io.Reader) ([]*Token, error) {
	r := bufio.NewReader(src)
	var toks []*Token
	row := 0
	col := 0
	for {
		c, size, err := r.ReadRune()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if c == unicode.ReplacementChar && size == 1 {
			return nil, &LexicalError{
				Text: string(c),
				Row:  row,
				Col:  col,
			}
		}

		if _, ok := t.skip[c]; !ok {
			toks = append(toks, &Token{
				Symbol: symbol.Symbol(string(c)),
				Text:   string(c),
				Row:    row,
				Col:    col,
			})
		}

		if c == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}
	return toks, nil
}
