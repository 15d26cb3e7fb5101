package lexer

import (
	"fmt"
	"io"
	"strings"

	"github.com/nihei9/ll1/grammar/symbol"
	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

// LexEntry defines a kind of token by a pattern.
type LexEntry struct {
	// Kind is a name of the kind. It is used only to report errors.
	Kind string

	// Pattern is a regular expression maleeni accepts. When `Literal` is true, the pattern matches the text as is.
	Pattern string
	Literal bool

	// Terminal is the symbol tokens of this kind become. When it is empty, the kind name is used.
	Terminal symbol.Symbol

	// Tokens of a skipped kind are dropped before parsing.
	Skip bool
}

func (e *LexEntry) terminal() symbol.Symbol {
	if e.Terminal.IsNil() {
		return symbol.Symbol(e.Kind)
	}
	return e.Terminal
}

var _ Tokenizer = &SpecTokenizer{}

// SpecTokenizer splits a source text according to a lexical specification. When patterns of two or more kinds
// match the same text, the kind defined earlier takes precedence.
type SpecTokenizer struct {
	spec *mlspec.CompiledLexSpec

	// kindToEntry's index is a kind ID. The index 0 is the nil kind and has no entry.
	kindToEntry []*LexEntry
}

func NewSpecTokenizer(entries []*LexEntry) (*SpecTokenizer, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("a lexical specification needs at least one entry")
	}

	// maleeni restricts the form of kind names, so we give each entry a generated name and keep the user-defined
	// names only for messages.
	name2Entry := map[mlspec.LexKindName]*LexEntry{}
	mlEntries := make([]*mlspec.LexEntry, len(entries))
	for i, e := range entries {
		if e == nil {
			return nil, fmt.Errorf("a lexical entry must not be nil; index: %v", i)
		}
		if e.Pattern == "" {
			return nil, fmt.Errorf("a lexical entry needs a pattern; kind: %v", e.Kind)
		}
		if !e.Skip && e.terminal().IsNil() {
			return nil, fmt.Errorf("a lexical entry needs a kind name or a terminal symbol; pattern: %v", e.Pattern)
		}
		if !e.Skip && e.terminal().IsEpsilon() {
			return nil, fmt.Errorf("a token cannot become the epsilon symbol; kind: %v", e.Kind)
		}

		pattern := e.Pattern
		if e.Literal {
			pattern = mlspec.EscapePattern(pattern)
		}
		kind := mlspec.LexKindName(fmt.Sprintf("x_%v", i+1))
		name2Entry[kind] = e
		mlEntries[i] = &mlspec.LexEntry{
			Kind:    kind,
			Pattern: mlspec.LexPattern(pattern),
		}
	}

	clspec, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
		Name:    "tokens",
		Entries: mlEntries,
	}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			writeCompileError(&b, cErrs[0], name2Entry)
			for _, cerr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n")
				writeCompileError(&b, cerr, name2Entry)
			}
			return nil, fmt.Errorf("%v", b.String())
		}
		return nil, err
	}

	kindToEntry := make([]*LexEntry, len(clspec.KindNames))
	for i, k := range clspec.KindNames {
		if k == mlspec.LexKindNameNil {
			continue
		}
		e, ok := name2Entry[k]
		if !ok {
			return nil, fmt.Errorf("a kind was not found in the lexical specification: %v", k)
		}
		kindToEntry[i] = e
	}

	return &SpecTokenizer{
		spec:        clspec,
		kindToEntry: kindToEntry,
	}, nil
}

func (t *SpecTokenizer) Tokenize(src io.Reader) ([]*Token, error) {
	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(t.spec), src)
	if err != nil {
		return nil, err
	}

	var toks []*Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			break
		}
		if tok.Invalid {
			return nil, &LexicalError{
				Text: string(tok.Lexeme),
				Row:  tok.Row,
				Col:  tok.Col,
			}
		}

		e := t.kindToEntry[tok.KindID]
		if e == nil {
			return nil, fmt.Errorf("%v:%v: a token has an unknown kind: %v", tok.Row+1, tok.Col+1, tok.KindID)
		}
		if e.Skip {
			continue
		}
		toks = append(toks, &Token{
			Symbol: e.terminal(),
			Text:   string(tok.Lexeme),
			Row:    tok.Row,
			Col:    tok.Col,
		})
	}
	return toks, nil
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError, name2Entry map[mlspec.LexKindName]*LexEntry) {
	kind := fmt.Sprint(cErr.Kind)
	if e, ok := name2Entry[mlspec.LexKindName(kind)]; ok && e.Kind != "" {
		kind = e.Kind
	}
	fmt.Fprintf(w, "%v: %v", kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}
