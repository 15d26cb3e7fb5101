package table

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nihei9/ll1/driver/lexer"
	verr "github.com/nihei9/ll1/error"
	"github.com/nihei9/ll1/grammar"
	"github.com/nihei9/ll1/grammar/symbol"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON = Format("json")
	FormatYAML = Format("yaml")
	FormatTOML = Format("toml")
)

// FormatFromPath determines a format from the extension of a file path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unknown file extension: %v", path)
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format: %v", s)
}

// Description is a declarative description of an LL(1) parsing table and a way to split a source text into
// terminal symbols.
type Description struct {
	Name  string  `json:"name" yaml:"name" toml:"name"`
	Start string  `json:"start" yaml:"start" toml:"start"`
	Rules []*Rule `json:"rules" yaml:"rules" toml:"rules"`

	// Lexical is a lexical specification. When it is empty, each rune of a source text becomes a terminal symbol.
	Lexical []*LexEntry `json:"lexical,omitempty" yaml:"lexical,omitempty" toml:"lexical,omitempty"`

	// Skip is a set of runes dropped from a source text when no lexical specification is given.
	Skip []string `json:"skip,omitempty" yaml:"skip,omitempty" toml:"skip,omitempty"`

	filePath string
}

// Rule registers a production of a non-terminal for each look-ahead terminal. An empty RHS or an RHS consisting
// of the epsilon symbol `#` is an epsilon production.
type Rule struct {
	LHS       string   `json:"lhs" yaml:"lhs" toml:"lhs"`
	Lookahead []string `json:"lookahead" yaml:"lookahead" toml:"lookahead"`
	RHS       []string `json:"rhs" yaml:"rhs" toml:"rhs"`

	// row is a one-based row number where the rule appears. 0 means unknown.
	row int
}

type LexEntry struct {
	Kind     string `json:"kind" yaml:"kind" toml:"kind"`
	Pattern  string `json:"pattern" yaml:"pattern" toml:"pattern"`
	Literal  bool   `json:"literal,omitempty" yaml:"literal,omitempty" toml:"literal,omitempty"`
	Terminal string `json:"terminal,omitempty" yaml:"terminal,omitempty" toml:"terminal,omitempty"`
	Skip     bool   `json:"skip,omitempty" yaml:"skip,omitempty" toml:"skip,omitempty"`
}

var (
	errNoStart      = errors.New("a start symbol is required")
	errNoRule       = errors.New("a description needs at least one rule")
	errNoLHS        = errors.New("a rule needs an LHS")
	errNoLookahead  = errors.New("a rule needs at least one look-ahead terminal")
	errInvalidSkip  = errors.New("a skipped element must be a single rune")
	errStartUnknown = errors.New("a start symbol must be the LHS of a rule")
)

// ReadFile reads a description from a file. The format is determined by the extension of the file.
func ReadFile(path string) (*Description, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return ReadFileAs(path, format)
}

func ReadFileAs(path string, format Format) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open the description %s: %w", path, err)
	}
	defer f.Close()

	d, err := Parse(f, format)
	if err != nil {
		return nil, &verr.SpecError{
			Cause:      err,
			FilePath:   path,
			SourceName: path,
		}
	}
	d.filePath = path
	return d, nil
}

// Parse reads a description. Unknown fields are errors.
func Parse(r io.Reader, format Format) (*Description, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	d := &Description{}
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(src))
		dec.DisallowUnknownFields()
		err := dec.Decode(d)
		if err != nil {
			return nil, err
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(src))
		dec.KnownFields(true)
		err := dec.Decode(d)
		if err != nil {
			return nil, err
		}
		err = readRuleRows(src, d)
		if err != nil {
			return nil, err
		}
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(src)).Decode(d)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown field: %v", undecoded[0])
		}
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}

	return d, nil
}

// readRuleRows records a row number of each rule so that errors can point at the rule.
func readRuleRows(src []byte, d *Description) error {
	var doc yaml.Node
	err := yaml.Unmarshal(src, &doc)
	if err != nil {
		return err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "rules" {
			continue
		}
		rules := root.Content[i+1]
		if rules.Kind != yaml.SequenceNode {
			return nil
		}
		for j, n := range rules.Content {
			if j >= len(d.Rules) || d.Rules[j] == nil {
				break
			}
			d.Rules[j].row = n.Line
		}
	}
	return nil
}

func (d *Description) specError(cause error, detail string, row int) *verr.SpecError {
	return &verr.SpecError{
		Cause:      cause,
		Detail:     detail,
		FilePath:   d.filePath,
		SourceName: d.filePath,
		Row:        row,
	}
}

func (d *Description) StartSymbol() symbol.Symbol {
	return symbol.Symbol(d.Start)
}

// Build makes a parsing table from the rules. Each look-ahead terminal of a rule becomes one entry of the table.
// Build reports all malformed rules at once as verr.SpecErrors before it looks for conflicts.
func (d *Description) Build() (*grammar.ParsingTable, error) {
	if d.Start == "" {
		return nil, d.specError(errNoStart, "", 0)
	}
	if len(d.Rules) == 0 {
		return nil, d.specError(errNoRule, "", 0)
	}

	var es []*grammar.Entry
	var entry2Rule []*Rule
	var specErrs verr.SpecErrors
	startFound := false
	for i, r := range d.Rules {
		if r == nil {
			specErrs = append(specErrs, d.specError(errNoLHS, fmt.Sprintf("rule #%v", i), 0))
			continue
		}
		if r.LHS == "" {
			specErrs = append(specErrs, d.specError(errNoLHS, fmt.Sprintf("rule #%v", i), r.row))
			continue
		}
		if len(r.Lookahead) == 0 {
			specErrs = append(specErrs, d.specError(errNoLookahead, r.LHS, r.row))
			continue
		}
		if r.LHS == d.Start {
			startFound = true
		}

		prod := make(grammar.Production, len(r.RHS))
		for j, sym := range r.RHS {
			prod[j] = symbol.Symbol(sym)
		}
		for _, term := range r.Lookahead {
			es = append(es, &grammar.Entry{
				NonTerminal: symbol.Symbol(r.LHS),
				Terminal:    symbol.Symbol(term),
				Production:  prod,
			})
			entry2Rule = append(entry2Rule, r)
		}
	}
	if len(specErrs) > 0 {
		return nil, specErrs
	}
	if !startFound {
		return nil, d.specError(errStartUnknown, d.Start, 0)
	}

	tab, err := grammar.Build(es)
	if err != nil {
		var conflictErr *grammar.ConflictError
		var entryErr *grammar.EntryError
		switch {
		case errors.As(err, &conflictErr):
			return nil, d.specError(conflictErr, "", entry2Rule[conflictErr.Index].row)
		case errors.As(err, &entryErr):
			return nil, d.specError(entryErr, "", entry2Rule[entryErr.Index].row)
		}
		return nil, err
	}
	return tab, nil
}

// Tokenizer returns a tokenizer that splits a source text into terminal symbols.
func (d *Description) Tokenizer() (lexer.Tokenizer, error) {
	if len(d.Lexical) == 0 {
		var skip []rune
		for _, s := range d.Skip {
			rs := []rune(s)
			if len(rs) != 1 {
				return nil, d.specError(errInvalidSkip, fmt.Sprintf("%q", s), 0)
			}
			skip = append(skip, rs[0])
		}
		return lexer.NewRuneTokenizer(skip...), nil
	}

	entries := make([]*lexer.LexEntry, len(d.Lexical))
	for i, e := range d.Lexical {
		if e == nil {
			return nil, d.specError(fmt.Errorf("a lexical entry must not be empty"), fmt.Sprintf("entry #%v", i), 0)
		}
		entries[i] = &lexer.LexEntry{
			Kind:     e.Kind,
			Pattern:  e.Pattern,
			Literal:  e.Literal,
			Terminal: symbol.Symbol(e.Terminal),
			Skip:     e.Skip,
		}
	}
	tok, err := lexer.NewSpecTokenizer(entries)
	if err != nil {
		return nil, d.specError(err, "", 0)
	}
	return tok, nil
}
