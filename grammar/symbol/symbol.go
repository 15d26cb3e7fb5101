package symbol

import "strings"

// Symbol is an element of a grammar alphabet. Whether a symbol is a terminal or a non-terminal is not a property
// of the symbol itself; a parsing table decides it.
type Symbol string

const (
	SymbolNil = Symbol("")

	// EOF marks the end of an input and the bottom of a parser stack.
	EOF = Symbol("$")

	// Epsilon stands for an empty production when a production is written down as text.
	Epsilon = Symbol("#")
)

func (s Symbol) String() string {
	return string(s)
}

func (s Symbol) IsNil() bool {
	return s == SymbolNil
}

func (s Symbol) IsEOF() bool {
	return s == EOF
}

func (s Symbol) IsEpsilon() bool {
	return s == Epsilon
}

// IsReserved returns true when a symbol is one of the markers the parser uses for itself.
func (s Symbol) IsReserved() bool {
	return s == EOF || s == Epsilon
}

// FromRunes converts each rune of a string into one symbol. This is the conventional way to write single-character
// alphabets such as `E$` or `+TF`.
func FromRunes(s string) []Symbol {
	syms := make([]Symbol, 0, len(s))
	for _, r := range s {
		syms = append(syms, Symbol(string(r)))
	}
	return syms
}

// Join formats symbols with a separator. Symbols that consist of a single rune are usually joined with an empty
// separator.
func Join(syms []Symbol, sep string) string {
	var b strings.Builder
	for i, sym := range syms {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(sym.String())
	}
	return b.String()
}
