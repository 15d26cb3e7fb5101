package grammar

import (
	"testing"

	"github.com/nihei9/ll1/grammar/symbol"
)

type testEntryGenerator func(nonTerm string, prod string, terms ...string) []*Entry

// newTestEntryGenerator returns a generator that makes one entry per look-ahead terminal. Symbols of a production
// are single runes.
func newTestEntryGenerator(t *testing.T) testEntryGenerator {
	return func(nonTerm string, prod string, terms ...string) []*Entry {
		t.Helper()

		if len(terms) == 0 {
			t.Fatalf("an entry needs at least one look-ahead terminal; non-terminal: %v", nonTerm)
		}
		var es []*Entry
		for _, term := range terms {
			es = append(es, &Entry{
				NonTerminal: symbol.Symbol(nonTerm),
				Terminal:    symbol.Symbol(term),
				Production:  symbol.FromRunes(prod),
			})
		}
		return es
	}
}

// genArithmeticEntries generates the entries of the following grammar.
//
//	S → E $
//	E → T F
//	F → + T F | ε
//	T → G U
//	U → * G U | ε
//	G → ( E ) | i
func genArithmeticEntries(t *testing.T) []*Entry {
	t.Helper()

	gen := newTestEntryGenerator(t)
	var es []*Entry
	es = append(es, gen("S", "E$", "(", "i")...)
	es = append(es, gen("E", "TF", "(", "i")...)
	es = append(es, gen("F", "#", "$", ")")...)
	es = append(es, gen("F", "+TF", "+")...)
	es = append(es, gen("T", "GU", "(", "i")...)
	es = append(es, gen("U", "#", "$", "+", ")")...)
	es = append(es, gen("U", "*GU", "*")...)
	es = append(es, gen("G", "(E)", "(")...)
	es = append(es, gen("G", "i", "i")...)
	return es
}
