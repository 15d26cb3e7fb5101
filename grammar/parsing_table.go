package grammar

import (
	"github.com/nihei9/ll1/grammar/symbol"
)

// Entry registers a production for a pair of a non-terminal and a look-ahead terminal.
type Entry struct {
	NonTerminal symbol.Symbol
	Terminal    symbol.Symbol
	Production  Production
}

// ProductionTable maps look-ahead terminals of one non-terminal to productions.
type ProductionTable struct {
	prods map[symbol.Symbol]Production

	// terms holds the look-ahead terminals in registration order.
	terms []symbol.Symbol
}

func newProductionTable() *ProductionTable {
	return &ProductionTable{
		prods: map[symbol.Symbol]Production{},
	}
}

func (t *ProductionTable) lookup(term symbol.Symbol) (Production, bool) {
	prod, ok := t.prods[term]
	return prod, ok
}

// Terminals returns the look-ahead terminals having a production.
func (t *ProductionTable) Terminals() []symbol.Symbol {
	terms := make([]symbol.Symbol, len(t.terms))
	copy(terms, t.terms)
	return terms
}

// ParsingTable is an LL(1) parsing table. A ParsingTable is never modified once Build returns it, so any number of
// parsers can read it at the same time.
type ParsingTable struct {
	nonTerm2Tab map[symbol.Symbol]*ProductionTable
	nonTerms    []symbol.Symbol
	terms       []symbol.Symbol
	entryCount  int
}

// Build makes a parsing table from entries. When a pair of a non-terminal and a terminal appears twice with
// different productions, Build returns a *ConflictError. Registering the same production twice is fine.
func Build(entries []*Entry) (*ParsingTable, error) {
	tab := &ParsingTable{
		nonTerm2Tab: map[symbol.Symbol]*ProductionTable{},
	}

	// Non-terminals must be known before the entries are validated because a look-ahead symbol must not be
	// a non-terminal.
	for i, e := range entries {
		if e == nil {
			return nil, &EntryError{
				Cause: semErrNilEntry,
				Index: i,
			}
		}
		if e.NonTerminal.IsNil() {
			return nil, &EntryError{
				Cause: semErrNilNonTerminal,
				Index: i,
			}
		}
		if e.NonTerminal.IsReserved() {
			return nil, &EntryError{
				Cause:  semErrReservedNonTerminal,
				Index:  i,
				Symbol: e.NonTerminal,
			}
		}
		if _, ok := tab.nonTerm2Tab[e.NonTerminal]; ok {
			continue
		}
		tab.nonTerm2Tab[e.NonTerminal] = newProductionTable()
		tab.nonTerms = append(tab.nonTerms, e.NonTerminal)
	}

	knownTerms := map[symbol.Symbol]struct{}{}
	for i, e := range entries {
		switch {
		case e.Terminal.IsNil():
			return nil, &EntryError{
				Cause: semErrNilTerminal,
				Index: i,
			}
		case e.Terminal.IsEpsilon():
			return nil, &EntryError{
				Cause:  semErrEpsilonLookahead,
				Index:  i,
				Symbol: e.Terminal,
			}
		case tab.IsNonTerminal(e.Terminal):
			return nil, &EntryError{
				Cause:  semErrNonTerminalLookahead,
				Index:  i,
				Symbol: e.Terminal,
			}
		}
		for _, sym := range e.Production {
			if sym.IsNil() {
				return nil, &EntryError{
					Cause: semErrNilSymbolInProduction,
					Index: i,
				}
			}
		}

		prodTab := tab.nonTerm2Tab[e.NonTerminal]
		prod := newProduction(e.Production)
		if registered, ok := prodTab.prods[e.Terminal]; ok {
			if registered.Equals(prod) {
				continue
			}
			return nil, &ConflictError{
				NonTerminal: e.NonTerminal,
				Terminal:    e.Terminal,
				Registered:  registered,
				Conflicting: prod,
				Index:       i,
			}
		}
		prodTab.prods[e.Terminal] = prod
		prodTab.terms = append(prodTab.terms, e.Terminal)
		tab.entryCount++

		if _, ok := knownTerms[e.Terminal]; !ok {
			knownTerms[e.Terminal] = struct{}{}
			tab.terms = append(tab.terms, e.Terminal)
		}
	}

	return tab, nil
}

// IsNonTerminal returns true when a symbol is a key of the table.
func (t *ParsingTable) IsNonTerminal(sym symbol.Symbol) bool {
	_, ok := t.nonTerm2Tab[sym]
	return ok
}

// Lookup returns a production to replace a non-terminal with when the look-ahead symbol is `term`.
// When no production is registered, Lookup returns a *NoProductionError. An epsilon production is returned
// as an empty Production and a nil error. The returned production is a copy, so modifying it never changes the table.
func (t *ParsingTable) Lookup(nonTerm symbol.Symbol, term symbol.Symbol) (Production, error) {
	prodTab, ok := t.nonTerm2Tab[nonTerm]
	if ok {
		if prod, ok := prodTab.lookup(term); ok {
			cp := make(Production, len(prod))
			copy(cp, prod)
			return cp, nil
		}
	}
	return nil, &NoProductionError{
		NonTerminal: nonTerm,
		Terminal:    term,
	}
}

// ProductionTable returns a table of productions of a non-terminal.
func (t *ParsingTable) ProductionTable(nonTerm symbol.Symbol) (*ProductionTable, bool) {
	prodTab, ok := t.nonTerm2Tab[nonTerm]
	return prodTab, ok
}

// NonTerminals returns the non-terminals in the order they were registered.
func (t *ParsingTable) NonTerminals() []symbol.Symbol {
	nonTerms := make([]symbol.Symbol, len(t.nonTerms))
	copy(nonTerms, t.nonTerms)
	return nonTerms
}

// Terminals returns the look-ahead terminals in the order they were registered.
func (t *ParsingTable) Terminals() []symbol.Symbol {
	terms := make([]symbol.Symbol, len(t.terms))
	copy(terms, t.terms)
	return terms
}

// EntryCount returns the number of distinct entries.
func (t *ParsingTable) EntryCount() int {
	return t.entryCount
}
