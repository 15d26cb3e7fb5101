package grammar

import (
	"github.com/nihei9/ll1/grammar/symbol"
)

// FindUnreachableNonTerminals returns non-terminals no derivation from `start` can contain, in registration order.
func FindUnreachableNonTerminals(tab *ParsingTable, start symbol.Symbol) []symbol.Symbol {
	mark := map[symbol.Symbol]bool{}
	if tab.IsNonTerminal(start) {
		markReachable(tab, mark, start)
	}

	var unreachable []symbol.Symbol
	for _, nonTerm := range tab.nonTerms {
		if mark[nonTerm] {
			continue
		}
		unreachable = append(unreachable, nonTerm)
	}
	return unreachable
}

func markReachable(tab *ParsingTable, mark map[symbol.Symbol]bool, nonTerm symbol.Symbol) {
	if mark[nonTerm] {
		return
	}
	mark[nonTerm] = true

	prodTab := tab.nonTerm2Tab[nonTerm]
	for _, term := range prodTab.terms {
		for _, sym := range prodTab.prods[term] {
			if !tab.IsNonTerminal(sym) {
				continue
			}
			markReachable(tab, mark, sym)
		}
	}
}

// LeftRecursion is a cycle of expansions that never consumes the look-ahead terminal. A parser running into it
// expands the non-terminals forever.
type LeftRecursion struct {
	Terminal symbol.Symbol

	// Cycle begins and ends with the same non-terminal.
	Cycle []symbol.Symbol
}

// FindLeftRecursions follows the leftmost symbols of the productions for each look-ahead terminal and reports
// the cycles. A non-terminal deriving nothing on the terminal doesn't stop the walk; the symbol next to it is
// followed too. A cycle is reported once per terminal.
func FindLeftRecursions(tab *ParsingTable) []*LeftRecursion {
	var recs []*LeftRecursion
	for _, term := range tab.terms {
		f := &cycleFinder{
			tab:      tab,
			term:     term,
			nullable: findNullableNonTerminals(tab, term),
			visited:  map[symbol.Symbol]bool{},
			onPath:   map[symbol.Symbol]int{},
		}
		for _, nonTerm := range tab.nonTerms {
			if f.visited[nonTerm] {
				continue
			}
			f.visit(nonTerm)
		}
		for _, cycle := range f.cycles {
			recs = append(recs, &LeftRecursion{
				Terminal: term,
				Cycle:    cycle,
			})
		}
	}
	return recs
}

// findNullableNonTerminals returns the non-terminals that derive nothing when the look-ahead symbol is `term`.
func findNullableNonTerminals(tab *ParsingTable, term symbol.Symbol) map[symbol.Symbol]bool {
	nullable := map[symbol.Symbol]bool{}
	for changed := true; changed; {
		changed = false
		for _, nonTerm := range tab.nonTerms {
			if nullable[nonTerm] {
				continue
			}
			prod, ok := tab.nonTerm2Tab[nonTerm].lookup(term)
			if !ok {
				continue
			}
			vanishes := true
			for _, sym := range prod {
				if !nullable[sym] {
					vanishes = false
					break
				}
			}
			if vanishes {
				nullable[nonTerm] = true
				changed = true
			}
		}
	}
	return nullable
}

type cycleFinder struct {
	tab      *ParsingTable
	term     symbol.Symbol
	nullable map[symbol.Symbol]bool
	visited  map[symbol.Symbol]bool
	onPath   map[symbol.Symbol]int
	path     []symbol.Symbol
	cycles   [][]symbol.Symbol
}

func (f *cycleFinder) visit(nonTerm symbol.Symbol) {
	f.visited[nonTerm] = true
	f.onPath[nonTerm] = len(f.path)
	f.path = append(f.path, nonTerm)

	prod, _ := f.tab.nonTerm2Tab[nonTerm].lookup(f.term)
	for _, sym := range prod {
		if !f.tab.IsNonTerminal(sym) {
			break
		}
		if i, ok := f.onPath[sym]; ok {
			cycle := make([]symbol.Symbol, 0, len(f.path)-i+1)
			cycle = append(cycle, f.path[i:]...)
			cycle = append(cycle, sym)
			f.cycles = append(f.cycles, cycle)
		} else if !f.visited[sym] {
			f.visit(sym)
		}
		if !f.nullable[sym] {
			break
		}
	}

	f.path = f.path[:len(f.path)-1]
	delete(f.onPath, nonTerm)
}
