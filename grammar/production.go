package grammar

import (
	"github.com/nihei9/ll1/grammar/symbol"
)

// Production is a right-hand side of a grammar rule. An empty production is an epsilon production.
type Production []symbol.Symbol

func newProduction(rhs []symbol.Symbol) Production {
	// The epsilon marker only exists to write an empty production down, so it never reaches a table.
	prod := make(Production, 0, len(rhs))
	for _, sym := range rhs {
		if sym.IsEpsilon() {
			continue
		}
		prod = append(prod, sym)
	}
	return prod
}

func (p Production) IsEmpty() bool {
	return len(p) == 0
}

func (p Production) Equals(q Production) bool {
	if len(p) != len(q) {
		return false
	}
	for i, sym := range p {
		if q[i] != sym {
			return false
		}
	}
	return true
}

// String formats a production in the way parsing tables are usually drawn: `ε` for an epsilon production,
// concatenated symbols when every symbol is a single rune, and space-separated symbols otherwise.
func (p Production) String() string {
	if p.IsEmpty() {
		return "ε"
	}
	sep := ""
	for _, sym := range p {
		if len([]rune(sym.String())) != 1 {
			sep = " "
			break
		}
	}
	return symbol.Join(p, sep)
}
