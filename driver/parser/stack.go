package parser

import (
	"github.com/nihei9/ll1/grammar"
	"github.com/nihei9/ll1/grammar/symbol"
)

// Stack is a symbol stack a parser uses to simulate a leftmost derivation. A zero value is an empty stack without
// a depth limit.
type Stack struct {
	syms []symbol.Symbol

	// maxDepth is the maximum number of symbols the stack can hold. 0 means no limit.
	maxDepth int
}

func NewStack(maxDepth int) *Stack {
	return &Stack{
		maxDepth: maxDepth,
	}
}

func (s *Stack) Push(sym symbol.Symbol) error {
	if s.maxDepth > 0 && len(s.syms)+1 > s.maxDepth {
		return &CapacityError{
			Resource: ResourceStack,
			Limit:    s.maxDepth,
		}
	}
	s.syms = append(s.syms, sym)
	return nil
}

// PushProduction pushes the symbols of a production so that the leftmost symbol is on the top. Pushing an epsilon
// production does nothing.
func (s *Stack) PushProduction(prod grammar.Production) error {
	if s.maxDepth > 0 && len(s.syms)+len(prod) > s.maxDepth {
		return &CapacityError{
			Resource: ResourceStack,
			Limit:    s.maxDepth,
		}
	}
	for i := len(prod) - 1; i >= 0; i-- {
		s.syms = append(s.syms, prod[i])
	}
	return nil
}

func (s *Stack) Pop() (symbol.Symbol, error) {
	if len(s.syms) == 0 {
		return symbol.SymbolNil, &EmptyStackError{}
	}
	top := s.syms[len(s.syms)-1]
	s.syms = s.syms[:len(s.syms)-1]
	return top, nil
}

func (s *Stack) Len() int {
	return len(s.syms)
}

func (s *Stack) TopEquals(sym symbol.Symbol) bool {
	if len(s.syms) == 0 {
		return false
	}
	return s.syms[len(s.syms)-1] == sym
}

// Symbols returns the symbols from the bottom to the top.
func (s *Stack) Symbols() []symbol.Symbol {
	syms := make([]symbol.Symbol, len(s.syms))
	copy(syms, s.syms)
	return syms
}
