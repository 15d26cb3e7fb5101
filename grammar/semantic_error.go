package grammar

import (
	"fmt"
	"strings"

	"github.com/nihei9/ll1/grammar/symbol"
)

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	semErrNilEntry              = newSemanticError("an entry must not be nil")
	semErrNilNonTerminal        = newSemanticError("a non-terminal must not be empty")
	semErrNilTerminal           = newSemanticError("a look-ahead terminal must not be empty")
	semErrNilSymbolInProduction = newSemanticError("a production must not contain an empty symbol")
	semErrReservedNonTerminal   = newSemanticError("a reserved symbol cannot be a non-terminal")
	semErrEpsilonLookahead      = newSemanticError("the epsilon symbol cannot be a look-ahead symbol")
	semErrNonTerminalLookahead  = newSemanticError("a non-terminal cannot be a look-ahead symbol")
)

// EntryError reports an entry that can never be a part of a parsing table.
type EntryError struct {
	Cause  error
	Index  int
	Symbol symbol.Symbol
}

func (e *EntryError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "entry #%v: %v", e.Index, e.Cause)
	if !e.Symbol.IsNil() {
		fmt.Fprintf(&b, ": %v", e.Symbol)
	}
	return b.String()
}

func (e *EntryError) Unwrap() error {
	return e.Cause
}

// ConflictError reports that a pair of a non-terminal and a terminal has two different productions. Such a table
// is not LL(1).
type ConflictError struct {
	NonTerminal symbol.Symbol
	Terminal    symbol.Symbol
	Registered  Production
	Conflicting Production

	// Index is the index of the entry that caused the conflict.
	Index int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %v has two productions on %v; registered: %v -> %v, conflicting: %v -> %v",
		e.NonTerminal, e.Terminal, e.NonTerminal, e.Registered, e.NonTerminal, e.Conflicting)
}

// NoProductionError means that a parsing table has no production for a pair of a non-terminal and a look-ahead
// terminal. A parser treats it as a syntax error of an input.
type NoProductionError struct {
	NonTerminal symbol.Symbol
	Terminal    symbol.Symbol
}

func (e *NoProductionError) Error() string {
	return fmt.Sprintf("no production: %v has no production on %v", e.NonTerminal, e.Terminal)
}
