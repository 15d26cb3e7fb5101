package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nihei9/ll1/grammar"
	"github.com/nihei9/ll1/grammar/symbol"
)

const (
	ErrorKindSyntax               = "syntax-error"
	ErrorKindMismatch             = "mismatch"
	ErrorKindTrailingInput        = "trailing-input"
	ErrorKindIncompleteDerivation = "incomplete-derivation"
	ErrorKindCapacity             = "capacity"
	ErrorKindEmptyStack           = "empty-stack"
	ErrorKindInternalLimit        = "internal-limit"
)

// SyntaxError means that a parsing table has no production for a non-terminal on the top of the stack and
// the current look-ahead symbol.
type SyntaxError struct {
	Position   int
	Unexpected symbol.Symbol
	Expanding  symbol.Symbol

	// Expected is a set of look-ahead symbols `Expanding` has productions for.
	Expected []symbol.Symbol

	Cause *grammar.NoProductionError
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: unexpected %v while expanding %v", e.Position, e.Unexpected, e.Expanding)
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, "; expected: %v", e.Expected[0])
		for _, sym := range e.Expected[1:] {
			fmt.Fprintf(&b, ", %v", sym)
		}
	}
	return b.String()
}

func (e *SyntaxError) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

// MismatchError means that a terminal on the top of the stack differs from the current input symbol.
type MismatchError struct {
	Position int
	Expected symbol.Symbol
	Found    symbol.Symbol
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%v: mismatch: expected %v but found %v", e.Position, e.Expected, e.Found)
}

// TrailingInputError means that the derivation completed while the input had not been consumed up to its end.
// When only the end of the input was left, `Found` is the EOF symbol.
type TrailingInputError struct {
	Position int
	Found    symbol.Symbol
}

func (e *TrailingInputError) Error() string {
	if e.Found.IsEOF() {
		return fmt.Sprintf("%v: trailing input: the derivation completed without consuming the end of the input", e.Position)
	}
	return fmt.Sprintf("%v: trailing input: the derivation completed before %v", e.Position, e.Found)
}

// IncompleteDerivationError means that the input was consumed up to its end while the stack still had symbols to
// be matched.
type IncompleteDerivationError struct {
	Position int

	// Remaining is the unmatched part of the derivation, from the top of the stack to the bottom. The bottom marker
	// is not included.
	Remaining []symbol.Symbol
}

func (e *IncompleteDerivationError) Error() string {
	return fmt.Sprintf("%v: incomplete derivation: the input ended but %v remained", e.Position, symbol.Join(e.Remaining, " "))
}

type Resource string

const (
	ResourceInput = Resource("input")
	ResourceStack = Resource("stack")
)

// CapacityError means that a parser reached one of its resource limits.
type CapacityError struct {
	Position int
	Resource Resource
	Limit    int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: capacity exceeded: the %v limit is %v", e.Position, e.Resource, e.Limit)
}

// EmptyStackError means that a parser popped an empty stack. A correct parser never does it.
type EmptyStackError struct {
	Position int
}

func (e *EmptyStackError) Error() string {
	return fmt.Sprintf("%v: the parser popped an empty stack", e.Position)
}

// InternalLimitError means that a parser stopped because it would never finish. Either the parser took more steps
// than MaxSteps allows, or it expanded `NonTerminal` again without consuming an input, for instance, because
// the table contains left recursion.
type InternalLimitError struct {
	Position    int
	Steps       int
	NonTerminal symbol.Symbol
}

func (e *InternalLimitError) Error() string {
	if !e.NonTerminal.IsNil() {
		return fmt.Sprintf("%v: the parser expanded %v again without consuming an input (%v steps)", e.Position, e.NonTerminal, e.Steps)
	}
	return fmt.Sprintf("%v: the parser exceeded the step limit (%v steps)", e.Position, e.Steps)
}

// IsDefect returns true when an error indicates a defect of a parser or a parsing table rather than an invalid
// input.
func IsDefect(err error) bool {
	var emptyStackErr *EmptyStackError
	var limitErr *InternalLimitError
	return errors.As(err, &emptyStackErr) || errors.As(err, &limitErr)
}

// ErrorKind returns a name of the kind of a parse error. It returns an empty string when `err` is not a parse
// error.
func ErrorKind(err error) string {
	var (
		synErr        *SyntaxError
		mismatchErr   *MismatchError
		trailingErr   *TrailingInputError
		incompleteErr *IncompleteDerivationError
		capErr        *CapacityError
		emptyStackErr *EmptyStackError
		limitErr      *InternalLimitError
	)
	switch {
	case errors.As(err, &synErr):
		return ErrorKindSyntax
	case errors.As(err, &mismatchErr):
		return ErrorKindMismatch
	case errors.As(err, &trailingErr):
		return ErrorKindTrailingInput
	case errors.As(err, &incompleteErr):
		return ErrorKindIncompleteDerivation
	case errors.As(err, &capErr):
		return ErrorKindCapacity
	case errors.As(err, &emptyStackErr):
		return ErrorKindEmptyStack
	case errors.As(err, &limitErr):
		return ErrorKindInternalLimit
	}
	return ""
}
