package parser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nihei9/ll1/grammar"
	"github.com/nihei9/ll1/grammar/symbol"
)

func TestStack(t *testing.T) {
	s := NewStack(0)
	if s.Len() != 0 {
		t.Fatalf("a new stack must be empty; got: %v", s.Len())
	}
	if s.TopEquals(symbol.EOF) {
		t.Fatalf("an empty stack has no top")
	}

	if err := s.Push(symbol.EOF); err != nil {
		t.Fatal(err)
	}
	if err := s.PushProduction(grammar.Production{"(", "E", ")"}); err != nil {
		t.Fatal(err)
	}
	if !s.TopEquals("(") {
		t.Fatalf("the leftmost symbol of a production must be on the top; got: %v", s.Symbols())
	}
	expected := []symbol.Symbol{symbol.EOF, ")", "E", "("}
	if !reflect.DeepEqual(s.Symbols(), expected) {
		t.Fatalf("unexpected symbols; want: %v, got: %v", expected, s.Symbols())
	}

	if err := s.PushProduction(grammar.Production{}); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 4 {
		t.Fatalf("pushing an epsilon production must not change the stack; got: %v", s.Symbols())
	}

	for i := len(expected) - 1; i >= 0; i-- {
		sym, err := s.Pop()
		if err != nil {
			t.Fatal(err)
		}
		if sym != expected[i] {
			t.Fatalf("unexpected symbol; want: %v, got: %v", expected[i], sym)
		}
	}

	_, err := s.Pop()
	var emptyStackErr *EmptyStackError
	if !errors.As(err, &emptyStackErr) {
		t.Fatalf("popping an empty stack must fail with an *EmptyStackError; got: %v", err)
	}
}

func TestStack_MaxDepth(t *testing.T) {
	s := NewStack(3)
	if err := s.Push(symbol.EOF); err != nil {
		t.Fatal(err)
	}
	if err := s.PushProduction(grammar.Production{"a", "b"}); err != nil {
		t.Fatal(err)
	}

	var capErr *CapacityError
	err := s.Push("c")
	if !errors.As(err, &capErr) {
		t.Fatalf("expected a *CapacityError; got: %v", err)
	}
	if capErr.Resource != ResourceStack || capErr.Limit != 3 {
		t.Fatalf("unexpected error contents: %#v", capErr)
	}

	if _, err := s.Pop(); err != nil {
		t.Fatal(err)
	}
	err = s.PushProduction(grammar.Production{"c", "d"})
	if !errors.As(err, &capErr) {
		t.Fatalf("expected a *CapacityError; got: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("a failed push must not change the stack; got: %v", s.Symbols())
	}
}
