package grammar

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/nihei9/ll1/grammar/symbol"
)

func TestBuild(t *testing.T) {
	tab, err := Build(genArithmeticEntries(t))
	if err != nil {
		t.Fatal(err)
	}

	expectedNonTerms := []symbol.Symbol{"S", "E", "F", "T", "U", "G"}
	if !reflect.DeepEqual(tab.NonTerminals(), expectedNonTerms) {
		t.Fatalf("unexpected non-terminals; want: %v, got: %v", expectedNonTerms, tab.NonTerminals())
	}
	expectedTerms := []symbol.Symbol{"(", "i", "$", ")", "+", "*"}
	if !reflect.DeepEqual(tab.Terminals(), expectedTerms) {
		t.Fatalf("unexpected terminals; want: %v, got: %v", expectedTerms, tab.Terminals())
	}
	if tab.EntryCount() != 15 {
		t.Fatalf("unexpected entry count; want: %v, got: %v", 15, tab.EntryCount())
	}

	for _, sym := range expectedNonTerms {
		if !tab.IsNonTerminal(sym) {
			t.Fatalf("%v must be a non-terminal", sym)
		}
	}
	for _, sym := range append(expectedTerms, symbol.Epsilon, symbol.Symbol("x")) {
		if tab.IsNonTerminal(sym) {
			t.Fatalf("%v must not be a non-terminal", sym)
		}
	}

	tests := []struct {
		nonTerm symbol.Symbol
		term    symbol.Symbol
		prod    Production
		noProd  bool
	}{
		{nonTerm: "S", term: "(", prod: Production{"E", "$"}},
		{nonTerm: "S", term: "i", prod: Production{"E", "$"}},
		{nonTerm: "F", term: "+", prod: Production{"+", "T", "F"}},
		{nonTerm: "F", term: ")", prod: Production{}},
		{nonTerm: "U", term: "$", prod: Production{}},
		{nonTerm: "G", term: "(", prod: Production{"(", "E", ")"}},
		{nonTerm: "S", term: "+", noProd: true},
		{nonTerm: "G", term: "$", noProd: true},
		{nonTerm: "i", term: "i", noProd: true},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			prod, err := tab.Lookup(tt.nonTerm, tt.term)
			if tt.noProd {
				var noProdErr *NoProductionError
				if !errors.As(err, &noProdErr) {
					t.Fatalf("expected a *NoProductionError; got: %v", err)
				}
				if noProdErr.NonTerminal != tt.nonTerm || noProdErr.Terminal != tt.term {
					t.Fatalf("unexpected error contents: %#v", noProdErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if prod == nil {
				t.Fatalf("a registered production must not be nil even when it is empty")
			}
			if !prod.Equals(tt.prod) {
				t.Fatalf("unexpected production; want: %v, got: %v", tt.prod, prod)
			}
		})
	}
}

func TestBuild_Conflict(t *testing.T) {
	gen := newTestEntryGenerator(t)

	t.Run("different productions conflict", func(t *testing.T) {
		es := genArithmeticEntries(t)
		es = append(es, gen("G", "(E)", "i")...)
		_, err := Build(es)
		var conflictErr *ConflictError
		if !errors.As(err, &conflictErr) {
			t.Fatalf("expected a *ConflictError; got: %v", err)
		}
		if conflictErr.NonTerminal != "G" || conflictErr.Terminal != "i" {
			t.Fatalf("unexpected conflicting pair: %v, %v", conflictErr.NonTerminal, conflictErr.Terminal)
		}
		if !conflictErr.Registered.Equals(Production{"i"}) || !conflictErr.Conflicting.Equals(Production{"(", "E", ")"}) {
			t.Fatalf("unexpected productions: %v, %v", conflictErr.Registered, conflictErr.Conflicting)
		}
		if conflictErr.Index != len(es)-1 {
			t.Fatalf("unexpected index; want: %v, got: %v", len(es)-1, conflictErr.Index)
		}
	})

	t.Run("an epsilon production conflicts with a non-empty production", func(t *testing.T) {
		es := append(gen("A", "#", "a"), gen("A", "a", "a")...)
		_, err := Build(es)
		var conflictErr *ConflictError
		if !errors.As(err, &conflictErr) {
			t.Fatalf("expected a *ConflictError; got: %v", err)
		}
	})

	t.Run("the same production can be registered twice", func(t *testing.T) {
		es := genArithmeticEntries(t)
		es = append(es, gen("G", "i", "i")...)
		es = append(es, gen("F", "", ")")...)
		tab, err := Build(es)
		if err != nil {
			t.Fatal(err)
		}
		if tab.EntryCount() != 15 {
			t.Fatalf("duplicate entries must not be counted; got: %v", tab.EntryCount())
		}
	})
}

func TestBuild_InvalidEntry(t *testing.T) {
	tests := []struct {
		caption string
		entries []*Entry
		cause   error
	}{
		{
			caption: "an entry must not be nil",
			entries: []*Entry{nil},
			cause:   semErrNilEntry,
		},
		{
			caption: "a non-terminal must not be empty",
			entries: []*Entry{
				{Terminal: "a", Production: Production{"a"}},
			},
			cause: semErrNilNonTerminal,
		},
		{
			caption: "the EOF symbol cannot be a non-terminal",
			entries: []*Entry{
				{NonTerminal: symbol.EOF, Terminal: "a", Production: Production{"a"}},
			},
			cause: semErrReservedNonTerminal,
		},
		{
			caption: "the epsilon symbol cannot be a non-terminal",
			entries: []*Entry{
				{NonTerminal: symbol.Epsilon, Terminal: "a", Production: Production{"a"}},
			},
			cause: semErrReservedNonTerminal,
		},
		{
			caption: "a look-ahead terminal must not be empty",
			entries: []*Entry{
				{NonTerminal: "A", Production: Production{"a"}},
			},
			cause: semErrNilTerminal,
		},
		{
			caption: "the epsilon symbol cannot be a look-ahead symbol",
			entries: []*Entry{
				{NonTerminal: "A", Terminal: symbol.Epsilon, Production: Production{}},
			},
			cause: semErrEpsilonLookahead,
		},
		{
			caption: "a non-terminal cannot be a look-ahead symbol",
			entries: []*Entry{
				{NonTerminal: "A", Terminal: "B", Production: Production{"B"}},
				{NonTerminal: "B", Terminal: "b", Production: Production{"b"}},
			},
			cause: semErrNonTerminalLookahead,
		},
		{
			caption: "a production must not contain an empty symbol",
			entries: []*Entry{
				{NonTerminal: "A", Terminal: "a", Production: Production{"a", ""}},
			},
			cause: semErrNilSymbolInProduction,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := Build(tt.entries)
			var entryErr *EntryError
			if !errors.As(err, &entryErr) {
				t.Fatalf("expected an *EntryError; got: %v", err)
			}
			if !errors.Is(err, tt.cause) {
				t.Fatalf("unexpected cause; want: %v, got: %v", tt.cause, entryErr.Cause)
			}
		})
	}
}

func TestBuild_EpsilonIsRemoved(t *testing.T) {
	tab, err := Build([]*Entry{
		{NonTerminal: "A", Terminal: "a", Production: Production{"a", symbol.Epsilon, "B"}},
		{NonTerminal: "B", Terminal: "$", Production: Production{symbol.Epsilon}},
	})
	if err != nil {
		t.Fatal(err)
	}
	prod, err := tab.Lookup("A", "a")
	if err != nil {
		t.Fatal(err)
	}
	if !prod.Equals(Production{"a", "B"}) {
		t.Fatalf("the epsilon symbol must be removed; got: %v", prod)
	}
	prod, err = tab.Lookup("B", "$")
	if err != nil {
		t.Fatal(err)
	}
	if !prod.IsEmpty() {
		t.Fatalf("a production consisting of the epsilon symbol must be empty; got: %v", prod)
	}
}

func TestParsingTable_IsNotAffectedByEntries(t *testing.T) {
	es := []*Entry{
		{NonTerminal: "A", Terminal: "a", Production: Production{"a"}},
	}
	tab, err := Build(es)
	if err != nil {
		t.Fatal(err)
	}
	es[0].Production[0] = "b"
	prod, err := tab.Lookup("A", "a")
	if err != nil {
		t.Fatal(err)
	}
	if !prod.Equals(Production{"a"}) {
		t.Fatalf("a table must not share productions with entries; got: %v", prod)
	}
}

func TestParsingTable_Lookup_ReturnsCopy(t *testing.T) {
	tab, err := Build([]*Entry{
		{NonTerminal: "A", Terminal: "a", Production: Production{"a", "B"}},
		{NonTerminal: "B", Terminal: "$", Production: Production{}},
	})
	if err != nil {
		t.Fatal(err)
	}
	prod, err := tab.Lookup("A", "a")
	if err != nil {
		t.Fatal(err)
	}
	prod[0] = "b"
	prod, err = tab.Lookup("A", "a")
	if err != nil {
		t.Fatal(err)
	}
	if !prod.Equals(Production{"a", "B"}) {
		t.Fatalf("a caller must not be able to modify a table; got: %v", prod)
	}
	prodTab, ok := tab.ProductionTable("A")
	if !ok {
		t.Fatalf("a production table of A must exist")
	}
	prodTab.Terminals()[0] = "x"
	if terms := prodTab.Terminals(); terms[0] != "a" {
		t.Fatalf("a caller must not be able to modify look-ahead terminals; got: %v", terms)
	}
}

func TestProduction_String(t *testing.T) {
	tests := []struct {
		prod Production
		text string
	}{
		{prod: Production{}, text: "ε"},
		{prod: Production{"+", "T", "F"}, text: "+TF"},
		{prod: Production{"expr", "+", "term"}, text: "expr + term"},
	}
	for _, tt := range tests {
		if tt.prod.String() != tt.text {
			t.Errorf("unexpected text; want: %v, got: %v", tt.text, tt.prod.String())
		}
	}
}
