package grammar

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/nihei9/ll1/grammar/symbol"
)

func TestFindUnreachableNonTerminals(t *testing.T) {
	tab, err := Build(genArithmeticEntries(t))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		start       symbol.Symbol
		unreachable []symbol.Symbol
	}{
		{
			start: "S",
		},
		{
			start:       "E",
			unreachable: []symbol.Symbol{"S"},
		},
		{
			start:       "G",
			unreachable: []symbol.Symbol{"S"},
		},
		{
			start:       "U",
			unreachable: []symbol.Symbol{"S"},
		},
		{
			start:       "X",
			unreachable: []symbol.Symbol{"S", "E", "F", "T", "U", "G"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.start.String(), func(t *testing.T) {
			unreachable := FindUnreachableNonTerminals(tab, tt.start)
			if !reflect.DeepEqual(unreachable, tt.unreachable) {
				t.Fatalf("unexpected non-terminals; want: %v, got: %v", tt.unreachable, unreachable)
			}
		})
	}
}

func TestFindLeftRecursions(t *testing.T) {
	gen := newTestEntryGenerator(t)
	tests := []struct {
		entries [][]*Entry
		recs    []*LeftRecursion
	}{
		{
			entries: [][]*Entry{
				genArithmeticEntries(t),
			},
		},
		{
			entries: [][]*Entry{
				gen("S", "A$", "a"),
				gen("A", "Aa", "a"),
			},
			recs: []*LeftRecursion{
				{
					Terminal: "a",
					Cycle:    []symbol.Symbol{"A", "A"},
				},
			},
		},
		{
			entries: [][]*Entry{
				gen("S", "A$", "x"),
				gen("A", "Bx", "x"),
				gen("B", "Ay", "x"),
				gen("B", "#", "$"),
			},
			recs: []*LeftRecursion{
				{
					Terminal: "x",
					Cycle:    []symbol.Symbol{"A", "B", "A"},
				},
			},
		},
		{
			entries: [][]*Entry{
				gen("S", "BS", "x"),
				gen("B", "#", "x"),
			},
			recs: []*LeftRecursion{
				{
					Terminal: "x",
					Cycle:    []symbol.Symbol{"S", "S"},
				},
			},
		},
		// Non-terminals deriving nothing on the terminal are looked through.
		{
			entries: [][]*Entry{
				gen("S", "A$", "x"),
				gen("A", "BCA", "x"),
				gen("B", "#", "x"),
				gen("C", "B", "x"),
			},
			recs: []*LeftRecursion{
				{
					Terminal: "x",
					Cycle:    []symbol.Symbol{"A", "A"},
				},
			},
		},
		// A non-terminal consuming the terminal stops the walk.
		{
			entries: [][]*Entry{
				gen("S", "BS", "x"),
				gen("B", "x", "x"),
			},
		},
		// An epsilon production stops the chain.
		{
			entries: [][]*Entry{
				gen("S", "A$", "x"),
				gen("A", "B", "x"),
				gen("B", "#", "x"),
			},
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			var es []*Entry
			for _, e := range tt.entries {
				es = append(es, e...)
			}
			tab, err := Build(es)
			if err != nil {
				t.Fatal(err)
			}
			recs := FindLeftRecursions(tab)
			if len(recs) != len(tt.recs) {
				t.Fatalf("unexpected left recursion count; want: %v, got: %v", len(tt.recs), len(recs))
			}
			for i, rec := range recs {
				if !reflect.DeepEqual(rec, tt.recs[i]) {
					t.Fatalf("unexpected left recursion; want: %+v, got: %+v", tt.recs[i], rec)
				}
			}
		})
	}
}
