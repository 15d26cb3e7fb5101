package test

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/nihei9/ll1/driver/parser"
)

// Verdict is an expected result of parsing a source text.
type Verdict string

const (
	VerdictAccept = Verdict("accept")
	VerdictReject = Verdict("reject")
)

var knownErrorKinds = map[string]struct{}{
	parser.ErrorKindSyntax:               {},
	parser.ErrorKindMismatch:             {},
	parser.ErrorKindTrailingInput:        {},
	parser.ErrorKindIncompleteDerivation: {},
	parser.ErrorKindCapacity:             {},
	parser.ErrorKindEmptyStack:           {},
	parser.ErrorKindInternalLimit:        {},
}

const AnyPosition = -1

type Expectation struct {
	Verdict Verdict

	// ErrorKind is one of the error kinds the driver reports. It is empty when the verdict is accept.
	ErrorKind string

	// Position is a zero-based index of an input symbol where the parser stops. The index next to the last
	// input symbol means the end of the input. AnyPosition matches any position.
	Position int
}

func (e *Expectation) String() string {
	var b strings.Builder
	b.WriteString(string(e.Verdict))
	if e.ErrorKind != "" {
		fmt.Fprintf(&b, " %v", e.ErrorKind)
	}
	if e.Position != AnyPosition {
		fmt.Fprintf(&b, " %v", e.Position)
	}
	return b.String()
}

// Diff compares an outcome of the driver with the expectation and returns messages describing differences.
func (e *Expectation) Diff(o *parser.Outcome) []string {
	var diffs []string
	switch e.Verdict {
	case VerdictAccept:
		if !o.Accepted {
			diffs = append(diffs, fmt.Sprintf("unexpected verdict: expected 'accept' but got 'reject': %v", o.Error))
			return diffs
		}
	case VerdictReject:
		if o.Accepted {
			diffs = append(diffs, "unexpected verdict: expected 'reject' but got 'accept'")
			return diffs
		}
		if kind := parser.ErrorKind(o.Error); kind != e.ErrorKind {
			diffs = append(diffs, fmt.Sprintf("unexpected error kind: expected '%v' but got '%v': %v", e.ErrorKind, kind, o.Error))
		}
	}
	if e.Position != AnyPosition && o.Position != e.Position {
		diffs = append(diffs, fmt.Sprintf("unexpected position: expected %v but got %v", e.Position, o.Position))
	}
	return diffs
}

type TestCase struct {
	Description string
	Source      []byte
	Expected    *Expectation
}

// ParseTestCase reads a test case consisting of a description, a source text, and an expectation. Lines
// consisting of three or more hyphens separate the parts.
func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	ep := &expectationParser{
		lineOffset: parts[0].lineCount + parts[1].lineCount + 2,
	}
	exp, err := ep.parse(parts[2].buf)
	if err != nil {
		return nil, err
	}

	return &TestCase{
		Description: string(parts[0].buf),
		Source:      parts[1].buf,
		Expected:    exp,
	}, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	buf.Write(line)
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		buf.WriteByte('\n')
		buf.Write(line)
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}

type expectationParser struct {
	lineOffset int
}

// parse reads an expectation from the first non-blank line of the last part. The following lines must be blank.
func (ep *expectationParser) parse(src []byte) (*Expectation, error) {
	var exp *Expectation
	for i, line := range strings.Split(string(src), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		row := ep.lineOffset + i + 1
		if exp != nil {
			return nil, fmt.Errorf("%v: an expectation must be a single line", row)
		}
		var err error
		exp, err = parseExpectation(fields)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", row, err)
		}
	}
	if exp == nil {
		return nil, fmt.Errorf("%v: an expectation is missing", ep.lineOffset+1)
	}
	return exp, nil
}

func parseExpectation(fields []string) (*Expectation, error) {
	switch Verdict(fields[0]) {
	case VerdictAccept:
		if len(fields) > 2 {
			return nil, fmt.Errorf("too many fields: accept [<position>]")
		}
		exp := &Expectation{
			Verdict:  VerdictAccept,
			Position: AnyPosition,
		}
		if len(fields) == 2 {
			pos, err := parsePosition(fields[1])
			if err != nil {
				return nil, err
			}
			exp.Position = pos
		}
		return exp, nil
	case VerdictReject:
		if len(fields) < 2 || len(fields) > 3 {
			return nil, fmt.Errorf("too many or too few fields: reject <error kind> [<position>]")
		}
		if _, ok := knownErrorKinds[fields[1]]; !ok {
			return nil, fmt.Errorf("unknown error kind: %v", fields[1])
		}
		exp := &Expectation{
			Verdict:   VerdictReject,
			ErrorKind: fields[1],
			Position:  AnyPosition,
		}
		if len(fields) == 3 {
			pos, err := parsePosition(fields[2])
			if err != nil {
				return nil, err
			}
			exp.Position = pos
		}
		return exp, nil
	}
	return nil, fmt.Errorf("unknown verdict: %v", fields[0])
}

func parsePosition(s string) (int, error) {
	pos, err := strconv.Atoi(s)
	if err != nil || pos < 0 {
		return 0, fmt.Errorf("a position must be a non-negative integer: %v", s)
	}
	return pos, nil
}
