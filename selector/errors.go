package selector

import (
	"fmt"
	"strings"
)

// GrammarError reports query source text that does not conform to the
// grammar. It carries the position of the offending input and the set of
// tokens that would have been accepted there. Compilation surfaces it to the
// caller verbatim; it is never recovered internally.
type GrammarError struct {
	Line     int
	Column   int
	Expected []string
	Found    string
}

func (e *GrammarError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "grammar error at %d:%d: expected ", e.Line, e.Column)
	switch len(e.Expected) {
	case 0:
		sb.WriteString("nothing")
	case 1:
		sb.WriteString(e.Expected[0])
	default:
		sb.WriteString(strings.Join(e.Expected[:len(e.Expected)-1], ", "))
		sb.WriteString(", or ")
		sb.WriteString(e.Expected[len(e.Expected)-1])
	}
	fmt.Fprintf(&sb, ", found %s", e.Found)
	return sb.String()
}

func grammarErr(line, column int, found string, expected ...string) *GrammarError {
	return &GrammarError{Line: line, Column: column, Expected: expected, Found: found}
}
