// Package text implements the human-editable indented text format and
// its round trip to and from the plugin object tree, grounded on the
// original tool's esp_to_text.cpp and text_to_esp.cpp.
package text

import (
	"fmt"
	"strings"

	"github.com/tesrec/plugin2text/errs"
)

// lineScanner walks a text document one logical line at a time,
// tracking each line's indent depth (number of leading two-space
// pairs) so the reader's sole loop predicate can be "does the next
// line continue at the current indent" — tryContinueCurrentIndent in
// the original parser.
type lineScanner struct {
	lines []string
	pos   int
}

func newLineScanner(src string) *lineScanner {
	raw := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	// Every line carries a trailing newline, so the split leaves one
	// final empty element; dropping it makes "scanner exhausted" line up
	// with "all input consumed".
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	return &lineScanner{lines: raw}
}

func (s *lineScanner) done() bool { return s.pos >= len(s.lines) }

// peekIndent returns the indent depth of the next non-exhausted line, or
// -1 if the scanner is exhausted.
func (s *lineScanner) peekIndent() int {
	if s.done() {
		return -1
	}
	line := s.lines[s.pos]
	n := 0
	for strings.HasPrefix(line[2*n:], "  ") {
		n++
	}
	return n
}

// tryContinueCurrentIndent is the sole loop predicate the reader uses:
// true iff the next line exists and sits at exactly indent. Per the
// original parser, anything shallower ends the current block; anything
// deeper is a hard error the caller should surface as ErrBadIndent.
func (s *lineScanner) tryContinueCurrentIndent(indent int) (bool, error) {
	if s.done() {
		return false, nil
	}
	got := s.peekIndent()
	if got == indent {
		return true, nil
	}
	if got > indent {
		return false, fmt.Errorf("%w: line %d indented deeper than expected", errs.ErrBadIndent, s.pos+1)
	}
	return false, nil
}

// expectLine consumes exactly indent pairs of leading spaces from the
// current line and returns the remainder, asserting the line doesn't
// have extra, unaccounted-for leading whitespace.
func (s *lineScanner) expectLine(indent int) (string, error) {
	if s.done() {
		return "", fmt.Errorf("%w: expected line at indent %d, got end of input", errs.ErrTruncated, indent)
	}
	line := s.lines[s.pos]
	prefix := strings.Repeat("  ", indent)
	if !strings.HasPrefix(line, prefix) {
		return "", fmt.Errorf("%w: line %d", errs.ErrBadIndent, s.pos+1)
	}
	rest := line[len(prefix):]
	if strings.HasPrefix(rest, " ") {
		return "", fmt.Errorf("%w: line %d has extra leading space", errs.ErrBadIndent, s.pos+1)
	}
	s.pos++
	return rest, nil
}

func (s *lineScanner) lineNo() int { return s.pos + 1 }

// rawLine consumes the next line verbatim after stripping exactly
// 2*indent leading spaces, without expectLine's "no extra leading
// space" check. Triple-quoted string body content may legitimately
// start with a literal space, which expectLine would otherwise reject.
func (s *lineScanner) rawLine(indent int) (string, error) {
	if s.done() {
		return "", fmt.Errorf("%w: expected raw line at indent %d, got end of input", errs.ErrTruncated, indent)
	}
	line := s.lines[s.pos]
	prefix := strings.Repeat("  ", indent)
	if !strings.HasPrefix(line, prefix) {
		return "", fmt.Errorf("%w: line %d", errs.ErrBadIndent, s.pos+1)
	}
	s.pos++
	return line[len(prefix):], nil
}

// writer accumulates output text with indent-aware line emission.
type writer struct {
	b strings.Builder
}

func (w *writer) line(indent int, format string, args ...any) {
	w.b.WriteString(strings.Repeat("  ", indent))
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteByte('\n')
}

func (w *writer) String() string { return w.b.String() }
