package search

import (
	"fmt"

	"golang.org/x/text/cases"
)

// Span is a half-open character range [Start, End) covering one match.
type Span struct {
	Start int
	End   int
}

// Len returns the number of characters in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)", s.Start, s.End)
}

// Search scans text for pattern and returns a fresh State. An empty pattern
// yields no matches.
func Search(text, pattern string, caseSensitive bool) *State {
	st := &State{
		Pattern:       pattern,
		CaseSensitive: caseSensitive,
		current:       NoMatch,
	}
	if pattern == "" {
		return st
	}

	st.Matches = newMatcher(pattern, caseSensitive).scan([]rune(text))
	if len(st.Matches) > 0 {
		st.current = 0
	}
	return st
}

// Count returns the number of non-overlapping occurrences of pattern.
func Count(text, pattern string, caseSensitive bool) int {
	if pattern == "" {
		return 0
	}
	return len(newMatcher(pattern, caseSensitive).scan([]rune(text)))
}

// matcher compares a pattern against windows of text.
type matcher struct {
	pattern       []rune
	caseSensitive bool

	// Only used when case-insensitive.
	folder cases.Caser
	folded string
}

func newMatcher(pattern string, caseSensitive bool) *matcher {
	m := &matcher{
		pattern:       []rune(pattern),
		caseSensitive: caseSensitive,
	}
	if !caseSensitive {
		m.folder = cases.Fold()
		m.folded = m.folder.String(pattern)
	}
	return m
}

// scan returns the non-overlapping matches in text. After a match the scan
// resumes at its end; otherwise it advances by one character.
func (m *matcher) scan(text []rune) []Span {
	n := len(m.pattern)
	if n == 0 {
		return nil
	}

	var spans []Span
	for i := 0; i+n <= len(text); {
		if m.matchAt(text, i) {
			spans = append(spans, Span{Start: i, End: i + n})
			i += n
			continue
		}
		i++
	}
	return spans
}

// matchAt reports whether the pattern occurs at text[i:]. The caller
// guarantees the window fits.
func (m *matcher) matchAt(text []rune, i int) bool {
	window := text[i : i+len(m.pattern)]
	if equalRunes(window, m.pattern) {
		return true
	}
	if m.caseSensitive {
		return false
	}
	return m.folder.String(string(window)) == m.folded
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MatchesAt reports whether pattern occurs in text exactly at span, under
// the same comparison Search uses. It is how callers detect that a span
// computed earlier no longer describes the text.
func MatchesAt(text string, span Span, pattern string, caseSensitive bool) bool {
	runes := []rune(text)
	if pattern == "" || span.Start < 0 || span.End > len(runes) {
		return false
	}
	m := newMatcher(pattern, caseSensitive)
	if span.Len() != len(m.pattern) {
		return false
	}
	return m.matchAt(runes, span.Start)
}
