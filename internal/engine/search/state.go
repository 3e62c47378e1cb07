package search

import "fmt"

// NoMatch is the current index of a State without matches.
const NoMatch = -1

// Direction selects the navigation direction.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "next"
	case Backward:
		return "previous"
	default:
		return "unknown"
	}
}

// State is the result of one Search: the matches in document order and the
// index of the current one. Matches and the current index only ever change
// together.
type State struct {
	Pattern       string
	CaseSensitive bool
	Matches       []Span

	current int
}

// Empty returns an inactive state.
func Empty() *State {
	return &State{current: NoMatch}
}

// Count returns the number of matches.
func (s *State) Count() int {
	if s == nil {
		return 0
	}
	return len(s.Matches)
}

// Active reports whether the state holds any matches.
func (s *State) Active() bool {
	return s.Count() > 0
}

// CurrentIndex returns the zero-based index of the current match, or
// NoMatch.
func (s *State) CurrentIndex() int {
	if !s.Active() {
		return NoMatch
	}
	return s.current
}

// Current returns the current match.
func (s *State) Current() (Span, bool) {
	if !s.Active() {
		return Span{}, false
	}
	return s.Matches[s.current], true
}

// Navigate moves the current match one step in dir, wrapping around at both
// ends, and returns the new current match. It is a no-op without matches.
func (s *State) Navigate(dir Direction) (Span, bool) {
	if !s.Active() {
		return Span{}, false
	}
	total := len(s.Matches)
	switch dir {
	case Backward:
		s.current = (s.current - 1 + total) % total
	default:
		s.current = (s.current + 1) % total
	}
	return s.Matches[s.current], true
}

// Next moves to the next match, wrapping to the first.
func (s *State) Next() (Span, bool) {
	return s.Navigate(Forward)
}

// Prev moves to the previous match, wrapping to the last.
func (s *State) Prev() (Span, bool) {
	return s.Navigate(Backward)
}

// Select makes the match at index current, clamping out-of-range values.
// A negative index or an inactive state leaves the state unchanged.
func (s *State) Select(index int) (Span, bool) {
	if !s.Active() || index < 0 {
		return Span{}, false
	}
	s.current = min(index, len(s.Matches)-1)
	return s.Matches[s.current], true
}

// SelectAtOrAfter makes the first match ending after offset current,
// wrapping to the first match when offset is past all of them.
func (s *State) SelectAtOrAfter(offset int) (Span, bool) {
	if !s.Active() {
		return Span{}, false
	}
	for i, m := range s.Matches {
		if offset < m.End {
			return s.Select(i)
		}
	}
	return s.Select(0)
}

// Position returns the one-based index of the current match and the total,
// for display. Both are zero without matches.
func (s *State) Position() (index, total int) {
	if !s.Active() {
		return 0, 0
	}
	return s.current + 1, len(s.Matches)
}

// Label returns the human-readable match count.
func (s *State) Label() string {
	return MatchLabel(s.Count())
}

// MatchLabel formats a match count: "1 match", "0 matches", "3 matches".
func MatchLabel(n int) string {
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}

// Clone returns an independent copy of the state.
func (s *State) Clone() *State {
	if s == nil {
		return Empty()
	}
	c := *s
	c.Matches = append([]Span(nil), s.Matches...)
	return &c
}
