// Package replace rewrites search matches in a buffer.
//
// Both operations mutate the buffer through DeleteRange/InsertAt and then
// search the new content again; offsets from the previous search are never
// patched and reused.
package replace

import (
	"github.com/dshills/notebook/internal/engine/search"
)

// Buffer is the part of the text buffer the replace operations need.
type Buffer interface {
	Text() string
	DeleteRange(start, end int) error
	InsertAt(offset int, s string) error
}

// Result reports what a replace operation did.
type Result struct {
	// Replaced is the number of matches rewritten.
	Replaced int

	// State is the search state of the buffer after the operation.
	State *search.State

	// Err is set when the buffer rejected a mutation. Replacements applied
	// before the failure stay in the buffer.
	Err error
}

// One replaces the current match of st with replacement and searches the
// buffer again with the same pattern and case sensitivity.
//
// It is a no-op when st has no current match or when the current span no
// longer holds the pattern, which means st was computed from different
// text. In the stale case the returned state is a fresh search.
func One(buf Buffer, st *search.State, replacement string) Result {
	span, ok := st.Current()
	if !ok {
		return Result{State: st}
	}

	text := buf.Text()
	if !search.MatchesAt(text, span, st.Pattern, st.CaseSensitive) {
		return Result{State: search.Search(text, st.Pattern, st.CaseSensitive)}
	}

	res := Result{}
	if err := apply(buf, span, replacement); err != nil {
		res.Err = err
	} else {
		res.Replaced = 1
	}
	res.State = search.Search(buf.Text(), st.Pattern, st.CaseSensitive)
	return res
}

// All replaces every occurrence of pattern with replacement.
//
// Matches are rewritten from the highest offset down, so every span still
// addresses the text it was found in when its turn comes. An empty pattern
// or a text without matches leaves the buffer untouched.
func All(buf Buffer, pattern, replacement string, caseSensitive bool) Result {
	if pattern == "" {
		return Result{State: search.Empty()}
	}

	st := search.Search(buf.Text(), pattern, caseSensitive)
	if !st.Active() {
		return Result{State: st}
	}

	res := Result{}
	for i := len(st.Matches) - 1; i >= 0; i-- {
		if err := apply(buf, st.Matches[i], replacement); err != nil {
			res.Err = err
			break
		}
		res.Replaced++
	}
	res.State = search.Search(buf.Text(), pattern, caseSensitive)
	return res
}

// apply deletes span and inserts replacement at its start.
func apply(buf Buffer, span search.Span, replacement string) error {
	if err := buf.DeleteRange(span.Start, span.End); err != nil {
		return err
	}
	if replacement == "" {
		return nil
	}
	return buf.InsertAt(span.Start, replacement)
}
