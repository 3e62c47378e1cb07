// Package search finds every occurrence of a literal pattern in a text.
//
// Search scans the text once, left to right, and returns a State holding
// the non-overlapping matches in document order together with a "current
// match" cursor:
//
//	st := search.Search("AbcAbc", "abc", false)
//	st.Count()     // 2
//	st.Current()   // {0 3}
//	st.Next()      // {3 6}
//	st.Next()      // {0 3}, navigation wraps around
//
// Offsets are character (code point) offsets, and a match always spans as
// many characters as the pattern. Case-insensitive matching compares the
// full Unicode case folding of both sides.
//
// A State describes the text it was computed from and nothing else. Any
// edit of that text invalidates it; callers must run Search again rather
// than adjust offsets.
package search
