package renderer

// Span is a half-open character range [Start, End).
type Span struct {
	Start, End int
}

// Contains reports whether offset lies inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Frame is everything drawn in one pass.
type Frame struct {
	Text string

	// ScrollLine and ScrollColumn are the first visible line and display
	// column of the text area.
	ScrollLine   int
	ScrollColumn int

	// Cursor is a character offset into Text.
	Cursor    int
	Selection Span

	// Matches are sorted and non-overlapping. Current indexes Matches, or
	// is negative when no match is current.
	Matches []Span
	Current int

	// Bar is nil when neither the find nor the replace bar is open.
	Bar *Bar

	Status string
}

// Bar describes the open search or replace bar.
type Bar struct {
	Fields []Field

	// Focus indexes the field holding the cursor.
	Focus int

	CaseSensitive bool

	// Info is shown after the case toggle on the first row, for example
	// "2/5  5 matches".
	Info string
}

// Field is one labeled input of a bar.
type Field struct {
	Label string
	Value string
}

// Rows returns the number of screen rows the bar occupies.
func (b *Bar) Rows() int {
	if b == nil {
		return 0
	}
	return len(b.Fields)
}
