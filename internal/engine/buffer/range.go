package buffer

import "fmt"

// Range is a half-open character range [Start, End).
type Range struct {
	Start int
	End   int
}

// NewRange creates a Range, swapping the bounds if they are reversed.
func NewRange(start, end int) Range {
	if end < start {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the number of characters covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if Start <= End.
func (r Range) IsValid() bool {
	return r.Start <= r.End
}

// Contains returns true if the given offset is within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// ScrollPosition is the top-left corner of the visible part of a buffer,
// in lines and display columns.
type ScrollPosition struct {
	Line   int
	Column int
}

// Point is a zero-based line and character column.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
