package models

import (
	"errors"
	"fmt"

	"github.com/hookwright/copyright-hooks/comment_markers"
)

// ErrInvalidYearRange is returned when an annotation would end before it starts.
var ErrInvalidYearRange = errors.New("copyright end year cannot be before the start year")

// Span is a half-open byte range [Start, End) within file content.
type Span struct {
	Start int
	End   int
}

// Shift returns the span moved by delta bytes.
func (s Span) Shift(delta int) Span {
	return Span{Start: s.Start + delta, End: s.End + delta}
}

// ParsedAnnotation holds the components of a copyright line found in a file.
// It is built fresh on every parse and never modified.
type ParsedAnnotation struct {
	Markers    comment_markers.MarkerPair
	Signifiers string
	StartYear  int
	EndYear    int
	Name       string
	// Text is the annotation exactly as it appears in the source.
	Text string

	Line   int
	Offset int
	// YearSpan covers the whole year token, StartSpan and EndSpan its digit groups.
	// For a single year all three are equal. Spans are absolute offsets in the content.
	YearSpan  Span
	StartSpan Span
	EndSpan   Span
}

// NewParsedAnnotation validates the year range and returns the annotation.
func NewParsedAnnotation(a ParsedAnnotation) (*ParsedAnnotation, error) {
	if a.EndYear < a.StartYear {
		return nil, fmt.Errorf("%w: got %d and %d respectively", ErrInvalidYearRange, a.EndYear, a.StartYear)
	}
	return &a, nil
}

// IsRange reports whether the annotation carries a start and an end year.
func (a *ParsedAnnotation) IsRange() bool {
	return a.StartSpan != a.EndSpan
}

// Covers reports whether the annotation's years include [start, end].
func (a *ParsedAnnotation) Covers(start, end int) bool {
	return a.StartYear <= start && a.EndYear >= end
}

func (a *ParsedAnnotation) String() string {
	return fmt.Sprintf("ParsedAnnotation{markers: %q %q, signifiers: %q, years: %d-%d, name: %q, text: %q}",
		a.Markers.Leading, a.Markers.Trailing, a.Signifiers, a.StartYear, a.EndYear, a.Name, a.Text)
}
