package copyright

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hookwright/copyright-hooks/comment_markers"
	"github.com/hookwright/copyright-hooks/copyright/models"
)

// ErrMultipleAnnotations is matched by every MultipleAnnotationsError.
var ErrMultipleAnnotations = errors.New("found multiple copyright strings")

// MultipleAnnotationsError is returned when content holds more than one copyright
// line. Such files are not corrected automatically.
type MultipleAnnotationsError struct {
	Annotations []*models.ParsedAnnotation
}

func (e *MultipleAnnotationsError) Error() string {
	texts := make([]string, 0, len(e.Annotations))
	for _, a := range e.Annotations {
		texts = append(texts, fmt.Sprintf("line %d: %q", a.Line+1, a.Text))
	}
	return fmt.Sprintf("%s: %s", ErrMultipleAnnotations, strings.Join(texts, ", "))
}

func (e *MultipleAnnotationsError) Is(target error) bool {
	return target == ErrMultipleAnnotations
}

var signifiers = []string{"copyright", "(c)", "©"}

// ParseLine checks whether a single line is a copyright comment.
// It returns nil when the line is not one.
func ParseLine(line string, markers comment_markers.MarkerPair) (*models.ParsedAnnotation, error) {
	if strings.Contains(line, "\n") {
		return nil, fmt.Errorf("ParseLine expects a single line, got %q", line)
	}
	return parseCommentLine(line, 0, 0, markers)
}

// ParseComment searches every line of content for a copyright comment.
// More than one match is an error.
func ParseComment(content string, markers comment_markers.MarkerPair) (*models.ParsedAnnotation, error) {
	var found []*models.ParsedAnnotation

	offset := 0
	for lineNo, line := range strings.Split(content, "\n") {
		annotation, err := parseCommentLine(line, offset, lineNo, markers)
		if err != nil {
			return nil, err
		}
		if annotation != nil {
			found = append(found, annotation)
		}
		offset += len(line) + 1
	}

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		return nil, &MultipleAnnotationsError{Annotations: found}
	}
}

func parseCommentLine(line string, offset, lineNo int, markers comment_markers.MarkerPair) (*models.ParsedAnnotation, error) {
	line = strings.TrimSuffix(line, "\r")
	if line == "" || markers.Leading == "" || !strings.HasPrefix(line, markers.Leading) {
		return nil, nil
	}

	text := strings.TrimRight(line, " \t")
	bodyEnd := len(text)
	if markers.HasTrailing() {
		if !strings.HasSuffix(text, markers.Trailing) {
			return nil, nil
		}
		bodyEnd -= len(markers.Trailing)
	}

	pos := skipBlank(line, len(markers.Leading))
	if pos > bodyEnd {
		return nil, nil
	}

	m, ok := matchAnnotation(line[:bodyEnd], pos)
	if !ok {
		return nil, nil
	}

	return m.build(markers, text, offset, 0, lineNo)
}

// match holds the pieces of a recognised annotation, with spans relative to the
// start of the line.
type match struct {
	signifiers string
	name       string
	startYear  int
	endYear    int
	yearSpan   models.Span
	startSpan  models.Span
	endSpan    models.Span
}

func (m match) build(markers comment_markers.MarkerPair, text string, offset, textStart, lineNo int) (*models.ParsedAnnotation, error) {
	return models.NewParsedAnnotation(models.ParsedAnnotation{
		Markers:    markers,
		Signifiers: m.signifiers,
		StartYear:  m.startYear,
		EndYear:    m.endYear,
		Name:       m.name,
		Text:       text[textStart:],
		Line:       lineNo,
		Offset:     offset + textStart,
		YearSpan:   m.yearSpan.Shift(offset),
		StartSpan:  m.startSpan.Shift(offset),
		EndSpan:    m.endSpan.Shift(offset),
	})
}

// matchAnnotation applies the signifier and year/name grammar to s starting at pos.
// s must already exclude any trailing comment marker.
func matchAnnotation(s string, pos int) (match, bool) {
	var m match

	sigStart := pos
	pos, ok := scanSignifiers(s, pos)
	if !ok {
		return m, false
	}
	m.signifiers = strings.TrimSpace(s[sigStart:pos])

	if pos >= len(s) {
		return m, false
	}

	// A year directly after the signifiers takes precedence, even when the name
	// that follows starts with or contains digits of its own.
	if tok, start, end, next, ok := scanYearToken(s, pos); ok {
		name := strings.TrimSpace(s[next:])
		if name == "" {
			return m, false
		}
		return m.withYears(s, tok, start, end, name)
	}
	return matchNameFirst(m, s, pos)
}

func matchNameFirst(m match, s string, pos int) (match, bool) {
	trimmed := strings.TrimRight(s, " \t")

	endStop := len(trimmed)
	endStart := endStop - 4
	if endStart <= pos || !allDigits(trimmed[endStart:endStop]) || isDigit(trimmed[endStart-1]) {
		return m, false
	}
	end := models.Span{Start: endStart, End: endStop}
	start := end

	// Look back over an optional "DDDD - " prefix to pick up a range.
	j := skipBlankBack(trimmed, endStart)
	if j > pos && trimmed[j-1] == '-' {
		k := skipBlankBack(trimmed, j-1)
		if k-4 > pos && allDigits(trimmed[k-4:k]) && !isDigit(trimmed[k-5]) {
			start = models.Span{Start: k - 4, End: k}
		}
	}

	name := strings.TrimSpace(s[pos:start.Start])
	if name == "" {
		return m, false
	}
	tok := models.Span{Start: start.Start, End: end.End}
	return m.withYears(s, tok, start, end, name)
}

func (m match) withYears(s string, tok, start, end models.Span, name string) (match, bool) {
	startYear, endYear, err := ParseYears(s[tok.Start:tok.End])
	if err != nil {
		return m, false
	}
	m.name = name
	m.startYear = startYear
	m.endYear = endYear
	m.yearSpan = tok
	m.startSpan = start
	m.endSpan = end
	return m, true
}

// scanSignifiers consumes one or more copyright signifiers, each optionally
// followed by blanks.
func scanSignifiers(s string, pos int) (int, bool) {
	matched := false
	for {
		advanced := false
		for _, sig := range signifiers {
			if hasPrefixFold(s[pos:], sig) {
				pos = skipBlank(s, pos+len(sig))
				advanced = true
				matched = true
				break
			}
		}
		if !advanced {
			return pos, matched
		}
	}
}

// scanYearToken reads DDDD or DDDD - DDDD at pos. It returns the token span, the
// start and end digit spans and the position after any trailing blanks.
func scanYearToken(s string, pos int) (tok, start, end models.Span, next int, ok bool) {
	if !fourDigitsAt(s, pos) {
		return tok, start, end, pos, false
	}
	start = models.Span{Start: pos, End: pos + 4}
	end = start

	dash := skipBlank(s, start.End)
	if dash < len(s) && s[dash] == '-' {
		second := skipBlank(s, dash+1)
		if fourDigitsAt(s, second) {
			end = models.Span{Start: second, End: second + 4}
		}
	}

	tok = models.Span{Start: start.Start, End: end.End}
	return tok, start, end, skipBlank(s, tok.End), true
}

// fourDigitsAt reports whether exactly four digits start at pos.
func fourDigitsAt(s string, pos int) bool {
	if pos+4 > len(s) || !allDigits(s[pos:pos+4]) {
		return false
	}
	return pos+4 == len(s) || !isDigit(s[pos+4])
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func skipBlank(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t') {
		pos++
	}
	return pos
}

func skipBlankBack(s string, pos int) int {
	for pos > 0 && (s[pos-1] == ' ' || s[pos-1] == '\t') {
		pos--
	}
	return pos
}
