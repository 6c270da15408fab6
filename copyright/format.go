package copyright

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hookwright/copyright-hooks/comment_markers"
	"github.com/hookwright/copyright-hooks/copyright/models"
)

// DefaultFormat is used when neither a flag nor a config file sets a format.
const DefaultFormat = "Copyright (c) {year} {name}"

// ErrInvalidFormat is matched by every FormatError.
var ErrInvalidFormat = errors.New("invalid copyright format")

// FormatError reports a format template missing required placeholders.
type FormatError struct {
	Format  string
	Missing []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("the format string '%s' is missing the following required keys: %v", e.Format, e.Missing)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// ValidateFormat checks that a template carries both {year} and {name}.
func ValidateFormat(format string) error {
	var missing []string
	for _, key := range []string{"name", "year"} {
		if !strings.Contains(format, "{"+key+"}") {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &FormatError{Format: format, Missing: missing}
	}
	return nil
}

// BuildAnnotation renders a template and makes sure each resulting line is a
// comment in the target language.
func BuildAnnotation(format, name string, start, end int, markers comment_markers.MarkerPair) string {
	text := strings.NewReplacer("{year}", FormatYears(start, end), "{name}", name).Replace(format)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = markers.Wrap(line)
	}
	return strings.Join(lines, "\n")
}

// InsertAnnotation places an annotation at the top of content, or after the
// shebang line separated by a blank line. Leading blank lines of the original
// body are dropped and exactly one blank line follows the annotation. Content
// using CRLF line endings keeps them for the inserted lines.
func InsertAnnotation(content, annotation string) string {
	newline := lineEnding(content)
	lines := splitLines(content, newline)
	var out []string

	if strings.HasPrefix(content, "#!") {
		out = append(out, lines[0], "")
		lines = lines[1:]
	}

	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}

	out = append(out, strings.ReplaceAll(annotation, "\n", newline), "")
	out = append(out, lines...)
	if out[len(out)-1] != "" {
		out = append(out, "")
	}
	return strings.Join(out, newline)
}

// RewriteYears returns content with the annotation's year token changed to cover
// [start, end]. Only the bytes of the year token are touched.
func RewriteYears(content string, a *models.ParsedAnnotation, start, end int) string {
	return spliceYears(content, a, start, end, 0)
}

// rewriteText applies the same change to the annotation's own text.
func rewriteText(a *models.ParsedAnnotation, start, end int) string {
	return spliceYears(a.Text, a, start, end, -a.Offset)
}

func spliceYears(s string, a *models.ParsedAnnotation, start, end, shift int) string {
	if !a.IsRange() || start == end {
		return splice(s, a.YearSpan.Shift(shift), FormatYears(start, end))
	}
	// End first so the start span stays valid.
	s = splice(s, a.EndSpan.Shift(shift), strconv.Itoa(end))
	return splice(s, a.StartSpan.Shift(shift), strconv.Itoa(start))
}

func splice(s string, span models.Span, replacement string) string {
	return s[:span.Start] + replacement + s[span.End:]
}

func lineEnding(content string) string {
	if strings.Contains(content, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// splitLines splits on newline without producing a trailing empty element for
// content that ends with one.
func splitLines(content, newline string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, newline), newline)
}
