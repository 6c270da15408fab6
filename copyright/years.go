package copyright

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrYearSyntax is matched by every YearSyntaxError.
var ErrYearSyntax = errors.New("invalid year syntax")

// YearSyntaxError reports a year token that is neither DDDD nor DDDD - DDDD.
type YearSyntaxError struct {
	Text string
}

func (e *YearSyntaxError) Error() string {
	return fmt.Sprintf("could not interpret year value '%s'", e.Text)
}

func (e *YearSyntaxError) Is(target error) bool {
	return target == ErrYearSyntax
}

// ParseYears decodes a year or year range token into its inclusive bounds.
func ParseYears(text string) (int, int, error) {
	groups := strings.Split(text, "-")
	switch len(groups) {
	case 1:
		year, ok := parseYear(groups[0], false)
		if !ok {
			return 0, 0, &YearSyntaxError{Text: text}
		}
		return year, year, nil
	case 2:
		start, okStart := parseYear(groups[0], true)
		end, okEnd := parseYear(groups[1], true)
		if !okStart || !okEnd {
			return 0, 0, &YearSyntaxError{Text: text}
		}
		return start, end, nil
	default:
		return 0, 0, &YearSyntaxError{Text: text}
	}
}

// parseYear accepts exactly four digits, optionally padded with blanks when it
// is one side of a range.
func parseYear(s string, padded bool) (int, bool) {
	if padded {
		s = strings.Trim(s, " \t")
	}
	if len(s) != 4 || !allDigits(s) {
		return 0, false
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return year, true
}

// FormatYears renders a range the way new annotations write it.
func FormatYears(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d - %d", start, end)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
