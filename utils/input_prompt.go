package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hookwright/copyright-hooks/constants/lipgloss"
)

// Confirm asks a yes/no question and reads the answer from reader. Anything other
// than "y" or "yes" is a no, including end of input.
func Confirm(reader *bufio.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprint(out, question+" (y/N) "+lipgloss.BlueSky.Render("> "))

	answer, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("error reading input: %w", err)
	}

	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}
