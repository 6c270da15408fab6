package copyright

import (
	"context"
	"fmt"
	"strings"

	"github.com/hookwright/copyright-hooks/comment_markers"
	"github.com/hookwright/copyright-hooks/copyright/models"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ParseDocstring looks for a copyright annotation inside a Python module docstring.
// Docstrings carry no comment markers and the signifier may appear anywhere on a
// line. The first match wins.
func ParseDocstring(ctx context.Context, content string) (*models.ParsedAnnotation, error) {
	start, end, ok, err := moduleDocstring(ctx, []byte(content))
	if err != nil || !ok {
		return nil, err
	}

	lineNo := strings.Count(content[:start], "\n")
	offset := start
	for _, line := range strings.Split(content[start:end], "\n") {
		annotation, err := parseDocstringLine(line, offset, lineNo)
		if err != nil {
			return nil, err
		}
		if annotation != nil {
			return annotation, nil
		}
		offset += len(line) + 1
		lineNo++
	}
	return nil, nil
}

func parseDocstringLine(line string, offset, lineNo int) (*models.ParsedAnnotation, error) {
	line = strings.TrimSuffix(line, "\r")
	text := strings.TrimRight(line, " \t")

	for i := 0; i < len(text); i++ {
		if !startsWithSignifier(text[i:]) {
			continue
		}
		m, ok := matchAnnotation(text, i)
		if !ok {
			return nil, nil
		}
		return m.build(comment_markers.MarkerPair{}, text, offset, i, lineNo)
	}
	return nil, nil
}

func startsWithSignifier(s string) bool {
	for _, sig := range signifiers {
		if hasPrefixFold(s, sig) {
			return true
		}
	}
	return false
}

// moduleDocstring returns the byte range of the module docstring's body, quotes
// and string prefix excluded.
func moduleDocstring(ctx context.Context, src []byte) (int, int, bool, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return 0, 0, false, fmt.Errorf("failed to parse python source: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		if child.Type() != "expression_statement" || child.NamedChildCount() == 0 {
			return 0, 0, false, nil
		}
		str := child.NamedChild(0)
		if str.Type() != "string" {
			return 0, 0, false, nil
		}
		start, end, ok := stripQuotes(src, int(str.StartByte()), int(str.EndByte()))
		return start, end, ok, nil
	}
	return 0, 0, false, nil
}

func stripQuotes(src []byte, start, end int) (int, int, bool) {
	for start < end && strings.ContainsRune("rRuUbBfF", rune(src[start])) {
		start++
	}
	raw := string(src[start:end])
	for _, delim := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(raw, delim) && strings.HasSuffix(raw, delim) && len(raw) >= 2*len(delim) {
			return start + len(delim), end - len(delim), true
		}
	}
	return 0, 0, false
}
