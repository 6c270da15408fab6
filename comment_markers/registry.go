package comment_markers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// ErrUnsupportedFileType is matched by every UnsupportedFileTypeError.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// MarkerPair holds the comment markers used by a language. Trailing is empty for
// languages whose comments run to the end of the line.
type MarkerPair struct {
	Leading  string
	Trailing string
}

// HasTrailing reports whether comments must be closed with a trailing marker.
func (m MarkerPair) HasTrailing() bool {
	return m.Trailing != ""
}

// Wrap comments out a single line of text.
func (m MarkerPair) Wrap(line string) string {
	if !strings.HasPrefix(line, m.Leading) {
		line = m.Leading + " " + line
	}
	if m.HasTrailing() && !strings.HasSuffix(line, m.Trailing) {
		line = line + " " + m.Trailing
	}
	return line
}

var (
	Hash      = MarkerPair{Leading: "#"}
	Slash     = MarkerPair{Leading: "//"}
	Dash      = MarkerPair{Leading: "--"}
	HTML      = MarkerPair{Leading: "<!---", Trailing: "-->"}
	Block     = MarkerPair{Leading: "/*", Trailing: "*/"}
	Percent   = MarkerPair{Leading: "%"}
	Semicolon = MarkerPair{Leading: ";"}
)

// markers maps a language tag to its comment markers. Tags are lower case and
// come either from the chroma lexer registry or from the bare file extension.
var markers = map[string]MarkerPair{
	"c++":         Slash,
	"cpp":         Slash,
	"c#":          Block,
	"csharp":      Block,
	"cs":          Block,
	"css":         Block,
	"dart":        Slash,
	"go":          Slash,
	"html":        HTML,
	"htm":         HTML,
	"java":        Slash,
	"javascript":  Slash,
	"js":          Slash,
	"kotlin":      Slash,
	"kt":          Slash,
	"lua":         Dash,
	"markdown":    HTML,
	"md":          HTML,
	"perl":        Hash,
	"pl":          Hash,
	"php":         Slash,
	"python":      Hash,
	"py":          Hash,
	"ruby":        Hash,
	"rb":          Hash,
	"rust":        Slash,
	"rs":          Slash,
	"scala":       Slash,
	"sql":         Dash,
	"swift":       Slash,
	"typescript":  Slash,
	"ts":          Slash,
	"bash":        Hash,
	"sh":          Hash,
	"yaml":        Hash,
	"yml":         Hash,
	"toml":        Hash,
	"tex":         Percent,
	"erlang":      Percent,
	"erl":         Percent,
	"matlab":      Percent,
	"common lisp": Semicolon,
	"lisp":        Semicolon,
	"clojure":     Semicolon,
	"clj":         Semicolon,
	"scheme":      Semicolon,
	"scm":         Semicolon,
	"ini":         Semicolon,
}

// UnsupportedFileTypeError is returned when no tag of a file has a comment marker mapping.
type UnsupportedFileTypeError struct {
	Path      string
	Extension string
	Tags      []string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("the file extension '%s' is not currently supported (file %s has tags: %v)", e.Extension, e.Path, e.Tags)
}

func (e *UnsupportedFileTypeError) Is(target error) bool {
	return target == ErrUnsupportedFileType
}

// Tags returns the classifier tags of a file, most specific first.
func Tags(path string) []string {
	var tags []string
	seen := make(map[string]bool)
	add := func(tag string) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	if lexer := lexers.Match(filepath.Base(path)); lexer != nil {
		cfg := lexer.Config()
		add(cfg.Name)
		for _, alias := range cfg.Aliases {
			add(alias)
		}
	}
	add(strings.TrimPrefix(filepath.Ext(path), "."))

	return tags
}

// Lookup returns the comment markers for a file, trying each of its tags in turn.
func Lookup(path string) (MarkerPair, error) {
	tags := Tags(path)
	for _, tag := range tags {
		if pair, ok := markers[tag]; ok {
			return pair, nil
		}
	}
	return MarkerPair{}, &UnsupportedFileTypeError{
		Path:      path,
		Extension: filepath.Ext(path),
		Tags:      tags,
	}
}
