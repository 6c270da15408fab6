package utils

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	styles "github.com/hookwright/copyright-hooks/constants/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultTheme is the chroma style used to highlight inserted annotations.
const DefaultTheme = "dracula"

// OutputRenderer writes the per-file report of a hook run. Colour is used only
// when the writer is a terminal that supports it.
type OutputRenderer struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	palette  styles.Palette
	theme    string
}

// NewOutputRenderer creates an OutputRenderer for out.
func NewOutputRenderer(out io.Writer, theme string) *OutputRenderer {
	if theme == "" {
		theme = DefaultTheme
	}
	renderer := lipgloss.NewRenderer(out)
	return &OutputRenderer{
		out:      out,
		renderer: renderer,
		palette:  styles.NewPalette(renderer),
		theme:    theme,
	}
}

// ColorEnabled reports whether escape sequences are written.
func (o *OutputRenderer) ColorEnabled() bool {
	return o.renderer.ColorProfile() != termenv.Ascii
}

// Inserted reports a newly added annotation.
func (o *OutputRenderer) Inserted(path, annotation string) error {
	fmt.Fprintf(o.out, "Fixing file `%s` - added line(s):\n", o.palette.Path.Render(path))
	if err := o.highlight(path, annotation+"\n"); err != nil {
		return err
	}
	fmt.Fprintln(o.out)
	return nil
}

// Updated reports a rewritten annotation as a two line diff.
func (o *OutputRenderer) Updated(path, oldText, newText string) {
	fmt.Fprintf(o.out, "Fixing file `%s`:\n", o.palette.Path.Render(path))
	fmt.Fprintln(o.out, FormatDiff(oldText, newText, o.palette))
}

func (o *OutputRenderer) highlight(path, source string) error {
	if !o.ColorEnabled() {
		_, err := io.WriteString(o.out, source)
		return err
	}

	lexer := "plaintext"
	if l := lexers.Match(filepath.Base(path)); l != nil {
		lexer = l.Config().Name
	}
	if err := quick.Highlight(o.out, source, lexer, formatterFor(o.renderer.ColorProfile()), o.theme); err != nil {
		return fmt.Errorf("failed to highlight annotation: %w", err)
	}
	return nil
}

func formatterFor(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	default:
		return "terminal"
	}
}

// FormatDiff renders old and new as "  - old" and "  + new" lines, styling the
// characters removed from old and added to new.
func FormatDiff(oldText, newText string, palette styles.Palette) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(oldText, newText, false))

	var oldLine, newLine strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldLine.WriteString(d.Text)
			newLine.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			oldLine.WriteString(palette.Removed.Render(d.Text))
		case diffmatchpatch.DiffInsert:
			newLine.WriteString(palette.Added.Render(d.Text))
		}
	}

	return "  - " + oldLine.String() + "\n  + " + newLine.String()
}
