package lipgloss

import "github.com/charmbracelet/lipgloss"

// Shared styles for status messages written to the terminal.
var (
	Red     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	Green   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	Yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	BlueSky = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	Info    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// Palette holds the styles used for file output, bound to the renderer of one
// writer so that colour is dropped when that writer is not a terminal.
type Palette struct {
	Removed lipgloss.Style
	Added   lipgloss.Style
	Path    lipgloss.Style
}

// NewPalette creates the file output styles for a renderer.
func NewPalette(r *lipgloss.Renderer) Palette {
	return Palette{
		Removed: r.NewStyle().Foreground(lipgloss.Color("9")),
		Added:   r.NewStyle().Foreground(lipgloss.Color("10")),
		Path:    r.NewStyle().Bold(true),
	}
}
