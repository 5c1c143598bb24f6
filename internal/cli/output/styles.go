package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used for text output.
type Styles struct {
	Header  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Keyword lipgloss.Style
}

// NewStyles builds styles bound to w. Colors are dropped when w is not a
// terminal or NO_COLOR is set.
func NewStyles(w io.Writer, isTTY bool) *Styles {
	re := lipgloss.NewRenderer(w)
	if !isTTY || termenv.EnvNoColor() {
		re.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Header:  re.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Success: re.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: re.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   re.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Muted:   re.NewStyle().Faint(true),
		Keyword: re.NewStyle().Foreground(lipgloss.Color("13")),
	}
}
