package style

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	Gray       = lipgloss.Color("240")
	PaleYellow = lipgloss.Color("229")
	NeonPurple = lipgloss.Color("57")
	Lilac      = lipgloss.Color("105")
	Green      = lipgloss.Color("42")
	Amber      = lipgloss.Color("214")
	Red        = lipgloss.Color("196")
)

var (
	HorizontalPadding = 1

	// Severity labels, keyed by severity name
	Severity = map[string]lipgloss.Style{
		"Low":    lipgloss.NewStyle().Bold(true).Foreground(Green),
		"Medium": lipgloss.NewStyle().Bold(true).Foreground(Amber),
		"High":   lipgloss.NewStyle().Bold(true).Foreground(Red),
	}

	Label = lipgloss.NewStyle().Foreground(Lilac)

	FormContainer = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(Gray).
			Padding(0, HorizontalPadding)

	FieldLabel = lipgloss.NewStyle().Width(14).Foreground(Gray)

	FocusedFieldLabel = FieldLabel.Copy().Foreground(PaleYellow).Bold(true)

	Selector = lipgloss.NewStyle().Padding(0, 1)

	FocusedSelector = Selector.Copy().Foreground(PaleYellow).Background(NeonPurple).Bold(true)

	Help = lipgloss.NewStyle().Foreground(Lilac)
)

// RenderSeverity colors a severity label; unknown severities render unstyled
func RenderSeverity(s string) string {
	if st, ok := Severity[s]; ok {
		return st.Render(s)
	}
	return s
}
