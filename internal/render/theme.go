package render

import "github.com/charmbracelet/lipgloss"

// Theme holds styles for the report's line categories.
type Theme struct {
	Header   lipgloss.Style
	Member   lipgloss.Style
	Hole     lipgloss.Style
	Boundary lipgloss.Style
	Trailer  lipgloss.Style
}

// Plain renders every line unstyled.
func Plain() Theme {
	s := lipgloss.NewStyle()
	return Theme{Header: s, Member: s, Hole: s, Boundary: s, Trailer: s}
}

// Default highlights what the reader came for: holes in red,
// cache-line boundaries in blue, the summary dimmed.
func Default() Theme {
	return Theme{
		Header:   lipgloss.NewStyle().Bold(true),
		Member:   lipgloss.NewStyle(),
		Hole:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Boundary: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		Trailer:  lipgloss.NewStyle().Faint(true),
	}
}
