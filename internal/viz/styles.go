package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	ChaoticStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4488")).Bold(true)
	RegularStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	FailedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)
)

// ProgressBar renders a bar of width cells filled to fraction.
func ProgressBar(fraction float64, width int) string {
	if width < 1 {
		return ""
	}
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return RegularStyle.Render(strings.Repeat("█", filled)) + Subtle.Render(strings.Repeat("░", width-filled))
}

// KeyValues lays out label/value pairs in two aligned columns.
func KeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = MetricLabel.Render(p[0]+strings.Repeat(" ", width-len(p[0]))) + "  " + MetricValue.Render(p[1])
	}
	return strings.Join(lines, "\n")
}

func Box(title, content string) string {
	return Panel.Render(Title.Render(title) + "\n\n" + content)
}
