package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	revealStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	panelStyle    = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
)

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

func formatLon(v float64) string {
	if v < 0 {
		return fmt.Sprintf("%.1f°W", math.Abs(v))
	}
	return fmt.Sprintf("%.1f°E", v)
}

func formatLat(v float64) string {
	if v < 0 {
		return fmt.Sprintf("%.1f°S", math.Abs(v))
	}
	return fmt.Sprintf("%.1f°N", v)
}

func formatPoint(p orb.Point) string {
	return formatLat(p.Lat()) + " " + formatLon(p.Lon())
}

func formatBound(b orb.Bound) string {
	return fmt.Sprintf("%s..%s, %s..%s",
		formatLon(b.Min.Lon()), formatLon(b.Max.Lon()),
		formatLat(b.Min.Lat()), formatLat(b.Max.Lat()))
}
