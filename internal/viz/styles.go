package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(42)
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// ProgressBar renders fraction (clamped to [0, 1]) as a bar width cells
// wide. It is used for pool occupancy, so a full bar is drawn hot.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(width, filled))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case fraction >= 1:
		return SparkLow.Render(bar)
	case fraction > 0.6:
		return SparkMid.Render(bar)
	}
	return SparkHigh.Render(bar)
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders the last width values, scaled between their min and
// max.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round((v - lo) / rng * float64(len(sparkChars)-1)))
		b.WriteRune(sparkChars[max(0, min(len(sparkChars)-1, idx))])
	}
	return b.String()
}

func Separator(width int) string {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render(strings.Repeat("─", width))
}
