package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorRed     = lipgloss.Color("#FF5555")
	colorYellow  = lipgloss.Color("#F1FA8C")
	colorGreen   = lipgloss.Color("#50FA7B")
	colorCyan    = lipgloss.Color("#8BE9FD")
	colorMagenta = lipgloss.Color("#FF79C6")
	colorOrange  = lipgloss.Color("#FFB86C")
	colorWhite   = lipgloss.Color("#F8F8F2")
	colorGray    = lipgloss.Color("#6272A4")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	valueStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	warnStyle   = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	critStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	headerStyle = lipgloss.NewStyle().Foreground(colorMagenta).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(colorGray)
	dimStyle    = lipgloss.NewStyle().Foreground(colorGray)
	accentStyle = lipgloss.NewStyle().Foreground(colorOrange)
)

// tempStyle colors a temperature by where it sits in the stock profile:
// the High plateau starts at 35, the Medium peak is at 23.
func tempStyle(c float64) lipgloss.Style {
	switch {
	case c >= 35:
		return critStyle
	case c >= 23:
		return warnStyle
	default:
		return okStyle
	}
}

// powerStyle colors a TEC power draw; High membership rises from 15 W.
func powerStyle(w float64) lipgloss.Style {
	switch {
	case w >= 25:
		return critStyle
	case w >= 15:
		return warnStyle
	default:
		return okStyle
	}
}

func dutyStyle(pct float64) lipgloss.Style {
	switch {
	case pct >= 80:
		return critStyle
	case pct >= 50:
		return warnStyle
	default:
		return okStyle
	}
}

// degreeStyle colors a membership degree by how strongly it fires.
func degreeStyle(d float64) lipgloss.Style {
	switch {
	case d >= 0.5:
		return okStyle
	case d > 0:
		return valueStyle
	default:
		return dimStyle
	}
}
