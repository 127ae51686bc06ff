package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/packit/internal/trip"
)

// Catppuccin Mocha.
const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
)

const (
	colorAccent  = colorMauve
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle   = lipgloss.NewStyle().Foreground(colorOverlay1)
	focusStyle   = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	textStyle    = lipgloss.NewStyle().Foreground(colorText)
	dimStyle     = lipgloss.NewStyle().Foreground(colorOverlay1)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarning)
	stepActive   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	stepDone     = lipgloss.NewStyle().Foreground(colorSuccess)
	stepTodo     = lipgloss.NewStyle().Foreground(colorOverlay1)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPeach)
	barEmpty     = lipgloss.NewStyle().Foreground(colorSurface1)
)

const barWidth = 30

// weightBar draws the capped percentage of the limit, coloured by status.
func weightBar(ws trip.WeightStatus) string {
	filled := int(math.Round(ws.Percentage / 100 * barWidth))
	filled = max(0, min(filled, barWidth))
	fill := successStyle
	switch {
	case ws.OverLimit:
		fill = errorStyle
	case ws.NearLimit:
		fill = warnStyle
	}
	return fill.Render(strings.Repeat("█", filled)) + barEmpty.Render(strings.Repeat("░", barWidth-filled))
}

func captionStyle(ws trip.WeightStatus) lipgloss.Style {
	switch {
	case ws.OverLimit:
		return errorStyle
	case ws.NearLimit:
		return warnStyle
	default:
		return successStyle
	}
}

// truncate shortens s to width cells, appending "…" if truncated.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
