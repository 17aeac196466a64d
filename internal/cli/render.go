package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	accentStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	successStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorRed)
)

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTarget renders the "Target directory" banner line.
func RenderTarget(path string, created bool) string {
	line := labelStyle.Render("Target directory: ") + valueStyle.Render(path)
	if created {
		line += " " + warnStyle.Render("(created)")
	}
	return line
}

// RenderPrompt renders the line prompt shown before each name is read.
func RenderPrompt() string {
	return valueStyle.Render("Enter your project name...") + "\n" + accentStyle.Render("-> ")
}

// RenderCreated renders a directory creation confirmation.
func RenderCreated(path string) string {
	return successStyle.Render("Created directory: ") + valueStyle.Render(path)
}

// RenderError renders an error line for stderr.
func RenderError(err error) string {
	return errorStyle.Render("error: ") + err.Error()
}

// RenderGoodbye renders the farewell line.
func RenderGoodbye() string {
	return accentStyle.Render("Goodbye!")
}

// RenderSaved renders the final persisted counter.
func RenderSaved(dirName string, counter int64, created int) string {
	return fmt.Sprintf("%s %s %s %s",
		labelStyle.Render("Saved counter"),
		valueStyle.Render(FormatNumber(counter)),
		labelStyle.Render("for"),
		valueStyle.Render(dirName),
	) + labelStyle.Render(fmt.Sprintf(" (%s this session)", Pluralize(created, "directory", "directories")))
}

// RenderKeyValues renders aligned "key: value" lines, one per pair.
func RenderKeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}

	var b strings.Builder
	for _, p := range pairs {
		b.WriteString("  ")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", width+1, p[0]+":")))
		b.WriteString(" ")
		b.WriteString(valueStyle.Render(p[1]))
		b.WriteString("\n")
	}
	return b.String()
}
