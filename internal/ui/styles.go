// Package ui provides consistent lipgloss styling for jayctl's output.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - consistent across the application
var (
	ColorPrimary = lipgloss.Color("39")  // Bright blue
	ColorSuccess = lipgloss.Color("82")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorInfo    = lipgloss.Color("86")  // Cyan

	ColorText   = lipgloss.Color("252") // Light gray
	ColorSubtle = lipgloss.Color("241") // Medium gray

	ColorRunning = ColorSuccess
	ColorStopped = ColorError
)

// Base styles - building blocks for other output
var (
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	ListItemStyle = lipgloss.NewStyle().
			Foreground(ColorText)
)

// Icons used in CLI output lines.
var (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
)

var (
	RunningIndicator = lipgloss.NewStyle().Foreground(ColorRunning).Render("●")
	StoppedIndicator = lipgloss.NewStyle().Foreground(ColorStopped).Render("○")
)

// FormatControl renders a "key - description" line. No jayctl command
// calls it.
func FormatControl(key, desc string) string {
	return BoldStyle.Copy().Foreground(ColorPrimary).Render(key) + " - " + TextStyle.Render(desc)
}

// FormatStatus renders a running/stopped indicator line, used by "jayctl
// run" to report the socket the compositor is listening on.
func FormatStatus(running bool, status string) string {
	indicator := StoppedIndicator
	if running {
		indicator = RunningIndicator
	}
	return indicator + " " + status
}

// FormatListItem renders a bulleted line, used to list screenshot output
// paths.
func FormatListItem(item string, active bool) string {
	style := ListItemStyle
	if active {
		style = style.Copy().Foreground(ColorPrimary)
	}
	return "  • " + style.Render(item)
}

// FormatLevelLine renders one forwarded log line for "jayctl log", coloring
// by level the way internal/logger colors charmbracelet/log output.
func FormatLevelLine(level, message string) string {
	var style lipgloss.Style
	switch strings.ToUpper(level) {
	case "ERROR", "FATAL":
		style = ErrorStyle
	case "WARN", "WARNING":
		style = WarningStyle
	case "DEBUG":
		style = SubtleStyle
	default:
		style = InfoStyle
	}
	return fmt.Sprintf("%s %s", style.Render(fmt.Sprintf("%-5s", strings.ToUpper(level))), message)
}

// Center horizontally centers content within width.
func Center(width int, content string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

// Right right-aligns content within width.
func Right(width int, content string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, content)
}

// CreateSeparator creates a horizontal line separator.
func CreateSeparator(width int, char string) string {
	if width <= 0 {
		width = 50
	}
	if char == "" {
		char = "─"
	}
	return SubtleStyle.Render(strings.Repeat(char, width))
}
