// Package styles provides shared lipgloss styles for CLI output.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	ColorRed    = lipgloss.Color("#d75f6b")
	ColorGreen  = lipgloss.Color("#9ece6a")
	ColorYellow = lipgloss.Color("#e0af68")
	ColorBlue   = lipgloss.Color("#7aa2f7")
	ColorGray   = lipgloss.Color("#565f89")
	ColorWhite  = lipgloss.Color("#c0caf5")
)

var (
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorRed)
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	WarnStyle    = lipgloss.NewStyle().Foreground(ColorYellow)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorGray)
	SectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// CommandHeaderStyle styles the hook command headers.
var CommandHeaderStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true)

// CommandStyle styles the command text.
var CommandStyle = lipgloss.NewStyle().
	Foreground(ColorWhite)

// DividerStyle styles horizontal dividers.
var DividerStyle = lipgloss.NewStyle().
	Foreground(ColorGray)
