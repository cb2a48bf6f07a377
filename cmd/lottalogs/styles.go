package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF5F87")
	mutedColor   = lipgloss.Color("#767676")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true)

	successStyle = lipgloss.NewStyle().Bold(true).Foreground(successColor)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	keyStyle     = lipgloss.NewStyle().Bold(true)
)

func formatKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s", keyStyle.Render(key), value)
}
