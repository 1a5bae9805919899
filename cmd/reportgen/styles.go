package main

import "github.com/charmbracelet/lipgloss"

// terminalStyles is the color theme for the render command summary.
// Lipgloss automatically degrades to no-color when output is not a
// TTY.
type terminalStyles struct {
	header lipgloss.Style
	good   lipgloss.Style
	warn   lipgloss.Style
	bad    lipgloss.Style
	muted  lipgloss.Style
}

func summaryStyles() terminalStyles {
	return terminalStyles{
		header: lipgloss.NewStyle().Bold(true),
		good:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		bad:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}
