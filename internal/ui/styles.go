package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default (white/black): primary text
// - Accent (soft teal #2DD4BF): paths, highlights
// - Muted (gray): secondary info

var (
	// Accent style for file paths and highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#2DD4BF"))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)
)
