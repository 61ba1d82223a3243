package main

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	actionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)
