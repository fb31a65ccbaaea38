package main

import "github.com/charmbracelet/lipgloss"

// Terminal styles for command output.
var (
	primaryColor = lipgloss.Color("86")
	successColor = lipgloss.Color("42")
	warningColor = lipgloss.Color("214")
	errorColor   = lipgloss.Color("196")
	subtleColor  = lipgloss.Color("241")

	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor)
)
