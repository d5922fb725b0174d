package cmd

import "github.com/charmbracelet/lipgloss"

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

func renderSuccess(msg string) string { return successStyle.Render("✓ " + msg) }
func renderFailure(msg string) string { return failureStyle.Render("✗ " + msg) }
func renderWarning(msg string) string { return warningStyle.Render("! " + msg) }
func renderPrompt(msg string) string  { return promptStyle.Render(msg) }
