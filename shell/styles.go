package shell

import "github.com/charmbracelet/lipgloss"

// Terminal styles for the inspection shell. Lipgloss degrades to plain text
// when the output is not a colour terminal or NO_COLOR is set.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}).
			Bold(true)

	headerStyle = lipgloss.NewStyle().Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"})
)
