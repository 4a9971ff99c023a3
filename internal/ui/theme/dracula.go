package theme

import "github.com/charmbracelet/lipgloss"

// Dracula theme - Dark theme with vibrant colors
// https://draculatheme.com/
var Dracula = Theme{
	Name: "dracula",

	Background: lipgloss.Color("#282A36"),
	Foreground: lipgloss.Color("#F8F8F2"),
	Subtle:     lipgloss.Color("#6272A4"),
	Highlight:  lipgloss.Color("#44475A"),
	Border:     lipgloss.Color("#6272A4"),

	// Accents
	Primary:   lipgloss.Color("#BD93F9"), // Purple
	Secondary: lipgloss.Color("#8BE9FD"),
	Info:      lipgloss.Color("#8BE9FD"),
	Success:   lipgloss.Color("#50FA7B"),
	Warning:   lipgloss.Color("#F1FA8C"),
	Error:     lipgloss.Color("#FF5555"),

	// Listing details
	Money:   lipgloss.Color("#FFB86C"), // Orange
	SkillBg: lipgloss.Color("#44475A"),

	// Project status
	ProjectOpen:       lipgloss.Color("#50FA7B"),
	ProjectInProgress: lipgloss.Color("#8BE9FD"),
	ProjectCompleted:  lipgloss.Color("#6272A4"),

	// Application status
	ApplicationPending:  lipgloss.Color("#F1FA8C"),
	ApplicationAccepted: lipgloss.Color("#50FA7B"),
	ApplicationRejected: lipgloss.Color("#FF5555"),
}
