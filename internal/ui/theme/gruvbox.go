package theme

import "github.com/charmbracelet/lipgloss"

// Gruvbox theme - Retro groove color scheme
// https://github.com/morhetz/gruvbox
var Gruvbox = Theme{
	Name: "gruvbox",

	Background: lipgloss.Color("#282828"),
	Foreground: lipgloss.Color("#EBDBB2"),
	Subtle:     lipgloss.Color("#928374"),
	Highlight:  lipgloss.Color("#3C3836"),
	Border:     lipgloss.Color("#504945"),

	// Accents
	Primary:   lipgloss.Color("#83A598"), // Aqua
	Secondary: lipgloss.Color("#8EC07C"),
	Info:      lipgloss.Color("#83A598"),
	Success:   lipgloss.Color("#B8BB26"),
	Warning:   lipgloss.Color("#FABD2F"),
	Error:     lipgloss.Color("#FB4934"),

	// Listing details
	Money:   lipgloss.Color("#FE8019"), // Orange
	SkillBg: lipgloss.Color("#3C3836"),

	// Project status
	ProjectOpen:       lipgloss.Color("#B8BB26"),
	ProjectInProgress: lipgloss.Color("#83A598"),
	ProjectCompleted:  lipgloss.Color("#928374"),

	// Application status
	ApplicationPending:  lipgloss.Color("#FABD2F"),
	ApplicationAccepted: lipgloss.Color("#B8BB26"),
	ApplicationRejected: lipgloss.Color("#FB4934"),
}
