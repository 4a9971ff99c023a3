package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha theme - Soothing pastel theme
// https://github.com/catppuccin/catppuccin
var Catppuccin = Theme{
	Name: "catppuccin",

	Background: lipgloss.Color("#1E1E2E"),
	Foreground: lipgloss.Color("#CDD6F4"),
	Subtle:     lipgloss.Color("#6C7086"),
	Highlight:  lipgloss.Color("#313244"),
	Border:     lipgloss.Color("#45475A"),

	// Accents
	Primary:   lipgloss.Color("#89B4FA"), // Blue
	Secondary: lipgloss.Color("#CBA6F7"),
	Info:      lipgloss.Color("#74C7EC"), // Sapphire
	Success:   lipgloss.Color("#A6E3A1"),
	Warning:   lipgloss.Color("#F9E2AF"),
	Error:     lipgloss.Color("#F38BA8"),

	// Listing details
	Money:   lipgloss.Color("#FAB387"), // Peach
	SkillBg: lipgloss.Color("#313244"),

	// Project status
	ProjectOpen:       lipgloss.Color("#A6E3A1"),
	ProjectInProgress: lipgloss.Color("#89B4FA"),
	ProjectCompleted:  lipgloss.Color("#6C7086"),

	// Application status
	ApplicationPending:  lipgloss.Color("#F9E2AF"),
	ApplicationAccepted: lipgloss.Color("#A6E3A1"),
	ApplicationRejected: lipgloss.Color("#F38BA8"),
}
