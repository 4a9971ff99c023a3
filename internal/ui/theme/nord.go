package theme

import "github.com/charmbracelet/lipgloss"

// Nord theme - Arctic, north-bluish color palette
// https://www.nordtheme.com/
var Nord = Theme{
	Name: "nord",

	Background: lipgloss.Color("#2E3440"),
	Foreground: lipgloss.Color("#ECEFF4"),
	Subtle:     lipgloss.Color("#4C566A"),
	Highlight:  lipgloss.Color("#3B4252"),
	Border:     lipgloss.Color("#4C566A"),

	// Accents
	Primary:   lipgloss.Color("#88C0D0"), // Nord8
	Secondary: lipgloss.Color("#81A1C1"),
	Info:      lipgloss.Color("#5E81AC"),
	Success:   lipgloss.Color("#A3BE8C"),
	Warning:   lipgloss.Color("#EBCB8B"),
	Error:     lipgloss.Color("#BF616A"),

	// Listing details
	Money:   lipgloss.Color("#B48EAD"), // Nord15 - purple
	SkillBg: lipgloss.Color("#434C5E"),

	// Project status
	ProjectOpen:       lipgloss.Color("#A3BE8C"),
	ProjectInProgress: lipgloss.Color("#88C0D0"),
	ProjectCompleted:  lipgloss.Color("#4C566A"), // Polar night gray

	// Application status
	ApplicationPending:  lipgloss.Color("#EBCB8B"),
	ApplicationAccepted: lipgloss.Color("#A3BE8C"),
	ApplicationRejected: lipgloss.Color("#BF616A"),
}
