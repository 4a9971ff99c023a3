package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/workbridge/internal/model"
)

// Theme defines the color scheme and styles for the UI
type Theme struct {
	Name string

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	// Semantic colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color

	Money   lipgloss.Color
	SkillBg lipgloss.Color

	ProjectOpen       lipgloss.Color
	ProjectInProgress lipgloss.Color
	ProjectCompleted  lipgloss.Color

	ApplicationPending  lipgloss.Color
	ApplicationAccepted lipgloss.Color
	ApplicationRejected lipgloss.Color
}

// ProjectStatusColor returns the badge color for a project status
func (t Theme) ProjectStatusColor(s model.ProjectStatus) lipgloss.Color {
	switch s {
	case model.ProjectOpen:
		return t.ProjectOpen
	case model.ProjectInProgress:
		return t.ProjectInProgress
	case model.ProjectCompleted:
		return t.ProjectCompleted
	default:
		return t.Subtle
	}
}

// ApplicationStatusColor returns the badge color for an application status
func (t Theme) ApplicationStatusColor(s model.ApplicationStatus) lipgloss.Color {
	switch s {
	case model.ApplicationPending:
		return t.ApplicationPending
	case model.ApplicationAccepted:
		return t.ApplicationAccepted
	case model.ApplicationRejected:
		return t.ApplicationRejected
	default:
		return t.Subtle
	}
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	// Base styles
	App    lipgloss.Style
	Header lipgloss.Style
	Footer lipgloss.Style

	// List items
	ItemNormal   lipgloss.Style
	ItemSelected lipgloss.Style
	ItemMuted    lipgloss.Style
	SubItem      lipgloss.Style

	// Component styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Skill    lipgloss.Style
	Money    lipgloss.Style
	Badge    lipgloss.Style
	Deadline lipgloss.Style
	Error    lipgloss.Style

	// Banners
	BannerInfo    lipgloss.Style
	BannerSuccess lipgloss.Style
	BannerError   lipgloss.Style

	// Input styles
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Placeholder  lipgloss.Style

	// Panel styles
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style

	// Help styles
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	banner := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true)

	return Styles{
		App: lipgloss.NewStyle().
			Background(t.Background).
			Foreground(t.Foreground),

		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		ItemNormal: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		ItemSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Highlight).
			Bold(true).
			Padding(0, 1),

		ItemMuted: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		SubItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			PaddingLeft(4),

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Italic(true),

		Label: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Skill: lipgloss.NewStyle().
			Foreground(t.Info).
			Background(t.SkillBg).
			Padding(0, 1).
			MarginRight(1),

		Money: lipgloss.NewStyle().
			Foreground(t.Money).
			Bold(true),

		Badge: lipgloss.NewStyle().
			Bold(true),

		Deadline: lipgloss.NewStyle().
			Foreground(t.Warning),

		Error: lipgloss.NewStyle().
			Foreground(t.Error),

		BannerInfo: banner.
			Foreground(t.Info).
			BorderForeground(t.Info),

		BannerSuccess: banner.
			Foreground(t.Success).
			BorderForeground(t.Success),

		BannerError: banner.
			Foreground(t.Error).
			BorderForeground(t.Error),

		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		Placeholder: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),

		PanelTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),

		HelpSeparator: lipgloss.NewStyle().
			Foreground(t.Border),

		StatusBar: lipgloss.NewStyle().
			Background(t.Highlight).
			Foreground(t.Foreground).
			Padding(0, 1),

		StatusKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		StatusValue: lipgloss.NewStyle().
			Foreground(t.Foreground),
	}
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Nord,
	Styles: NewStyles(Nord),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{
		Nord,
		Dracula,
		Gruvbox,
		Catppuccin,
	}
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Next returns the theme after the named one, wrapping around
func Next(name string) Theme {
	themes := Available()
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
