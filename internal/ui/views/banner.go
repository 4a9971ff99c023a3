package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/dori/workbridge/internal/ui/theme"
)

// Banner lifetimes
const (
	ShortBanner = 3 * time.Second
	LongBanner  = 5 * time.Second
)

// BannerKind is the tone of a banner
type BannerKind int

const (
	BannerInfo BannerKind = iota
	BannerSuccess
	BannerError
)

// BannerTimeoutMsg hides the banner with the matching id
type BannerTimeoutMsg struct {
	ID string
}

// Banner is a transient one-line notice. A newer banner replaces the
// visible one; an older banner's timeout does not hide its replacement.
type Banner struct {
	ID      string
	Show    bool
	Message string
	Kind    BannerKind
}

// Flash shows a banner and schedules its timeout
func Flash(kind BannerKind, message string, ttl time.Duration) (Banner, tea.Cmd) {
	id := uuid.NewString()
	b := Banner{ID: id, Show: true, Message: message, Kind: kind}
	return b, tea.Tick(ttl, func(time.Time) tea.Msg {
		return BannerTimeoutMsg{ID: id}
	})
}

// Expire hides the banner if msg belongs to it
func (b Banner) Expire(msg BannerTimeoutMsg) Banner {
	if b.Show && b.ID == msg.ID {
		b.Show = false
	}
	return b
}

// View renders the banner, or nothing when hidden
func (b Banner) View(width int) string {
	if !b.Show {
		return ""
	}

	styles := theme.Current.Styles
	style := styles.BannerInfo
	switch b.Kind {
	case BannerSuccess:
		style = styles.BannerSuccess
	case BannerError:
		style = styles.BannerError
	}
	if width > 4 {
		style = style.MaxWidth(width)
	}
	return lipgloss.NewStyle().MarginBottom(1).Render(style.Render(b.Message))
}
