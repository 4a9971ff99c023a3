package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/dori/workbridge/internal/api"
	"github.com/dori/workbridge/internal/market"
	"github.com/dori/workbridge/internal/model"
	"github.com/dori/workbridge/internal/ui/theme"
)

type applicationsLoadedMsg struct {
	apps []model.Application
	err  error
}

// ApplicationsView lists a freelancer's applications and announces
// decisions made since the previous fetch.
type ApplicationsView struct {
	backend  Backend
	notifier Notifier
	log      logrus.FieldLogger
	width    int
	height   int

	apps    []model.Application
	loading bool
	cursor  int

	banner   Banner
	spinner  spinner.Model
	spinning bool
}

// NewApplicationsView creates a new applications view. notifier may be nil.
func NewApplicationsView(backend Backend, notifier Notifier, log logrus.FieldLogger) ApplicationsView {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return ApplicationsView{
		backend:  backend,
		notifier: notifier,
		log:      log.WithField("view", "applications"),
		spinner:  s,
	}
}

// Init initializes the view
func (v ApplicationsView) Init() tea.Cmd {
	return v.loadApplications()
}

// Mount fetches applications. The previous list is kept so the result can
// be compared against it.
func (v ApplicationsView) Mount() (ApplicationsView, tea.Cmd) {
	v.loading = true
	var spin tea.Cmd
	if !v.spinning {
		v.spinning = true
		spin = v.spinner.Tick
	}
	return v, tea.Batch(v.loadApplications(), spin)
}

// SetSize sets the view dimensions
func (v ApplicationsView) SetSize(width, height int) ApplicationsView {
	v.width = width
	v.height = height
	return v
}

func (v ApplicationsView) loadApplications() tea.Cmd {
	backend := v.backend
	return func() tea.Msg {
		p, err := backend.FreelancerApplications(context.Background(), api.PageRequest{})
		if err != nil {
			return applicationsLoadedMsg{err: err}
		}
		return applicationsLoadedMsg{apps: p.Items()}
	}
}

// decisionBanner returns the banner text and kind for a status change
func decisionBanner(change market.StatusChange) (string, BannerKind) {
	app := change.Application
	if change.Accepted() {
		return fmt.Sprintf("Congratulations %s! You've been selected for %q!",
			app.FreelancerName("You"), app.ProjectTitle()), BannerSuccess
	}
	return fmt.Sprintf("%s application for %q was not selected.",
		app.FreelancerName("Your"), app.ProjectTitle()), BannerError
}

// Update handles messages
func (v ApplicationsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case applicationsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			// Keep the previous list so the next successful fetch still diffs
			v.log.WithError(msg.err).Warn("failed to load applications")
			return v, nil
		}

		changes := market.DiffApplications(v.apps, msg.apps)
		v.apps = msg.apps
		if v.cursor >= len(v.apps) {
			v.cursor = max(len(v.apps)-1, 0)
		}

		var cmds []tea.Cmd
		for _, change := range changes {
			text, kind := decisionBanner(change)
			var cmd tea.Cmd
			v.banner, cmd = Flash(kind, text, LongBanner)
			cmds = append(cmds, cmd)

			v.log.WithFields(logrus.Fields{
				"application_id": change.Application.ID,
				"from":           change.From,
				"to":             change.To,
			}).Info("application decided")

			if v.notifier != nil {
				cmds = append(cmds, v.notify(change))
			}
		}
		return v, tea.Batch(cmds...)

	case BannerTimeoutMsg:
		v.banner = v.banner.Expire(msg)
		return v, nil

	case spinner.TickMsg:
		if msg.ID != v.spinner.ID() {
			return v, nil
		}
		if !v.loading {
			v.spinning = false
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if v.cursor < len(v.apps)-1 {
				v.cursor++
			}
		case "k", "up":
			if v.cursor > 0 {
				v.cursor--
			}
		case "g":
			v.cursor = 0
		case "G":
			v.cursor = max(len(v.apps)-1, 0)
		case "r":
			if !v.loading {
				return v.Mount()
			}
		}
		return v, nil
	}

	return v, nil
}

func (v ApplicationsView) notify(change market.StatusChange) tea.Cmd {
	notifier := v.notifier
	log := v.log
	return func() tea.Msg {
		if err := notifier.SendDecision(change.Application.ProjectTitle(), change.Accepted()); err != nil {
			log.WithError(err).Debug("desktop notification failed")
		}
		return nil
	}
}

// Applications returns the last fetched applications
func (v ApplicationsView) Applications() []model.Application {
	return v.apps
}

// Banner returns the current banner
func (v ApplicationsView) Banner() Banner {
	return v.banner
}

// View renders the view
func (v ApplicationsView) View() string {
	styles := theme.Current.Styles

	var b strings.Builder
	b.WriteString(v.banner.View(v.width))

	title := "My Applications"
	if v.loading {
		title += " " + v.spinner.View()
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")

	if !v.loading && len(v.apps) == 0 {
		b.WriteString(emptyState("You haven't applied to any projects yet. Press 1 to browse."))
		return b.String()
	}

	var lines []string
	cursorLine := 0
	for i, app := range v.apps {
		if i == v.cursor {
			cursorLine = len(lines)
		}
		lines = append(lines, v.renderApplication(app, i == v.cursor)...)
	}

	height := v.height - lipgloss.Height(b.String()) - 1
	b.WriteString(strings.Join(window(lines, cursorLine, height), "\n"))
	return b.String()
}

func (v ApplicationsView) renderApplication(app model.Application, selected bool) []string {
	styles := theme.Current.Styles

	style := styles.ItemNormal
	prefix := "  "
	if selected {
		style = styles.ItemSelected
		prefix = "▸ "
	}

	head := style.Render(prefix+app.ProjectTitle()) + "  " + applicationBadge(app.Status)
	lines := []string{head}

	meta := []string{"your price " + Money(app.ExpectedPrice)}
	if app.Project != nil && app.Project.Budget > 0 {
		meta = append(meta, "budget "+Money(app.Project.Budget))
	}
	if posted := Posted(app.CreatedAt); posted != "" {
		meta = append(meta, "applied "+posted)
	}
	lines = append(lines, styles.Label.PaddingLeft(4).Render(strings.Join(meta, " · ")))

	if selected {
		if proposal := strings.TrimSpace(app.ProposalMessage); proposal != "" {
			lines = append(lines, styles.SubItem.Render(truncate(proposal, v.width-6)))
		}
		if app.PortfolioLink != "" {
			lines = append(lines, styles.Label.PaddingLeft(4).Render(app.PortfolioLink))
		}
	}
	lines = append(lines, "")
	return lines
}

// IsInputMode returns false; the view has no text inputs
func (v ApplicationsView) IsInputMode() bool {
	return false
}
