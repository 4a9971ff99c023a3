package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/dori/workbridge/internal/api"
	"github.com/dori/workbridge/internal/market"
	"github.com/dori/workbridge/internal/model"
	"github.com/dori/workbridge/internal/ui/theme"
)

// Local message types for the browse view
type browseLoadedMsg struct {
	page *model.Page[model.Project]
	err  error
}

type appliedCheckedMsg struct {
	projectID int64
	applied   bool
	err       error
}

type applicationSubmittedMsg struct {
	project model.Project
	err     error
}

// BrowseMode represents the current input mode
type BrowseMode int

const (
	BrowseModeNormal BrowseMode = iota
	BrowseModeSearch
	BrowseModeApply
)

// BrowseView lists open projects a freelancer can apply to
type BrowseView struct {
	backend Backend
	log     logrus.FieldLogger
	userID  int64
	width   int
	height  int

	projects   []model.Project // Available projects, before filtering
	skills     []string
	page       int
	totalPages int
	loading    bool

	search string
	skill  string
	cursor int

	applied  market.Flags
	checking market.Flags

	mode        BrowseMode
	searchInput textinput.Model
	form        Form
	applyTo     model.Project

	banner   Banner
	spinner  spinner.Model
	spinning bool
}

// NewBrowseView creates a new browse view for the signed-in user
func NewBrowseView(backend Backend, user model.User, log logrus.FieldLogger) BrowseView {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search title or description..."
	ti.CharLimit = 128

	s := spinner.New()
	s.Spinner = spinner.Dot

	return BrowseView{
		backend:     backend,
		log:         log.WithField("view", "browse"),
		userID:      user.ID,
		searchInput: ti,
		spinner:     s,
	}
}

// Init initializes the view
func (v BrowseView) Init() tea.Cmd {
	return v.loadProjects()
}

// Mount rebuilds the applied cache and loads the first page
func (v BrowseView) Mount() (BrowseView, tea.Cmd) {
	v.page = 0
	return v.reload()
}

func (v BrowseView) reload() (BrowseView, tea.Cmd) {
	v.applied = nil
	v.checking = nil
	v.loading = true
	v.mode = BrowseModeNormal

	var spin tea.Cmd
	v, spin = v.startSpinner()
	return v, tea.Batch(v.loadProjects(), spin)
}

// SetSize sets the view dimensions
func (v BrowseView) SetSize(width, height int) BrowseView {
	v.width = width
	v.height = height
	return v
}

func (v BrowseView) loadProjects() tea.Cmd {
	backend := v.backend
	page := v.page
	return func() tea.Msg {
		p, err := backend.Projects(context.Background(), api.PageRequest{Page: page})
		return browseLoadedMsg{page: p, err: err}
	}
}

func (v BrowseView) checkApplied(projectID int64) tea.Cmd {
	backend := v.backend
	return func() tea.Msg {
		applied, err := backend.HasApplied(context.Background(), projectID)
		return appliedCheckedMsg{projectID: projectID, applied: applied, err: err}
	}
}

func (v BrowseView) busy() bool {
	return v.loading || v.checking.Any() || v.form.Submitting
}

func (v BrowseView) startSpinner() (BrowseView, tea.Cmd) {
	if v.spinning {
		return v, nil
	}
	v.spinning = true
	return v, v.spinner.Tick
}

// Update handles messages
func (v BrowseView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case browseLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.log.WithError(msg.err).Warn("failed to load projects")
			v.projects = []model.Project{}
			v.totalPages = 0
		} else {
			v.projects = market.AvailableProjects(msg.page.Items(), v.userID)
			v.totalPages = msg.page.TotalPages
		}
		v.skills = market.DistinctSkills(v.projects)
		if v.skill != "" && !contains(v.skills, v.skill) {
			v.skill = ""
		}
		v.clampCursor()

		var cmds []tea.Cmd
		for _, p := range v.projects {
			if v.checking.Is(p.ID) {
				continue
			}
			v.checking.Set(p.ID)
			cmds = append(cmds, v.checkApplied(p.ID))
		}
		if len(cmds) > 0 {
			var spin tea.Cmd
			v, spin = v.startSpinner()
			cmds = append(cmds, spin)
		}
		return v, tea.Batch(cmds...)

	case appliedCheckedMsg:
		v.checking.Clear(msg.projectID)
		if msg.err != nil {
			v.log.WithError(msg.err).WithField("project_id", msg.projectID).Debug("applied check failed")
			return v, nil
		}
		if msg.applied {
			v.applied.Set(msg.projectID)
		}
		return v, nil

	case applicationSubmittedMsg:
		v.form.Submitting = false
		if msg.err != nil {
			v.log.WithError(msg.err).WithField("project_id", msg.project.ID).Warn("failed to submit application")
			var cmd tea.Cmd
			v.banner, cmd = Flash(BannerError, api.Message(msg.err, "Failed to submit application. Please try again."), ShortBanner)
			return v, cmd
		}
		v.applied.Set(msg.project.ID)
		if v.mode == BrowseModeApply && v.applyTo.ID == msg.project.ID {
			v.mode = BrowseModeNormal
			v.form = v.form.Blur()
		}
		var cmd tea.Cmd
		v.banner, cmd = Flash(BannerSuccess, fmt.Sprintf("Application submitted successfully for %q!", msg.project.DisplayTitle()), ShortBanner)
		return v, cmd

	case BannerTimeoutMsg:
		v.banner = v.banner.Expire(msg)
		return v, nil

	case spinner.TickMsg:
		if msg.ID != v.spinner.ID() {
			return v, nil
		}
		if !v.busy() {
			v.spinning = false
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		switch v.mode {
		case BrowseModeSearch:
			return v.handleSearchMode(msg)
		case BrowseModeApply:
			return v.handleApplyMode(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	return v, nil
}

// handleNormalMode handles keys in normal mode
func (v BrowseView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := v.Visible()

	switch msg.String() {
	case "j", "down":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
		return v, nil

	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case "g":
		v.cursor = 0
		return v, nil

	case "G":
		if len(visible) > 0 {
			v.cursor = len(visible) - 1
		}
		return v, nil

	case "/":
		v.mode = BrowseModeSearch
		v.searchInput.SetValue(v.search)
		v.searchInput.CursorEnd()
		return v, v.searchInput.Focus()

	case "s":
		v.skill = nextSkill(v.skills, v.skill)
		v.cursor = 0
		return v, nil

	case "S":
		v.skill = ""
		v.cursor = 0
		return v, nil

	case "esc":
		v.search = ""
		v.skill = ""
		v.cursor = 0
		return v, nil

	case "r":
		return v.reload()

	case "n":
		if v.page+1 < v.totalPages {
			v.page++
			v.cursor = 0
			return v.reload()
		}
		return v, nil

	case "p":
		if v.page > 0 {
			v.page--
			v.cursor = 0
			return v.reload()
		}
		return v, nil

	case "a", "enter":
		if v.cursor >= len(visible) {
			return v, nil
		}
		project := visible[v.cursor]
		if v.applied.Is(project.ID) || v.checking.Is(project.ID) {
			return v, nil
		}
		v.mode = BrowseModeApply
		v.applyTo = project
		v.form = NewForm("Apply to "+project.DisplayTitle(),
			FieldSpec{Key: "proposal", Label: "Proposal", Placeholder: "Why you are a good fit", CharLimit: 2000},
			FieldSpec{Key: "price", Label: "Expected price ($)", Placeholder: fmt.Sprintf("%g", project.Budget)},
			FieldSpec{Key: "portfolio", Label: "Portfolio link (optional)", Placeholder: "https://"},
		)
		var cmd tea.Cmd
		v.form, cmd = v.form.Focus()
		return v, cmd
	}

	return v, nil
}

// handleSearchMode filters as the user types
func (v BrowseView) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.mode = BrowseModeNormal
		v.searchInput.Blur()
		return v, nil
	case "esc":
		v.mode = BrowseModeNormal
		v.search = ""
		v.searchInput.SetValue("")
		v.searchInput.Blur()
		v.cursor = 0
		return v, nil
	}

	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	v.search = v.searchInput.Value()
	v.cursor = 0
	return v, cmd
}

// handleApplyMode handles keys while the application form is open
func (v BrowseView) handleApplyMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var action FormAction
	v.form, cmd, action = v.form.Update(msg)

	switch action {
	case FormCancel:
		v.mode = BrowseModeNormal
		v.form = v.form.Blur()
		return v, nil

	case FormSubmit:
		input := model.ApplicationInput{
			ProposalMessage: v.form.Value("proposal"),
			ExpectedPrice:   v.form.Value("price"),
			PortfolioLink:   v.form.Value("portfolio"),
		}
		req, err := input.Request(v.applyTo.ID)
		if err != nil {
			v.form.Err = validationMessage(err)
			return v, nil
		}
		v.form.Err = ""
		v.form.Submitting = true

		backend := v.backend
		project := v.applyTo
		var spin tea.Cmd
		v, spin = v.startSpinner()
		return v, tea.Batch(spin, func() tea.Msg {
			_, err := backend.CreateApplication(context.Background(), req)
			return applicationSubmittedMsg{project: project, err: err}
		})
	}

	return v, cmd
}

// Visible returns the projects passing the current search and skill filter
func (v BrowseView) Visible() []model.Project {
	return market.FilterProjects(v.projects, v.search, v.skill)
}

// Skill returns the active skill filter
func (v BrowseView) Skill() string {
	return v.skill
}

// HasApplied reports whether the view believes the user applied to a project
func (v BrowseView) HasApplied(projectID int64) bool {
	return v.applied.Is(projectID)
}

// Banner returns the current banner
func (v BrowseView) Banner() Banner {
	return v.banner
}

func (v *BrowseView) clampCursor() {
	n := len(v.Visible())
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// View renders the view
func (v BrowseView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var b strings.Builder
	b.WriteString(v.banner.View(v.width))

	if v.mode == BrowseModeApply {
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("Budget %s", Money(v.applyTo.Budget))))
		b.WriteString("\n\n")
		b.WriteString(v.form.View(v.width))
		if v.form.Submitting {
			b.WriteString(v.spinner.View() + " ")
		}
		b.WriteString(styles.Label.Render("tab next field • ctrl+s submit • esc cancel"))
		return b.String()
	}

	title := "Browse Projects"
	if v.totalPages > 1 {
		title = fmt.Sprintf("Browse Projects (page %d of %d)", v.page+1, v.totalPages)
	}
	if v.loading {
		title += " " + v.spinner.View()
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")

	// Filter line
	var filters []string
	if v.mode == BrowseModeSearch {
		filters = append(filters, v.searchInput.View())
	} else if v.search != "" {
		filters = append(filters, styles.Label.Render("search: ")+v.search)
	}
	skill := "all"
	if v.skill != "" {
		skill = v.skill
	}
	filters = append(filters, styles.Label.Render("skill: ")+lipgloss.NewStyle().Foreground(t.Info).Render(skill))
	b.WriteString(strings.Join(filters, "   "))
	b.WriteString("\n\n")

	visible := v.Visible()
	if !v.loading && len(visible) == 0 {
		if len(v.projects) == 0 {
			b.WriteString(emptyState("No open projects right now."))
		} else {
			b.WriteString(emptyState("No projects match your filters. Press esc to clear them."))
		}
		return b.String()
	}

	var lines []string
	cursorLine := 0
	for i, p := range visible {
		if i == v.cursor {
			cursorLine = len(lines)
		}
		lines = append(lines, v.renderProject(p, i == v.cursor)...)
	}

	height := v.height - lipgloss.Height(b.String()) - 1
	b.WriteString(strings.Join(window(lines, cursorLine, height), "\n"))
	return b.String()
}

func (v BrowseView) renderProject(p model.Project, selected bool) []string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	style := styles.ItemNormal
	prefix := "  "
	if selected {
		style = styles.ItemSelected
		prefix = "▸ "
	}

	head := style.Render(prefix+p.DisplayTitle()) + "  " + styles.Money.Render(Money(p.Budget))
	switch {
	case v.checking.Is(p.ID):
		head += " " + v.spinner.View()
	case v.applied.Is(p.ID):
		head += "  " + lipgloss.NewStyle().Foreground(t.Success).Render("✓ Applied")
	}

	lines := []string{head}

	var meta []string
	if p.Client != nil && p.Client.Name != "" {
		meta = append(meta, "by "+p.Client.Name)
	}
	if p.Deadline != "" {
		meta = append(meta, "due "+Due(p))
	}
	if p.Duration > 0 {
		meta = append(meta, fmt.Sprintf("%d days", p.Duration))
	}
	if posted := Posted(p.CreatedAt); posted != "" {
		meta = append(meta, "posted "+posted)
	}
	if len(meta) > 0 {
		lines = append(lines, styles.Label.PaddingLeft(4).Render(strings.Join(meta, " · ")))
	}
	if len(p.RequiredSkills) > 0 {
		lines = append(lines, "    "+skillTags(p.RequiredSkills))
	}
	if selected && p.Description != "" {
		lines = append(lines, styles.SubItem.Render(truncate(p.Description, v.width-6)))
	}
	lines = append(lines, "")
	return lines
}

// IsInputMode returns true if the view is capturing text
func (v BrowseView) IsInputMode() bool {
	return v.mode != BrowseModeNormal
}

// nextSkill cycles through skills, with "" (all) before the first
func nextSkill(skills []string, current string) string {
	if len(skills) == 0 {
		return ""
	}
	if current == "" {
		return skills[0]
	}
	for i, s := range skills {
		if s == current {
			if i+1 < len(skills) {
				return skills[i+1]
			}
			return ""
		}
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
