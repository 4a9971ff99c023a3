package views

import (
	"context"
	"errors"
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

// Local message types for the my projects view
type myProjectsLoadedMsg struct {
	page *model.Page[model.Project]
	err  error
}

type projectAppsLoadedMsg struct {
	projectID int64
	apps      []model.Application
	err       error
}

type projectUpdatedMsg struct {
	project *model.Project
	err     error
}

type projectDeletedMsg struct {
	id  int64
	err error
}

type applicationDecidedMsg struct {
	app    model.Application
	status model.ApplicationStatus
	apps   []model.Application // Fresh list for the project, nil if the re-fetch failed
	err    error
}

// MyProjectsMode represents the current input mode
type MyProjectsMode int

const (
	MyProjectsModeNormal MyProjectsMode = iota
	MyProjectsModeEdit
	MyProjectsModeConfirmDelete
)

// projectRow is one line of the list: a project, or one of its applications
type projectRow struct {
	project int // Index into projects
	app     int // Index into the project's applications, -1 for the project itself
}

// MyProjectsView lists a client's projects with the applications each
// received.
type MyProjectsView struct {
	backend Backend
	log     logrus.FieldLogger
	width   int
	height  int

	projects   []model.Project
	page       int
	totalPages int
	loading    bool

	// Applications per project id
	apps        map[int64][]model.Application
	appsLoading market.Flags

	// In-flight accept/reject, by application id
	deciding market.Flags
	// In-flight edit/delete, by project id
	saving market.Flags

	cursor int

	mode     MyProjectsMode
	form     Form
	editID   int64
	deleteID int64

	banner   Banner
	spinner  spinner.Model
	spinning bool
}

// NewMyProjectsView creates a new my projects view
func NewMyProjectsView(backend Backend, log logrus.FieldLogger) MyProjectsView {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return MyProjectsView{
		backend: backend,
		log:     log.WithField("view", "my_projects"),
		apps:    make(map[int64][]model.Application),
		spinner: s,
	}
}

// Init initializes the view
func (v MyProjectsView) Init() tea.Cmd {
	return v.loadProjects()
}

// Mount resets cached state and loads the first page
func (v MyProjectsView) Mount() (MyProjectsView, tea.Cmd) {
	v.page = 0
	return v.reload()
}

// reload drops the application cache and flags and fetches the current page
func (v MyProjectsView) reload() (MyProjectsView, tea.Cmd) {
	v.apps = make(map[int64][]model.Application)
	v.appsLoading = nil
	v.deciding = nil
	v.saving = nil
	v.loading = true
	v.mode = MyProjectsModeNormal

	var spin tea.Cmd
	v, spin = v.startSpinner()
	return v, tea.Batch(v.loadProjects(), spin)
}

// SetSize sets the view dimensions
func (v MyProjectsView) SetSize(width, height int) MyProjectsView {
	v.width = width
	v.height = height
	return v
}

func (v MyProjectsView) loadProjects() tea.Cmd {
	backend := v.backend
	page := v.page
	return func() tea.Msg {
		p, err := backend.ClientProjects(context.Background(), api.PageRequest{Page: page})
		return myProjectsLoadedMsg{page: p, err: err}
	}
}

func (v MyProjectsView) loadApplications(projectID int64) tea.Cmd {
	backend := v.backend
	return func() tea.Msg {
		p, err := backend.ProjectApplications(context.Background(), projectID, api.PageRequest{})
		if err != nil {
			return projectAppsLoadedMsg{projectID: projectID, err: err}
		}
		return projectAppsLoadedMsg{projectID: projectID, apps: p.Items()}
	}
}

// fetchMissingApplications fires one request per project that has neither
// cached applications nor a request in flight.
func (v MyProjectsView) fetchMissingApplications() (MyProjectsView, tea.Cmd) {
	var cmds []tea.Cmd
	for _, p := range v.projects {
		if _, ok := v.apps[p.ID]; ok || v.appsLoading.Is(p.ID) {
			continue
		}
		v.appsLoading.Set(p.ID)
		cmds = append(cmds, v.loadApplications(p.ID))
	}
	if len(cmds) > 0 {
		var spin tea.Cmd
		v, spin = v.startSpinner()
		cmds = append(cmds, spin)
	}
	return v, tea.Batch(cmds...)
}

func (v MyProjectsView) busy() bool {
	return v.loading || v.appsLoading.Any() || v.deciding.Any() || v.saving.Any()
}

func (v MyProjectsView) startSpinner() (MyProjectsView, tea.Cmd) {
	if v.spinning {
		return v, nil
	}
	v.spinning = true
	return v, v.spinner.Tick
}

func (v MyProjectsView) flash(kind BannerKind, msg string) (MyProjectsView, tea.Cmd) {
	var cmd tea.Cmd
	v.banner, cmd = Flash(kind, msg, ShortBanner)
	return v, cmd
}

// Update handles messages
func (v MyProjectsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case myProjectsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.log.WithError(msg.err).Warn("failed to load projects")
			v.projects = []model.Project{}
			v.totalPages = 0
		} else {
			v.projects = msg.page.Items()
			v.totalPages = msg.page.TotalPages
		}
		v.clampCursor()
		var cmd tea.Cmd
		v, cmd = v.fetchMissingApplications()
		return v, cmd

	case projectAppsLoadedMsg:
		v.appsLoading.Clear(msg.projectID)
		if msg.err != nil {
			v.log.WithError(msg.err).WithField("project_id", msg.projectID).Warn("failed to load applications")
			v.apps[msg.projectID] = []model.Application{}
		} else {
			v.apps[msg.projectID] = msg.apps
		}
		v.clampCursor()
		return v, nil

	case projectUpdatedMsg:
		v.saving.Clear(v.editID)
		v.form.Submitting = false
		if msg.err != nil {
			v.log.WithError(msg.err).WithField("project_id", v.editID).Warn("failed to update project")
			return v.flash(BannerError, "Update failed.")
		}
		v.mode = MyProjectsModeNormal
		v.editID = 0
		v.form = v.form.Blur()
		v.loading = true
		var bannerCmd, spin tea.Cmd
		v, bannerCmd = v.flash(BannerSuccess, "Project updated.")
		v, spin = v.startSpinner()
		return v, tea.Batch(bannerCmd, spin, v.loadProjects())

	case projectDeletedMsg:
		v.saving.Clear(msg.id)
		if msg.err != nil {
			v.log.WithError(msg.err).WithField("project_id", msg.id).Warn("failed to delete project")
			return v.flash(BannerError, "Could not delete project. It may have dependencies.")
		}
		v.removeProject(msg.id)
		return v.flash(BannerSuccess, "Project deleted.")

	case applicationDecidedMsg:
		v.deciding.Clear(msg.app.ID)
		if msg.err != nil {
			v.log.WithError(msg.err).WithField("application_id", msg.app.ID).Warn("failed to update application status")
			return v.flash(BannerError, "Failed to update application status. Please try again.")
		}
		projectID := v.projectIDOf(msg.app)
		if msg.apps != nil {
			v.apps[projectID] = msg.apps
		} else {
			v.setLocalStatus(projectID, msg.app.ID, msg.status)
		}
		action := "rejected"
		if msg.status == model.ApplicationAccepted {
			action = "selected and accepted"
		}
		name := msg.app.FreelancerName("Freelancer")
		return v.flash(BannerSuccess, fmt.Sprintf("%s %s successfully! They will be notified.", name, action))

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
		case MyProjectsModeEdit:
			return v.handleEditMode(msg)
		case MyProjectsModeConfirmDelete:
			return v.handleConfirmDeleteMode(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	return v, nil
}

// handleNormalMode handles keys in normal mode
func (v MyProjectsView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := v.rows()

	switch msg.String() {
	case "j", "down":
		if v.cursor < len(rows)-1 {
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
		if len(rows) > 0 {
			v.cursor = len(rows) - 1
		}
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

	case "e", "enter":
		project, ok := v.selectedProject(rows)
		if !ok || v.saving.Is(project.ID) {
			return v, nil
		}
		v.mode = MyProjectsModeEdit
		v.editID = project.ID
		v.form = projectForm("Edit project", model.InputFromProject(project))
		var cmd tea.Cmd
		v.form, cmd = v.form.Focus()
		return v, cmd

	case "d":
		project, ok := v.selectedProject(rows)
		if !ok || v.saving.Is(project.ID) {
			return v, nil
		}
		v.mode = MyProjectsModeConfirmDelete
		v.deleteID = project.ID
		return v, nil

	case "a":
		return v.decide(rows, model.ApplicationAccepted)

	case "x":
		return v.decide(rows, model.ApplicationRejected)
	}

	return v, nil
}

// handleEditMode handles keys while the edit form is open
func (v MyProjectsView) handleEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var action FormAction
	v.form, cmd, action = v.form.Update(msg)

	switch action {
	case FormCancel:
		v.mode = MyProjectsModeNormal
		v.editID = 0
		v.form = v.form.Blur()
		return v, nil

	case FormSubmit:
		req, err := projectInputFromForm(v.form).Request()
		if err != nil {
			v.form.Err = validationMessage(err)
			return v, nil
		}
		v.form.Err = ""
		v.form.Submitting = true
		v.saving.Set(v.editID)

		backend := v.backend
		id := v.editID
		var spin tea.Cmd
		v, spin = v.startSpinner()
		return v, tea.Batch(spin, func() tea.Msg {
			p, err := backend.UpdateProject(context.Background(), id, req)
			return projectUpdatedMsg{project: p, err: err}
		})
	}

	return v, cmd
}

// handleConfirmDeleteMode handles keys in delete confirmation mode
func (v MyProjectsView) handleConfirmDeleteMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = MyProjectsModeNormal
		id := v.deleteID
		v.deleteID = 0
		v.saving.Set(id)

		backend := v.backend
		var spin tea.Cmd
		v, spin = v.startSpinner()
		return v, tea.Batch(spin, func() tea.Msg {
			return projectDeletedMsg{id: id, err: backend.DeleteProject(context.Background(), id)}
		})

	case "n", "N", "esc":
		v.mode = MyProjectsModeNormal
		v.deleteID = 0
		return v, nil
	}
	return v, nil
}

// decide accepts or rejects the selected application. Only pending
// applications can be decided, and only once at a time.
func (v MyProjectsView) decide(rows []projectRow, status model.ApplicationStatus) (tea.Model, tea.Cmd) {
	app, ok := v.selectedApplication(rows)
	if !ok || !market.CanDecide(app) || v.deciding.Is(app.ID) {
		return v, nil
	}
	v.deciding.Set(app.ID)

	backend := v.backend
	projectID := v.projectIDOf(app)
	var spin tea.Cmd
	v, spin = v.startSpinner()
	return v, tea.Batch(spin, func() tea.Msg {
		ctx := context.Background()
		if _, err := backend.UpdateApplicationStatus(ctx, app.ID, status); err != nil {
			return applicationDecidedMsg{app: app, status: status, err: err}
		}
		page, err := backend.ProjectApplications(ctx, projectID, api.PageRequest{})
		if err != nil {
			return applicationDecidedMsg{app: app, status: status}
		}
		return applicationDecidedMsg{app: app, status: status, apps: page.Items()}
	})
}

// projectIDOf returns the project an application in the cache belongs to
func (v MyProjectsView) projectIDOf(app model.Application) int64 {
	if app.Project != nil && app.Project.ID != 0 {
		return app.Project.ID
	}
	for pid, apps := range v.apps {
		for _, a := range apps {
			if a.ID == app.ID {
				return pid
			}
		}
	}
	return 0
}

func (v *MyProjectsView) setLocalStatus(projectID, appID int64, status model.ApplicationStatus) {
	apps := v.apps[projectID]
	for i := range apps {
		if apps[i].ID == appID {
			apps[i].Status = status
		}
	}
}

func (v *MyProjectsView) removeProject(id int64) {
	out := make([]model.Project, 0, len(v.projects))
	for _, p := range v.projects {
		if p.ID != id {
			out = append(out, p)
		}
	}
	v.projects = out
	delete(v.apps, id)
	v.clampCursor()
}

// rows flattens projects and their cached applications
func (v MyProjectsView) rows() []projectRow {
	var rows []projectRow
	for i, p := range v.projects {
		rows = append(rows, projectRow{project: i, app: -1})
		for j := range v.apps[p.ID] {
			rows = append(rows, projectRow{project: i, app: j})
		}
	}
	return rows
}

func (v *MyProjectsView) clampCursor() {
	n := len(v.rows())
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// selectedProject returns the project under the cursor, or the project
// owning the application under the cursor.
func (v MyProjectsView) selectedProject(rows []projectRow) (model.Project, bool) {
	if v.cursor < 0 || v.cursor >= len(rows) {
		return model.Project{}, false
	}
	return v.projects[rows[v.cursor].project], true
}

func (v MyProjectsView) selectedApplication(rows []projectRow) (model.Application, bool) {
	if v.cursor < 0 || v.cursor >= len(rows) || rows[v.cursor].app < 0 {
		return model.Application{}, false
	}
	row := rows[v.cursor]
	return v.apps[v.projects[row.project].ID][row.app], true
}

// Projects returns the loaded projects
func (v MyProjectsView) Projects() []model.Project {
	return v.projects
}

// Applications returns the cached applications for a project
func (v MyProjectsView) Applications(projectID int64) ([]model.Application, bool) {
	apps, ok := v.apps[projectID]
	return apps, ok
}

// Banner returns the current banner
func (v MyProjectsView) Banner() Banner {
	return v.banner
}

// View renders the view
func (v MyProjectsView) View() string {
	styles := theme.Current.Styles

	var b strings.Builder
	b.WriteString(v.banner.View(v.width))

	switch v.mode {
	case MyProjectsModeEdit:
		b.WriteString(v.form.View(v.width))
		b.WriteString(styles.Label.Render("ctrl+s save • esc cancel"))
		return b.String()
	case MyProjectsModeConfirmDelete:
		b.WriteString(styles.Error.Bold(true).Render(fmt.Sprintf("Delete %q? (y/n)", v.deleteTitle())))
		b.WriteString("\n\n")
	}

	title := "My Projects"
	if v.totalPages > 1 {
		title = fmt.Sprintf("My Projects (page %d of %d)", v.page+1, v.totalPages)
	}
	if v.loading {
		title += " " + v.spinner.View()
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")

	if !v.loading && len(v.projects) == 0 {
		b.WriteString(emptyState("No projects yet. Press 2 to post one."))
		return b.String()
	}

	rows := v.rows()
	var lines []string
	cursorLine := 0
	for i, row := range rows {
		if i == v.cursor {
			cursorLine = len(lines)
		}
		p := v.projects[row.project]
		if row.app < 0 {
			lines = append(lines, v.renderProject(p, i == v.cursor)...)
			continue
		}
		lines = append(lines, strings.Split(v.renderApplication(v.apps[p.ID][row.app], i == v.cursor), "\n")...)
		if row.app == len(v.apps[p.ID])-1 {
			lines = append(lines, "")
		}
	}

	height := v.height - lipgloss.Height(b.String()) - 1
	b.WriteString(strings.Join(window(lines, cursorLine, height), "\n"))
	return b.String()
}

func (v MyProjectsView) deleteTitle() string {
	for _, p := range v.projects {
		if p.ID == v.deleteID {
			return p.DisplayTitle()
		}
	}
	return "project"
}

func (v MyProjectsView) renderProject(p model.Project, selected bool) []string {
	styles := theme.Current.Styles

	style := styles.ItemNormal
	prefix := "  "
	if selected {
		style = styles.ItemSelected
		prefix = "▸ "
	}

	head := style.Render(prefix+p.DisplayTitle()) + " " +
		projectBadge(p.Status) + "  " +
		styles.Money.Render(Money(p.Budget))
	if p.Deadline != "" {
		head += "  " + styles.Deadline.Render("due "+Due(p))
	}
	if v.saving.Is(p.ID) {
		head += " " + v.spinner.View()
	}

	lines := []string{head}
	if len(p.RequiredSkills) > 0 {
		lines = append(lines, "    "+skillTags(p.RequiredSkills))
	}

	apps, cached := v.apps[p.ID]
	switch {
	case v.appsLoading.Is(p.ID):
		lines = append(lines, styles.SubItem.Render(v.spinner.View()+" loading applications"))
	case cached && len(apps) == 0:
		lines = append(lines, styles.Label.PaddingLeft(4).Render("No applications yet"), "")
	case cached:
		lines = append(lines, styles.Label.PaddingLeft(4).Render(fmt.Sprintf("%d application(s)", len(apps))))
	}
	return lines
}

func (v MyProjectsView) renderApplication(app model.Application, selected bool) string {
	styles := theme.Current.Styles

	prefix := "    • "
	if selected {
		prefix = "    ▸ "
	}

	line := prefix + app.FreelancerName("Freelancer") + "  " +
		styles.Money.Render(Money(app.ExpectedPrice)) + "  " +
		applicationBadge(app.Status)

	if v.deciding.Is(app.ID) {
		line += " " + v.spinner.View()
	} else if selected && market.CanDecide(app) {
		line += styles.Label.Render("  a accept • x reject")
	}

	if selected {
		line = styles.ItemSelected.Render(line)
		if proposal := strings.TrimSpace(app.ProposalMessage); proposal != "" {
			line += "\n" + styles.SubItem.PaddingLeft(8).Render(truncate(proposal, v.width-10))
		}
		if app.PortfolioLink != "" {
			line += "\n" + styles.Label.PaddingLeft(8).Render(app.PortfolioLink)
		}
		return line
	}
	return styles.ItemNormal.Render(line)
}

// IsInputMode returns true if the view is capturing text
func (v MyProjectsView) IsInputMode() bool {
	return v.mode != MyProjectsModeNormal
}

// projectForm builds the project form pre-filled with in
func projectForm(title string, in model.ProjectInput) Form {
	f := NewForm(title,
		FieldSpec{Key: "name", Label: "Name", Placeholder: "Landing page redesign"},
		FieldSpec{Key: "description", Label: "Description", CharLimit: 2000},
		FieldSpec{Key: "budget", Label: "Budget ($)", Placeholder: "1500"},
		FieldSpec{Key: "deadline", Label: "Deadline (YYYY-MM-DD)", Placeholder: "2026-12-31"},
		FieldSpec{Key: "duration", Label: "Duration (days)", Placeholder: "30"},
		FieldSpec{Key: "skills", Label: "Required skills (comma separated)", Placeholder: "React, Node.js"},
	)
	return f.
		SetValue("name", in.Name).
		SetValue("description", in.Description).
		SetValue("budget", in.Budget).
		SetValue("deadline", in.Deadline).
		SetValue("duration", in.Duration).
		SetValue("skills", in.Skills)
}

func projectInputFromForm(f Form) model.ProjectInput {
	return model.ProjectInput{
		Name:        f.Value("name"),
		Description: f.Value("description"),
		Budget:      f.Value("budget"),
		Deadline:    f.Value("deadline"),
		Duration:    f.Value("duration"),
		Skills:      f.Value("skills"),
	}
}

func validationMessage(err error) string {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
