package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/dori/workbridge/internal/app"
	"github.com/dori/workbridge/internal/market"
	"github.com/dori/workbridge/internal/model"
	"github.com/dori/workbridge/internal/ui/theme"
	"github.com/dori/workbridge/internal/ui/views"
)

// SessionStore persists the signed-in session
type SessionStore interface {
	Load() (*model.Session, error)
	Save(sess model.Session) error
	Clear() error
}

// Deps are the collaborators of the root model
type Deps struct {
	Sessions SessionStore
	Backend  views.Backend
	Notifier views.Notifier // Optional
	Log      logrus.FieldLogger
}

// RootModel is the main application model. It owns the session and the
// role's views, which exist only while someone is signed in.
type RootModel struct {
	deps   Deps
	log    logrus.FieldLogger
	keys   KeyMap
	help   help.Model
	width  int
	height int

	session     *model.Session
	currentView View
	startView   View
	helpVisible bool

	authView         views.AuthView
	myProjectsView   views.MyProjectsView
	postProjectView  views.PostProjectView
	browseView       views.BrowseView
	applicationsView views.ApplicationsView

	initCmd tea.Cmd

	// Incremented on every sign-in and sign-out. View commands are tagged
	// with it so results from an ended session are dropped.
	gen uint64

	// Status message
	statusMsg string
	errorMsg  string
}

// NewRootModel creates the root model for a running application
func NewRootModel(application *app.App, start View) RootModel {
	var notifier views.Notifier
	if application.Notifier.IsEnabled() {
		notifier = application.Notifier
	}
	m := New(Deps{
		Sessions: application.Sessions,
		Backend:  application.Client,
		Notifier: notifier,
		Log:      application.Log,
	})
	return m.WithStartView(start)
}

// New creates a root model and restores any stored session
func New(deps Deps) RootModel {
	if deps.Log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		deps.Log = l
	}

	h := help.New()
	h.ShowAll = true

	m := RootModel{
		deps:        deps,
		log:         deps.Log.WithField("component", "root"),
		keys:        DefaultKeyMap(),
		help:        h,
		currentView: ViewAuth,
		authView:    views.NewAuthView(deps.Backend, deps.Log),
	}

	sess, err := deps.Sessions.Load()
	if err != nil {
		m.log.WithError(err).Warn("discarding unreadable session")
		sess = nil
	}

	var cmd tea.Cmd
	if sess == nil {
		m, cmd = m.mount(ViewAuth)
	} else {
		m, cmd = m.activate(*sess)
	}
	m.initCmd = cmd
	return m
}

// WithStartView switches to start after sign-in if the role has that view.
// It applies immediately when a session was restored.
func (m RootModel) WithStartView(start View) RootModel {
	m.startView = start
	if m.session != nil && start != ViewAuth && m.allowed(start) && start != m.currentView {
		// Rebuild so the landing view mounted by New is not left half started
		var cmd tea.Cmd
		m, cmd = m.activate(*m.session)
		m.initCmd = cmd
	}
	return m
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	return m.initCmd
}

// Session returns the active session, or nil when signed out
func (m RootModel) Session() *model.Session {
	return m.session
}

// CurrentView returns the visible view
func (m RootModel) CurrentView() View {
	return m.currentView
}

// activate builds the role's views for sess and mounts the landing view
func (m RootModel) activate(sess model.Session) (RootModel, tea.Cmd) {
	m.session = &sess
	m.helpVisible = false
	m.gen++
	log := m.deps.Log.WithField("user_id", sess.User.ID)

	if sess.User.IsClient() {
		m.myProjectsView = views.NewMyProjectsView(m.deps.Backend, log)
		m.postProjectView = views.NewPostProjectView(m.deps.Backend, log)
	} else {
		m.browseView = views.NewBrowseView(m.deps.Backend, sess.User, log)
		m.applicationsView = views.NewApplicationsView(m.deps.Backend, m.deps.Notifier, log)
	}
	m = m.resize()

	m.currentView = ViewBrowse
	if market.LandingFor(sess.User.Role) == market.LandingMyProjects {
		m.currentView = ViewMyProjects
	}
	if m.startView != ViewAuth && m.allowed(m.startView) {
		m.currentView = m.startView
	}

	m.log.WithFields(logrus.Fields{
		"user_id": sess.User.ID,
		"role":    sess.User.Role,
		"view":    m.currentView.String(),
	}).Info("session active")

	return m.mount(m.currentView)
}

// signOut drops the session and every role view, returning to auth
func (m RootModel) signOut(reason string) (RootModel, tea.Cmd) {
	if err := m.deps.Sessions.Clear(); err != nil {
		m.log.WithError(err).Warn("failed to clear stored session")
	}

	m.session = nil
	m.gen++
	m.myProjectsView = views.MyProjectsView{}
	m.postProjectView = views.PostProjectView{}
	m.browseView = views.BrowseView{}
	m.applicationsView = views.ApplicationsView{}
	m.helpVisible = false

	m.currentView = ViewAuth
	m.authView = views.NewAuthView(m.deps.Backend, m.deps.Log).SetSize(m.width, m.contentHeight())
	if reason != "" {
		m.authView = m.authView.SetError(reason)
	}

	return m.mount(ViewAuth)
}

// allowed reports whether the signed-in role has view v
func (m RootModel) allowed(v View) bool {
	if m.session == nil {
		return v == ViewAuth
	}
	if m.session.User.IsClient() {
		return v == ViewMyProjects || v == ViewPostProject
	}
	return v == ViewBrowse || v == ViewApplications
}

// mount runs a view's mount hook
func (m RootModel) mount(v View) (RootModel, tea.Cmd) {
	var cmd tea.Cmd
	switch v {
	case ViewAuth:
		m.authView, cmd = m.authView.Mount()
	case ViewMyProjects:
		m.myProjectsView, cmd = m.myProjectsView.Mount()
	case ViewPostProject:
		m.postProjectView, cmd = m.postProjectView.Mount()
	case ViewBrowse:
		m.browseView, cmd = m.browseView.Mount()
	case ViewApplications:
		m.applicationsView, cmd = m.applicationsView.Mount()
	}
	return m, m.scope(cmd)
}

// sessionMsg is a view result tagged with the session it was issued in
type sessionMsg struct {
	gen uint64
	msg tea.Msg
}

// scope tags the messages cmd produces with the current session
func (m RootModel) scope(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	gen := m.gen
	return func() tea.Msg {
		return tagMsg(gen, cmd())
	}
}

func tagMsg(gen uint64, msg tea.Msg) tea.Msg {
	switch msg := msg.(type) {
	case nil:
		return nil
	case sessionMsg:
		return msg
	case tea.BatchMsg:
		cmds := make(tea.BatchMsg, 0, len(msg))
		for _, c := range msg {
			if c == nil {
				continue
			}
			cmds = append(cmds, func() tea.Msg { return tagMsg(gen, c()) })
		}
		return cmds
	}
	return sessionMsg{gen: gen, msg: msg}
}

func (m RootModel) switchTo(v View) (RootModel, tea.Cmd) {
	if !m.allowed(v) {
		return m, nil
	}
	m.currentView = v
	m.helpVisible = false
	return m.mount(v)
}

// roleViews returns the first and second view for the signed-in role
func (m RootModel) roleViews() (View, View) {
	if m.session != nil && m.session.User.IsClient() {
		return ViewMyProjects, ViewPostProject
	}
	return ViewBrowse, ViewApplications
}

func (m RootModel) contentHeight() int {
	// Header (1 line) and footer (status + 2 hint lines)
	return m.height - 4
}

func (m RootModel) resize() RootModel {
	h := m.contentHeight()
	m.authView = m.authView.SetSize(m.width, h)
	m.myProjectsView = m.myProjectsView.SetSize(m.width, h)
	m.postProjectView = m.postProjectView.SetSize(m.width, h)
	m.browseView = m.browseView.SetSize(m.width, h)
	m.applicationsView = m.applicationsView.SetSize(m.width, h)
	return m
}

func (m RootModel) isInputMode() bool {
	switch m.currentView {
	case ViewAuth:
		return m.authView.IsInputMode()
	case ViewMyProjects:
		return m.myProjectsView.IsInputMode()
	case ViewPostProject:
		return m.postProjectView.IsInputMode()
	case ViewBrowse:
		return m.browseView.IsInputMode()
	case ViewApplications:
		return m.applicationsView.IsInputMode()
	}
	return false
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m.resize(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sessionMsg:
		if msg.gen != m.gen {
			m.log.WithField("msg", fmt.Sprintf("%T", msg.msg)).Debug("dropping result from an ended session")
			return m, nil
		}
		return m.Update(msg.msg)

	case views.AuthenticatedMsg:
		if err := m.deps.Sessions.Save(msg.Session); err != nil {
			m.log.WithError(err).Error("failed to store session")
			m.errorMsg = "Signed in, but the session could not be saved"
		}
		return m.activate(msg.Session)

	case SessionExpiredMsg:
		if m.session == nil {
			// Already signed out; keep the auth form and its error
			return m, nil
		}
		m.log.WithError(msg.Err).Info("session expired")
		return m.signOut("Your session has expired. Please sign in again.")

	case views.ProjectPostedMsg:
		m.statusMsg = fmt.Sprintf("Posted %q", msg.Project.DisplayTitle())
		return m.switchTo(ViewMyProjects)

	case SwitchViewMsg:
		return m.switchTo(msg.View)

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil
	}

	return m.broadcast(msg)
}

func (m RootModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear status/error on any keypress
	m.statusMsg = ""
	m.errorMsg = ""

	isInputMode := m.isInputMode()

	switch {
	case key.Matches(msg, m.keys.Quit):
		// ctrl+c always quits, but 'q' only quits when not in input mode
		if msg.String() == "ctrl+c" || !isInputMode {
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.ThemeCycle):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		if m.session != nil {
			m.log.Info("logged out")
			return m.signOut("")
		}
		return m, nil
	}

	if m.helpVisible {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
			m.helpVisible = false
		}
		return m, nil
	}

	if !isInputMode && m.session != nil {
		first, second := m.roleViews()
		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = true
			return m, nil
		case key.Matches(msg, m.keys.FirstView):
			return m.switchTo(first)
		case key.Matches(msg, m.keys.SecondView):
			return m.switchTo(second)
		}
	}

	return m.delegate(msg)
}

// delegate sends msg to the visible view only
func (m RootModel) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var updated tea.Model
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAuth:
		updated, cmd = m.authView.Update(msg)
		m.authView = updated.(views.AuthView)
	case ViewMyProjects:
		updated, cmd = m.myProjectsView.Update(msg)
		m.myProjectsView = updated.(views.MyProjectsView)
	case ViewPostProject:
		updated, cmd = m.postProjectView.Update(msg)
		m.postProjectView = updated.(views.PostProjectView)
	case ViewBrowse:
		updated, cmd = m.browseView.Update(msg)
		m.browseView = updated.(views.BrowseView)
	case ViewApplications:
		updated, cmd = m.applicationsView.Update(msg)
		m.applicationsView = updated.(views.ApplicationsView)
	}
	return m, m.scope(cmd)
}

// broadcast sends msg to every live view, so results that arrive after the
// user moved on still land where they belong.
func (m RootModel) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var updated tea.Model
	var cmd tea.Cmd

	if m.session == nil {
		updated, cmd = m.authView.Update(msg)
		m.authView = updated.(views.AuthView)
		return m, m.scope(cmd)
	}

	if m.session.User.IsClient() {
		updated, cmd = m.myProjectsView.Update(msg)
		m.myProjectsView = updated.(views.MyProjectsView)
		cmds = append(cmds, cmd)

		updated, cmd = m.postProjectView.Update(msg)
		m.postProjectView = updated.(views.PostProjectView)
		cmds = append(cmds, cmd)
	} else {
		updated, cmd = m.browseView.Update(msg)
		m.browseView = updated.(views.BrowseView)
		cmds = append(cmds, cmd)

		updated, cmd = m.applicationsView.Update(msg)
		m.applicationsView = updated.(views.ApplicationsView)
		cmds = append(cmds, cmd)
	}

	return m, m.scope(tea.Batch(cmds...))
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	contentHeight := m.contentHeight()
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight--
	}

	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else {
		switch m.currentView {
		case ViewAuth:
			content = m.authView.View()
		case ViewMyProjects:
			content = m.myProjectsView.View()
		case ViewPostProject:
			content = m.postProjectView.View()
		case ViewBrowse:
			content = m.browseView.View()
		case ViewApplications:
			content = m.applicationsView.View()
		}
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("workbridge")

	subtle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)

	left := title
	right := subtle.Render(fmt.Sprintf("theme: %s", t.Name))

	if m.session != nil {
		first, second := m.roleViews()
		var tabs []string
		for i, v := range []View{first, second} {
			label := fmt.Sprintf("%d %s", i+1, v.String())
			if v == m.currentView {
				tabs = append(tabs, styles.StatusKey.Padding(0, 1).Render(label))
			} else {
				tabs = append(tabs, subtle.Render(label))
			}
		}
		left = lipgloss.JoinHorizontal(lipgloss.Center, append([]string{title}, tabs...)...)

		user := m.session.User
		right = subtle.Render(fmt.Sprintf("%s (%s)", user.Name, strings.ToLower(string(user.Role)))) + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	var line1, line2 string
	general := key("1-2", "views") + sep + key("ctrl+l", "log out") + sep + key("ctrl+t", "theme") + sep + key("?", "help")

	switch {
	case m.helpVisible:
		line1 = key("?/esc", "close help")

	case m.currentView == ViewAuth:
		line1 = key("tab", "next field") + sep + key("enter", "submit") + sep + key("ctrl+n", "sign in/register")
		line2 = key("ctrl+t", "theme") + sep + key("ctrl+c", "quit")

	case m.isInputMode():
		line1 = key("tab", "next field") + sep + key("ctrl+s", "submit") + sep + key("esc", "cancel")

	case m.currentView == ViewMyProjects:
		line1 = key("j/k", "navigate") + sep +
			key("e", "edit") + sep +
			key("d", "delete") + sep +
			key("a", "accept") + sep +
			key("x", "reject") + sep +
			key("r", "refresh") + sep +
			key("n/p", "page")
		line2 = general

	case m.currentView == ViewPostProject:
		line1 = key("enter", "edit form")
		line2 = general

	case m.currentView == ViewBrowse:
		line1 = key("j/k", "navigate") + sep +
			key("a/enter", "apply") + sep +
			key("/", "search") + sep +
			key("s/S", "skill") + sep +
			key("r", "refresh") + sep +
			key("n/p", "page")
		line2 = general

	case m.currentView == ViewApplications:
		line1 = key("j/k", "navigate") + sep + key("r", "refresh")
		line2 = general
	}

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}
	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	styles := theme.Current.Styles

	var b strings.Builder
	b.WriteString(styles.Title.Render("WorkBridge Help"))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpDesc.Render("Press ? or esc to close"))
	return b.String()
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	next := theme.Next(theme.Current.Theme.Name)
	theme.SetTheme(next)
	m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
}
