package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/dori/workbridge/internal/api"
	"github.com/dori/workbridge/internal/model"
	"github.com/dori/workbridge/internal/ui/theme"
)

type authResultMsg struct {
	session  *model.Session
	register bool
	err      error
}

// AuthMode selects sign-in or registration
type AuthMode int

const (
	AuthModeLogin AuthMode = iota
	AuthModeRegister
)

// AuthView is the sign-in and registration screen
type AuthView struct {
	backend Backend
	log     logrus.FieldLogger
	width   int
	height  int

	mode AuthMode
	form Form
}

// NewAuthView creates a new auth view
func NewAuthView(backend Backend, log logrus.FieldLogger) AuthView {
	v := AuthView{
		backend: backend,
		log:     log.WithField("view", "auth"),
	}
	v.form = v.buildForm("")
	return v
}

func (v AuthView) buildForm(email string) Form {
	var f Form
	if v.mode == AuthModeRegister {
		f = NewForm("Create an account",
			FieldSpec{Key: "name", Label: "Name", Placeholder: "Ada Lovelace"},
			FieldSpec{Key: "email", Label: "Email", Placeholder: "you@example.com"},
			FieldSpec{Key: "password", Label: "Password", Kind: FieldPassword},
			FieldSpec{Key: "role", Label: "I want to", Kind: FieldChoice, Choices: []string{string(model.RoleClient), string(model.RoleFreelancer)}},
		)
	} else {
		f = NewForm("Sign in",
			FieldSpec{Key: "email", Label: "Email", Placeholder: "you@example.com"},
			FieldSpec{Key: "password", Label: "Password", Kind: FieldPassword},
		)
	}
	return f.SetValue("email", email)
}

// Init initializes the auth view
func (v AuthView) Init() tea.Cmd {
	_, cmd := v.form.Focus()
	return cmd
}

// Mount focuses the form
func (v AuthView) Mount() (AuthView, tea.Cmd) {
	var cmd tea.Cmd
	v.form, cmd = v.form.Focus()
	return v, cmd
}

// SetSize sets the view dimensions
func (v AuthView) SetSize(width, height int) AuthView {
	v.width = width
	v.height = height
	return v
}

// SetError shows msg under the form
func (v AuthView) SetError(msg string) AuthView {
	v.form.Err = msg
	return v
}

// Error returns the message shown under the form
func (v AuthView) Error() string {
	return v.form.Err
}

// Mode returns the current auth mode
func (v AuthView) Mode() AuthMode {
	return v.mode
}

// Update handles messages
func (v AuthView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		v.form.Submitting = false
		if msg.err != nil {
			fallback := "Login failed"
			if msg.register {
				fallback = "Registration failed"
			}
			v.log.WithError(msg.err).Info("authentication failed")
			v.form.Err = api.Message(msg.err, fallback)
			return v, nil
		}
		v.form.Err = ""
		sess := *msg.session
		return v, func() tea.Msg { return AuthenticatedMsg{Session: sess} }

	case tea.KeyMsg:
		if msg.String() == "ctrl+n" && !v.form.Submitting {
			return v.toggleMode()
		}

		var cmd tea.Cmd
		var action FormAction
		v.form, cmd, action = v.form.Update(msg)
		switch action {
		case FormSubmit:
			return v.submit()
		case FormCancel:
			v.form.Err = ""
		}
		return v, cmd
	}

	return v, nil
}

func (v AuthView) toggleMode() (tea.Model, tea.Cmd) {
	email := v.form.Value("email")
	if v.mode == AuthModeLogin {
		v.mode = AuthModeRegister
	} else {
		v.mode = AuthModeLogin
	}
	v.form = v.buildForm(email)
	var cmd tea.Cmd
	v.form, cmd = v.form.Focus()
	return v, cmd
}

func (v AuthView) submit() (tea.Model, tea.Cmd) {
	email := v.form.Value("email")
	password := v.form.Value("password")

	if email == "" || password == "" {
		v.form.Err = "Email and password are required"
		return v, nil
	}

	backend := v.backend
	if v.mode == AuthModeRegister {
		name := v.form.Value("name")
		if name == "" {
			v.form.Err = "Name is required"
			return v, nil
		}
		reg := model.Registration{
			Name:     name,
			Email:    email,
			Password: password,
			Role:     model.Role(v.form.Value("role")),
		}
		v.form.Err = ""
		v.form.Submitting = true
		return v, func() tea.Msg {
			sess, err := backend.Register(context.Background(), reg)
			return authResultMsg{session: sess, register: true, err: err}
		}
	}

	creds := model.Credentials{Email: email, Password: password}
	v.form.Err = ""
	v.form.Submitting = true
	return v, func() tea.Msg {
		sess, err := backend.Login(context.Background(), creds)
		return authResultMsg{session: sess, err: err}
	}
}

// View renders the auth view
func (v AuthView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render("WorkBridge"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Clients post projects. Freelancers apply."))
	b.WriteString("\n\n")
	b.WriteString(v.form.View(v.width))
	b.WriteString("\n")

	hint := "ctrl+n: create an account"
	if v.mode == AuthModeRegister {
		hint = "ctrl+n: sign in instead"
	}
	b.WriteString(styles.Label.Render(hint))

	panel := styles.Panel.Render(b.String())
	if v.width == 0 || v.height == 0 {
		return panel
	}
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, panel)
}

// IsInputMode returns true; the auth view is always a form
func (v AuthView) IsInputMode() bool {
	return true
}
