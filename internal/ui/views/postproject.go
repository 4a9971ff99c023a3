package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/dori/workbridge/internal/api"
	"github.com/dori/workbridge/internal/model"
	"github.com/dori/workbridge/internal/ui/theme"
)

type projectCreatedMsg struct {
	project *model.Project
	err     error
}

// PostProjectView is the form clients use to post a new project
type PostProjectView struct {
	backend Backend
	log     logrus.FieldLogger
	width   int
	height  int

	form    Form
	editing bool
}

// NewPostProjectView creates a new post project view
func NewPostProjectView(backend Backend, log logrus.FieldLogger) PostProjectView {
	return PostProjectView{
		backend: backend,
		log:     log.WithField("view", "post_project"),
		form:    projectForm("Post a project", model.ProjectInput{}),
	}
}

// Init initializes the view
func (v PostProjectView) Init() tea.Cmd {
	return nil
}

// Mount focuses the form, keeping any input from a previous visit
func (v PostProjectView) Mount() (PostProjectView, tea.Cmd) {
	v.editing = true
	var cmd tea.Cmd
	v.form, cmd = v.form.Focus()
	return v, cmd
}

// SetSize sets the view dimensions
func (v PostProjectView) SetSize(width, height int) PostProjectView {
	v.width = width
	v.height = height
	return v
}

// Update handles messages
func (v PostProjectView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectCreatedMsg:
		v.form.Submitting = false
		if msg.err != nil {
			v.log.WithError(msg.err).Warn("failed to post project")
			v.form.Err = api.Message(msg.err, "Failed to post project. Please try again.")
			return v, nil
		}
		v.log.WithField("project_id", msg.project.ID).Info("project posted")
		v.form = v.form.Reset().Blur()
		v.editing = false
		project := *msg.project
		return v, func() tea.Msg { return ProjectPostedMsg{Project: project} }

	case tea.KeyMsg:
		if !v.editing {
			switch msg.String() {
			case "enter", "i":
				return v.Mount()
			}
			return v, nil
		}

		var cmd tea.Cmd
		var action FormAction
		v.form, cmd, action = v.form.Update(msg)
		switch action {
		case FormCancel:
			v.editing = false
			v.form = v.form.Blur()
			return v, nil
		case FormSubmit:
			return v.submit()
		}
		return v, cmd
	}

	return v, nil
}

func (v PostProjectView) submit() (tea.Model, tea.Cmd) {
	req, err := projectInputFromForm(v.form).Request()
	if err != nil {
		v.form.Err = validationMessage(err)
		return v, nil
	}

	v.form.Err = ""
	v.form.Submitting = true
	backend := v.backend
	return v, func() tea.Msg {
		p, err := backend.CreateProject(context.Background(), req)
		return projectCreatedMsg{project: p, err: err}
	}
}

// Form returns the form, for inspection
func (v PostProjectView) Form() Form {
	return v.form
}

// View renders the view
func (v PostProjectView) View() string {
	styles := theme.Current.Styles

	var b strings.Builder
	b.WriteString(v.form.View(v.width))
	if v.editing {
		b.WriteString(styles.Label.Render("tab next field • ctrl+s post • esc leave form"))
	} else {
		b.WriteString(styles.Label.Render("enter edit form"))
	}
	return b.String()
}

// IsInputMode returns true while the form has focus
func (v PostProjectView) IsInputMode() bool {
	return v.editing
}
