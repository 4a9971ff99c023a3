package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/workbridge/internal/ui/theme"
)

// FieldKind selects how a form field takes input
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldPassword
	FieldChoice
)

// FieldSpec describes one form field
type FieldSpec struct {
	Key         string
	Label       string
	Placeholder string
	Kind        FieldKind
	Choices     []string // FieldChoice only
	CharLimit   int
}

type formField struct {
	spec   FieldSpec
	input  textinput.Model
	choice int
}

// FormAction is what a key press did to a form
type FormAction int

const (
	FormNone FormAction = iota
	FormSubmit
	FormCancel
)

// Form is a vertical list of labelled inputs. Tab and arrows move between
// fields, enter advances and submits from the last field, ctrl+s submits
// from anywhere, esc cancels.
type Form struct {
	Title      string
	Err        string
	Submitting bool

	fields []formField
	focus  int
}

// NewForm creates a form with the given fields
func NewForm(title string, specs ...FieldSpec) Form {
	f := Form{Title: title}
	for _, spec := range specs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = spec.Placeholder
		ti.CharLimit = spec.CharLimit
		if ti.CharLimit == 0 {
			ti.CharLimit = 512
		}
		if spec.Kind == FieldPassword {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		f.fields = append(f.fields, formField{spec: spec, input: ti})
	}
	return f
}

// Focus focuses the current field
func (f Form) Focus() (Form, tea.Cmd) {
	return f.focusField(f.focus)
}

// Blur removes focus from every field
func (f Form) Blur() Form {
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
	return f
}

func (f Form) focusField(i int) (Form, tea.Cmd) {
	if len(f.fields) == 0 {
		return f, nil
	}
	f = f.Blur()
	f.focus = (i + len(f.fields)) % len(f.fields)
	if f.fields[f.focus].spec.Kind == FieldChoice {
		return f, nil
	}
	return f, f.fields[f.focus].input.Focus()
}

// Value returns the trimmed value of a field
func (f Form) Value(key string) string {
	for _, fld := range f.fields {
		if fld.spec.Key != key {
			continue
		}
		if fld.spec.Kind == FieldChoice {
			if len(fld.spec.Choices) == 0 {
				return ""
			}
			return fld.spec.Choices[fld.choice]
		}
		return strings.TrimSpace(fld.input.Value())
	}
	return ""
}

// SetValue sets a field's value. Choice fields select the matching choice.
func (f Form) SetValue(key, value string) Form {
	for i := range f.fields {
		fld := &f.fields[i]
		if fld.spec.Key != key {
			continue
		}
		if fld.spec.Kind == FieldChoice {
			for j, c := range fld.spec.Choices {
				if c == value {
					fld.choice = j
				}
			}
			continue
		}
		fld.input.SetValue(value)
		fld.input.CursorEnd()
	}
	return f
}

// Reset clears every field and the error, and focuses the first field
func (f Form) Reset() Form {
	for i := range f.fields {
		f.fields[i].input.SetValue("")
		f.fields[i].choice = 0
	}
	f.Err = ""
	f.Submitting = false
	f.focus = 0
	return f
}

// Update handles a key press
func (f Form) Update(msg tea.KeyMsg) (Form, tea.Cmd, FormAction) {
	if f.Submitting {
		return f, nil, FormNone
	}

	switch msg.String() {
	case "esc":
		return f, nil, FormCancel
	case "ctrl+s":
		return f, nil, FormSubmit
	case "enter":
		if f.focus == len(f.fields)-1 {
			return f, nil, FormSubmit
		}
		f, cmd := f.focusField(f.focus + 1)
		return f, cmd, FormNone
	case "tab", "down":
		f, cmd := f.focusField(f.focus + 1)
		return f, cmd, FormNone
	case "shift+tab", "up":
		f, cmd := f.focusField(f.focus - 1)
		return f, cmd, FormNone
	}

	if len(f.fields) == 0 {
		return f, nil, FormNone
	}

	fld := &f.fields[f.focus]
	if fld.spec.Kind == FieldChoice {
		n := len(fld.spec.Choices)
		switch msg.String() {
		case "left", "h":
			if n > 0 {
				fld.choice = (fld.choice - 1 + n) % n
			}
		case "right", "l", " ":
			if n > 0 {
				fld.choice = (fld.choice + 1) % n
			}
		}
		return f, nil, FormNone
	}

	var cmd tea.Cmd
	fld.input, cmd = fld.input.Update(msg)
	return f, cmd, FormNone
}

// View renders the form
func (f Form) View(width int) string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	inputWidth := width - 8
	if inputWidth > 60 {
		inputWidth = 60
	}
	if inputWidth < 20 {
		inputWidth = 20
	}

	var b strings.Builder
	if f.Title != "" {
		b.WriteString(styles.Title.Render(f.Title))
		b.WriteString("\n")
	}

	for i, fld := range f.fields {
		focused := i == f.focus
		b.WriteString(styles.Label.Render(fld.spec.Label))
		b.WriteString("\n")

		box := styles.Input.Width(inputWidth)
		if focused {
			box = styles.InputFocused.Width(inputWidth)
		}

		var content string
		if fld.spec.Kind == FieldChoice {
			var opts []string
			for j, c := range fld.spec.Choices {
				if j == fld.choice {
					opts = append(opts, lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render("● "+c))
				} else {
					opts = append(opts, styles.Placeholder.Render("○ "+c))
				}
			}
			content = strings.Join(opts, "   ")
		} else {
			fld.input.Width = inputWidth - 2
			content = fld.input.View()
		}
		b.WriteString(box.Render(content))
		b.WriteString("\n")
	}

	if f.Err != "" {
		b.WriteString(styles.Error.Render(f.Err))
		b.WriteString("\n")
	}
	if f.Submitting {
		b.WriteString(styles.Label.Render("Submitting..."))
		b.WriteString("\n")
	}
	return b.String()
}
