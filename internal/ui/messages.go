package ui

// View represents the current active view
type View int

const (
	ViewAuth View = iota
	ViewMyProjects
	ViewPostProject
	ViewBrowse
	ViewApplications
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewAuth:
		return "Sign in"
	case ViewMyProjects:
		return "My Projects"
	case ViewPostProject:
		return "Post Project"
	case ViewBrowse:
		return "Browse Projects"
	case ViewApplications:
		return "My Applications"
	default:
		return "Unknown"
	}
}

// ParseView returns the view named on the command line
func ParseView(name string) (View, bool) {
	switch name {
	case "projects", "my-projects":
		return ViewMyProjects, true
	case "post", "post-project":
		return ViewPostProject, true
	case "browse":
		return ViewBrowse, true
	case "applications", "my-applications":
		return ViewApplications, true
	default:
		return ViewAuth, false
	}
}

// Messages for inter-component communication

// SessionExpiredMsg is sent into the program when the backend rejects the
// stored token.
type SessionExpiredMsg struct {
	Err error
}

// SwitchViewMsg requests a view change
type SwitchViewMsg struct {
	View View
}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}
