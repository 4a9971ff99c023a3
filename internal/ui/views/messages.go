package views

import "github.com/dori/workbridge/internal/model"

// AuthenticatedMsg is emitted by the auth view after sign-in or registration
type AuthenticatedMsg struct {
	Session model.Session
}

// ProjectPostedMsg is emitted by the post project view after a project is
// created.
type ProjectPostedMsg struct {
	Project model.Project
}
