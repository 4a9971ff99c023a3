package views

import (
	"context"

	"github.com/dori/workbridge/internal/api"
	"github.com/dori/workbridge/internal/model"
)

// Backend is the part of the API client the views call
type Backend interface {
	Login(ctx context.Context, creds model.Credentials) (*model.Session, error)
	Register(ctx context.Context, reg model.Registration) (*model.Session, error)

	Projects(ctx context.Context, p api.PageRequest) (*model.Page[model.Project], error)
	ClientProjects(ctx context.Context, p api.PageRequest) (*model.Page[model.Project], error)
	CreateProject(ctx context.Context, req model.ProjectRequest) (*model.Project, error)
	UpdateProject(ctx context.Context, id int64, req model.ProjectRequest) (*model.Project, error)
	DeleteProject(ctx context.Context, id int64) error

	ProjectApplications(ctx context.Context, projectID int64, p api.PageRequest) (*model.Page[model.Application], error)
	FreelancerApplications(ctx context.Context, p api.PageRequest) (*model.Page[model.Application], error)
	CreateApplication(ctx context.Context, req model.ApplicationRequest) (*model.Application, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status model.ApplicationStatus) (*model.Application, error)
	HasApplied(ctx context.Context, projectID int64) (bool, error)
}

// Notifier delivers desktop notifications for application decisions
type Notifier interface {
	SendDecision(projectTitle string, accepted bool) error
}

var _ Backend = (*api.Client)(nil)
