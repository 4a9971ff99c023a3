package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dori/workbridge/internal/model"
)

// Projects returns a page of open projects
func (c *Client) Projects(ctx context.Context, p PageRequest) (*model.Page[model.Project], error) {
	var page model.Page[model.Project]
	if err := c.do(ctx, http.MethodGet, "/projects", c.pageQuery(p), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ClientProjects returns a page of the caller's own projects
func (c *Client) ClientProjects(ctx context.Context, p PageRequest) (*model.Page[model.Project], error) {
	var page model.Page[model.Project]
	if err := c.do(ctx, http.MethodGet, "/projects/client", c.pageQuery(p), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Project returns a single project by ID
func (c *Client) Project(ctx context.Context, id int64) (*model.Project, error) {
	var project model.Project
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// SearchProjectsBySkill returns open projects requiring skill
func (c *Client) SearchProjectsBySkill(ctx context.Context, skill string, p PageRequest) (*model.Page[model.Project], error) {
	q := c.pageQuery(p)
	q.Set("skill", skill)

	var page model.Page[model.Project]
	if err := c.do(ctx, http.MethodGet, "/projects/search/skill", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchProjectsBySkills returns open projects requiring any of skills
func (c *Client) SearchProjectsBySkills(ctx context.Context, skills []string, p PageRequest) (*model.Page[model.Project], error) {
	q := c.pageQuery(p)
	q.Set("skills", strings.Join(skills, ","))

	var page model.Page[model.Project]
	if err := c.do(ctx, http.MethodGet, "/projects/search/skills", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateProject posts a new project
func (c *Client) CreateProject(ctx context.Context, req model.ProjectRequest) (*model.Project, error) {
	var project model.Project
	if err := c.do(ctx, http.MethodPost, "/projects", nil, req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject replaces a project with req
func (c *Client) UpdateProject(ctx context.Context, id int64, req model.ProjectRequest) (*model.Project, error) {
	var project model.Project
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/projects/%d", id), nil, req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject deletes a project
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil, nil)
}
