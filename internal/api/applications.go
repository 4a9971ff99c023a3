package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dori/workbridge/internal/model"
)

// ProjectApplications returns a page of applications to a project
func (c *Client) ProjectApplications(ctx context.Context, projectID int64, p PageRequest) (*model.Page[model.Application], error) {
	var page model.Page[model.Application]
	path := fmt.Sprintf("/applications/project/%d", projectID)
	if err := c.do(ctx, http.MethodGet, path, c.pageQuery(p), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FreelancerApplications returns a page of the caller's own applications
func (c *Client) FreelancerApplications(ctx context.Context, p PageRequest) (*model.Page[model.Application], error) {
	var page model.Page[model.Application]
	if err := c.do(ctx, http.MethodGet, "/applications/freelancer", c.pageQuery(p), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Application returns a single application by ID
func (c *Client) Application(ctx context.Context, id int64) (*model.Application, error) {
	var app model.Application
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/applications/%d", id), nil, nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// CreateApplication submits an application
func (c *Client) CreateApplication(ctx context.Context, req model.ApplicationRequest) (*model.Application, error) {
	var app model.Application
	if err := c.do(ctx, http.MethodPost, "/applications", nil, req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateApplicationStatus accepts or rejects an application
func (c *Client) UpdateApplicationStatus(ctx context.Context, id int64, status model.ApplicationStatus) (*model.Application, error) {
	q := url.Values{}
	q.Set("status", string(status))

	var app model.Application
	path := fmt.Sprintf("/applications/%d/status", id)
	if err := c.do(ctx, http.MethodPut, path, q, nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// HasApplied reports whether the caller already applied to a project
func (c *Client) HasApplied(ctx context.Context, projectID int64) (bool, error) {
	var applied bool
	path := fmt.Sprintf("/applications/check/%d", projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &applied); err != nil {
		return false, err
	}
	return applied, nil
}
