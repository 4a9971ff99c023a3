package api

import (
	"context"
	"net/http"

	"github.com/dori/workbridge/internal/model"
)

// Login exchanges credentials for a session
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.Session, error) {
	var sess model.Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Register creates an account and returns its session
func (c *Client) Register(ctx context.Context, reg model.Registration) (*model.Session, error) {
	var sess model.Session
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, reg, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}
