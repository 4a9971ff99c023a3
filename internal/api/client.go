// Package api is the HTTP client for the marketplace backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the backend base path used when none is configured
const DefaultBaseURL = "http://localhost:8080/api"

// DefaultPageSize matches the backend's default page size
const DefaultPageSize = 10

// TokenSource supplies the bearer token for each request
type TokenSource interface {
	Token() string
}

// Config holds client configuration
type Config struct {
	BaseURL  string
	Timeout  time.Duration // Zero means no client-side timeout
	PageSize int
	Logger   logrus.FieldLogger
}

// PageRequest selects a page of a list endpoint. Zero values use page 0
// and the client's page size.
type PageRequest struct {
	Page int
	Size int
}

// Client is a client for the marketplace REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	pageSize   int
	log        logrus.FieldLogger

	mu             sync.RWMutex
	onUnauthorized func(error)
}

// New creates a new API client
func New(cfg Config, tokens TokenSource) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     tokens,
		pageSize:   pageSize,
		log:        log.WithField("component", "api"),
	}
}

// SetUnauthorizedHandler installs the callback invoked on every 401
// response, whichever request triggered it.
func (c *Client) SetUnauthorizedHandler(fn func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// BaseURL returns the configured backend base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) unauthorized(err error) {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()

	if fn != nil {
		fn(err)
	}
}

func (c *Client) pageQuery(p PageRequest) url.Values {
	size := p.Size
	if size <= 0 {
		size = c.pageSize
	}
	page := p.Page
	if page < 0 {
		page = 0
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return q
}

// do sends a JSON request and decodes a JSON response into out (if non-nil)
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	log := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})
	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	log = log.WithFields(logrus.Fields{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(started).Milliseconds(),
	})

	if resp.StatusCode == http.StatusUnauthorized {
		apiErr := newError(method, path, resp.StatusCode, respBody)
		log.Warn("token rejected")
		c.unauthorized(apiErr)
		return apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newError(method, path, resp.StatusCode, respBody)
		log.WithField("message", apiErr.Message).Info("request rejected")
		return apiErr
	}

	log.Debug("request completed")

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
