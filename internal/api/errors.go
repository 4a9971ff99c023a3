package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrUnauthorized is wrapped by errors for responses rejecting the token
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx response from the backend
type Error struct {
	StatusCode int
	Method     string
	Path       string
	// Message is the backend's own message, empty if it sent none
	Message string
	Body    string
}

func newError(method, path string, status int, body []byte) *Error {
	e := &Error{
		StatusCode: status,
		Method:     method,
		Path:       path,
		Body:       strings.TrimSpace(string(body)),
	}
	if gjson.ValidBytes(body) {
		e.Message = strings.TrimSpace(gjson.GetBytes(body, "message").String())
	}
	return e
}

func (e *Error) Error() string {
	detail := e.Message
	if detail == "" && gjson.Valid(e.Body) {
		detail = gjson.Get(e.Body, "error").String()
	}
	if detail == "" {
		detail = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, detail)
}

// Unwrap exposes ErrUnauthorized for 401 responses
func (e *Error) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// IsUnauthorized reports whether err came from a rejected token
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound reports whether err is a 404 response
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Message returns the backend's message for err, or fallback
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
