package notify

import (
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// AppName is passed to notify-send so notifications group together
const AppName = "workbridge"

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
	run     func(name string, args ...string) error
}

// NewNotifier creates a new notifier
func NewNotifier(enabled bool) *Notifier {
	return &Notifier{
		enabled: enabled,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// IsEnabled returns whether notifications are enabled
func (n *Notifier) IsEnabled() bool {
	return n != nil && n.enabled
}

// Args returns the notify-send arguments for a notification
func Args(notification Notification) []string {
	args := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// Milliseconds
	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	args = append(args, "-a", AppName, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}
	return args
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.IsEnabled() {
		return nil
	}
	return n.run("notify-send", Args(notification)...)
}

// SendSimple sends a simple notification with title and body
func (n *Notifier) SendSimple(title, body string) error {
	return n.Send(Notification{
		Title:   title,
		Body:    body,
		Urgency: UrgencyNormal,
		Timeout: 5 * time.Second,
	})
}

// SendDecision tells a freelancer their application was decided
func (n *Notifier) SendDecision(projectTitle string, accepted bool) error {
	if accepted {
		return n.Send(Notification{
			Title:   "Application selected",
			Body:    fmt.Sprintf("You've been selected for %q", projectTitle),
			Urgency: UrgencyCritical,
			Timeout: 10 * time.Second,
			Icon:    "emblem-ok-symbolic",
		})
	}
	return n.Send(Notification{
		Title:   "Application not selected",
		Body:    fmt.Sprintf("Your application for %q was not selected", projectTitle),
		Urgency: UrgencyNormal,
		Timeout: 10 * time.Second,
		Icon:    "dialog-information-symbolic",
	})
}

// SendSessionExpired tells the user they were signed out
func (n *Notifier) SendSessionExpired() error {
	return n.Send(Notification{
		Title:   "Signed out",
		Body:    "Your session expired. Sign in again to continue.",
		Urgency: UrgencyLow,
		Timeout: 5 * time.Second,
	})
}
