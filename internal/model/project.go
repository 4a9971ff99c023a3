package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for project deadlines
const DateLayout = "2006-01-02"

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectOpen       ProjectStatus = "OPEN"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
)

// Label returns a human readable status
func (s ProjectStatus) Label() string {
	switch s {
	case ProjectOpen:
		return "Open"
	case ProjectInProgress:
		return "In progress"
	case ProjectCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Project is a unit of work posted by a client
type Project struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	Title          string        `json:"title,omitempty"`
	Description    string        `json:"description"`
	Budget         float64       `json:"budget"`
	Deadline       string        `json:"deadline,omitempty"`
	Duration       int           `json:"duration,omitempty"` // Days
	RequiredSkills []string      `json:"requiredSkills"`
	Status         ProjectStatus `json:"status,omitempty"`
	Client         *User         `json:"client,omitempty"`
	CreatedAt      LocalTime     `json:"createdAt"`
}

// DisplayTitle returns the title, falling back to the name
func (p *Project) DisplayTitle() string {
	if p == nil {
		return "Project"
	}
	if p.Title != "" {
		return p.Title
	}
	if p.Name != "" {
		return p.Name
	}
	return "Project"
}

// HasSkill reports exact, case-sensitive membership in the required skills
func (p *Project) HasSkill(skill string) bool {
	for _, s := range p.RequiredSkills {
		if s == skill {
			return true
		}
	}
	return false
}

// ClientID returns the owning client's id, or 0 if unknown
func (p *Project) ClientID() int64 {
	if p.Client == nil {
		return 0
	}
	return p.Client.ID
}

// DeadlineDate parses the deadline, returning false if unset or malformed
func (p *Project) DeadlineDate() (time.Time, bool) {
	if p.Deadline == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, p.Deadline, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ProjectRequest is the create/replace payload for a project
type ProjectRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Budget         float64  `json:"budget"`
	Deadline       string   `json:"deadline"`
	Duration       int      `json:"duration"`
	RequiredSkills []string `json:"requiredSkills"`
}

// ProjectInput holds raw form values for a project
type ProjectInput struct {
	Name        string
	Description string
	Budget      string
	Deadline    string
	Duration    string
	Skills      string // Comma separated
}

// InputFromProject pre-fills form values from an existing project
func InputFromProject(p Project) ProjectInput {
	in := ProjectInput{
		Name:        p.Name,
		Description: p.Description,
		Budget:      strconv.FormatFloat(p.Budget, 'f', -1, 64),
		Deadline:    p.Deadline,
		Skills:      strings.Join(p.RequiredSkills, ", "),
	}
	if p.Duration > 0 {
		in.Duration = strconv.Itoa(p.Duration)
	}
	return in
}

// Request validates the input and converts it into a wire payload
func (in ProjectInput) Request() (ProjectRequest, error) {
	req := ProjectRequest{
		Name:           strings.TrimSpace(in.Name),
		Description:    strings.TrimSpace(in.Description),
		Deadline:       strings.TrimSpace(in.Deadline),
		RequiredSkills: ParseSkills(in.Skills),
	}

	if req.Name == "" {
		return req, &ValidationError{Field: "name", Message: "Project name is required"}
	}
	if req.Description == "" {
		return req, &ValidationError{Field: "description", Message: "Project description is required"}
	}

	budget, err := strconv.ParseFloat(strings.TrimSpace(in.Budget), 64)
	if err != nil || math.IsNaN(budget) || math.IsInf(budget, 0) {
		return req, &ValidationError{Field: "budget", Message: "Budget must be a number"}
	}
	if budget <= 0 {
		return req, &ValidationError{Field: "budget", Message: "Budget must be positive"}
	}
	req.Budget = budget

	if req.Deadline == "" {
		return req, &ValidationError{Field: "deadline", Message: "Deadline is required"}
	}
	if _, err := time.Parse(DateLayout, req.Deadline); err != nil {
		return req, &ValidationError{Field: "deadline", Message: "Deadline must be YYYY-MM-DD"}
	}

	if d := strings.TrimSpace(in.Duration); d != "" {
		days, err := strconv.Atoi(d)
		if err != nil || days < 0 {
			return req, &ValidationError{Field: "duration", Message: "Duration must be a whole number of days"}
		}
		req.Duration = days
	}

	return req, nil
}

// ParseSkills splits a comma separated list, trimming and de-duplicating
func ParseSkills(s string) []string {
	skills := []string{}
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		skill := strings.TrimSpace(part)
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		skills = append(skills, skill)
	}
	return skills
}

// ValidationError reports a rejected form field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
