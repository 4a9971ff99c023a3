package model

import (
	"math"
	"strconv"
	"strings"
)

// ApplicationStatus represents the review state of an application
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// Label returns a human readable status
func (s ApplicationStatus) Label() string {
	switch s {
	case ApplicationPending:
		return "Under review"
	case ApplicationAccepted:
		return "Selected"
	case ApplicationRejected:
		return "Not selected"
	default:
		return string(s)
	}
}

// Application is a freelancer's proposal against a project
type Application struct {
	ID              int64             `json:"id"`
	Project         *Project          `json:"project,omitempty"`
	Freelancer      *User             `json:"freelancer,omitempty"`
	ProposalMessage string            `json:"proposalMessage"`
	ExpectedPrice   float64           `json:"expectedPrice"`
	PortfolioLink   string            `json:"portfolioLink,omitempty"`
	Status          ApplicationStatus `json:"status"`
	CreatedAt       LocalTime         `json:"createdAt"`
}

// ProjectTitle returns the display title of the applied-to project
func (a *Application) ProjectTitle() string {
	return a.Project.DisplayTitle()
}

// FreelancerName returns the applicant's name, or fallback if unknown
func (a *Application) FreelancerName(fallback string) string {
	if a.Freelancer == nil || a.Freelancer.Name == "" {
		return fallback
	}
	return a.Freelancer.Name
}

// ApplicationRequest is the create payload for an application.
// PortfolioLink is always sent, empty rather than null.
type ApplicationRequest struct {
	ProjectID       int64   `json:"projectId"`
	ProposalMessage string  `json:"proposalMessage"`
	ExpectedPrice   float64 `json:"expectedPrice"`
	PortfolioLink   string  `json:"portfolioLink"`
}

// ApplicationInput holds raw form values for an application
type ApplicationInput struct {
	ProposalMessage string
	ExpectedPrice   string
	PortfolioLink   string
}

// Request validates the input and converts it into a wire payload
func (in ApplicationInput) Request(projectID int64) (ApplicationRequest, error) {
	req := ApplicationRequest{
		ProjectID:       projectID,
		ProposalMessage: strings.TrimSpace(in.ProposalMessage),
		PortfolioLink:   strings.TrimSpace(in.PortfolioLink),
	}

	if req.ProposalMessage == "" {
		return req, &ValidationError{Field: "proposal", Message: "Proposal message is required"}
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(in.ExpectedPrice), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return req, &ValidationError{Field: "price", Message: "Expected price must be a number"}
	}
	if price <= 0 {
		return req, &ValidationError{Field: "price", Message: "Expected price must be positive"}
	}
	req.ExpectedPrice = price

	return req, nil
}
