package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationRequestWireFormat(t *testing.T) {
	in := ApplicationInput{
		ProposalMessage: "I can do this",
		ExpectedPrice:   "150",
		PortfolioLink:   "",
	}

	req, err := in.Request(42)
	require.NoError(t, err)

	body, err := json.Marshal(req)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &raw))

	assert.Equal(t, float64(150), raw["expectedPrice"])
	assert.Contains(t, raw, "portfolioLink")
	assert.Equal(t, "", raw["portfolioLink"])
	assert.Equal(t, float64(42), raw["projectId"])
	assert.Contains(t, string(body), `"expectedPrice":150`)
	assert.Contains(t, string(body), `"portfolioLink":""`)
}

func TestApplicationInputValidation(t *testing.T) {
	tests := []struct {
		name  string
		input ApplicationInput
		field string
	}{
		{"missing proposal", ApplicationInput{ExpectedPrice: "10"}, "proposal"},
		{"price not a number", ApplicationInput{ProposalMessage: "hi", ExpectedPrice: "ten"}, "price"},
		{"price zero", ApplicationInput{ProposalMessage: "hi", ExpectedPrice: "0"}, "price"},
		{"price NaN", ApplicationInput{ProposalMessage: "hi", ExpectedPrice: "NaN"}, "price"},
		{"price infinite", ApplicationInput{ProposalMessage: "hi", ExpectedPrice: "+Inf"}, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.input.Request(1)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestProjectInputRequest(t *testing.T) {
	in := ProjectInput{
		Name:        "  Landing page ",
		Description: "Build it",
		Budget:      "500.50",
		Deadline:    "2025-01-01",
		Duration:    "14",
		Skills:      "React, Go, ,React",
	}

	req, err := in.Request()
	require.NoError(t, err)
	assert.Equal(t, "Landing page", req.Name)
	assert.Equal(t, 500.50, req.Budget)
	assert.Equal(t, 14, req.Duration)
	assert.Equal(t, []string{"React", "Go"}, req.RequiredSkills)
}

func TestProjectInputRejectsBadDeadline(t *testing.T) {
	in := ProjectInput{Name: "x", Description: "y", Budget: "1", Deadline: "01/02/2025"}

	_, err := in.Request()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "deadline", verr.Field)
}

func TestProjectInputRejectsNonFiniteBudget(t *testing.T) {
	for _, budget := range []string{"NaN", "Inf", "-inf"} {
		in := ProjectInput{Name: "x", Description: "y", Budget: budget, Deadline: "2025-01-01"}

		_, err := in.Request()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, budget)
		assert.Equal(t, "budget", verr.Field)
		assert.Equal(t, "Budget must be a number", verr.Message)
	}
}

func TestInputFromProjectRoundTrip(t *testing.T) {
	p := Project{
		Name:           "API",
		Description:    "Write an API",
		Budget:         900,
		Deadline:       "2025-03-01",
		Duration:       10,
		RequiredSkills: []string{"Go", "SQL"},
	}

	in := InputFromProject(p)
	assert.Equal(t, "900", in.Budget)
	assert.Equal(t, "Go, SQL", in.Skills)

	req, err := in.Request()
	require.NoError(t, err)
	assert.Equal(t, p.RequiredSkills, req.RequiredSkills)
	assert.Equal(t, p.Duration, req.Duration)
}

func TestProjectDisplayTitle(t *testing.T) {
	var nilProject *Project
	assert.Equal(t, "Project", nilProject.DisplayTitle())
	assert.Equal(t, "Named", (&Project{Name: "Named"}).DisplayTitle())
	assert.Equal(t, "Titled", (&Project{Name: "Named", Title: "Titled"}).DisplayTitle())
}

func TestLocalTimeDecoding(t *testing.T) {
	var app Application
	err := json.Unmarshal([]byte(`{"id":7,"status":"PENDING","createdAt":"2025-01-02T10:30:00.123456"}`), &app)
	require.NoError(t, err)
	assert.Equal(t, 2025, app.CreatedAt.Year())
	assert.Equal(t, time.January, app.CreatedAt.Month())
	assert.Equal(t, 30, app.CreatedAt.Minute())

	err = json.Unmarshal([]byte(`{"id":7,"createdAt":null}`), &app)
	require.NoError(t, err)
	assert.True(t, app.CreatedAt.IsZero())
	assert.Equal(t, "", app.CreatedAt.String())

	err = json.Unmarshal([]byte(`{"createdAt":"yesterday"}`), &app)
	assert.Error(t, err)
}

func TestPageItemsNeverNil(t *testing.T) {
	var page Page[Project]
	require.NoError(t, json.Unmarshal([]byte(`{"totalElements":0}`), &page))
	assert.NotNil(t, page.Items())
	assert.Empty(t, page.Items())
}
