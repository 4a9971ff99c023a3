package market

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dori/workbridge/internal/model"
)

func project(id int64, title, desc string, skills []string, status model.ProjectStatus, owner int64) model.Project {
	return model.Project{
		ID:             id,
		Name:           title,
		Description:    desc,
		RequiredSkills: skills,
		Status:         status,
		Client:         &model.User{ID: owner},
	}
}

func ids(projects []model.Project) []int64 {
	out := []int64{}
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func TestLandingFor(t *testing.T) {
	assert.Equal(t, LandingMyProjects, LandingFor(model.RoleClient))
	assert.Equal(t, LandingBrowse, LandingFor(model.RoleFreelancer))
	assert.Equal(t, LandingBrowse, LandingFor(""))
	assert.Equal(t, LandingBrowse, LandingFor("ADMIN"))
}

func TestAvailableProjects(t *testing.T) {
	projects := []model.Project{
		project(1, "A", "", nil, model.ProjectOpen, 10),
		project(2, "B", "", nil, model.ProjectInProgress, 10),
		project(3, "C", "", nil, model.ProjectOpen, 42),
		project(4, "D", "", nil, model.ProjectCompleted, 11),
		{ID: 5, Status: model.ProjectOpen},
	}

	assert.Equal(t, []int64{1, 5}, ids(AvailableProjects(projects, 42)))
}

func TestFilterProjectsBySkill(t *testing.T) {
	projects := []model.Project{
		project(1, "Site", "", []string{"React", "Node"}, model.ProjectOpen, 1),
		project(2, "API", "", []string{"Go"}, model.ProjectOpen, 1),
	}

	assert.Equal(t, []int64{1}, ids(FilterProjects(projects, "", "React")))
	assert.Empty(t, FilterProjects(projects, "", "react"))
	assert.Equal(t, []int64{1, 2}, ids(FilterProjects(projects, "", "")))
}

func TestFilterProjectsBySearch(t *testing.T) {
	projects := []model.Project{
		project(1, "Landing page", "marketing site", nil, model.ProjectOpen, 1),
		project(2, "Billing API", "Stripe integration for a SaaS", []string{"Go"}, model.ProjectOpen, 1),
		{ID: 3, Title: "Mobile App", Name: "ignored", Description: "flutter"},
	}

	assert.Equal(t, []int64{1}, ids(FilterProjects(projects, "LANDING", "")))
	assert.Equal(t, []int64{2}, ids(FilterProjects(projects, "stripe", "")))
	assert.Equal(t, []int64{3}, ids(FilterProjects(projects, "mobile", "")))
	assert.Empty(t, FilterProjects(projects, "ignored", ""))
	assert.Empty(t, FilterProjects(projects, "stripe", "Rust"))
	assert.Equal(t, []int64{2}, ids(FilterProjects(projects, "  api ", "Go")))
}

func TestDistinctSkills(t *testing.T) {
	projects := []model.Project{
		project(1, "", "", []string{"React", "Go"}, model.ProjectOpen, 1),
		project(2, "", "", []string{"Go", "CSS", ""}, model.ProjectOpen, 1),
		project(3, "", "", nil, model.ProjectOpen, 1),
	}
	assert.Equal(t, []string{"CSS", "Go", "React"}, DistinctSkills(projects))
	assert.Equal(t, []string{}, DistinctSkills(nil))
}

func TestCanDecide(t *testing.T) {
	assert.True(t, CanDecide(model.Application{Status: model.ApplicationPending}))
	assert.False(t, CanDecide(model.Application{Status: model.ApplicationAccepted}))
	assert.False(t, CanDecide(model.Application{Status: model.ApplicationRejected}))
}

func TestDiffApplications(t *testing.T) {
	prev := []model.Application{
		{ID: 7, Status: model.ApplicationPending},
		{ID: 8, Status: model.ApplicationPending},
		{ID: 9, Status: model.ApplicationAccepted},
	}
	next := []model.Application{
		{ID: 7, Status: model.ApplicationAccepted},
		{ID: 8, Status: model.ApplicationPending},
		{ID: 9, Status: model.ApplicationRejected},
		{ID: 10, Status: model.ApplicationRejected},
	}

	changes := DiffApplications(prev, next)
	if assert.Len(t, changes, 1) {
		assert.Equal(t, int64(7), changes[0].Application.ID)
		assert.Equal(t, model.ApplicationPending, changes[0].From)
		assert.True(t, changes[0].Accepted())
	}

	t.Run("rejection", func(t *testing.T) {
		changes := DiffApplications(
			[]model.Application{{ID: 1, Status: model.ApplicationPending}},
			[]model.Application{{ID: 1, Status: model.ApplicationRejected}},
		)
		if assert.Len(t, changes, 1) {
			assert.False(t, changes[0].Accepted())
		}
	})

	t.Run("first snapshot", func(t *testing.T) {
		assert.Empty(t, DiffApplications(nil, next))
	})
}

func TestFlags(t *testing.T) {
	var f Flags
	assert.False(t, f.Is(1))
	assert.False(t, f.Any())

	f.Set(1)
	f.Set(2)
	assert.True(t, f.Is(1))
	assert.True(t, f.Any())

	f.Clear(1)
	assert.False(t, f.Is(1))
	assert.True(t, f.Is(2))
}
