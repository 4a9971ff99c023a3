package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dori/workbridge/internal/api"
	"github.com/dori/workbridge/internal/model"
)

var freelancer = model.User{ID: 10, Name: "Ada", Role: model.RoleFreelancer}

func browseFixture() *fakeBackend {
	fb := newFakeBackend()
	fb.projects = []model.Project{
		{ID: 1, Name: "Landing page", Description: "Marketing site", Budget: 1500, Status: model.ProjectOpen,
			RequiredSkills: []string{"React", "CSS"}, Client: &model.User{ID: 2}},
		{ID: 2, Name: "Own project", Status: model.ProjectOpen, Client: &model.User{ID: 10}},
		{ID: 3, Name: "Billing API", Description: "Stripe integration", Budget: 3000, Status: model.ProjectOpen,
			RequiredSkills: []string{"Go"}, Client: &model.User{ID: 2}},
		{ID: 4, Name: "Done already", Status: model.ProjectCompleted, Client: &model.User{ID: 2}},
	}
	return fb
}

func mountedBrowse(t *testing.T, fb *fakeBackend) BrowseView {
	t.Helper()
	v, cmd := NewBrowseView(fb, freelancer, testLogger()).Mount()
	v, _ = drive(t, v, cmd)
	return v
}

func ids(projects []model.Project) []int64 {
	out := make([]int64, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func TestBrowseShowsAvailableProjects(t *testing.T) {
	fb := browseFixture()
	fb.applied[3] = true
	v := mountedBrowse(t, fb)

	assert.Equal(t, []int64{1, 3}, ids(v.Visible()))
	assert.Equal(t, 2, fb.checks)
	assert.False(t, v.HasApplied(1))
	assert.True(t, v.HasApplied(3))
	assert.False(t, v.busy())
}

func TestBrowseSkillFilterCycles(t *testing.T) {
	v := mountedBrowse(t, browseFixture())

	v, _ = press(t, v, "s")
	assert.Equal(t, "CSS", v.Skill())
	assert.Equal(t, []int64{1}, ids(v.Visible()))

	v, _ = press(t, v, "s")
	assert.Equal(t, "Go", v.Skill())
	assert.Equal(t, []int64{3}, ids(v.Visible()))

	v, _ = press(t, v, "s", "s")
	assert.Equal(t, "", v.Skill())
	assert.Len(t, v.Visible(), 2)

	v, _ = press(t, v, "s", "S")
	assert.Equal(t, "", v.Skill())
}

func TestBrowseSearch(t *testing.T) {
	v := mountedBrowse(t, browseFixture())

	v, _ = press(t, v, "/")
	require.True(t, v.IsInputMode())
	v = typeText(t, v, "stripe")
	assert.Equal(t, []int64{3}, ids(v.Visible()))

	v, _ = press(t, v, "enter")
	assert.False(t, v.IsInputMode())
	assert.Equal(t, []int64{3}, ids(v.Visible()))

	v, _ = press(t, v, "esc")
	assert.Len(t, v.Visible(), 2)
}

func TestApplyToProject(t *testing.T) {
	fb := browseFixture()
	v := mountedBrowse(t, fb)

	v, _ = press(t, v, "a")
	require.Equal(t, BrowseModeApply, v.mode)

	v.form = v.form.
		SetValue("proposal", "I have built many of these").
		SetValue("price", "150")
	v, _ = press(t, v, "ctrl+s")

	require.Len(t, fb.createdApps, 1)
	assert.Equal(t, model.ApplicationRequest{
		ProjectID:       1,
		ProposalMessage: "I have built many of these",
		ExpectedPrice:   150,
		PortfolioLink:   "",
	}, fb.createdApps[0])

	assert.Equal(t, BrowseModeNormal, v.mode)
	assert.True(t, v.HasApplied(1))
	assert.Equal(t, BannerSuccess, v.Banner().Kind)
	assert.Equal(t, `Application submitted successfully for "Landing page"!`, v.Banner().Message)

	// Already applied, so the form does not reopen
	v, _ = press(t, v, "a")
	assert.Equal(t, BrowseModeNormal, v.mode)
}

func TestApplyValidation(t *testing.T) {
	fb := browseFixture()
	v := mountedBrowse(t, fb)

	v, _ = press(t, v, "a")
	v.form = v.form.SetValue("proposal", "Hi").SetValue("price", "-5")
	v, _ = press(t, v, "ctrl+s")

	assert.Equal(t, BrowseModeApply, v.mode)
	assert.Equal(t, "Expected price must be positive", v.form.Err)
	assert.Empty(t, fb.createdApps)
}

func TestApplyFailureKeepsForm(t *testing.T) {
	fb := browseFixture()
	fb.createAppErr = &api.Error{StatusCode: 409, Message: "You have already applied to this project"}
	v := mountedBrowse(t, fb)

	v, _ = press(t, v, "a")
	v.form = v.form.SetValue("proposal", "Hi").SetValue("price", "100")
	v, _ = press(t, v, "ctrl+s")

	assert.Equal(t, BrowseModeApply, v.mode)
	assert.False(t, v.form.Submitting)
	assert.False(t, v.HasApplied(1))
	assert.Equal(t, BannerError, v.Banner().Kind)
	assert.Equal(t, "You have already applied to this project", v.Banner().Message)
}

func TestApplyCancel(t *testing.T) {
	v := mountedBrowse(t, browseFixture())

	v, _ = press(t, v, "a", "esc")
	assert.Equal(t, BrowseModeNormal, v.mode)
	assert.False(t, v.IsInputMode())
}

func TestNextSkill(t *testing.T) {
	skills := []string{"CSS", "Go"}
	assert.Equal(t, "CSS", nextSkill(skills, ""))
	assert.Equal(t, "Go", nextSkill(skills, "CSS"))
	assert.Equal(t, "", nextSkill(skills, "Go"))
	assert.Equal(t, "", nextSkill(skills, "Rust"))
	assert.Equal(t, "", nextSkill(nil, ""))
}
