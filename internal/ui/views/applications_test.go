package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dori/workbridge/internal/model"
)

func freelancerApp(id int64, status model.ApplicationStatus) model.Application {
	return model.Application{
		ID:         id,
		Status:     status,
		Project:    &model.Project{ID: 1, Name: "Landing page"},
		Freelancer: &model.User{ID: 10, Name: "Ada"},
	}
}

func TestApplicationsAnnounceDecisions(t *testing.T) {
	fb := newFakeBackend()
	fb.freelancerApps = []model.Application{freelancerApp(7, model.ApplicationPending)}
	notifier := &fakeNotifier{}

	v, cmd := NewApplicationsView(fb, notifier, testLogger()).Mount()
	v, _ = drive(t, v, cmd)
	require.Len(t, v.Applications(), 1)
	assert.False(t, v.Banner().Show)

	fb.freelancerApps = []model.Application{freelancerApp(7, model.ApplicationAccepted)}
	v, _ = press(t, v, "r")

	banner := v.Banner()
	assert.True(t, banner.Show)
	assert.Equal(t, BannerSuccess, banner.Kind)
	assert.Equal(t, `Congratulations Ada! You've been selected for "Landing page"!`, banner.Message)
	assert.Equal(t, 1, notifier.count())
	assert.Equal(t, []string{"Landing page:accepted"}, notifier.decisions)

	// Same data again announces nothing new
	v, _ = press(t, v, "r")
	assert.Equal(t, banner.ID, v.Banner().ID)
	assert.Equal(t, 1, notifier.count())

	next, _ := v.Update(BannerTimeoutMsg{ID: banner.ID})
	assert.False(t, next.(ApplicationsView).Banner().Show)
}

func TestApplicationsAnnounceRejection(t *testing.T) {
	fb := newFakeBackend()
	pending := freelancerApp(7, model.ApplicationPending)
	pending.Freelancer = nil
	fb.freelancerApps = []model.Application{pending}

	v, cmd := NewApplicationsView(fb, nil, testLogger()).Mount()
	v, _ = drive(t, v, cmd)

	rejected := pending
	rejected.Status = model.ApplicationRejected
	fb.freelancerApps = []model.Application{rejected}
	v, _ = press(t, v, "r")

	assert.Equal(t, BannerError, v.Banner().Kind)
	assert.Equal(t, `Your application for "Landing page" was not selected.`, v.Banner().Message)
}

func TestApplicationsFirstLoadIsSilent(t *testing.T) {
	fb := newFakeBackend()
	fb.freelancerApps = []model.Application{freelancerApp(7, model.ApplicationAccepted)}
	notifier := &fakeNotifier{}

	v, cmd := NewApplicationsView(fb, notifier, testLogger()).Mount()
	v, _ = drive(t, v, cmd)

	assert.False(t, v.Banner().Show)
	assert.Zero(t, notifier.count())
}

func TestApplicationsLoadFailureKeepsList(t *testing.T) {
	fb := newFakeBackend()
	fb.freelancerApps = []model.Application{freelancerApp(7, model.ApplicationPending)}

	v, cmd := NewApplicationsView(fb, nil, testLogger()).Mount()
	v, _ = drive(t, v, cmd)

	next, _ := v.Update(applicationsLoadedMsg{err: assert.AnError})
	v = next.(ApplicationsView)
	assert.Len(t, v.Applications(), 1)
	assert.False(t, v.loading)
}
