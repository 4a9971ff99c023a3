package ui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dori/workbridge/internal/api"
	"github.com/dori/workbridge/internal/model"
	"github.com/dori/workbridge/internal/ui/views"
)

type memSessions struct {
	sess   *model.Session
	saves  int
	clears int
}

func (s *memSessions) Load() (*model.Session, error) {
	if s.sess == nil {
		return nil, nil
	}
	cp := *s.sess
	return &cp, nil
}

func (s *memSessions) Save(sess model.Session) error {
	s.saves++
	s.sess = &sess
	return nil
}

func (s *memSessions) Clear() error {
	s.clears++
	s.sess = nil
	return nil
}

// stubBackend serves the list endpoints the landing views load. Other
// methods are left to the nil embedded interface.
type stubBackend struct {
	views.Backend

	mu       sync.Mutex
	projects []model.Project
	applied  map[int64]bool
}

func newStubBackend() *stubBackend {
	return &stubBackend{applied: make(map[int64]bool)}
}

func (b *stubBackend) setProjects(projects ...model.Project) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.projects = projects
}

func (b *stubBackend) Projects(context.Context, api.PageRequest) (*model.Page[model.Project], error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	items := append([]model.Project(nil), b.projects...)
	return &model.Page[model.Project]{Content: items, TotalElements: len(items), TotalPages: 1}, nil
}

func (b *stubBackend) ClientProjects(ctx context.Context, p api.PageRequest) (*model.Page[model.Project], error) {
	return b.Projects(ctx, p)
}

func (b *stubBackend) ProjectApplications(context.Context, int64, api.PageRequest) (*model.Page[model.Application], error) {
	return &model.Page[model.Application]{}, nil
}

func (b *stubBackend) FreelancerApplications(context.Context, api.PageRequest) (*model.Page[model.Application], error) {
	return &model.Page[model.Application]{}, nil
}

func (b *stubBackend) HasApplied(_ context.Context, projectID int64) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.applied[projectID], nil
}

var (
	clientSession = model.Session{
		User:  model.User{ID: 1, Name: "Grace", Email: "grace@example.com", Role: model.RoleClient},
		Token: "client-token",
	}
	freelancerSession = model.Session{
		User:  model.User{ID: 2, Name: "Ada", Email: "ada@example.com", Role: model.RoleFreelancer},
		Token: "freelancer-token",
	}
)

func newTestRoot(store *memSessions) RootModel {
	return New(Deps{Sessions: store, Backend: newStubBackend()})
}

// collect runs cmd and returns the messages it produces, expanding
// batches. Commands that do not return promptly, such as timers, are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if msg == nil {
			return nil
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func isTick(msg tea.Msg) bool {
	if tagged, ok := msg.(sessionMsg); ok {
		msg = tagged.msg
	}
	_, ok := msg.(spinner.TickMsg)
	return ok
}

// deliver feeds msgs into m, then every message the resulting commands
// produce, until nothing is left.
func deliver(t *testing.T, m RootModel, msgs ...tea.Msg) (RootModel, []tea.Msg) {
	t.Helper()
	var seen []tea.Msg
	queue := msgs
	for i := 0; len(queue) > 0; i++ {
		if i > 200 {
			t.Fatal("command loop did not settle")
		}
		msg := queue[0]
		queue = queue[1:]
		seen = append(seen, msg)
		if isTick(msg) {
			continue
		}
		next, cmd := m.Update(msg)
		m = next.(RootModel)
		queue = append(queue, collect(cmd)...)
	}
	return m, seen
}

func send(m RootModel, msgs ...tea.Msg) RootModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(RootModel)
	}
	return m
}

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestStartsSignedOut(t *testing.T) {
	m := newTestRoot(&memSessions{})

	assert.Nil(t, m.Session())
	assert.Equal(t, ViewAuth, m.CurrentView())
	assert.True(t, m.isInputMode())
}

func TestRestoresStoredSession(t *testing.T) {
	tests := []struct {
		name    string
		session model.Session
		landing View
	}{
		{"client lands on my projects", clientSession, ViewMyProjects},
		{"freelancer lands on browse", freelancerSession, ViewBrowse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := tt.session
			m := newTestRoot(&memSessions{sess: &sess})

			require.NotNil(t, m.Session())
			assert.Equal(t, tt.session.User.ID, m.Session().User.ID)
			assert.Equal(t, tt.landing, m.CurrentView())
			assert.NotNil(t, m.Init())
		})
	}
}

func TestStartViewHonorsRole(t *testing.T) {
	sess := freelancerSession
	m := newTestRoot(&memSessions{sess: &sess}).WithStartView(ViewApplications)
	assert.Equal(t, ViewApplications, m.CurrentView())

	sess = clientSession
	m = newTestRoot(&memSessions{sess: &sess}).WithStartView(ViewApplications)
	assert.Equal(t, ViewMyProjects, m.CurrentView())
}

func TestStartViewAppliesAfterSignIn(t *testing.T) {
	store := &memSessions{}
	m := newTestRoot(store).WithStartView(ViewPostProject)
	assert.Equal(t, ViewAuth, m.CurrentView())

	m = send(m, views.AuthenticatedMsg{Session: clientSession})
	assert.Equal(t, ViewPostProject, m.CurrentView())
}

func TestAuthenticatedPersistsSession(t *testing.T) {
	store := &memSessions{}
	m := newTestRoot(store)

	m = send(m, views.AuthenticatedMsg{Session: freelancerSession})

	assert.Equal(t, 1, store.saves)
	require.NotNil(t, store.sess)
	assert.Equal(t, "freelancer-token", store.sess.Token)
	assert.Equal(t, ViewBrowse, m.CurrentView())
}

func TestNumberKeysSwitchViews(t *testing.T) {
	sess := clientSession
	m := newTestRoot(&memSessions{sess: &sess})

	m = send(m, keyPress("2"))
	assert.Equal(t, ViewPostProject, m.CurrentView())
	require.True(t, m.isInputMode())

	// The form captures "1" until it is left
	m = send(m, keyPress("1"))
	assert.Equal(t, ViewPostProject, m.CurrentView())

	m = send(m, keyPress("esc"), keyPress("1"))
	assert.Equal(t, ViewMyProjects, m.CurrentView())
}

func TestSwitchToForeignViewIsIgnored(t *testing.T) {
	sess := clientSession
	m := newTestRoot(&memSessions{sess: &sess})

	m = send(m, SwitchViewMsg{View: ViewBrowse})
	assert.Equal(t, ViewMyProjects, m.CurrentView())
}

func TestLogout(t *testing.T) {
	sess := freelancerSession
	store := &memSessions{sess: &sess}
	m := newTestRoot(store)

	m = send(m, keyPress("ctrl+l"))

	assert.Nil(t, m.Session())
	assert.Nil(t, store.sess)
	assert.Equal(t, 1, store.clears)
	assert.Equal(t, ViewAuth, m.CurrentView())
	assert.Empty(t, m.authView.Error())
}

func TestSessionExpired(t *testing.T) {
	sess := clientSession
	store := &memSessions{sess: &sess}
	m := newTestRoot(store)

	m = send(m, SessionExpiredMsg{Err: api.ErrUnauthorized})

	assert.Nil(t, m.Session())
	assert.Equal(t, ViewAuth, m.CurrentView())
	assert.Equal(t, 1, store.clears)
	assert.Equal(t, "Your session has expired. Please sign in again.", m.authView.Error())
}

func TestSessionExpiredWhileSignedOut(t *testing.T) {
	store := &memSessions{}
	m := newTestRoot(store)
	m.authView = m.authView.SetError("Invalid email or password")

	m = send(m, SessionExpiredMsg{Err: api.ErrUnauthorized})

	assert.Zero(t, store.clears)
	assert.Equal(t, "Invalid email or password", m.authView.Error())
}

func TestProjectPostedReturnsToMyProjects(t *testing.T) {
	sess := clientSession
	m := newTestRoot(&memSessions{sess: &sess})
	m = send(m, keyPress("2"))

	m = send(m, views.ProjectPostedMsg{Project: model.Project{ID: 9, Name: "Landing page"}})

	assert.Equal(t, ViewMyProjects, m.CurrentView())
	assert.Equal(t, `Posted "Landing page"`, m.statusMsg)
}

func TestErrorAndStatusMessages(t *testing.T) {
	m := newTestRoot(&memSessions{})

	m = send(m, ErrorMsg{Err: errors.New("boom")}, StatusMsg{Message: "saved"})
	assert.Equal(t, "boom", m.errorMsg)
	assert.Equal(t, "saved", m.statusMsg)

	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Contains(t, m.View(), "workbridge")
}

func TestParseView(t *testing.T) {
	v, ok := ParseView("applications")
	assert.True(t, ok)
	assert.Equal(t, ViewApplications, v)

	_, ok = ParseView("calendar")
	assert.False(t, ok)
}

func TestLateResultsFromEndedSessionAreDropped(t *testing.T) {
	backend := newStubBackend()
	backend.setProjects(model.Project{ID: 10, Name: "Only for Ada", Status: model.ProjectOpen})
	backend.applied[10] = true

	sess := freelancerSession
	store := &memSessions{sess: &sess}
	m := New(Deps{Sessions: store, Backend: backend})

	// Ada's browse load finishes only after she has signed out
	late := collect(m.Init())
	require.NotEmpty(t, late)

	m, _ = deliver(t, m, keyPress("ctrl+l"))
	require.Nil(t, m.Session())

	other := model.Session{
		User:  model.User{ID: 3, Name: "Linus", Role: model.RoleFreelancer},
		Token: "other-token",
	}
	backend.setProjects(model.Project{ID: 20, Name: "Only for Linus", Status: model.ProjectOpen})
	m, _ = deliver(t, m, views.AuthenticatedMsg{Session: other})
	require.Len(t, m.browseView.Visible(), 1)

	m, _ = deliver(t, m, late...)

	assert.Equal(t, int64(3), m.Session().User.ID)
	visible := m.browseView.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, int64(20), visible[0].ID)
	assert.False(t, m.browseView.HasApplied(10))
}

func TestResultsFromCurrentSessionAreDelivered(t *testing.T) {
	backend := newStubBackend()
	backend.setProjects(model.Project{ID: 10, Name: "Landing page", Status: model.ProjectOpen})

	sess := freelancerSession
	m := New(Deps{Sessions: &memSessions{sess: &sess}, Backend: backend})
	m, _ = deliver(t, m, collect(m.Init())...)

	require.Len(t, m.browseView.Visible(), 1)
	assert.Equal(t, int64(10), m.browseView.Visible()[0].ID)
}

func TestStartViewLeavesLandingViewUsable(t *testing.T) {
	sess := freelancerSession
	m := newTestRoot(&memSessions{sess: &sess}).WithStartView(ViewApplications)
	require.Equal(t, ViewApplications, m.CurrentView())
	m, _ = deliver(t, m, collect(m.Init())...)

	// Switching to browse starts its spinner and load like a fresh mount
	next, cmd := m.Update(keyPress("1"))
	m = next.(RootModel)
	require.Equal(t, ViewBrowse, m.CurrentView())

	ticked := false
	for _, msg := range collect(cmd) {
		if isTick(msg) {
			ticked = true
		}
	}
	assert.True(t, ticked)
}
