package views

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/dori/workbridge/internal/api"
	"github.com/dori/workbridge/internal/model"
)

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// collect runs cmd and returns the messages it produces. Commands that do
// not return promptly, such as banner timers, are dropped.
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

// drive feeds the results of cmd back into m until nothing is left and
// returns the final model with every message seen.
func drive[M tea.Model](t *testing.T, m M, cmd tea.Cmd) (M, []tea.Msg) {
	t.Helper()
	var seen []tea.Msg
	queue := collect(cmd)
	for i := 0; len(queue) > 0; i++ {
		if i > 200 {
			t.Fatal("command loop did not settle")
		}
		msg := queue[0]
		queue = queue[1:]
		seen = append(seen, msg)

		if _, ok := msg.(spinner.TickMsg); ok {
			continue
		}
		next, c := m.Update(msg)
		m = next.(M)
		queue = append(queue, collect(c)...)
	}
	return m, seen
}

func press[M tea.Model](t *testing.T, m M, keys ...string) (M, []tea.Msg) {
	t.Helper()
	var seen []tea.Msg
	for _, k := range keys {
		next, cmd := m.Update(keyMsg(k))
		var msgs []tea.Msg
		m, msgs = drive(t, next.(M), cmd)
		seen = append(seen, msgs...)
	}
	return m, seen
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func typeText[M tea.Model](t *testing.T, m M, text string) M {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	m, _ = drive(t, next.(M), cmd)
	return m
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

type fakeBackend struct {
	mu sync.Mutex

	session        *model.Session
	loginErr       error
	projects       []model.Project
	clientProjects []model.Project
	apps           map[int64][]model.Application
	freelancerApps []model.Application
	applied        map[int64]bool

	createProjectErr error
	updateProjectErr error
	deleteErr        error
	createAppErr     error
	statusErr        error

	createdProjects []model.ProjectRequest
	createdApps     []model.ApplicationRequest
	statusUpdates   map[int64]model.ApplicationStatus
	appFetches      map[int64]int
	checks          int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		apps:          make(map[int64][]model.Application),
		applied:       make(map[int64]bool),
		statusUpdates: make(map[int64]model.ApplicationStatus),
		appFetches:    make(map[int64]int),
	}
}

var _ Backend = (*fakeBackend)(nil)

func page[T any](items []T) *model.Page[T] {
	return &model.Page[T]{Content: items, TotalElements: len(items), TotalPages: 1, Last: true}
}

func (f *fakeBackend) Login(_ context.Context, creds model.Credentials) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if f.session == nil {
		return nil, errors.New("no session configured")
	}
	s := *f.session
	return &s, nil
}

func (f *fakeBackend) Register(_ context.Context, reg model.Registration) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &model.Session{User: model.User{ID: 99, Name: reg.Name, Email: reg.Email, Role: reg.Role}, Token: "new"}, nil
}

func (f *fakeBackend) Projects(context.Context, api.PageRequest) (*model.Page[model.Project], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return page(append([]model.Project(nil), f.projects...)), nil
}

func (f *fakeBackend) ClientProjects(context.Context, api.PageRequest) (*model.Page[model.Project], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return page(append([]model.Project(nil), f.clientProjects...)), nil
}

func (f *fakeBackend) CreateProject(_ context.Context, req model.ProjectRequest) (*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createProjectErr != nil {
		return nil, f.createProjectErr
	}
	f.createdProjects = append(f.createdProjects, req)
	return &model.Project{ID: int64(100 + len(f.createdProjects)), Name: req.Name, Status: model.ProjectOpen}, nil
}

func (f *fakeBackend) UpdateProject(_ context.Context, id int64, req model.ProjectRequest) (*model.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateProjectErr != nil {
		return nil, f.updateProjectErr
	}
	for i := range f.clientProjects {
		if f.clientProjects[i].ID == id {
			f.clientProjects[i].Name = req.Name
			f.clientProjects[i].Budget = req.Budget
		}
	}
	return &model.Project{ID: id, Name: req.Name}, nil
}

func (f *fakeBackend) DeleteProject(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	var out []model.Project
	for _, p := range f.clientProjects {
		if p.ID != id {
			out = append(out, p)
		}
	}
	f.clientProjects = out
	return nil
}

func (f *fakeBackend) ProjectApplications(_ context.Context, projectID int64, _ api.PageRequest) (*model.Page[model.Application], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appFetches[projectID]++
	return page(append([]model.Application(nil), f.apps[projectID]...)), nil
}

func (f *fakeBackend) FreelancerApplications(context.Context, api.PageRequest) (*model.Page[model.Application], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return page(append([]model.Application(nil), f.freelancerApps...)), nil
}

func (f *fakeBackend) CreateApplication(_ context.Context, req model.ApplicationRequest) (*model.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createAppErr != nil {
		return nil, f.createAppErr
	}
	f.createdApps = append(f.createdApps, req)
	f.applied[req.ProjectID] = true
	return &model.Application{ID: int64(len(f.createdApps)), Status: model.ApplicationPending}, nil
}

func (f *fakeBackend) UpdateApplicationStatus(_ context.Context, id int64, status model.ApplicationStatus) (*model.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	f.statusUpdates[id] = status
	for pid, apps := range f.apps {
		for i := range apps {
			if apps[i].ID == id {
				f.apps[pid][i].Status = status
			}
		}
	}
	return &model.Application{ID: id, Status: status}, nil
}

func (f *fakeBackend) HasApplied(_ context.Context, projectID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	return f.applied[projectID], nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	decisions []string
}

func (n *fakeNotifier) SendDecision(title string, accepted bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	state := "rejected"
	if accepted {
		state = "accepted"
	}
	n.decisions = append(n.decisions, title+":"+state)
	return nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.decisions)
}
