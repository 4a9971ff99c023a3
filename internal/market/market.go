// Package market holds the filtering and status rules shared by the views.
package market

import (
	"sort"
	"strings"

	"github.com/dori/workbridge/internal/model"
)

// Landing identifies the first view shown after sign-in
type Landing int

const (
	LandingBrowse Landing = iota
	LandingMyProjects
)

// LandingFor returns the landing view for a role. Anything that is not a
// client lands on browse.
func LandingFor(role model.Role) Landing {
	if role == model.RoleClient {
		return LandingMyProjects
	}
	return LandingBrowse
}

// AvailableProjects returns open projects not owned by userID, in input order
func AvailableProjects(projects []model.Project, userID int64) []model.Project {
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if p.Status != model.ProjectOpen {
			continue
		}
		if p.Client != nil && p.Client.ID == userID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// DistinctSkills returns the sorted union of required skills
func DistinctSkills(projects []model.Project) []string {
	seen := make(map[string]bool)
	skills := []string{}
	for _, p := range projects {
		for _, s := range p.RequiredSkills {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			skills = append(skills, s)
		}
	}
	sort.Strings(skills)
	return skills
}

// FilterProjects keeps projects matching both the free-text search and the
// skill. The search is a case-insensitive substring of the title or
// description; the skill must match exactly. Empty criteria match all.
func FilterProjects(projects []model.Project, search, skill string) []model.Project {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]model.Project, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.DisplayTitle()), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		if skill != "" && !p.HasSkill(skill) {
			continue
		}
		out = append(out, *p)
	}
	return out
}

// CanDecide reports whether a client may still accept or reject app
func CanDecide(app model.Application) bool {
	return app.Status == model.ApplicationPending
}

// StatusChange is a decision observed between two snapshots of a
// freelancer's applications.
type StatusChange struct {
	Application model.Application
	From        model.ApplicationStatus
	To          model.ApplicationStatus
}

// Accepted reports whether the change selected the freelancer
func (c StatusChange) Accepted() bool {
	return c.To == model.ApplicationAccepted
}

// DiffApplications returns the applications that moved from PENDING to a
// decision between prev and next. Applications absent from prev are new,
// not changed, and produce nothing.
func DiffApplications(prev, next []model.Application) []StatusChange {
	before := make(map[int64]model.ApplicationStatus, len(prev))
	for _, a := range prev {
		before[a.ID] = a.Status
	}

	var changes []StatusChange
	for _, a := range next {
		old, ok := before[a.ID]
		if !ok || old != model.ApplicationPending {
			continue
		}
		if a.Status != model.ApplicationAccepted && a.Status != model.ApplicationRejected {
			continue
		}
		changes = append(changes, StatusChange{Application: a, From: old, To: a.Status})
	}
	return changes
}

// Flags is a set of per-id booleans such as "applied" or "in flight".
// The zero value is ready to use.
type Flags map[int64]bool

// Set marks id
func (f *Flags) Set(id int64) {
	if *f == nil {
		*f = make(Flags)
	}
	(*f)[id] = true
}

// Clear unmarks id
func (f Flags) Clear(id int64) {
	delete(f, id)
}

// Is reports whether id is marked
func (f Flags) Is(id int64) bool {
	return f[id]
}

// Any reports whether any id is marked
func (f Flags) Any() bool {
	for _, v := range f {
		if v {
			return true
		}
	}
	return false
}
