package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/dori/workbridge/internal/model"
	"github.com/dori/workbridge/internal/ui/theme"
)

// Money formats an amount as dollars with thousands separators
func Money(amount float64) string {
	return "$" + humanize.CommafWithDigits(amount, 2)
}

// Posted renders a creation time relative to now
func Posted(t model.LocalTime) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t.Time, time.Now(), "ago", "from now")
}

// Due renders a project deadline, with how far away it is
func Due(p model.Project) string {
	d, ok := p.DeadlineDate()
	if !ok {
		return p.Deadline
	}
	return d.Format("Jan 2, 2006") + " (" + humanize.Time(d) + ")"
}

func skillTags(skills []string) string {
	styles := theme.Current.Styles
	var parts []string
	for _, s := range skills {
		parts = append(parts, styles.Skill.Render(s))
	}
	return strings.Join(parts, "")
}

func projectBadge(s model.ProjectStatus) string {
	t := theme.Current.Theme
	return theme.Current.Styles.Badge.Foreground(t.ProjectStatusColor(s)).Render(s.Label())
}

func applicationBadge(s model.ApplicationStatus) string {
	t := theme.Current.Theme
	return theme.Current.Styles.Badge.Foreground(t.ApplicationStatusColor(s)).Render(s.Label())
}

// window returns at most height lines of lines, scrolled so that line
// cursor is visible.
func window(lines []string, cursor, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return lines[start : start+height]
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return string(r[:min(len(r), width)])
	}
	return string(r[:width-1]) + "…"
}

func emptyState(msg string) string {
	return theme.Current.Styles.Label.Italic(true).Padding(1, 2).Render(msg)
}
