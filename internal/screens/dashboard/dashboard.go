// Package dashboard shows one learner's plans, progress and stats.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/valen/studyquest/internal/screen"
	"github.com/valen/studyquest/internal/store"
	"github.com/valen/studyquest/internal/tracker"
	"github.com/valen/studyquest/internal/ui/components"
	"github.com/valen/studyquest/internal/ui/layout"
	"github.com/valen/studyquest/internal/ui/theme"
)

// DashboardScreen renders a learner picker and then their dashboard.
type DashboardScreen struct {
	svc *tracker.Service

	users    []*store.UserProfile
	userPick components.Choice
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates the dashboard screen.
func New(svc *tracker.Service) *DashboardScreen {
	users := svc.Users()
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Name
	}
	return &DashboardScreen{
		svc:      svc,
		users:    users,
		userPick: components.NewChoice("Whose dashboard?", names),
	}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if len(s.users) == 0 || s.userPick.Submitted {
		return s, nil
	}
	// Single learner skips the picker.
	if len(s.users) == 1 {
		s.userPick.Submitted = true
		s.userPick.ChosenIndex = 0
		return s, nil
	}
	var cmd tea.Cmd
	s.userPick, cmd = s.userPick.Update(msg)
	return s, cmd
}

func (s *DashboardScreen) View(width, height int) string {
	if len(s.users) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No learners yet. Create a profile first!"))
	}
	if !s.userPick.Submitted && len(s.users) > 1 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.userPick.View())
	}

	idx := s.userPick.ChosenIndex
	if idx < 0 {
		idx = 0
	}
	u := s.users[idx]
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.renderDashboard(u, width))
}

func (s *DashboardScreen) renderDashboard(u *store.UserProfile, width int) string {
	st, err := s.svc.UserStats(u.ID)
	if err != nil {
		return theme.Bad.Render(err.Error())
	}

	label := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	accent := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var b strings.Builder
	b.WriteString(label.Render(u.Name) + dim.Render("  ·  "+u.Level.DisplayName()) + "\n\n")

	b.WriteString(accent.Render(fmt.Sprintf("✦ %d pts", st.Points)))
	b.WriteString(dim.Render(fmt.Sprintf("   level %d · %d to next", st.Level, st.ToNextLevel)) + "\n")
	b.WriteString(accent.Render(fmt.Sprintf("🔥 %d day streak", st.Streak.Current)))
	if st.Streak.Max > st.Streak.Current {
		b.WriteString(dim.Render(fmt.Sprintf("  (record %d)", st.Streak.Max)))
	}
	b.WriteString("\n\n")

	b.WriteString(dim.Render(fmt.Sprintf(
		"%d sessions · %d min total · avg satisfaction %.1f · trend %s",
		st.Sessions, st.TotalMinutes, st.AvgSatisfaction, st.Trend)) + "\n\n")

	plans := s.svc.Doc().UserPlans(u.ID)
	if len(plans) == 0 {
		b.WriteString(theme.Hint.Render("No plans yet."))
		return b.String()
	}

	b.WriteString(label.Render("Plans") + "\n")
	barWidth := min(width-10, 56)
	now := time.Now()
	for _, p := range plans {
		bar := components.NewProgressBar(padTopic(p.Topic), p.Progress/100, true, barWidth)
		b.WriteString(bar.View())
		b.WriteString("  " + deadlineNote(p, now) + "\n")
	}

	return b.String()
}

// padTopic keeps the progress bars left-aligned across plans.
func padTopic(topic string) string {
	if len(topic) > 14 {
		return topic[:13] + "…"
	}
	return fmt.Sprintf("%-14s", topic)
}

func deadlineNote(p *store.StudyPlan, now time.Time) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if p.Progress >= 100 {
		return theme.Good.Render("done")
	}
	if now.After(p.Deadline) {
		return theme.Bad.Render("overdue")
	}
	days := int(p.Deadline.Sub(now).Hours() / 24)
	if days <= 3 {
		return lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("%dd left", days))
	}
	return dim.Render(fmt.Sprintf("%dd left", days))
}
