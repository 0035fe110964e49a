// Package achievements lists a learner's unlocked and locked badges.
package achievements

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/valen/studyquest/internal/screen"
	"github.com/valen/studyquest/internal/store"
	"github.com/valen/studyquest/internal/tracker"
	"github.com/valen/studyquest/internal/ui/components"
	"github.com/valen/studyquest/internal/ui/layout"
	"github.com/valen/studyquest/internal/ui/theme"
)

// AchievementsScreen renders the badge cabinet for one learner.
type AchievementsScreen struct {
	svc *tracker.Service

	users    []*store.UserProfile
	userPick components.Choice
}

var _ screen.Screen = (*AchievementsScreen)(nil)
var _ screen.KeyHintProvider = (*AchievementsScreen)(nil)

// New creates the achievements screen.
func New(svc *tracker.Service) *AchievementsScreen {
	users := svc.Users()
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Name
	}
	return &AchievementsScreen{
		svc:      svc,
		users:    users,
		userPick: components.NewChoice("Whose achievements?", names),
	}
}

func (s *AchievementsScreen) Init() tea.Cmd {
	return nil
}

func (s *AchievementsScreen) Title() string {
	return "Achievements"
}

func (s *AchievementsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *AchievementsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if len(s.users) == 0 || s.userPick.Submitted {
		return s, nil
	}
	if len(s.users) == 1 {
		s.userPick.Submitted = true
		s.userPick.ChosenIndex = 0
		return s, nil
	}
	var cmd tea.Cmd
	s.userPick, cmd = s.userPick.Update(msg)
	return s, cmd
}

func (s *AchievementsScreen) View(width, height int) string {
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

	unlocked, locked, err := s.svc.UserAchievements(u.ID)
	if err != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Bad.Render(err.Error()))
	}

	label := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(label.Render(fmt.Sprintf("%s — %d of %d unlocked", u.Name, len(unlocked), len(unlocked)+len(locked))) + "\n\n")

	if len(unlocked) > 0 {
		for _, a := range unlocked {
			b.WriteString(theme.Good.Render(fmt.Sprintf("🏆 %s", a.Title)))
			b.WriteString(dim.Render(fmt.Sprintf("  %s (+%d)", a.Description, a.Points)) + "\n")
		}
	} else {
		b.WriteString(theme.Hint.Render("Nothing unlocked yet. Record a session!") + "\n")
	}

	if len(locked) > 0 {
		b.WriteString("\n" + label.Render("Still locked") + "\n")
		for _, a := range locked {
			b.WriteString(dim.Render(fmt.Sprintf("🔒 %s  %s (+%d)", a.Title, a.Description, a.Points)) + "\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
