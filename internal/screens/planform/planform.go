// Package planform is the manual plan creation form: learner, topic,
// deadline.
package planform

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/valen/studyquest/internal/router"
	"github.com/valen/studyquest/internal/screen"
	"github.com/valen/studyquest/internal/store"
	"github.com/valen/studyquest/internal/tracker"
	"github.com/valen/studyquest/internal/ui/components"
	"github.com/valen/studyquest/internal/ui/layout"
	"github.com/valen/studyquest/internal/ui/theme"
)

type stage int

const (
	stageUser stage = iota
	stageTopic
	stageDays
	stageDone
)

const defaultDeadlineDays = 30

// PlanFormScreen collects a new study plan step by step.
type PlanFormScreen struct {
	svc *tracker.Service

	stage    stage
	users    []*store.UserProfile
	userPick components.Choice
	topic    components.TextInput
	days     components.TextInput

	created *store.StudyPlan
	errMsg  string
}

var _ screen.Screen = (*PlanFormScreen)(nil)
var _ screen.KeyHintProvider = (*PlanFormScreen)(nil)

// New creates the plan form.
func New(svc *tracker.Service) *PlanFormScreen {
	users := svc.Users()
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = fmt.Sprintf("%s (%s)", u.Name, u.Level.DisplayName())
	}

	return &PlanFormScreen{
		svc:      svc,
		users:    users,
		userPick: components.NewChoice("Who is this plan for?", names),
		topic:    components.NewTextInput("e.g. python", false, 60),
		days:     components.NewTextInput(fmt.Sprintf("days until deadline (default %d)", defaultDeadlineDays), true, 4),
	}
}

func (s *PlanFormScreen) Init() tea.Cmd {
	return nil
}

func (s *PlanFormScreen) Title() string {
	return "New Plan"
}

func (s *PlanFormScreen) KeyHints() []layout.KeyHint {
	if s.stage == stageDone {
		return []layout.KeyHint{{Key: "Enter/Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *PlanFormScreen) selectedUser() *store.UserProfile {
	if s.userPick.ChosenIndex < 0 || s.userPick.ChosenIndex >= len(s.users) {
		return nil
	}
	return s.users[s.userPick.ChosenIndex]
}

func (s *PlanFormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if len(s.users) == 0 {
		return s, nil
	}

	kmsg, isKey := msg.(tea.KeyMsg)

	switch s.stage {
	case stageUser:
		var cmd tea.Cmd
		s.userPick, cmd = s.userPick.Update(msg)
		if s.userPick.Submitted {
			s.stage = stageTopic
			return s, s.topic.Init()
		}
		return s, cmd

	case stageTopic:
		if isKey && kmsg.String() == "enter" {
			if strings.TrimSpace(s.topic.Value()) == "" {
				s.errMsg = "Topic can't be empty"
				return s, nil
			}
			s.errMsg = ""
			s.stage = stageDays
			return s, s.days.Init()
		}
		var cmd tea.Cmd
		s.topic, cmd = s.topic.Update(msg)
		return s, cmd

	case stageDays:
		if isKey && kmsg.String() == "enter" {
			return s, s.submit()
		}
		var cmd tea.Cmd
		s.days, cmd = s.days.Update(msg)
		return s, cmd

	case stageDone:
		if isKey && kmsg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	return s, nil
}

func (s *PlanFormScreen) submit() tea.Cmd {
	u := s.selectedUser()
	if u == nil {
		return nil
	}

	days := defaultDeadlineDays
	if v := strings.TrimSpace(s.days.Value()); v != "" {
		n, err := s.days.NumericValue()
		if err != nil || n <= 0 {
			s.errMsg = "Deadline must be a positive number of days"
			return nil
		}
		days = n
	}

	p, err := s.svc.CreatePlan(u.ID, s.topic.Value(), days)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}

	s.created = p
	s.errMsg = ""
	s.stage = stageDone
	return nil
}

func (s *PlanFormScreen) View(width, height int) string {
	if len(s.users) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No learners yet. Create a profile first!"))
	}

	var b strings.Builder

	label := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	switch s.stage {
	case stageUser:
		b.WriteString(s.userPick.View())

	case stageTopic:
		b.WriteString(label.Render("What topic will you study?") + "\n\n")
		b.WriteString(s.topic.View())
		if u := s.selectedUser(); u != nil {
			if suggestions := s.svc.SuggestTopics(u.ID); len(suggestions) > 0 {
				b.WriteString("\n\n" + dim.Render("From your interests: "+strings.Join(suggestions, ", ")))
			}
		}

	case stageDays:
		b.WriteString(label.Render("When do you want to finish?") + "\n\n")
		b.WriteString(s.days.View())

	case stageDone:
		b.WriteString(theme.Good.Render(fmt.Sprintf("Plan created: %s  (+5 pts)", s.created.Topic)) + "\n\n")
		b.WriteString(label.Render("Objectives") + "\n")
		for _, o := range s.created.Objectives {
			b.WriteString(dim.Render("  • "+o) + "\n")
		}
		b.WriteString("\n" + label.Render("Resources") + "\n")
		for _, r := range s.created.Resources {
			b.WriteString(dim.Render("  • "+r) + "\n")
		}
		b.WriteString("\n" + dim.Render("Deadline: "+s.created.Deadline.Format("Jan 02, 2006")))
		b.WriteString("\n\n" + theme.Hint.Render("press enter to go back"))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.Bad.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
