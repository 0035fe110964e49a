// Package coach is the advisory screen: pattern analysis, tailored
// recommendations and synthesized plan drafts.
package coach

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/valen/studyquest/internal/planner"
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
	stageAdvice
	stageTopic
	stageDraft
	stageDone
)

// CoachScreen walks a learner through analysis and a plan draft.
type CoachScreen struct {
	svc *tracker.Service

	stage    stage
	users    []*store.UserProfile
	userPick components.Choice
	topic    components.TextInput

	advice       []string
	bestTime     string
	bestDuration string

	draft  *planner.Draft
	errMsg string
}

var _ screen.Screen = (*CoachScreen)(nil)
var _ screen.KeyHintProvider = (*CoachScreen)(nil)

// New creates the coach screen.
func New(svc *tracker.Service) *CoachScreen {
	users := svc.Users()
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Name
	}
	s := &CoachScreen{
		svc:      svc,
		users:    users,
		userPick: components.NewChoice("Who needs coaching?", names),
		topic:    components.NewTextInput("topic for the new plan", false, 60),
	}
	// A single learner skips the picker.
	if len(users) == 1 {
		s.userPick.Submitted = true
		s.userPick.ChosenIndex = 0
		s.loadAdvice(users[0])
	}
	return s
}

func (s *CoachScreen) Init() tea.Cmd {
	return nil
}

func (s *CoachScreen) Title() string {
	return "Study Coach"
}

func (s *CoachScreen) KeyHints() []layout.KeyHint {
	switch s.stage {
	case stageAdvice:
		return []layout.KeyHint{
			{Key: "p", Description: "Draft a plan"},
			{Key: "Esc", Description: "Back"},
		}
	case stageDraft:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Accept plan"},
			{Key: "Esc", Description: "Back"},
		}
	case stageDone:
		return []layout.KeyHint{{Key: "Enter/Esc", Description: "Back"}}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *CoachScreen) selectedUser() *store.UserProfile {
	idx := s.userPick.ChosenIndex
	if idx < 0 || idx >= len(s.users) {
		return nil
	}
	return s.users[idx]
}

func (s *CoachScreen) loadAdvice(u *store.UserProfile) {
	s.advice, _ = s.svc.Recommendations(u.ID)
	s.bestTime = s.svc.BestStudyTime(u.ID)
	s.bestDuration = s.svc.BestDuration(u.ID)
	s.stage = stageAdvice
}

func (s *CoachScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if len(s.users) == 0 {
		return s, nil
	}

	kmsg, isKey := msg.(tea.KeyMsg)

	switch s.stage {
	case stageUser:
		var cmd tea.Cmd
		s.userPick, cmd = s.userPick.Update(msg)
		if s.userPick.Submitted {
			s.loadAdvice(s.selectedUser())
		}
		return s, cmd

	case stageAdvice:
		if isKey && kmsg.String() == "p" {
			s.stage = stageTopic
			return s, s.topic.Init()
		}

	case stageTopic:
		if isKey && kmsg.String() == "enter" {
			u := s.selectedUser()
			d, err := s.svc.SynthesizePlan(u.ID, s.topic.Value())
			if err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			s.errMsg = ""
			s.draft = d
			s.stage = stageDraft
			return s, nil
		}
		var cmd tea.Cmd
		s.topic, cmd = s.topic.Update(msg)
		return s, cmd

	case stageDraft:
		if isKey && kmsg.String() == "enter" {
			u := s.selectedUser()
			if _, err := s.svc.CreatePlanFromDraft(u.ID, s.draft, 0); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			s.errMsg = ""
			s.stage = stageDone
			return s, nil
		}

	case stageDone:
		if isKey && kmsg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	return s, nil
}

func (s *CoachScreen) View(width, height int) string {
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

	case stageAdvice:
		u := s.selectedUser()
		b.WriteString(label.Render("Coach's notes for "+u.Name) + "\n\n")
		b.WriteString(dim.Render("Best study time: ") + theme.Body.Render(s.bestTime) + "\n")
		b.WriteString(dim.Render("Session length: ") + theme.Body.Render(s.bestDuration) + "\n\n")
		if len(s.advice) == 0 {
			b.WriteString(theme.Hint.Render("Nothing to say yet. Record some sessions!"))
		} else {
			for _, line := range s.advice {
				b.WriteString(theme.Body.Render("  ▪ "+line) + "\n")
			}
		}
		b.WriteString("\n" + theme.Hint.Render("press p to draft a plan"))

	case stageTopic:
		b.WriteString(label.Render("What should the plan cover?") + "\n\n")
		b.WriteString(s.topic.View())
		if u := s.selectedUser(); u != nil {
			if suggestions := s.svc.SuggestTopics(u.ID); len(suggestions) > 0 {
				b.WriteString("\n\n" + dim.Render("From your interests: "+strings.Join(suggestions, ", ")))
			}
		}

	case stageDraft:
		d := s.draft
		b.WriteString(label.Render(fmt.Sprintf("Draft: %s (%s)", d.Topic, d.Level.DisplayName())) + "\n\n")
		b.WriteString(label.Render("Objectives") + "\n")
		for _, o := range d.Objectives {
			b.WriteString(dim.Render("  • "+o) + "\n")
		}
		b.WriteString("\n" + label.Render("Resources") + "\n")
		for _, r := range d.Resources {
			b.WriteString(dim.Render("  • "+r) + "\n")
		}
		b.WriteString("\n" + dim.Render(fmt.Sprintf("Recommended: %d min per day", d.DailyMinutes)))
		if d.BestTime != "" {
			b.WriteString(dim.Render(", ideally "+d.BestTime))
		}
		b.WriteString("\n")
		if len(d.Tips) > 0 {
			b.WriteString("\n" + label.Render("Tips") + "\n")
			for _, tip := range d.Tips {
				b.WriteString(dim.Render("  ▪ "+tip) + "\n")
			}
		}
		b.WriteString("\n" + theme.Hint.Render("press enter to accept this plan (+10 pts)"))

	case stageDone:
		b.WriteString(theme.Good.Render("Plan saved! The coach believes in you.") + "\n\n")
		b.WriteString(theme.Hint.Render("press enter to go back"))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.Bad.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
