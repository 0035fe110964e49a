// Package onboard is the profile creation form: name, level tier,
// interests.
package onboard

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
	stageName stage = iota
	stageLevel
	stageInterests
	stageDone
)

// OnboardScreen collects a new learner profile step by step.
type OnboardScreen struct {
	svc *tracker.Service

	stage     stage
	nameInput components.TextInput
	levelPick components.Choice
	interests components.TextInput

	created *store.UserProfile
	errMsg  string
}

var _ screen.Screen = (*OnboardScreen)(nil)
var _ screen.KeyHintProvider = (*OnboardScreen)(nil)

// New creates the onboarding form.
func New(svc *tracker.Service) *OnboardScreen {
	levels := store.AllLevels()
	labels := make([]string, len(levels))
	for i, l := range levels {
		labels[i] = l.DisplayName()
	}

	return &OnboardScreen{
		svc:       svc,
		nameInput: components.NewTextInput("your name", false, 40),
		levelPick: components.NewChoice("How would you rate yourself?", labels),
		interests: components.NewTextInput("e.g. python, math, english", false, 120),
	}
}

func (s *OnboardScreen) Init() tea.Cmd {
	return s.nameInput.Init()
}

func (s *OnboardScreen) Title() string {
	return "New Profile"
}

func (s *OnboardScreen) KeyHints() []layout.KeyHint {
	if s.stage == stageDone {
		return []layout.KeyHint{{Key: "Enter/Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *OnboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)

	switch s.stage {
	case stageName:
		if isKey && kmsg.String() == "enter" {
			if strings.TrimSpace(s.nameInput.Value()) == "" {
				s.errMsg = "Name can't be empty"
				return s, nil
			}
			s.errMsg = ""
			s.stage = stageLevel
			return s, nil
		}
		var cmd tea.Cmd
		s.nameInput, cmd = s.nameInput.Update(msg)
		return s, cmd

	case stageLevel:
		var cmd tea.Cmd
		s.levelPick, cmd = s.levelPick.Update(msg)
		if s.levelPick.Submitted {
			s.stage = stageInterests
			return s, s.interests.Init()
		}
		return s, cmd

	case stageInterests:
		if isKey && kmsg.String() == "enter" {
			return s, s.submit()
		}
		var cmd tea.Cmd
		s.interests, cmd = s.interests.Update(msg)
		return s, cmd

	case stageDone:
		if isKey && kmsg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	return s, nil
}

func (s *OnboardScreen) submit() tea.Cmd {
	level := store.AllLevels()[s.levelPick.ChosenIndex]

	var interests []string
	for _, part := range strings.Split(s.interests.Value(), ",") {
		if p := strings.TrimSpace(part); p != "" {
			interests = append(interests, p)
		}
	}

	u, err := s.svc.CreateUser(s.nameInput.Value(), level, interests)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}

	s.created = u
	s.errMsg = ""
	s.stage = stageDone
	return nil
}

func (s *OnboardScreen) View(width, height int) string {
	var b strings.Builder

	label := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	switch s.stage {
	case stageName:
		b.WriteString(label.Render("What's your name?") + "\n\n")
		b.WriteString(s.nameInput.View())

	case stageLevel:
		b.WriteString(s.levelPick.View())

	case stageInterests:
		b.WriteString(label.Render("What do you want to learn?") + "\n")
		b.WriteString(dim.Render("Comma-separated, leave empty to skip") + "\n\n")
		b.WriteString(s.interests.View())

	case stageDone:
		b.WriteString(theme.Good.Render(fmt.Sprintf("Welcome aboard, %s!", s.created.Name)) + "\n\n")
		b.WriteString(dim.Render(fmt.Sprintf("Level: %s", s.created.Level.DisplayName())) + "\n")
		if len(s.created.Interests) > 0 {
			b.WriteString(dim.Render("Interests: "+strings.Join(s.created.Interests, ", ")) + "\n")
		}
		b.WriteString("\n" + theme.Hint.Render("press enter to go back"))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.Bad.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
