// Package record is the session logging form and its result summary.
package record

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
	stagePlan stage = iota
	stageMinutes
	stageSatisfaction
	stageNotes
	stageResult
)

// RecordScreen logs one study session against a plan.
type RecordScreen struct {
	svc *tracker.Service

	stage        stage
	plans        []*store.StudyPlan
	planPick     components.Choice
	minutes      components.TextInput
	satisfaction components.TextInput
	notes        components.TextInput

	result *tracker.SessionResult
	errMsg string
}

var _ screen.Screen = (*RecordScreen)(nil)
var _ screen.KeyHintProvider = (*RecordScreen)(nil)

// New creates the session form over every plan on the platform.
func New(svc *tracker.Service) *RecordScreen {
	var plans []*store.StudyPlan
	doc := svc.Doc()
	for _, id := range doc.PlanIDs() {
		plans = append(plans, doc.Plans[id])
	}

	labels := make([]string, len(plans))
	for i, p := range plans {
		owner := "?"
		if u, ok := doc.Users[p.UserID]; ok {
			owner = u.Name
		}
		labels[i] = fmt.Sprintf("%s — %s (%.0f%%)", owner, p.Topic, p.Progress)
	}

	return &RecordScreen{
		svc:          svc,
		plans:        plans,
		planPick:     components.NewChoice("Which plan did you study?", labels),
		minutes:      components.NewTextInput("minutes", true, 4),
		satisfaction: components.NewTextInput("0-10", true, 4),
		notes:        components.NewTextInput("optional notes", false, 120),
	}
}

func (s *RecordScreen) Init() tea.Cmd {
	return nil
}

func (s *RecordScreen) Title() string {
	return "Record Session"
}

func (s *RecordScreen) KeyHints() []layout.KeyHint {
	if s.stage == stageResult {
		return []layout.KeyHint{{Key: "Enter/Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *RecordScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if len(s.plans) == 0 {
		return s, nil
	}

	kmsg, isKey := msg.(tea.KeyMsg)

	switch s.stage {
	case stagePlan:
		var cmd tea.Cmd
		s.planPick, cmd = s.planPick.Update(msg)
		if s.planPick.Submitted {
			s.stage = stageMinutes
			return s, s.minutes.Init()
		}
		return s, cmd

	case stageMinutes:
		if isKey && kmsg.String() == "enter" {
			n, err := s.minutes.NumericValue()
			if err != nil || n <= 0 {
				s.errMsg = "Minutes must be a positive number"
				return s, nil
			}
			s.errMsg = ""
			s.stage = stageSatisfaction
			return s, s.satisfaction.Init()
		}
		var cmd tea.Cmd
		s.minutes, cmd = s.minutes.Update(msg)
		return s, cmd

	case stageSatisfaction:
		if isKey && kmsg.String() == "enter" {
			f, err := s.satisfaction.FloatValue()
			if err != nil || f < 0 || f > 10 {
				s.errMsg = "Satisfaction must be between 0 and 10"
				return s, nil
			}
			s.errMsg = ""
			s.stage = stageNotes
			return s, s.notes.Init()
		}
		var cmd tea.Cmd
		s.satisfaction, cmd = s.satisfaction.Update(msg)
		return s, cmd

	case stageNotes:
		if isKey && kmsg.String() == "enter" {
			return s, s.submit()
		}
		var cmd tea.Cmd
		s.notes, cmd = s.notes.Update(msg)
		return s, cmd

	case stageResult:
		if isKey && kmsg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	return s, nil
}

func (s *RecordScreen) submit() tea.Cmd {
	plan := s.plans[s.planPick.ChosenIndex]
	mins, _ := s.minutes.NumericValue()
	sat, _ := s.satisfaction.FloatValue()

	res, err := s.svc.RecordSession(plan.ID, mins, sat, s.notes.Value())
	if err != nil {
		s.errMsg = err.Error()
		if res == nil {
			return nil
		}
		// Persisted state failed to save but the session was scored;
		// show the summary along with the error.
	} else {
		s.errMsg = ""
	}

	s.result = res
	s.stage = stageResult
	return nil
}

func (s *RecordScreen) View(width, height int) string {
	if len(s.plans) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No plans yet. Create one first!"))
	}

	var b strings.Builder

	label := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	switch s.stage {
	case stagePlan:
		b.WriteString(s.planPick.View())

	case stageMinutes:
		b.WriteString(label.Render("How long did you study?") + "\n\n")
		b.WriteString(s.minutes.View())

	case stageSatisfaction:
		b.WriteString(label.Render("How did it go? (0-10)") + "\n\n")
		b.WriteString(s.satisfaction.View())

	case stageNotes:
		b.WriteString(label.Render("Anything to remember?") + "\n\n")
		b.WriteString(s.notes.View())

	case stageResult:
		b.WriteString(s.renderResult(width))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.Bad.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *RecordScreen) renderResult(width int) string {
	res := s.result
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	accent := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var b strings.Builder
	b.WriteString(theme.Good.Render("Session recorded!") + "\n\n")

	b.WriteString(accent.Render(fmt.Sprintf("+%d points", res.PointsEarned())))
	b.WriteString(dim.Render(fmt.Sprintf("   total %d · level %d", res.TotalPoints, res.Level)) + "\n")
	if res.LeveledUp {
		b.WriteString(theme.Good.Render(fmt.Sprintf("LEVEL UP! You reached level %d", res.Level)) + "\n")
	}

	b.WriteString("\n")
	bar := components.NewProgressBar(res.Plan.Topic, res.Plan.Progress/100, true, min(width-8, 50))
	b.WriteString(bar.View() + "\n")
	if res.PlanCompleted {
		b.WriteString(theme.Good.Render(fmt.Sprintf("Plan complete! +%d bonus", res.CompletionBonus)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(accent.Render(fmt.Sprintf("🔥 %d day streak", res.Streak.Current)))
	if res.Streak.Max > res.Streak.Current {
		b.WriteString(dim.Render(fmt.Sprintf("  (record %d)", res.Streak.Max)))
	}
	b.WriteString("\n")

	if len(res.NewAchievements) > 0 {
		b.WriteString("\n" + theme.Good.Render("New achievements") + "\n")
		for _, a := range res.NewAchievements {
			b.WriteString(dim.Render(fmt.Sprintf("  🏆 %s — %s (+%d)", a.Title, a.Description, a.Points)) + "\n")
		}
	}

	b.WriteString("\n" + theme.Hint.Render("press enter to go back"))
	return b.String()
}
