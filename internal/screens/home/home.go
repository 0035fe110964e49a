package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/valen/studyquest/internal/router"
	"github.com/valen/studyquest/internal/screen"
	achscreen "github.com/valen/studyquest/internal/screens/achievements"
	"github.com/valen/studyquest/internal/screens/coach"
	"github.com/valen/studyquest/internal/screens/dashboard"
	"github.com/valen/studyquest/internal/screens/onboard"
	"github.com/valen/studyquest/internal/screens/planform"
	"github.com/valen/studyquest/internal/screens/record"
	"github.com/valen/studyquest/internal/tracker"
	"github.com/valen/studyquest/internal/ui/components"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	svc        *tracker.Service
	menu       components.Menu
	menuLabels []string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc *tracker.Service) *HomeScreen {
	menuLabels := []string{
		"NEW PROFILE",
		"NEW PLAN",
		"RECORD SESSION",
		"DASHBOARD",
		"ACHIEVEMENTS",
		"STUDY COACH",
		"QUIT",
	}

	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: factory()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: push(func() screen.Screen { return onboard.New(svc) })},
		{Label: menuLabels[1], Action: push(func() screen.Screen { return planform.New(svc) })},
		{Label: menuLabels[2], Action: push(func() screen.Screen { return record.New(svc) })},
		{Label: menuLabels[3], Action: push(func() screen.Screen { return dashboard.New(svc) })},
		{Label: menuLabels[4], Action: push(func() screen.Screen { return achscreen.New(svc) })},
		{Label: menuLabels[5], Action: push(func() screen.Screen { return coach.New(svc) })},
		{Label: menuLabels[6], Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		svc:        svc,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	// All sections share a uniform content width so they line up.
	cw := contentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))

	// Stats recompute on every render so returning from a form is
	// reflected immediately.
	g := h.svc.GlobalStats()
	sections = append(sections, renderStatsBar(g.Users, g.Plans, g.Sessions, cw, compact))

	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))
	}

	content := strings.Join(sections, "\n\n")

	return renderDeskFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
