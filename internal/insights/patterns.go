// Package insights recomputes study-habit statistics from the session
// history and turns them into heuristic coaching advice.
package insights

import (
	"time"

	"github.com/valen/studyquest/internal/store"
)

// Patterns holds descriptive statistics over a session history. It is
// recomputed in full on every call; nothing here is incrementally
// maintained, so correctness never depends on call order.
type Patterns struct {
	Sessions        int
	TotalMinutes    int
	AvgDuration     int // integer minutes
	AvgSatisfaction float64
	HourCounts      [24]int
	WeekdayCounts   map[time.Weekday]int
	TopicCounts     map[string]int
	// MaxStreak is the longest streak ever observed across all users.
	MaxStreak int
}

// Analyze computes patterns over the whole platform history.
func Analyze(doc *store.Document) Patterns {
	return analyze(doc, doc.Sessions)
}

// AnalyzeUser computes patterns over one user's sessions. Streak data
// stays platform-wide.
func AnalyzeUser(doc *store.Document, userID string) Patterns {
	return analyze(doc, doc.UserSessions(userID))
}

func analyze(doc *store.Document, sessions []store.StudySession) Patterns {
	p := Patterns{
		WeekdayCounts: make(map[time.Weekday]int),
		TopicCounts:   make(map[string]int),
	}

	var satisfactionSum float64
	for _, s := range sessions {
		p.Sessions++
		p.TotalMinutes += s.Duration
		satisfactionSum += s.Satisfaction
		p.HourCounts[s.RecordedAt.Hour()]++
		p.WeekdayCounts[s.RecordedAt.Weekday()]++
		if plan, ok := doc.Plans[s.PlanID]; ok {
			p.TopicCounts[plan.Topic]++
		}
	}
	if p.Sessions > 0 {
		p.AvgDuration = p.TotalMinutes / p.Sessions
		p.AvgSatisfaction = satisfactionSum / float64(p.Sessions)
	}

	for _, rec := range doc.Streaks {
		if rec.Max > p.MaxStreak {
			p.MaxStreak = rec.Max
		}
	}
	return p
}

// TopHour returns the most frequent session-start hour. Ties resolve to
// the earliest hour reaching the maximum, scanning 0 through 23. The
// second return is false when there is no hour history at all.
func (p Patterns) TopHour() (int, bool) {
	best, bestCount := 0, 0
	for h, c := range p.HourCounts {
		if c > bestCount {
			best, bestCount = h, c
		}
	}
	return best, bestCount > 0
}

// DistinctTopics returns how many different plan topics the history
// touches.
func (p Patterns) DistinctTopics() int {
	return len(p.TopicCounts)
}
