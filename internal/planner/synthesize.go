package planner

import (
	"github.com/valen/studyquest/internal/store"
)

const (
	minDailyMinutes     = 20
	maxDailyMinutes     = 60
	defaultDailyMinutes = 30
)

// Draft is a synthesized study plan before it is persisted: everything
// the caller needs to present the plan and create it.
type Draft struct {
	Topic        string
	Level        store.Level
	Objectives   []string
	Resources    []string
	DailyMinutes int
	BestTime     string
	Tips         []string
}

// Synthesize builds a plan draft for the topic at the given level.
// avgDuration is the learner's historical average session length in
// minutes (0 when there is no history) and bestTime a human-readable
// description of their most productive slot. Both come from the
// caller's pattern analysis so this stays a pure function.
func Synthesize(topic string, level store.Level, avgDuration int, bestTime string, tips []string) *Draft {
	d := &Draft{
		Topic:        topic,
		Level:        level,
		DailyMinutes: recommendedDuration(avgDuration),
		BestTime:     bestTime,
		Tips:         tips,
	}
	if c, ok := Lookup(topic); ok {
		d.Objectives = c.Objectives[level]
		d.Resources = c.Resources
	} else {
		d.Objectives = genericObjectives(topic, level)
		d.Resources = genericResources(topic)
	}
	return d
}

// recommendedDuration clamps the historical average to a sustainable
// daily slot, defaulting when there is no history to draw on.
func recommendedDuration(avg int) int {
	if avg <= 0 {
		return defaultDailyMinutes
	}
	if avg < minDailyMinutes {
		return minDailyMinutes
	}
	if avg > maxDailyMinutes {
		return maxDailyMinutes
	}
	return avg
}
