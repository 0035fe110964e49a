package insights

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/valen/studyquest/internal/points"
	"github.com/valen/studyquest/internal/store"
)

// MaxRecommendations caps the advisory list returned by Recommendations.
const MaxRecommendations = 8

// maxMotivational caps the motivational source's contribution.
const maxMotivational = 2

// Generator assembles ranked advisory text from pattern analysis,
// plan progress, level, and streaks. The random source only adds
// cosmetic variety to the level-based pool; inject a seeded one in
// tests for reproducible output.
type Generator struct {
	Rand *rand.Rand
	Now  func() time.Time
}

// NewGenerator creates a Generator. A nil rng falls back to a
// time-seeded source, a nil clock to time.Now.
func NewGenerator(rng *rand.Rand, now func() time.Time) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{Rand: rng, Now: now}
}

// Recommendations builds the advisory list for a user: progress,
// pattern, level, streak, and motivational advice, concatenated in that
// order and capped at MaxRecommendations.
func (g *Generator) Recommendations(doc *store.Document, userID string) []string {
	user, ok := doc.Users[userID]
	if !ok {
		return nil
	}

	var recs []string
	recs = append(recs, g.progressAdvice(doc, userID)...)
	recs = append(recs, patternAdvice(AnalyzeUser(doc, userID))...)
	recs = append(recs, g.levelAdvice(user.Level)...)
	recs = append(recs, streakAdvice(doc, userID)...)
	recs = append(recs, motivationalAdvice(doc, userID)...)

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}

// progressAdvice yields one message per active plan based on its
// progress band, plus independent deadline-urgency and overdue warnings.
func (g *Generator) progressAdvice(doc *store.Document, userID string) []string {
	plans := doc.UserPlans(userID)
	if len(plans) == 0 {
		return []string{"Create your first study plan to start your learning journey"}
	}

	now := g.Now()
	var recs []string
	for _, p := range plans {
		if p.Progress >= 100 {
			continue
		}
		switch {
		case p.Progress < 25:
			recs = append(recs, fmt.Sprintf("%s: dedicate 15-20 minutes a day to build the habit", p.Topic))
		case p.Progress < 50:
			recs = append(recs, fmt.Sprintf("%s: good pace! Push to 25-30 minute sessions to accelerate", p.Topic))
		case p.Progress < 75:
			recs = append(recs, fmt.Sprintf("%s: you are past halfway, keep the rhythm", p.Topic))
		default:
			recs = append(recs, fmt.Sprintf("%s: almost done! One last push", p.Topic))
		}

		daysLeft := int(p.Deadline.Sub(now).Hours() / 24)
		if daysLeft <= 3 && p.Progress < 90 {
			recs = append(recs, fmt.Sprintf("%s: only %d days left. Consider longer sessions", p.Topic, daysLeft))
		}
		if now.After(p.Deadline) {
			recs = append(recs, fmt.Sprintf("%s: deadline passed. Extend the plan or adjust the goals", p.Topic))
		}
	}
	return recs
}

// patternAdvice reads the user's timing, duration, and satisfaction
// statistics.
func patternAdvice(p Patterns) []string {
	var recs []string

	if hour, ok := p.TopHour(); ok {
		part := DayPartFor(hour)
		switch part {
		case EarlyMorning:
			recs = append(recs, fmt.Sprintf("Your best hour is %d:00. Make the most of your mornings!", hour))
		case LateMorning:
			recs = append(recs, fmt.Sprintf("You perform well in the late morning (%d:00). Keep that routine", hour))
		case Afternoon:
			recs = append(recs, fmt.Sprintf("Afternoons around %d:00 suit you. Protect that slot", hour))
		case EarlyEvening:
			recs = append(recs, fmt.Sprintf("Evenings around %d:00 are your rhythm. Stick with it", hour))
		default:
			recs = append(recs, fmt.Sprintf("You are most productive late at night (%d:00)", hour))
		}
	}

	if p.Sessions > 0 {
		switch {
		case p.AvgDuration < 20:
			recs = append(recs, "Your sessions are short. Aim for 25-30 minutes for more depth")
		case p.AvgDuration > 90:
			recs = append(recs, "Very long sessions risk fatigue. Take a break every 45-60 minutes")
		default:
			recs = append(recs, fmt.Sprintf("Your %d-minute average is ideal. Keep it up!", p.AvgDuration))
		}

		switch {
		case p.AvgSatisfaction < 6:
			recs = append(recs, "Satisfaction is low. Try a different setting or study method")
		case p.AvgSatisfaction >= 8:
			recs = append(recs, "Excellent satisfaction! You are in the learning sweet spot")
		}
	}
	return recs
}

// levelPools holds the fixed per-tier advisory pools. The generator
// samples two without replacement for variety.
var levelPools = map[store.Level][]string{
	store.LevelBeginner: {
		"Focus on fundamentals before moving on",
		"Set small, achievable goals (15-20 minutes a day)",
		"Repetition is key at this stage. Review constantly",
	},
	store.LevelIntermediate: {
		"Time to apply what you learned in practical projects",
		"Connect different concepts for deeper understanding",
		"Gradually increase the complexity of your exercises",
	},
	store.LevelAdvanced: {
		"Seek out complex, challenging case studies",
		"Teach others to reinforce your own knowledge",
		"Experiment with novel applications of the topic",
	},
}

// levelAdvice samples min(2, pool size) advisories from the tier pool
// without replacement. The only non-deterministic call in the engine.
func (g *Generator) levelAdvice(level store.Level) []string {
	pool := levelPools[level]
	n := 2
	if len(pool) < n {
		n = len(pool)
	}
	if n == 0 {
		return nil
	}

	picks := g.Rand.Perm(len(pool))[:n]
	out := make([]string, n)
	for i, idx := range picks {
		out[i] = pool[idx]
	}
	return out
}

// streakAdvice nudges the user toward the next streak milestone.
func streakAdvice(doc *store.Document, userID string) []string {
	rec := doc.Streaks[userID]

	var recs []string
	switch {
	case rec.Current == 0:
		recs = append(recs, "Restart your study streak. A small step today makes the difference!")
	case rec.Current < 3:
		recs = append(recs, fmt.Sprintf("%d-day streak. Reach 3 to unlock an achievement!", rec.Current))
	case rec.Current < 7:
		recs = append(recs, fmt.Sprintf("%d days in a row. Next goal: a full week!", rec.Current))
	default:
		recs = append(recs, fmt.Sprintf("Impressive %d-day streak! You are a learning machine", rec.Current))
	}

	if rec.Max > rec.Current && rec.Current > 0 {
		recs = append(recs, fmt.Sprintf("Your record is %d days. You can beat it!", rec.Max))
	}
	return recs
}

// motivationalAdvice yields up to two encouragement messages based on
// point total, session count, and cumulative study time.
func motivationalAdvice(doc *store.Document, userID string) []string {
	total := doc.Points[userID]
	sessions := doc.UserSessions(userID)

	var recs []string
	switch level := points.LevelFor(total); {
	case level == 1:
		recs = append(recs, "Every session brings you closer to your first level. Keep going!")
	case level < 4:
		recs = append(recs, "You are building a solid habit. Consistency is your superpower!")
	default:
		recs = append(recs, "You are a truly dedicated learner. You inspire others!")
	}

	if len(sessions) >= 10 {
		recs = append(recs, "Your discipline is admirable. Big wins come from small steps!")
	}

	var minutes int
	for _, s := range sessions {
		minutes += s.Duration
	}
	if minutes >= 300 {
		recs = append(recs, fmt.Sprintf("You have invested %d hours in your growth. That is real dedication!", minutes/60))
	}

	if len(recs) > maxMotivational {
		recs = recs[:maxMotivational]
	}
	return recs
}

// BestStudyTime reports the user's most productive time of day.
func (g *Generator) BestStudyTime(doc *store.Document, userID string) string {
	return BestStudyTime(AnalyzeUser(doc, userID))
}

// BestDuration reports the duration band with the user's highest mean
// satisfaction.
func (g *Generator) BestDuration(doc *store.Document, userID string) string {
	sessions := doc.UserSessions(userID)
	if len(sessions) == 0 {
		return "Start with 20-25 minute sessions to build the habit"
	}
	return BestDurationBand(sessions).Advice()
}
