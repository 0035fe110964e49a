package store

import (
	"sort"
	"time"

	"github.com/valen/studyquest/internal/streak"
)

// Level is the self-declared skill tier chosen at onboarding. It is
// distinct from the numeric point level computed from the ledger.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// AllLevels returns the tiers in onboarding display order.
func AllLevels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// DisplayName returns a human-readable label for the tier.
func (l Level) DisplayName() string {
	switch l {
	case LevelBeginner:
		return "Beginner"
	case LevelIntermediate:
		return "Intermediate"
	case LevelAdvanced:
		return "Advanced"
	default:
		return string(l)
	}
}

// UserProfile is a learner. Immutable after onboarding except Interests.
type UserProfile struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Level        Level    `json:"level"`
	Interests    []string `json:"interests"`
	RegisteredAt string   `json:"registered_at"` // time.DateOnly
}

// StudyPlan is a topic-scoped curriculum with progress driven by
// recorded sessions. Progress never decreases.
type StudyPlan struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	Topic               string    `json:"topic"`
	Objectives          []string  `json:"objectives"`
	Resources           []string  `json:"resources"`
	Progress            float64   `json:"progress"`
	CreatedAt           time.Time `json:"created_at"`
	Deadline            time.Time `json:"deadline"`
	FromRecommender     bool      `json:"from_recommender,omitempty"`
	RecommendedDuration int       `json:"recommended_duration,omitempty"`
}

// StudySession is one recorded study sitting. Append-only.
type StudySession struct {
	PlanID       string    `json:"plan_id"`
	Duration     int       `json:"duration"` // minutes
	Satisfaction float64   `json:"satisfaction"`
	RecordedAt   time.Time `json:"recorded_at"`
	Notes        string    `json:"notes,omitempty"`
}

// Document is the whole persisted state: the named collections keyed by
// user or plan id plus the append-only session log. The core mutates it
// in memory; the store owns durability.
type Document struct {
	Users        map[string]*UserProfile  `json:"users"`
	Plans        map[string]*StudyPlan    `json:"plans"`
	Sessions     []StudySession           `json:"sessions"`
	Points       map[string]int           `json:"points"`
	Achievements map[string][]string      `json:"achievements"`
	Streaks      map[string]streak.Record `json:"streaks"`
}

// NewDocument returns an empty document with all collections allocated.
func NewDocument() *Document {
	d := &Document{}
	d.ensureCollections()
	return d
}

// ensureCollections allocates any collection a loaded document is
// missing. Missing collections are treated as empty, never fatal.
func (d *Document) ensureCollections() {
	if d.Users == nil {
		d.Users = make(map[string]*UserProfile)
	}
	if d.Plans == nil {
		d.Plans = make(map[string]*StudyPlan)
	}
	if d.Sessions == nil {
		d.Sessions = []StudySession{}
	}
	if d.Points == nil {
		d.Points = make(map[string]int)
	}
	if d.Achievements == nil {
		d.Achievements = make(map[string][]string)
	}
	if d.Streaks == nil {
		d.Streaks = make(map[string]streak.Record)
	}
}

// UserPlans returns the user's plans ordered by creation time.
func (d *Document) UserPlans(userID string) []*StudyPlan {
	var plans []*StudyPlan
	for _, p := range d.Plans {
		if p.UserID == userID {
			plans = append(plans, p)
		}
	}
	sort.Slice(plans, func(i, j int) bool {
		if plans[i].CreatedAt.Equal(plans[j].CreatedAt) {
			return plans[i].ID < plans[j].ID
		}
		return plans[i].CreatedAt.Before(plans[j].CreatedAt)
	})
	return plans
}

// UserSessions returns the user's sessions in recorded order, resolved
// through each session's parent plan.
func (d *Document) UserSessions(userID string) []StudySession {
	var out []StudySession
	for _, s := range d.Sessions {
		if p, ok := d.Plans[s.PlanID]; ok && p.UserID == userID {
			out = append(out, s)
		}
	}
	return out
}

// UserIDs returns all user ids sorted by registration date then name,
// so listings are stable.
func (d *Document) UserIDs() []string {
	ids := make([]string, 0, len(d.Users))
	for id := range d.Users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := d.Users[ids[i]], d.Users[ids[j]]
		if a.RegisteredAt != b.RegisteredAt {
			return a.RegisteredAt < b.RegisteredAt
		}
		return a.Name < b.Name
	})
	return ids
}

// PlanIDs returns all plan ids ordered by creation time.
func (d *Document) PlanIDs() []string {
	ids := make([]string, 0, len(d.Plans))
	for id := range d.Plans {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := d.Plans[ids[i]], d.Plans[ids[j]]
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return ids
}
