// Package tracker is the core service: it owns every mutation of the
// study document and sequences the gamification rules around recorded
// sessions. It never prints; callers render its results.
package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/valen/studyquest/internal/achievements"
	"github.com/valen/studyquest/internal/insights"
	"github.com/valen/studyquest/internal/planner"
	"github.com/valen/studyquest/internal/points"
	"github.com/valen/studyquest/internal/store"
	"github.com/valen/studyquest/internal/streak"
)

const (
	planCreateBonus    = 5
	draftPlanBonus     = 10
	planCompletedBonus = 50

	progressMinInc    = 3
	progressMaxInc    = 10
	progressPerMinute = 15
)

// Saver persists the document after a mutation. The store satisfies it.
type Saver interface {
	Save(doc *store.Document) error
}

// Service wires the document, the persistence collaborator and the
// recommendation generator together. Now is injectable for tests.
type Service struct {
	doc   *store.Document
	saver Saver
	gen   *insights.Generator

	Now func() time.Time
}

// NewService returns a service over the given document. saver may be
// nil (mutations then live only in memory, used by tests).
func NewService(doc *store.Document, saver Saver, gen *insights.Generator) *Service {
	if gen == nil {
		gen = insights.NewGenerator(nil, nil)
	}
	return &Service{doc: doc, saver: saver, gen: gen, Now: time.Now}
}

// Doc exposes the document for read-only rendering.
func (s *Service) Doc() *store.Document { return s.doc }

func (s *Service) save() error {
	if s.saver == nil {
		return nil
	}
	if err := s.saver.Save(s.doc); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// User returns the profile for id.
func (s *Service) User(id string) (*store.UserProfile, error) {
	u, ok := s.doc.Users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Plan returns the plan for id.
func (s *Service) Plan(id string) (*store.StudyPlan, error) {
	p, ok := s.doc.Plans[id]
	if !ok {
		return nil, ErrPlanNotFound
	}
	return p, nil
}

// Users returns all profiles in registration order.
func (s *Service) Users() []*store.UserProfile {
	ids := s.doc.UserIDs()
	out := make([]*store.UserProfile, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.doc.Users[id])
	}
	return out
}

// CreateUser registers a learner. Name must be non-empty and level one
// of the known tiers.
func (s *Service) CreateUser(name string, level store.Level, interests []string) (*store.UserProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "must not be empty")
	}
	switch level {
	case store.LevelBeginner, store.LevelIntermediate, store.LevelAdvanced:
	default:
		return nil, invalid("level", fmt.Sprintf("unknown tier %q", level))
	}

	u := &store.UserProfile{
		ID:           uuid.NewString(),
		Name:         name,
		Level:        level,
		Interests:    interests,
		RegisteredAt: s.Now().Format(time.DateOnly),
	}
	s.doc.Users[u.ID] = u
	if err := s.save(); err != nil {
		return u, err
	}
	return u, nil
}

// CreatePlan creates a manual plan for the topic, with objectives and
// resources drawn from the curriculum table (or the generic fallback).
// Awards the plan-creation bonus.
func (s *Service) CreatePlan(userID, topic string, deadlineDays int) (*store.StudyPlan, error) {
	u, err := s.User(userID)
	if err != nil {
		return nil, err
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, invalid("topic", "must not be empty")
	}
	if deadlineDays <= 0 {
		return nil, invalid("deadline", "must be at least one day out")
	}

	d := planner.Synthesize(topic, u.Level, 0, "", nil)
	p := s.insertPlan(u.ID, topic, d.Objectives, d.Resources, deadlineDays)
	s.doc.Points[u.ID] += planCreateBonus
	if err := s.save(); err != nil {
		return p, err
	}
	return p, nil
}

// CreatePlanFromDraft persists a synthesized draft as a plan. The
// recommender bonus is higher than the manual one.
func (s *Service) CreatePlanFromDraft(userID string, d *planner.Draft, deadlineDays int) (*store.StudyPlan, error) {
	u, err := s.User(userID)
	if err != nil {
		return nil, err
	}
	if d == nil || strings.TrimSpace(d.Topic) == "" {
		return nil, invalid("draft", "missing topic")
	}
	if deadlineDays <= 0 {
		deadlineDays = 30
	}

	p := s.insertPlan(u.ID, d.Topic, d.Objectives, d.Resources, deadlineDays)
	p.FromRecommender = true
	p.RecommendedDuration = d.DailyMinutes
	s.doc.Points[u.ID] += draftPlanBonus
	if err := s.save(); err != nil {
		return p, err
	}
	return p, nil
}

func (s *Service) insertPlan(userID, topic string, objectives, resources []string, deadlineDays int) *store.StudyPlan {
	now := s.Now()
	p := &store.StudyPlan{
		ID:         uuid.NewString(),
		UserID:     userID,
		Topic:      topic,
		Objectives: objectives,
		Resources:  resources,
		CreatedAt:  now,
		Deadline:   now.AddDate(0, 0, deadlineDays),
	}
	s.doc.Plans[p.ID] = p
	return p
}

// SessionResult is everything that happened when a session was
// recorded, in the order it happened.
type SessionResult struct {
	Session store.StudySession
	Plan    *store.StudyPlan

	ProgressDelta float64
	PlanCompleted bool

	SessionPoints     int
	CompletionBonus   int
	AchievementPoints int
	TotalPoints       int
	Level             int
	LeveledUp         bool

	Streak          streak.Record
	NewAchievements []achievements.Achievement
}

// PointsEarned is the sum of everything the session awarded.
func (r *SessionResult) PointsEarned() int {
	return r.SessionPoints + r.CompletionBonus + r.AchievementPoints
}

// RecordSession appends a session to the plan and runs the full rule
// sequence: plan progress, session points, streak advance, achievement
// evaluation. Invalid input is rejected before any state changes.
func (s *Service) RecordSession(planID string, duration int, satisfaction float64, notes string) (*SessionResult, error) {
	p, err := s.Plan(planID)
	if err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, invalid("duration", "must be positive minutes")
	}
	if satisfaction < 0 || satisfaction > 10 {
		return nil, invalid("satisfaction", "must be between 0 and 10")
	}

	now := s.Now()
	userID := p.UserID
	levelBefore := points.LevelFor(s.doc.Points[userID])

	// Progress first, so the completion bonus lands with this session.
	inc := duration / progressPerMinute
	if inc < progressMinInc {
		inc = progressMinInc
	}
	if inc > progressMaxInc {
		inc = progressMaxInc
	}
	completed := false
	delta := float64(inc)
	if p.Progress+delta >= 100 {
		delta = 100 - p.Progress
		completed = p.Progress < 100
		p.Progress = 100
	} else {
		p.Progress += delta
	}

	sess := store.StudySession{
		PlanID:       planID,
		Duration:     duration,
		Satisfaction: satisfaction,
		RecordedAt:   now,
		Notes:        notes,
	}
	s.doc.Sessions = append(s.doc.Sessions, sess)

	res := &SessionResult{
		Session:       sess,
		Plan:          p,
		ProgressDelta: delta,
		PlanCompleted: completed,
		SessionPoints: points.SessionPoints(duration, satisfaction),
	}
	if completed {
		res.CompletionBonus = planCompletedBonus
	}
	s.doc.Points[userID] += res.SessionPoints + res.CompletionBonus

	res.Streak = streak.Advance(s.doc.Streaks[userID], now)
	s.doc.Streaks[userID] = res.Streak

	granted := achievements.Evaluate(s.doc.Achievements[userID], s.sessionFacts(userID, sess))
	for _, a := range granted {
		s.doc.Achievements[userID] = append(s.doc.Achievements[userID], a.ID)
		res.AchievementPoints += a.Points
	}
	res.NewAchievements = granted
	s.doc.Points[userID] += res.AchievementPoints

	res.TotalPoints = s.doc.Points[userID]
	res.Level = points.LevelFor(res.TotalPoints)
	res.LeveledUp = res.Level > levelBefore

	if err := s.save(); err != nil {
		return res, err
	}
	return res, nil
}

// sessionFacts aggregates the snapshot the achievement engine runs
// against, after the session has been appended and the streak advanced.
func (s *Service) sessionFacts(userID string, sess store.StudySession) achievements.Facts {
	user := s.doc.UserSessions(userID)
	topics := make(map[string]bool)
	high := 0
	for _, us := range user {
		if p, ok := s.doc.Plans[us.PlanID]; ok {
			topics[strings.ToLower(p.Topic)] = true
		}
		if us.Satisfaction >= 9 {
			high++
		}
	}
	return achievements.Facts{
		TotalSessions:    len(s.doc.Sessions),
		UserSessions:     len(user),
		CurrentStreak:    s.doc.Streaks[userID].Current,
		Duration:         sess.Duration,
		Satisfaction:     sess.Satisfaction,
		Hour:             sess.RecordedAt.Hour(),
		DistinctTopics:   len(topics),
		HighSatisfaction: high,
	}
}

// Award adds pts to the user's ledger and returns the new total.
// Awarding zero is a no-op and does not touch the store.
func (s *Service) Award(userID string, pts int) (int, error) {
	if _, err := s.User(userID); err != nil {
		return 0, err
	}
	if pts < 0 {
		return 0, invalid("points", "must not be negative")
	}
	if pts == 0 {
		return s.doc.Points[userID], nil
	}
	s.doc.Points[userID] += pts
	total := s.doc.Points[userID]
	if err := s.save(); err != nil {
		return total, err
	}
	return total, nil
}

// UserAchievements returns the user's unlocked achievements in unlock
// order, then the still-locked remainder in catalog order.
func (s *Service) UserAchievements(userID string) (unlocked, locked []achievements.Achievement, err error) {
	if _, err := s.User(userID); err != nil {
		return nil, nil, err
	}
	have := make(map[string]bool)
	for _, id := range s.doc.Achievements[userID] {
		if a, ok := achievements.ByID(id); ok {
			unlocked = append(unlocked, a)
			have[id] = true
		}
	}
	for _, a := range achievements.Catalog {
		if !have[a.ID] {
			locked = append(locked, a)
		}
	}
	return unlocked, locked, nil
}

// Recommendations returns the coach's advisory lines for the user.
func (s *Service) Recommendations(userID string) ([]string, error) {
	if _, err := s.User(userID); err != nil {
		return nil, err
	}
	return s.gen.Recommendations(s.doc, userID), nil
}

// SynthesizePlan builds a plan draft for the topic, informed by the
// user's session history. The draft is not persisted; pass it to
// CreatePlanFromDraft to accept it.
func (s *Service) SynthesizePlan(userID, topic string) (*planner.Draft, error) {
	u, err := s.User(userID)
	if err != nil {
		return nil, err
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, invalid("topic", "must not be empty")
	}

	p := insights.AnalyzeUser(s.doc, userID)
	tips := s.gen.Recommendations(s.doc, userID)
	if len(tips) > 3 {
		tips = tips[:3]
	}
	return planner.Synthesize(topic, u.Level, p.AvgDuration, s.gen.BestStudyTime(s.doc, userID), tips), nil
}

// BestStudyTime describes the user's most productive time of day.
func (s *Service) BestStudyTime(userID string) string {
	return s.gen.BestStudyTime(s.doc, userID)
}

// BestDuration describes the session length that works best for the
// user.
func (s *Service) BestDuration(userID string) string {
	return s.gen.BestDuration(s.doc, userID)
}

// SuggestTopics returns the user's interests that no existing plan
// covers yet, in declared order.
func (s *Service) SuggestTopics(userID string) []string {
	u, ok := s.doc.Users[userID]
	if !ok {
		return nil
	}
	var out []string
	for _, interest := range u.Interests {
		covered := false
		for _, p := range s.doc.UserPlans(userID) {
			if strings.Contains(strings.ToLower(p.Topic), strings.ToLower(interest)) {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, interest)
		}
	}
	return out
}

// Trend is the direction of the user's recent satisfaction relative to
// their lifetime average.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendSteady    Trend = "steady"
)

const trendWindow = 3

// UserStats is the dashboard snapshot for one learner.
type UserStats struct {
	Sessions        int
	TotalMinutes    int
	AvgSatisfaction float64
	DistinctTopics  int

	Points      int
	Level       int
	ToNextLevel int

	Streak streak.Record

	Plans          int
	CompletedPlans int

	Trend Trend
}

// UserStats aggregates the per-user dashboard numbers.
func (s *Service) UserStats(userID string) (*UserStats, error) {
	if _, err := s.User(userID); err != nil {
		return nil, err
	}
	p := insights.AnalyzeUser(s.doc, userID)
	pts := s.doc.Points[userID]
	st := &UserStats{
		Sessions:        p.Sessions,
		TotalMinutes:    p.TotalMinutes,
		AvgSatisfaction: p.AvgSatisfaction,
		DistinctTopics:  p.DistinctTopics(),
		Points:          pts,
		Level:           points.LevelFor(pts),
		ToNextLevel:     points.ToNextLevel(pts),
		Streak:          s.doc.Streaks[userID],
		Trend:           s.satisfactionTrend(userID, p.AvgSatisfaction),
	}
	for _, plan := range s.doc.UserPlans(userID) {
		st.Plans++
		if plan.Progress >= 100 {
			st.CompletedPlans++
		}
	}
	return st, nil
}

// satisfactionTrend compares the mean of the last few sessions against
// the lifetime average. Fewer sessions than the window is steady.
func (s *Service) satisfactionTrend(userID string, avg float64) Trend {
	sessions := s.doc.UserSessions(userID)
	if len(sessions) < trendWindow {
		return TrendSteady
	}
	recent := 0.0
	for _, sess := range sessions[len(sessions)-trendWindow:] {
		recent += sess.Satisfaction
	}
	recent /= trendWindow
	switch {
	case recent > avg+0.5:
		return TrendImproving
	case recent < avg-0.5:
		return TrendDeclining
	default:
		return TrendSteady
	}
}

// GlobalStats is the platform-wide snapshot shown on the home screen
// and by the stats command.
type GlobalStats struct {
	Users    int
	Plans    int
	Sessions int

	TotalMinutes    int
	AvgDuration     int
	AvgSatisfaction float64
}

// GlobalStats aggregates across all users.
func (s *Service) GlobalStats() GlobalStats {
	p := insights.Analyze(s.doc)
	return GlobalStats{
		Users:           len(s.doc.Users),
		Plans:           len(s.doc.Plans),
		Sessions:        p.Sessions,
		TotalMinutes:    p.TotalMinutes,
		AvgDuration:     p.AvgDuration,
		AvgSatisfaction: p.AvgSatisfaction,
	}
}
