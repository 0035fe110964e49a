package tracker

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valen/studyquest/internal/achievements"
	"github.com/valen/studyquest/internal/insights"
	"github.com/valen/studyquest/internal/planner"
	"github.com/valen/studyquest/internal/store"
	"github.com/valen/studyquest/internal/streak"
)

type saveSpy struct {
	calls int
	err   error
}

func (s *saveSpy) Save(*store.Document) error {
	s.calls++
	return s.err
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// newService wires a deterministic service over an empty document.
func newService(t *testing.T, now time.Time) (*Service, *store.Document, *saveSpy) {
	t.Helper()
	doc := store.NewDocument()
	spy := &saveSpy{}
	gen := insights.NewGenerator(rand.New(rand.NewSource(1)), fixedNow(now))
	svc := NewService(doc, spy, gen)
	svc.Now = fixedNow(now)
	return svc, doc, spy
}

func seedUser(doc *store.Document, id, name string, level store.Level, interests ...string) {
	doc.Users[id] = &store.UserProfile{
		ID: id, Name: name, Level: level,
		Interests:    interests,
		RegisteredAt: "2025-01-01",
	}
}

func seedPlan(doc *store.Document, id, userID, topic string, progress float64) {
	doc.Plans[id] = &store.StudyPlan{
		ID: id, UserID: userID, Topic: topic,
		Progress:  progress,
		CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Deadline:  time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateUser(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, doc, spy := newService(t, now)

	u, err := svc.CreateUser("  Valentina ", store.LevelBeginner, []string{"python"})
	require.NoError(t, err)
	assert.Equal(t, "Valentina", u.Name)
	assert.Equal(t, "2025-03-10", u.RegisteredAt)
	assert.NotEmpty(t, u.ID)
	assert.Same(t, u, doc.Users[u.ID])
	assert.Equal(t, 1, spy.calls)

	_, err = svc.CreateUser("", store.LevelBeginner, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	_, err = svc.CreateUser("Bo", store.Level("wizard"), nil)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "level", verr.Field)
}

func TestCreatePlan(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, doc, _ := newService(t, now)
	seedUser(doc, "u1", "Ana", store.LevelIntermediate)

	p, err := svc.CreatePlan("u1", "python", 14)
	require.NoError(t, err)
	assert.Equal(t, "Master functions and modules", p.Objectives[0])
	assert.Len(t, p.Resources, 4)
	assert.Equal(t, now.AddDate(0, 0, 14), p.Deadline)
	assert.False(t, p.FromRecommender)
	assert.Equal(t, 5, doc.Points["u1"])

	_, err = svc.CreatePlan("nobody", "python", 14)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.CreatePlan("u1", "   ", 14)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.CreatePlan("u1", "python", 0)
	assert.ErrorAs(t, err, &verr)
}

func TestCreatePlanFromDraft(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, doc, _ := newService(t, now)
	seedUser(doc, "u1", "Ana", store.LevelBeginner)

	d := planner.Synthesize("gardening", store.LevelBeginner, 50, "afternoon (2:00-5:00 PM)", nil)
	p, err := svc.CreatePlanFromDraft("u1", d, 0)
	require.NoError(t, err)
	assert.True(t, p.FromRecommender)
	assert.Equal(t, 50, p.RecommendedDuration)
	assert.Equal(t, now.AddDate(0, 0, 30), p.Deadline)
	assert.Equal(t, 10, doc.Points["u1"])

	_, err = svc.CreatePlanFromDraft("u1", nil, 7)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

// A long, high-satisfaction session late at night, on a six-day streak
// with a deep history, triggers the whole rule stack at once.
func TestRecordSession_FullSequence(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	svc, doc, spy := newService(t, now)
	seedUser(doc, "u1", "Ana", store.LevelBeginner)
	seedPlan(doc, "p1", "u1", "python", 0)

	// Nine prior sessions, four of them rated >= 9.
	for i := 0; i < 9; i++ {
		sat := 7.0
		if i < 4 {
			sat = 9.0
		}
		doc.Sessions = append(doc.Sessions, store.StudySession{
			PlanID: "p1", Duration: 30, Satisfaction: sat,
			RecordedAt: time.Date(2025, 3, 1+i, 10, 0, 0, 0, time.UTC),
		})
	}
	doc.Streaks["u1"] = streak.Record{Current: 6, Max: 6, LastActive: "2025-03-09"}

	res, err := svc.RecordSession("p1", 125, 9.5, "late push")
	require.NoError(t, err)

	assert.Equal(t, 8.0, res.ProgressDelta) // 125/15
	assert.Equal(t, 8.0, doc.Plans["p1"].Progress)
	assert.False(t, res.PlanCompleted)

	assert.Equal(t, 17, res.SessionPoints) // min(12,20) + 5
	assert.Equal(t, 7, res.Streak.Current)
	assert.Equal(t, 7, res.Streak.Max)

	got := make([]string, 0, len(res.NewAchievements))
	for _, a := range res.NewAchievements {
		got = append(got, a.ID)
	}
	want := []string{
		achievements.Streak7,
		achievements.NightOwl,
		achievements.Marathon,
		achievements.Consistent,
		achievements.Perfectionist,
	}
	assert.Equal(t, want, got)

	assert.Equal(t, 155, res.AchievementPoints)
	assert.Equal(t, 172, res.TotalPoints)
	assert.Equal(t, 3, res.Level)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 1, spy.calls)
}

func TestRecordSession_FirstEver(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	svc, doc, _ := newService(t, now)
	seedUser(doc, "u1", "Ana", store.LevelBeginner)
	seedPlan(doc, "p1", "u1", "math", 0)

	res, err := svc.RecordSession("p1", 25, 7, "")
	require.NoError(t, err)
	require.Len(t, res.NewAchievements, 1)
	assert.Equal(t, achievements.FirstSession, res.NewAchievements[0].ID)
	assert.Equal(t, 1, res.Streak.Current)
	assert.Equal(t, 4, res.SessionPoints) // min(2,20) + 2
	assert.Equal(t, 14, res.TotalPoints)  // 4 + 10 first_session
}

func TestRecordSession_CompletionBonus(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	svc, doc, _ := newService(t, now)
	seedUser(doc, "u1", "Ana", store.LevelBeginner)
	seedPlan(doc, "p1", "u1", "math", 98)
	doc.Sessions = append(doc.Sessions, store.StudySession{
		PlanID: "p1", Duration: 30, Satisfaction: 7,
		RecordedAt: time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC),
	})

	res, err := svc.RecordSession("p1", 30, 7, "")
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.ProgressDelta) // clamped at 100
	assert.True(t, res.PlanCompleted)
	assert.Equal(t, 100.0, doc.Plans["p1"].Progress)
	assert.Equal(t, 50, res.CompletionBonus)
	assert.Equal(t, res.SessionPoints+50, res.PointsEarned())

	// A session against a finished plan earns no further bonus.
	res, err = svc.RecordSession("p1", 30, 7, "")
	require.NoError(t, err)
	assert.False(t, res.PlanCompleted)
	assert.Equal(t, 0.0, res.ProgressDelta)
	assert.Equal(t, 0, res.CompletionBonus)
}

func TestRecordSession_ValidationLeavesStateUntouched(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	svc, doc, spy := newService(t, now)
	seedUser(doc, "u1", "Ana", store.LevelBeginner)
	seedPlan(doc, "p1", "u1", "math", 40)

	var verr *ValidationError
	for _, tc := range []struct {
		dur int
		sat float64
	}{
		{0, 7}, {-10, 7}, {30, -1}, {30, 10.5},
	} {
		_, err := svc.RecordSession("p1", tc.dur, tc.sat, "")
		require.ErrorAs(t, err, &verr, "duration=%d satisfaction=%v", tc.dur, tc.sat)
	}

	assert.Empty(t, doc.Sessions)
	assert.Equal(t, 40.0, doc.Plans["p1"].Progress)
	assert.Zero(t, doc.Points["u1"])
	assert.Zero(t, spy.calls)

	_, err := svc.RecordSession("ghost", 30, 7, "")
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestRecordSession_SaveFailureSurfaced(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	svc, doc, spy := newService(t, now)
	spy.err = errors.New("disk full")
	seedUser(doc, "u1", "Ana", store.LevelBeginner)
	seedPlan(doc, "p1", "u1", "math", 0)

	res, err := svc.RecordSession("p1", 30, 7, "")
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")
	require.NotNil(t, res) // in-memory state already advanced
	assert.Len(t, doc.Sessions, 1)
}

func TestAward(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	svc, doc, spy := newService(t, now)
	seedUser(doc, "u1", "Ana", store.LevelBeginner)

	total, err := svc.Award("u1", 30)
	require.NoError(t, err)
	assert.Equal(t, 30, total)

	total, err = svc.Award("u1", 0)
	require.NoError(t, err)
	assert.Equal(t, 30, total)
	assert.Equal(t, 1, spy.calls) // zero award never saves

	_, err = svc.Award("u1", -5)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 30, doc.Points["u1"])

	_, err = svc.Award("nobody", 10)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserAchievements(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	svc, doc, _ := newService(t, now)
	seedUser(doc, "u1", "Ana", store.LevelBeginner)
	doc.Achievements["u1"] = []string{achievements.NightOwl, achievements.FirstSession}

	unlocked, locked, err := svc.UserAchievements("u1")
	require.NoError(t, err)
	require.Len(t, unlocked, 2)
	assert.Equal(t, achievements.NightOwl, unlocked[0].ID) // unlock order
	assert.Len(t, locked, len(achievements.Catalog)-2)
	for _, a := range locked {
		assert.NotContains(t, []string{achievements.NightOwl, achievements.FirstSession}, a.ID)
	}
}

func TestSuggestTopics(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	svc, doc, _ := newService(t, now)
	seedUser(doc, "u1", "Ana", store.LevelBeginner, "python", "guitar", "math")
	seedPlan(doc, "p1", "u1", "Advanced Python", 0)

	assert.Equal(t, []string{"guitar", "math"}, svc.SuggestTopics("u1"))
	assert.Nil(t, svc.SuggestTopics("nobody"))
}

func TestSynthesizePlan(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	svc, doc, _ := newService(t, now)
	seedUser(doc, "u1", "Ana", store.LevelAdvanced)
	seedPlan(doc, "p1", "u1", "math", 0)
	for i := 0; i < 4; i++ {
		doc.Sessions = append(doc.Sessions, store.StudySession{
			PlanID: "p1", Duration: 80, Satisfaction: 8,
			RecordedAt: time.Date(2025, 3, 1+i, 16, 0, 0, 0, time.UTC),
		})
	}

	d, err := svc.SynthesizePlan("u1", "math")
	require.NoError(t, err)
	assert.Equal(t, "Differential and integral calculus", d.Objectives[0])
	assert.Equal(t, 60, d.DailyMinutes) // avg 80 clamped
	assert.NotEmpty(t, d.BestTime)
	assert.LessOrEqual(t, len(d.Tips), 3)

	_, err = svc.SynthesizePlan("u1", "")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUserStatsAndTrend(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	svc, doc, _ := newService(t, now)
	seedUser(doc, "u1", "Ana", store.LevelBeginner)
	seedPlan(doc, "p1", "u1", "math", 100)
	seedPlan(doc, "p2", "u1", "python", 20)
	doc.Points["u1"] = 160
	doc.Streaks["u1"] = streak.Record{Current: 2, Max: 5, LastActive: "2025-03-09"}

	for i, sat := range []float64{5, 5, 5, 8, 8, 8} {
		doc.Sessions = append(doc.Sessions, store.StudySession{
			PlanID: "p1", Duration: 30, Satisfaction: sat,
			RecordedAt: time.Date(2025, 3, 1+i, 10, 0, 0, 0, time.UTC),
		})
	}

	st, err := svc.UserStats("u1")
	require.NoError(t, err)
	assert.Equal(t, 6, st.Sessions)
	assert.Equal(t, 180, st.TotalMinutes)
	assert.InDelta(t, 6.5, st.AvgSatisfaction, 1e-9)
	assert.Equal(t, 1, st.DistinctTopics)
	assert.Equal(t, 3, st.Level) // 160 points
	assert.Equal(t, 140, st.ToNextLevel)
	assert.Equal(t, 2, st.Plans)
	assert.Equal(t, 1, st.CompletedPlans)
	assert.Equal(t, TrendImproving, st.Trend) // recent 8.0 vs avg 6.5

	_, err = svc.UserStats("nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGlobalStats(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	svc, doc, _ := newService(t, now)
	seedUser(doc, "u1", "Ana", store.LevelBeginner)
	seedUser(doc, "u2", "Bo", store.LevelAdvanced)
	seedPlan(doc, "p1", "u1", "math", 0)
	doc.Sessions = append(doc.Sessions,
		store.StudySession{PlanID: "p1", Duration: 20, Satisfaction: 6, RecordedAt: now},
		store.StudySession{PlanID: "p1", Duration: 40, Satisfaction: 8, RecordedAt: now},
	)

	g := svc.GlobalStats()
	assert.Equal(t, 2, g.Users)
	assert.Equal(t, 1, g.Plans)
	assert.Equal(t, 2, g.Sessions)
	assert.Equal(t, 60, g.TotalMinutes)
	assert.Equal(t, 30, g.AvgDuration)
	assert.InDelta(t, 7.0, g.AvgSatisfaction, 1e-9)
}
