package insights

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/valen/studyquest/internal/store"
	"github.com/valen/studyquest/internal/streak"
)

func fixedClock(day string, hour int) func() time.Time {
	return func() time.Time { return at(day, hour) }
}

func testGenerator(day string) *Generator {
	return NewGenerator(rand.New(rand.NewSource(1)), fixedClock(day, 12))
}

func TestRecommendations_UnknownUser(t *testing.T) {
	g := testGenerator("2025-03-10")
	if recs := g.Recommendations(store.NewDocument(), "nobody"); recs != nil {
		t.Errorf("Recommendations for unknown user = %v, want nil", recs)
	}
}

func TestRecommendations_NoPlans(t *testing.T) {
	doc := store.NewDocument()
	doc.Users["u1"] = &store.UserProfile{ID: "u1", Name: "Ana", Level: store.LevelBeginner}

	recs := testGenerator("2025-03-10").Recommendations(doc, "u1")

	if len(recs) == 0 || !strings.Contains(recs[0], "first study plan") {
		t.Errorf("recs = %v, want first-plan prompt leading", recs)
	}
}

func TestRecommendations_CappedAtEight(t *testing.T) {
	doc := fixtureDoc()
	for i, id := range []string{"p1", "p2"} {
		doc.Plans[id].Deadline = at("2025-03-11", 0)
		doc.Plans[id].Progress = float64(10 * i)
	}
	doc.Streaks["u1"] = streak.Record{Current: 2, Max: 6, LastActive: "2025-03-09"}
	doc.Points["u1"] = 20
	for i := 0; i < 12; i++ {
		doc.Sessions = append(doc.Sessions, store.StudySession{
			PlanID: "p1", Duration: 45, Satisfaction: 9,
			RecordedAt: at("2025-03-01", 9).AddDate(0, 0, i),
		})
	}

	recs := testGenerator("2025-03-10").Recommendations(doc, "u1")

	if len(recs) != MaxRecommendations {
		t.Errorf("len(recs) = %d, want %d", len(recs), MaxRecommendations)
	}
}

func TestRecommendations_Deterministic(t *testing.T) {
	doc := fixtureDoc()
	doc.Streaks["u1"] = streak.Record{Current: 4, Max: 4}

	a := testGenerator("2025-03-10").Recommendations(doc, "u1")
	b := testGenerator("2025-03-10").Recommendations(doc, "u1")

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("recs[%d] differ with the same seed: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestProgressAdvice_DeadlineChecksIndependent(t *testing.T) {
	g := testGenerator("2025-03-10")

	doc := store.NewDocument()
	doc.Users["u1"] = &store.UserProfile{ID: "u1", Name: "Ana", Level: store.LevelBeginner}
	// Overdue and under 90%: both warnings fire for the same plan.
	doc.Plans["p1"] = &store.StudyPlan{
		ID: "p1", UserID: "u1", Topic: "python",
		Progress: 40, Deadline: at("2025-03-08", 0),
	}

	recs := g.progressAdvice(doc, "u1")

	var urgency, overdue bool
	for _, r := range recs {
		if strings.Contains(r, "days left") {
			urgency = true
		}
		if strings.Contains(r, "deadline passed") {
			overdue = true
		}
	}
	if !urgency || !overdue {
		t.Errorf("recs = %v, want both urgency and overdue warnings", recs)
	}
}

func TestProgressAdvice_CompletedPlanSilent(t *testing.T) {
	g := testGenerator("2025-03-10")

	doc := store.NewDocument()
	doc.Users["u1"] = &store.UserProfile{ID: "u1", Name: "Ana", Level: store.LevelBeginner}
	doc.Plans["p1"] = &store.StudyPlan{
		ID: "p1", UserID: "u1", Topic: "python",
		Progress: 100, Deadline: at("2025-03-01", 0),
	}

	if recs := g.progressAdvice(doc, "u1"); len(recs) != 0 {
		t.Errorf("recs = %v, want none for a completed plan", recs)
	}
}

func TestLevelAdvice_SamplesTwoFromPool(t *testing.T) {
	g := testGenerator("2025-03-10")

	recs := g.levelAdvice(store.LevelIntermediate)

	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0] == recs[1] {
		t.Error("sampled the same advisory twice (must be without replacement)")
	}
	pool := levelPools[store.LevelIntermediate]
	for _, r := range recs {
		found := false
		for _, p := range pool {
			if r == p {
				found = true
			}
		}
		if !found {
			t.Errorf("advice %q is not in the intermediate pool", r)
		}
	}
}

func TestStreakAdvice(t *testing.T) {
	tests := []struct {
		name string
		rec  streak.Record
		want string
	}{
		{"zero", streak.Record{}, "Restart"},
		{"almost three", streak.Record{Current: 2, Max: 2}, "Reach 3"},
		{"almost week", streak.Record{Current: 5, Max: 5}, "full week"},
		{"impressive", streak.Record{Current: 9, Max: 9}, "Impressive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := store.NewDocument()
			doc.Streaks["u1"] = tt.rec

			recs := streakAdvice(doc, "u1")
			if len(recs) == 0 || !strings.Contains(recs[0], tt.want) {
				t.Errorf("recs = %v, want leading message containing %q", recs, tt.want)
			}
		})
	}
}

func TestStreakAdvice_BeatRecord(t *testing.T) {
	doc := store.NewDocument()
	doc.Streaks["u1"] = streak.Record{Current: 4, Max: 11}

	recs := streakAdvice(doc, "u1")

	if len(recs) != 2 || !strings.Contains(recs[1], "record is 11") {
		t.Errorf("recs = %v, want beat-your-record follow-up", recs)
	}
}

func TestMotivational_CapTwo(t *testing.T) {
	doc := fixtureDoc()
	doc.Points["u1"] = 600
	for i := 0; i < 11; i++ {
		doc.Sessions = append(doc.Sessions, store.StudySession{
			PlanID: "p1", Duration: 60, Satisfaction: 8,
			RecordedAt: at("2025-03-01", 10).AddDate(0, 0, i),
		})
	}

	recs := motivationalAdvice(doc, "u1")

	if len(recs) != maxMotivational {
		t.Errorf("len = %d, want %d", len(recs), maxMotivational)
	}
}

// The §8-style duration data: the short band's mean (6.5) loses to the
// medium band's mean (8.5).
func TestBestDurationBand(t *testing.T) {
	sessions := []store.StudySession{
		{Duration: 15, Satisfaction: 6},
		{Duration: 18, Satisfaction: 7},
		{Duration: 30, Satisfaction: 9},
		{Duration: 40, Satisfaction: 8},
		{Duration: 100, Satisfaction: 4},
	}

	if got := BestDurationBand(sessions); got != BandMedium {
		t.Errorf("BestDurationBand = %v, want BandMedium", got)
	}
}

func TestBestDurationBand_TieFavorsShorter(t *testing.T) {
	sessions := []store.StudySession{
		{Duration: 15, Satisfaction: 8},
		{Duration: 60, Satisfaction: 8},
	}

	if got := BestDurationBand(sessions); got != BandShort {
		t.Errorf("BestDurationBand = %v, want BandShort on a tie", got)
	}
}

func TestBestDurationBand_Empty(t *testing.T) {
	if got := BestDurationBand(nil); got != BandMedium {
		t.Errorf("BestDurationBand(nil) = %v, want BandMedium default", got)
	}
}

func TestDayPartFor(t *testing.T) {
	tests := []struct {
		hour int
		want DayPart
	}{
		{6, EarlyMorning}, {9, EarlyMorning},
		{10, LateMorning}, {13, LateMorning},
		{14, Afternoon}, {17, Afternoon},
		{18, EarlyEvening}, {21, EarlyEvening},
		{22, LateNight}, {23, LateNight}, {0, LateNight}, {5, LateNight},
	}
	for _, tt := range tests {
		if got := DayPartFor(tt.hour); got != tt.want {
			t.Errorf("DayPartFor(%d) = %v, want %v", tt.hour, got, tt.want)
		}
	}
}
