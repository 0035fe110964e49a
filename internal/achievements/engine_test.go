package achievements

import "testing"

func ids(granted []Achievement) []string {
	out := make([]string, len(granted))
	for i, a := range granted {
		out[i] = a.ID
	}
	return out
}

func contains(granted []Achievement, id string) bool {
	for _, a := range granted {
		if a.ID == id {
			return true
		}
	}
	return false
}

func TestEvaluate_FirstSession(t *testing.T) {
	got := Evaluate(nil, Facts{TotalSessions: 1, UserSessions: 1, Duration: 25, Satisfaction: 7, Hour: 12})

	if len(got) != 1 || got[0].ID != FirstSession {
		t.Errorf("granted = %v, want [first_session]", ids(got))
	}
	if got[0].Points != 10 {
		t.Errorf("first_session reward = %d, want 10", got[0].Points)
	}
}

// A streak jumping straight past several tiers grants only the highest
// ungranted tier in that pass.
func TestEvaluate_StreakTierExclusivity(t *testing.T) {
	got := Evaluate(nil, Facts{TotalSessions: 50, UserSessions: 5, CurrentStreak: 35, Hour: 12, Duration: 30})

	var tiers []string
	for _, a := range got {
		switch a.ID {
		case Streak3, Streak7, Streak30:
			tiers = append(tiers, a.ID)
		}
	}
	if len(tiers) != 1 || tiers[0] != Streak30 {
		t.Errorf("streak tiers granted = %v, want exactly [streak_30]", tiers)
	}
}

// Lower tiers stay grantable on later passes once the higher tier is
// already held and the streak regrows through them.
func TestEvaluate_LowerTierAfterHigher(t *testing.T) {
	got := Evaluate([]string{Streak30}, Facts{TotalSessions: 90, UserSessions: 40, CurrentStreak: 8, Hour: 12, Duration: 30})

	if !contains(got, Streak7) {
		t.Errorf("granted = %v, want streak_7 grantable after streak_30", ids(got))
	}
	if contains(got, Streak3) {
		t.Errorf("granted = %v, streak_3 must wait for its own pass", ids(got))
	}
}

func TestEvaluate_EarlyNightExclusive(t *testing.T) {
	early := Evaluate(nil, Facts{TotalSessions: 5, UserSessions: 2, Hour: 7, Duration: 30})
	if !contains(early, EarlyBird) || contains(early, NightOwl) {
		t.Errorf("hour 7 granted %v, want early_bird only", ids(early))
	}

	night := Evaluate(nil, Facts{TotalSessions: 5, UserSessions: 2, Hour: 23, Duration: 30})
	if !contains(night, NightOwl) || contains(night, EarlyBird) {
		t.Errorf("hour 23 granted %v, want night_owl only", ids(night))
	}

	midday := Evaluate(nil, Facts{TotalSessions: 5, UserSessions: 2, Hour: 12, Duration: 30})
	if contains(midday, EarlyBird) || contains(midday, NightOwl) {
		t.Errorf("hour 12 granted %v, want neither time achievement", ids(midday))
	}
}

func TestEvaluate_NeverRegranted(t *testing.T) {
	all := make([]string, len(Catalog))
	for i, a := range Catalog {
		all[i] = a.ID
	}

	got := Evaluate(all, Facts{
		TotalSessions: 1, UserSessions: 100, CurrentStreak: 40,
		Duration: 300, Satisfaction: 10, Hour: 23,
		DistinctTopics: 9, HighSatisfaction: 50,
	})
	if len(got) != 0 {
		t.Errorf("granted = %v, want nothing when everything is unlocked", ids(got))
	}
}

// The worked example: 125-minute late-night session, satisfaction 9.5,
// 10th session overall for the user, 10th high-satisfaction session,
// streak just advanced from 6 to 7.
func TestEvaluate_CombinedSession(t *testing.T) {
	got := Evaluate(nil, Facts{
		TotalSessions:    40,
		UserSessions:     10,
		CurrentStreak:    7,
		Duration:         125,
		Satisfaction:     9.5,
		Hour:             23,
		DistinctTopics:   2,
		HighSatisfaction: 10,
	})

	want := []string{Streak7, NightOwl, Marathon, Consistent, Perfectionist}
	if len(got) != len(want) {
		t.Fatalf("granted = %v, want %v", ids(got), want)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("granted[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
	if contains(got, Streak3) {
		t.Error("streak_3 granted alongside streak_7 in a single pass")
	}
}

func TestCatalogRewards(t *testing.T) {
	want := map[string]int{
		FirstSession:  10,
		Streak3:       25,
		Streak7:       50,
		Streak30:      200,
		EarlyBird:     15,
		NightOwl:      15,
		Marathon:      30,
		Consistent:    40,
		Explorer:      35,
		Perfectionist: 45,
	}
	if len(Catalog) != len(want) {
		t.Fatalf("catalog has %d entries, want %d", len(Catalog), len(want))
	}
	for id, pts := range want {
		a, ok := ByID(id)
		if !ok {
			t.Errorf("ByID(%q) missing", id)
			continue
		}
		if a.Points != pts {
			t.Errorf("%s reward = %d, want %d", id, a.Points, pts)
		}
	}
}
