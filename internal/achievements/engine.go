package achievements

// Facts is the snapshot of aggregated state an evaluation runs against.
// Counts include the session that triggered the evaluation, and the
// streak is the just-updated value.
type Facts struct {
	// TotalSessions is the platform-wide session count.
	TotalSessions int
	// UserSessions is the triggering user's session count.
	UserSessions int
	// CurrentStreak is the user's consecutive-day streak.
	CurrentStreak int
	// Duration and Satisfaction describe the triggering session.
	Duration     int
	Satisfaction float64
	// Hour is the session's start hour (0-23).
	Hour int
	// DistinctTopics is the number of different plan topics the user has
	// studied across all sessions.
	DistinctTopics int
	// HighSatisfaction is the user's count of sessions rated >= 9.
	HighSatisfaction int
}

// Evaluate returns the achievements newly earned by this session, in
// evaluation order. Already-unlocked ids are never granted again.
//
// Streak tiers are exclusive within one pass: only the highest satisfied
// ungranted tier is awarded (a lower tier stays available for a later
// pass if the streak resets and regrows through it). Early bird and
// night owl are likewise exclusive per pass.
func Evaluate(unlocked []string, f Facts) []Achievement {
	has := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		has[id] = true
	}

	var granted []Achievement
	grant := func(id string) {
		if has[id] {
			return
		}
		a, ok := ByID(id)
		if !ok {
			return
		}
		has[id] = true
		granted = append(granted, a)
	}

	if f.TotalSessions == 1 {
		grant(FirstSession)
	}

	switch {
	case f.CurrentStreak >= 30 && !has[Streak30]:
		grant(Streak30)
	case f.CurrentStreak >= 7 && !has[Streak7]:
		grant(Streak7)
	case f.CurrentStreak >= 3 && !has[Streak3]:
		grant(Streak3)
	}

	switch {
	case f.Hour < 8:
		grant(EarlyBird)
	case f.Hour >= 22:
		grant(NightOwl)
	}

	if f.Duration >= 120 {
		grant(Marathon)
	}
	if f.UserSessions >= 10 {
		grant(Consistent)
	}
	if f.DistinctTopics >= 3 {
		grant(Explorer)
	}
	if f.HighSatisfaction >= 5 {
		grant(Perfectionist)
	}

	return granted
}
