// Package streak counts consecutive study days per learner.
package streak

import "time"

// Record is the per-user streak state. LastActive is a calendar date in
// time.DateOnly format; empty means the user has never studied.
type Record struct {
	Current    int    `json:"current"`
	Max        int    `json:"max"`
	LastActive string `json:"last_active,omitempty"`
}

// Advance applies one study-day transition to a record and returns the
// updated copy. It is a pure function of (rec, today) and is idempotent
// for repeated calls on the same calendar day: a second session today
// never double-increments.
func Advance(rec Record, today time.Time) Record {
	switch DayGap(rec.LastActive, today) {
	case 0:
		// Same day, streak unchanged.
	case 1:
		rec.Current++
	default:
		// Never studied before, or the chain broke.
		rec.Current = 1
	}
	if rec.Current > rec.Max {
		rec.Max = rec.Current
	}
	rec.LastActive = today.Format(time.DateOnly)
	return rec
}

// DayGap returns the number of calendar days between lastActive and
// today. An empty or unparsable lastActive yields -1.
func DayGap(lastActive string, today time.Time) int {
	if lastActive == "" {
		return -1
	}
	last, err := time.Parse(time.DateOnly, lastActive)
	if err != nil {
		return -1
	}
	return int(midnight(today).Sub(midnight(last)).Hours() / 24)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
