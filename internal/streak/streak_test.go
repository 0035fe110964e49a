package streak

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAdvance_FirstEver(t *testing.T) {
	got := Advance(Record{}, day("2025-03-10"))

	if got.Current != 1 {
		t.Errorf("Current = %d, want 1", got.Current)
	}
	if got.Max != 1 {
		t.Errorf("Max = %d, want 1", got.Max)
	}
	if got.LastActive != "2025-03-10" {
		t.Errorf("LastActive = %q, want 2025-03-10", got.LastActive)
	}
}

func TestAdvance_SameDayIdempotent(t *testing.T) {
	today := day("2025-03-10")
	once := Advance(Record{Current: 4, Max: 6, LastActive: "2025-03-10"}, today)
	twice := Advance(once, today)

	if once != twice {
		t.Errorf("second same-day advance changed the record: %+v vs %+v", once, twice)
	}
	if once.Current != 4 {
		t.Errorf("Current = %d, want 4 (same-day must not increment)", once.Current)
	}
}

func TestAdvance_ConsecutiveDay(t *testing.T) {
	got := Advance(Record{Current: 6, Max: 6, LastActive: "2025-03-09"}, day("2025-03-10"))

	if got.Current != 7 {
		t.Errorf("Current = %d, want 7", got.Current)
	}
	if got.Max != 7 {
		t.Errorf("Max = %d, want 7", got.Max)
	}
}

func TestAdvance_BrokenStreak(t *testing.T) {
	got := Advance(Record{Current: 12, Max: 15, LastActive: "2025-03-01"}, day("2025-03-10"))

	if got.Current != 1 {
		t.Errorf("Current = %d, want 1 after a gap", got.Current)
	}
	if got.Max != 15 {
		t.Errorf("Max = %d, want 15 (max never decreases)", got.Max)
	}
}

func TestAdvance_MonthBoundary(t *testing.T) {
	got := Advance(Record{Current: 2, Max: 2, LastActive: "2025-02-28"}, day("2025-03-01"))

	if got.Current != 3 {
		t.Errorf("Current = %d, want 3 across month boundary", got.Current)
	}
}

func TestAdvance_MaxNeverDecreases(t *testing.T) {
	rec := Record{}
	dates := []string{
		"2025-03-01", "2025-03-02", "2025-03-03", // build to 3
		"2025-03-20", // break
		"2025-03-21",
	}
	for _, d := range dates {
		rec = Advance(rec, day(d))
		if rec.Max < rec.Current {
			t.Fatalf("Max = %d below Current = %d after %s", rec.Max, rec.Current, d)
		}
	}
	if rec.Max != 3 {
		t.Errorf("Max = %d, want 3", rec.Max)
	}
	if rec.Current != 2 {
		t.Errorf("Current = %d, want 2", rec.Current)
	}
}

func TestDayGap(t *testing.T) {
	tests := []struct {
		last  string
		today string
		want  int
	}{
		{"", "2025-03-10", -1},
		{"not-a-date", "2025-03-10", -1},
		{"2025-03-10", "2025-03-10", 0},
		{"2025-03-09", "2025-03-10", 1},
		{"2025-03-01", "2025-03-10", 9},
		{"2024-12-31", "2025-01-01", 1},
	}

	for _, tt := range tests {
		got := DayGap(tt.last, day(tt.today))
		if got != tt.want {
			t.Errorf("DayGap(%q, %s) = %d, want %d", tt.last, tt.today, got, tt.want)
		}
	}
}
