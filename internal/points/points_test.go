package points

import "testing"

func TestLevelFor(t *testing.T) {
	tests := []struct {
		pts  int
		want int
	}{
		{0, 1},
		{49, 1},
		{50, 2},
		{149, 2},
		{150, 3},
		{299, 3},
		{300, 4},
		{499, 4},
		{500, 5},
		{699, 5},
		{700, 6},
		{899, 6},
		{900, 7},
	}

	for _, tt := range tests {
		got := LevelFor(tt.pts)
		if got != tt.want {
			t.Errorf("LevelFor(%d) = %d, want %d", tt.pts, got, tt.want)
		}
	}
}

func TestToNextLevel(t *testing.T) {
	tests := []struct {
		pts  int
		want int
	}{
		{0, 50},
		{49, 1},
		{50, 100},
		{149, 1},
		{150, 150},
		{300, 200},
		{499, 1},
		{500, 200},
		{650, 50},
		{700, 200},
	}

	for _, tt := range tests {
		got := ToNextLevel(tt.pts)
		if got != tt.want {
			t.Errorf("ToNextLevel(%d) = %d, want %d", tt.pts, got, tt.want)
		}
	}
}

// Adding the gap returned by ToNextLevel must always produce a strictly
// higher level, and the gap is never zero.
func TestLevelRoundTrip(t *testing.T) {
	for pts := 0; pts <= 1500; pts++ {
		gap := ToNextLevel(pts)
		if gap <= 0 {
			t.Fatalf("ToNextLevel(%d) = %d, want > 0", pts, gap)
		}
		if LevelFor(pts+gap) <= LevelFor(pts) {
			t.Fatalf("LevelFor(%d+%d) = %d, not above LevelFor(%d) = %d",
				pts, gap, LevelFor(pts+gap), pts, LevelFor(pts))
		}
	}
}

func TestSessionPoints(t *testing.T) {
	tests := []struct {
		duration     int
		satisfaction float64
		want         int
	}{
		{5, 5, 1},      // floor of 1
		{30, 5, 3},     // duration only
		{30, 6, 5},     // +2 bonus
		{30, 8, 8},     // +5 bonus
		{200, 5, 20},   // duration cap
		{200, 9.5, 25}, // cap plus bonus
		{0, 10, 6},     // bonus alone, still above floor
	}

	for _, tt := range tests {
		got := SessionPoints(tt.duration, tt.satisfaction)
		if got != tt.want {
			t.Errorf("SessionPoints(%d, %.1f) = %d, want %d",
				tt.duration, tt.satisfaction, got, tt.want)
		}
	}
}
