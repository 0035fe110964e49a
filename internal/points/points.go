package points

// Level thresholds. Below 500 points the boundaries are fixed; past 500
// every 200 points is another level.
var thresholds = []int{50, 150, 300, 500}

const (
	topThreshold = 500
	levelStride  = 200
)

// LevelFor returns the numeric level for a cumulative point total.
func LevelFor(pts int) int {
	for i, t := range thresholds {
		if pts < t {
			return i + 1
		}
	}
	return 5 + (pts-topThreshold)/levelStride
}

// ToNextLevel returns how many points are missing until the next level
// boundary. Consistent with LevelFor: adding the returned amount always
// lands on a strictly higher level.
func ToNextLevel(pts int) int {
	for _, t := range thresholds {
		if pts < t {
			return t - pts
		}
	}
	next := ((pts-topThreshold)/levelStride+1)*levelStride + topThreshold
	return next - pts
}

// SessionPoints computes the points earned by a single study session.
// Duration contributes 1 point per 10 minutes capped at 20, high
// satisfaction adds a bonus, and every session is worth at least 1.
func SessionPoints(durationMin int, satisfaction float64) int {
	pts := durationMin / 10
	if pts > 20 {
		pts = 20
	}
	switch {
	case satisfaction >= 8:
		pts += 5
	case satisfaction >= 6:
		pts += 2
	}
	if pts < 1 {
		pts = 1
	}
	return pts
}
