package insights

import (
	"fmt"

	"github.com/valen/studyquest/internal/store"
)

// DayPart classifies an hour of the day for study-time advice.
type DayPart int

const (
	EarlyMorning DayPart = iota // 06-09
	LateMorning                 // 10-13
	Afternoon                   // 14-17
	EarlyEvening                // 18-21
	LateNight                   // 22-23 and everything before dawn
)

// DayPartFor maps an hour (0-23) to its day part.
func DayPartFor(hour int) DayPart {
	switch {
	case hour >= 6 && hour <= 9:
		return EarlyMorning
	case hour >= 10 && hour <= 13:
		return LateMorning
	case hour >= 14 && hour <= 17:
		return Afternoon
	case hour >= 18 && hour <= 21:
		return EarlyEvening
	default:
		return LateNight
	}
}

// DisplayName returns a human-readable label for the day part.
func (d DayPart) DisplayName() string {
	switch d {
	case EarlyMorning:
		return "early morning"
	case LateMorning:
		return "late morning"
	case Afternoon:
		return "afternoon"
	case EarlyEvening:
		return "early evening"
	default:
		return "late night"
	}
}

// DurationBand partitions session lengths for the sweet-spot analysis.
type DurationBand int

const (
	BandShort    DurationBand = iota // <= 20 min
	BandMedium                       // 21-45 min
	BandLong                         // 46-90 min
	BandExtended                     // > 90 min
)

// allBands in scan order, shortest first. Ties in mean satisfaction
// resolve to the earlier band.
var allBands = []DurationBand{BandShort, BandMedium, BandLong, BandExtended}

// bandFor maps a session duration to its band.
func bandFor(minutes int) DurationBand {
	switch {
	case minutes <= 20:
		return BandShort
	case minutes <= 45:
		return BandMedium
	case minutes <= 90:
		return BandLong
	default:
		return BandExtended
	}
}

// Advice returns the fixed recommendation text for the band.
func (b DurationBand) Advice() string {
	switch b {
	case BandShort:
		return "Your sweet spot: 15-20 minutes. Short but effective sessions"
	case BandMedium:
		return "Your optimal zone: 25-45 minutes. A great balance"
	case BandLong:
		return "You do well in long sessions: 60-90 minutes"
	default:
		return "You are built for endurance: 90+ minutes. Remember to take breaks"
	}
}

// BestDurationBand picks the band whose sessions have the highest mean
// satisfaction, scanning short to long so the first band reaching the
// best mean wins. With no sessions it defaults to BandMedium.
func BestDurationBand(sessions []store.StudySession) DurationBand {
	var sums [4]float64
	var counts [4]int
	for _, s := range sessions {
		b := bandFor(s.Duration)
		sums[b] += s.Satisfaction
		counts[b]++
	}

	best := BandMedium
	bestMean := 0.0
	for _, b := range allBands {
		if counts[b] == 0 {
			continue
		}
		mean := sums[b] / float64(counts[b])
		if mean > bestMean {
			bestMean = mean
			best = b
		}
	}
	return best
}

// BestStudyTime describes the user's most productive time of day based
// on their most frequent session-start hour.
func BestStudyTime(p Patterns) string {
	hour, ok := p.TopHour()
	if !ok {
		return "Not enough data yet. Study at different times to find your best hour"
	}
	part := DayPartFor(hour)
	return fmt.Sprintf("Your best study time: %s (around %d:00)", part.DisplayName(), hour)
}
