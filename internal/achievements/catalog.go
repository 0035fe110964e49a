// Package achievements evaluates one-time unlockable milestones against
// a snapshot of learner state.
package achievements

// Achievement ids. Stable, persisted in the user document.
const (
	FirstSession  = "first_session"
	Streak3       = "streak_3"
	Streak7       = "streak_7"
	Streak30      = "streak_30"
	EarlyBird     = "early_bird"
	NightOwl      = "night_owl"
	Marathon      = "marathon"
	Consistent    = "consistent"
	Explorer      = "explorer"
	Perfectionist = "perfectionist"
)

// Achievement is a catalog entry: a milestone with a fixed point reward.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Points      int
}

// Catalog is the fixed, process-wide achievement table, in display order.
// Never mutated at runtime.
var Catalog = []Achievement{
	{FirstSession, "First Step", "Complete your first study session", 10},
	{Streak3, "On Fire", "Study 3 days in a row", 25},
	{Streak7, "Unstoppable", "Study 7 days in a row", 50},
	{Streak30, "Legend", "Study 30 days in a row", 200},
	{EarlyBird, "Early Bird", "Study before 8am", 15},
	{NightOwl, "Night Owl", "Study after 10pm", 15},
	{Marathon, "Marathon", "A single session of 2 hours or more", 30},
	{Consistent, "Consistent", "Complete 10 study sessions", 40},
	{Explorer, "Explorer", "Study 3 different topics", 35},
	{Perfectionist, "Perfectionist", "5 sessions rated 9 or higher", 45},
}

// ByID looks up a catalog entry.
func ByID(id string) (Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
