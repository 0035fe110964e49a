// Package planner turns a requested topic and learner level into a
// concrete curriculum draft.
package planner

import (
	"fmt"
	"strings"

	"github.com/valen/studyquest/internal/store"
)

// Curriculum is one entry of the fixed topic table: per-level objectives
// plus a shared resource list.
type Curriculum struct {
	Key        string
	Objectives map[store.Level][]string
	Resources  []string
}

// curricula is the ordered lookup table. Matching is case-insensitive
// substring containment of the key in the requested topic, and the
// first matching entry wins, so declaration order is the tie-break
// policy for topics containing several keys.
var curricula = []Curriculum{
	{
		Key: "python",
		Objectives: map[store.Level][]string{
			store.LevelBeginner: {
				"Learn basic Python syntax",
				"Write your first 'Hello World' program",
				"Understand variables, lists and loops",
				"Work through beginner programming exercises",
			},
			store.LevelIntermediate: {
				"Master functions and modules",
				"Work with files and data",
				"Use popular libraries like requests",
				"Build a small complete project",
			},
			store.LevelAdvanced: {
				"Object-oriented programming",
				"APIs and web scraping",
				"Code optimization and testing",
				"Deploy applications",
			},
		},
		Resources: []string{
			"Free course on freeCodeCamp",
			"Book: Python Crash Course",
			"Practice on HackerRank or LeetCode",
			"Programming videos on YouTube",
		},
	},
	{
		Key: "math",
		Objectives: map[store.Level][]string{
			store.LevelBeginner: {
				"Master basic operations",
				"Understand fractions and decimals",
				"Basic geometry and areas",
				"Solve everyday problems",
			},
			store.LevelIntermediate: {
				"Algebra and equations",
				"Basic trigonometry",
				"Statistics and probability",
				"Functions and graphs",
			},
			store.LevelAdvanced: {
				"Differential and integral calculus",
				"Linear algebra",
				"Advanced statistics",
				"Applied mathematics",
			},
		},
		Resources: []string{
			"Khan Academy (free)",
			"A recommended textbook",
			"Math channels on YouTube",
			"Photomath app to check your work",
		},
	},
	{
		Key: "english",
		Objectives: map[store.Level][]string{
			store.LevelBeginner: {
				"Core vocabulary (500 words)",
				"Present simple and continuous",
				"Basic daily conversation",
				"Reading simple texts",
			},
			store.LevelIntermediate: {
				"All verb tenses",
				"Paragraph writing",
				"Listening comprehension",
				"Fluent conversation",
			},
			store.LevelAdvanced: {
				"Business English",
				"Literature and complex texts",
				"Official exam preparation",
				"Presentations and debates",
			},
		},
		Resources: []string{
			"Duolingo for vocabulary",
			"Podcasts: BBC Learning English",
			"Online language exchange",
			"Series and movies with subtitles",
		},
	},
	{
		Key: "design",
		Objectives: map[store.Level][]string{
			store.LevelBeginner: {
				"Learn core design principles",
				"Practice layout and typography basics",
				"Study color theory",
				"Recreate designs you admire",
			},
			store.LevelIntermediate: {
				"Build a small portfolio",
				"Master one design tool end to end",
				"Run quick usability checks on your work",
				"Design for a real client brief",
			},
			store.LevelAdvanced: {
				"Develop a personal design language",
				"Lead a design critique",
				"Prototype and test complex flows",
				"Mentor a beginner designer",
			},
		},
		Resources: []string{
			"Canva for daily practice",
			"Adobe tutorials on YouTube",
			"Book: The Design of Everyday Things",
			"Inspiration on Dribbble and Behance",
		},
	},
}

// Lookup finds the first curriculum whose key occurs in topic,
// case-insensitively. Returns false when no entry matches.
func Lookup(topic string) (Curriculum, bool) {
	lower := strings.ToLower(topic)
	for _, c := range curricula {
		if strings.Contains(lower, c.Key) {
			return c, true
		}
	}
	return Curriculum{}, false
}

// genericObjectives templates four objectives for a topic with no table
// entry.
func genericObjectives(topic string, level store.Level) []string {
	return []string{
		fmt.Sprintf("Understand the fundamentals of %s", topic),
		fmt.Sprintf("Practice %s regularly", topic),
		fmt.Sprintf("Apply %s in real situations", topic),
		fmt.Sprintf("Reach %s level in %s", level.DisplayName(), topic),
	}
}

// genericResources templates four resources for an unknown topic.
func genericResources(topic string) []string {
	return []string{
		fmt.Sprintf("Search for online courses on %s", topic),
		fmt.Sprintf("Specialized books on %s", topic),
		fmt.Sprintf("Educational videos about %s", topic),
		fmt.Sprintf("Daily practice of %s", topic),
	}
}
