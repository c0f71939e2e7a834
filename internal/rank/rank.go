// Package rank derives display ranks from membership flags and levels
// from experience points. Pure functions only.
package rank

import (
	"math"

	"mathdefenders/internal/domain/user"
)

type role struct {
	name       string
	precedence int
	owned      func(user.Membership) bool
}

// Precedence-ordered role table. When several flags are set, the role
// with the highest precedence wins.
var roles = []role{
	{"Developer", 10000, func(m user.Membership) bool { return m.IsDeveloper }},
	{"Administrator", 9999, func(m user.Membership) bool { return m.IsAdministrator }},
	{"Moderator", 9998, func(m user.Membership) bool { return m.IsModerator }},
	{"Collaborator", 3002, func(m user.Membership) bool { return m.IsCollaborator }},
	{"Trial Collaborator", 3001, func(m user.Membership) bool { return m.IsTrialCollaborator }},
	{"Contributor", 3000, func(m user.Membership) bool { return m.IsContributor }},
	{"Tester", 2000, func(m user.Membership) bool { return m.IsTester }},
	{"Donator", 1000, func(m user.Membership) bool { return m.IsDonator }},
}

var rankColors = map[string]string{
	"Developer":          "#ff0000",
	"Administrator":      "#da1717",
	"Moderator":          "#ff7f00",
	"Collaborator":       "#01acff",
	"Trial Collaborator": "#2e83b5",
	"Contributor":        "#4070ff",
	"Tester":             "#5bb1e0",
	"Donator":            "#26e02c",
}

const defaultRankColor = "#000000"

// CalculateRank returns the display rank for a membership record, or
// the empty string when no role flag is set.
func CalculateRank(m user.Membership) string {
	best := ""
	bestPrecedence := 0
	for _, r := range roles {
		if r.owned(m) && r.precedence > bestPrecedence {
			best = r.name
			bestPrecedence = r.precedence
		}
	}
	return best
}

// RankColor maps a rank name to its display color. Unknown and empty
// ranks map to neutral black.
func RankColor(rankName string) string {
	if c, ok := rankColors[rankName]; ok {
		return c
	}
	return defaultRankColor
}

// threshold is the XP needed to move past the given level.
func threshold(level int) float64 {
	return 500 * math.Pow(float64(level+1), 0.75)
}

// Level converts a total-XP pool to a level by repeatedly subtracting
// level-dependent thresholds while the pool still covers the next one.
func Level(xp float64) int {
	level := 0
	for xp >= threshold(level) {
		xp -= threshold(level)
		level++
	}
	return level
}

// ProgressToNextLevel reports the fraction [0,1) of the next threshold
// already covered by the leftover XP.
func ProgressToNextLevel(xp float64) float64 {
	level := 0
	for xp >= threshold(level) {
		xp -= threshold(level)
		level++
	}
	return xp / threshold(level)
}
