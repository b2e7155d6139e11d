// services/points.go - Rarity-weighted point scoring
package services

import "math"

const (
	// MinPoints is the floor every achievement is worth, and the default
	// when no users are registered yet.
	MinPoints = 10
	// MaxPoints is what a completely unachieved achievement is worth.
	MaxPoints = 100
)

// CalculatePoints converts global completion statistics into the point
// value of one achievement. The more users have completed it, the less
// it is worth, decaying from 100 down to the floor of 10.
//
// The function is total: totalUsers == 0 returns the default rather than
// dividing by zero, and achievementCount > totalUsers (possible when the
// two counts come from slightly different snapshots) floors to 10 instead
// of going negative.
func CalculatePoints(achievementCount, totalUsers int) int {
	if totalUsers == 0 {
		return MinPoints
	}

	rate := float64(achievementCount) / float64(totalUsers)
	base := int(math.Round(float64(MaxPoints) * (1 - rate)))

	if base < MinPoints {
		return MinPoints
	}
	return base
}
