package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePoints(t *testing.T) {
	tests := []struct {
		name             string
		achievementCount int
		totalUsers       int
		expected         int
	}{
		{name: "no users registered", achievementCount: 0, totalUsers: 0, expected: 10},
		{name: "zero users with completions", achievementCount: 5, totalUsers: 0, expected: 10},
		{name: "nobody achieved it", achievementCount: 0, totalUsers: 1, expected: 100},
		{name: "nobody achieved it, many users", achievementCount: 0, totalUsers: 1000, expected: 100},
		{name: "everyone achieved it", achievementCount: 7, totalUsers: 7, expected: 10},
		{name: "30 percent completion", achievementCount: 3, totalUsers: 10, expected: 70},
		{name: "40 percent completion", achievementCount: 4, totalUsers: 10, expected: 60},
		{name: "rounds to nearest", achievementCount: 1, totalUsers: 3, expected: 67},
		{name: "count above total floors", achievementCount: 15, totalUsers: 10, expected: 10},
		{name: "near-full completion hits floor", achievementCount: 95, totalUsers: 100, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculatePoints(tt.achievementCount, tt.totalUsers))
		})
	}
}

func TestCalculatePointsNonIncreasing(t *testing.T) {
	const totalUsers = 50

	prev := CalculatePoints(0, totalUsers)
	for count := 1; count <= totalUsers; count++ {
		current := CalculatePoints(count, totalUsers)
		assert.LessOrEqual(t, current, prev, "points must not increase as completions grow (count=%d)", count)
		assert.GreaterOrEqual(t, current, MinPoints)
		prev = current
	}
}
