// handlers/leaderboard.go
package handlers

import (
	"log"

	"lifetrack/models"

	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard ranks users by the sum of their snapshot points
// GET /api/leaderboard?limit=100&offset=0
func GetLeaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	type LeaderboardEntry struct {
		UserID       uint   `json:"user_id"`
		Username     string `json:"username"`
		DisplayName  string `json:"display_name"`
		TotalPoints  int    `json:"total_points"`
		Achievements int    `json:"achievements"`
	}

	var entries []LeaderboardEntry
	err := db.Raw(`
		SELECT
			users.id as user_id,
			users.username,
			users.display_name,
			COALESCE(SUM(user_achievements.points_at_achievement), 0) as total_points,
			COUNT(user_achievements.id) as achievements
		FROM users
		LEFT JOIN user_achievements ON user_achievements.user_id = users.id
		WHERE users.is_guest = false
		GROUP BY users.id, users.username, users.display_name
		ORDER BY total_points DESC, achievements DESC, users.id ASC
		LIMIT ? OFFSET ?
	`, limit, offset).Scan(&entries).Error
	if err != nil {
		log.Printf("Failed to build leaderboard: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch leaderboard",
		})
	}

	var total int64
	db.Model(&models.User{}).Where("is_guest = ?", false).Count(&total)

	return c.JSON(fiber.Map{
		"success": true,
		"entries": entries,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}
