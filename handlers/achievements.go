// handlers/achievements.go - Achievement catalog and state transitions
package handlers

import (
	"errors"
	"log"

	"lifetrack/middleware"
	"lifetrack/services"
	"lifetrack/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	db                 *gorm.DB
	catalogService     *services.CatalogService
	achievementService *services.AchievementService
	categoryService    *services.CategoryService
)

// Init wires the handler package to its services. The database handle is
// passed in explicitly; handlers never reach for a process global.
func Init(database *gorm.DB) {
	if database == nil {
		panic("Database not initialized before handlers.Init")
	}
	db = database
	catalogService = services.NewCatalogService(database)
	achievementService = services.NewAchievementService(database)
	categoryService = services.NewCategoryService(database)
}

// GetAchievements returns the scored catalog for the current user
// GET /api/achievements?category=all&sort=points_desc
func GetAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	category := c.Query("category", services.CategoryAll)
	sortOrder := c.Query("sort", services.SortPointsDesc)

	achievements, err := catalogService.ListForUser(userID, category, sortOrder)
	if err != nil {
		log.Printf("Failed to build achievement catalog: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch achievements",
		})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievements,
	})
}

// Achieve marks an achievement as completed by the current user
// POST /api/achievements/:id/achieve
func Achieve(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	achievementID, err := c.ParamsInt("id")
	if err != nil || achievementID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid achievement id"})
	}

	entry, err := achievementService.Achieve(userID, uint(achievementID))
	if err != nil {
		if errors.Is(err, services.ErrAchievementNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Achievement not found"})
		}
		log.Printf("Failed to achieve %d for user %d: %v", achievementID, userID, err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to record achievement. Please try again.",
		})
	}

	shareText := services.ShareText(entry.Achievement.Title, entry.PointsAtAchievement)

	return c.JSON(fiber.Map{
		"success":    true,
		"entry":      entry,
		"share_text": shareText,
		"share_url":  utils.TweetIntentURL(shareText),
	})
}

// Cancel withdraws a previously recorded completion
// POST /api/achievements/:id/cancel
func Cancel(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	achievementID, err := c.ParamsInt("id")
	if err != nil || achievementID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid achievement id"})
	}

	if err := achievementService.Cancel(userID, uint(achievementID)); err != nil {
		log.Printf("Failed to cancel %d for user %d: %v", achievementID, userID, err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to cancel achievement. Please try again.",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetMyAchievements returns the current user's completions, newest first,
// with the running total of snapshot points
// GET /api/achievements/mine
func GetMyAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "User not authenticated"})
	}

	entries, totalPoints, err := achievementService.ListForUser(userID)
	if err != nil {
		log.Printf("Failed to list achievements for user %d: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch achievements",
		})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": entries,
		"total_points": totalPoints,
	})
}
