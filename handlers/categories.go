// handlers/categories.go
package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetCategories returns all categories in display order (the catalog
// filter dropdown reads this)
// GET /api/categories
func GetCategories(c *fiber.Ctx) error {
	categories, err := categoryService.List()
	if err != nil {
		log.Printf("Failed to list categories: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch categories",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"categories": categories,
	})
}
