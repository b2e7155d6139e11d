// handlers/admin/achievements.go - Catalog management endpoints
package admin

import (
	"bytes"
	"errors"
	"log"

	"lifetrack/models"
	"lifetrack/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	db         *gorm.DB
	csvService *services.CatalogCSVService
)

// Init wires the admin handlers to the database handle.
func Init(database *gorm.DB) {
	if database == nil {
		panic("Database not initialized before admin.Init")
	}
	db = database
	csvService = services.NewCatalogCSVService(database)
}

// GetAchievements returns the raw catalog, newest first, including rows
// with unresolved categories (admins need to see what users cannot)
// GET /api/admin/achievements
func GetAchievements(c *fiber.Ctx) error {
	var achievements []models.Achievement
	if err := db.Preload("Category").
		Order("created_at DESC, id DESC").
		Find(&achievements).Error; err != nil {
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

// CreateAchievement adds a single catalog entry
// POST /api/admin/achievements
func CreateAchievement(c *fiber.Ctx) error {
	var req struct {
		Title             string `json:"title"`
		Description       string `json:"description"`
		CategoryID        *uint  `json:"category_id"`
		CustomAchievement bool   `json:"custom_achievement"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Title is required"})
	}
	if req.CategoryID == nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Category is required"})
	}

	achievement := models.Achievement{
		Title:             req.Title,
		Description:       req.Description,
		CategoryID:        req.CategoryID,
		CustomAchievement: req.CustomAchievement,
	}
	if err := db.Create(&achievement).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create achievement",
		})
	}

	return c.Status(201).JSON(fiber.Map{
		"success":     true,
		"achievement": achievement,
	})
}

// DeleteAchievement removes a catalog entry and its completion records
// DELETE /api/admin/achievements/:id
func DeleteAchievement(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid achievement id"})
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("achievement_id = ?", id).Delete(&models.UserAchievement{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Achievement{}, id).Error
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to delete achievement",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Achievement deleted successfully",
	})
}

// CreateCategory adds a category at the end of the display order
// POST /api/admin/categories
func CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Name is required"})
	}

	category, err := services.NewCategoryService(db).Create(req.Name, req.Description)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create category",
		})
	}

	return c.Status(201).JSON(fiber.Map{
		"success":  true,
		"category": category,
	})
}

// ImportAchievements bulk-loads the catalog from an uploaded CSV file
// POST /api/admin/achievements/import  (multipart field "file")
func ImportAchievements(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "CSV file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Failed to read uploaded file"})
	}
	defer file.Close()

	count, err := csvService.Import(file)
	if err != nil {
		var missing *services.MissingColumnsError
		switch {
		case errors.As(err, &missing):
			return c.Status(400).JSON(fiber.Map{"success": false, "error": missing.Error()})
		case errors.Is(err, services.ErrEmptyImport):
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "CSV file contains no data rows"})
		default:
			log.Printf("CSV import failed: %v", err)
			return c.Status(500).JSON(fiber.Map{
				"success": false,
				"error":   "Import failed. No achievements were added.",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"imported": count,
	})
}

// ExportAchievements downloads the catalog as a BOM-prefixed CSV file
// GET /api/admin/achievements/export
func ExportAchievements(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := csvService.Export(&buf); err != nil {
		log.Printf("CSV export failed: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to export achievements",
		})
	}

	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", `attachment; filename="achievements.csv"`)
	return c.Send(buf.Bytes())
}

// GetStats returns catalog-wide counts for the admin dashboard
// GET /api/admin/stats
func GetStats(c *fiber.Ctx) error {
	var users, achievements, completions int64

	if err := db.Model(&models.User{}).Count(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch stats"})
	}
	db.Model(&models.Achievement{}).Count(&achievements)
	db.Model(&models.UserAchievement{}).Count(&completions)

	return c.JSON(fiber.Map{
		"success":      true,
		"users":        users,
		"achievements": achievements,
		"completions":  completions,
	})
}
