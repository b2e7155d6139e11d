// services/categories.go - Category lookups
package services

import (
	"errors"

	"lifetrack/models"

	"gorm.io/gorm"
)

// ErrCategoryNotFound is returned by the resolver on a miss. Callers pick
// the fallback (skip the row, show "Unknown", auto-create).
var ErrCategoryNotFound = errors.New("category not found")

// UnknownCategoryName is the export fallback for achievements whose
// category reference cannot be resolved.
const UnknownCategoryName = "Unknown"

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List returns all categories in display order.
func (s *CategoryService) List() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("display_order ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ResolveName looks a category up by its display name (used by import).
func (s *CategoryService) ResolveName(name string) (*models.Category, error) {
	var category models.Category
	err := s.db.Where("name = ?", name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ResolveID looks a category up by identifier (used by export and the
// catalog filter).
func (s *CategoryService) ResolveID(id uint) (*models.Category, error) {
	var category models.Category
	err := s.db.First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Create adds a category after the current end of the display order.
func (s *CategoryService) Create(name, description string) (*models.Category, error) {
	var maxOrder int
	s.db.Model(&models.Category{}).Select("COALESCE(MAX(display_order), 0)").Scan(&maxOrder)

	category := &models.Category{
		Name:         name,
		Description:  description,
		DisplayOrder: maxOrder + 1,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}
