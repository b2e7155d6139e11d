package services

import (
	"testing"

	"lifetrack/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the full schema, including
// the composite unique index on user_achievements.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to open test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Achievement{},
		&models.UserAchievement{},
	)
	require.NoError(t, err, "failed to migrate test database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCategory(t *testing.T, db *gorm.DB, name string, order int) models.Category {
	t.Helper()
	category := models.Category{Name: name, DisplayOrder: order}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createAchievement(t *testing.T, db *gorm.DB, title string, categoryID *uint) models.Achievement {
	t.Helper()
	achievement := models.Achievement{Title: title, Description: title + " description", CategoryID: categoryID}
	require.NoError(t, db.Create(&achievement).Error)
	return achievement
}
