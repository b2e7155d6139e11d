// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"lifetrack/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Achievement{},
		&models.UserAchievement{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates supplementary indexes. The composite unique index
// on user_achievements(user_id, achievement_id) comes from the model tags
// and enforces the one-row-per-pair invariant at the data layer.
func createIndexes() {
	db := GetDB()

	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievements_category ON achievements(category_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievements_created ON achievements(created_at DESC)")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_achievements_user ON user_achievements(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_achievements_achievement ON user_achievements(achievement_id)")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_categories_order ON achievement_categories(display_order)")
}
