// services/achievements.go - Achieve / cancel state transitions
package services

import (
	"errors"
	"fmt"
	"time"

	"lifetrack/models"

	"gorm.io/gorm"
)

// ErrAchievementNotFound is returned when the target achievement does not
// exist in the catalog.
var ErrAchievementNotFound = errors.New("achievement not found")

// ShareHashtags is appended to every share payload.
const ShareHashtags = "#LifeTrack #AchievementUnlocked"

// AchievementService is the only writer of user_achievements rows.
type AchievementService struct {
	db *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{db: db}
}

// Achieve flips the (user, achievement) pair to Achieved. The stored point
// value is computed from the completion statistics as they stood before
// this user's row was inserted, and never changes afterwards.
//
// The operation is idempotent: if the row already exists (including the
// case where a concurrent duplicate insert loses the race on the unique
// index) the existing row is returned and nothing is written.
func (s *AchievementService) Achieve(userID, achievementID uint) (*models.UserAchievement, error) {
	var achievement models.Achievement
	if err := s.db.First(&achievement, achievementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAchievementNotFound
		}
		return nil, err
	}

	var existing models.UserAchievement
	err := s.db.Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		First(&existing).Error
	if err == nil {
		existing.Achievement = achievement
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	points, err := s.currentPoints(achievementID)
	if err != nil {
		return nil, err
	}

	entry := models.UserAchievement{
		UserID:              userID,
		AchievementID:       achievementID,
		AchievedAt:          time.Now(),
		PointsAtAchievement: points,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against another achieve for the same pair.
			if ferr := s.db.Where("user_id = ? AND achievement_id = ?", userID, achievementID).
				First(&existing).Error; ferr == nil {
				existing.Achievement = achievement
				return &existing, nil
			}
			return nil, err
		}
		return nil, err
	}

	entry.Achievement = achievement
	return &entry, nil
}

// Cancel flips the pair back to Unachieved. Cancelling a pair with no row
// is a no-op, not an error, so retries never fail the caller.
func (s *AchievementService) Cancel(userID, achievementID uint) error {
	return s.db.Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Delete(&models.UserAchievement{}).Error
}

// ListForUser returns the user's completions newest first, with the
// achievement definitions preloaded, plus the sum of snapshot points.
func (s *AchievementService) ListForUser(userID uint) ([]models.UserAchievement, int, error) {
	var entries []models.UserAchievement
	err := s.db.Where("user_id = ?", userID).
		Preload("Achievement").
		Order("achieved_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	total := 0
	for _, e := range entries {
		total += e.PointsAtAchievement
	}
	return entries, total, nil
}

// ShareText builds the announcement payload for external posting. The
// transport (tweet intent URL and so on) is the caller's concern.
func ShareText(title string, points int) string {
	return fmt.Sprintf("🎉 %s achieved! +%d points\n\n%s", title, points, ShareHashtags)
}

// currentPoints computes the live point value from the global statistics.
func (s *AchievementService) currentPoints(achievementID uint) (int, error) {
	var achievementCount int64
	if err := s.db.Model(&models.UserAchievement{}).
		Where("achievement_id = ?", achievementID).
		Count(&achievementCount).Error; err != nil {
		return 0, err
	}

	var totalUsers int64
	if err := s.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return 0, err
	}

	return CalculatePoints(int(achievementCount), int(totalUsers)), nil
}
