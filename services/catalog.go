// services/catalog.go - Scored achievement catalog view
package services

import (
	"sort"
	"strconv"

	"lifetrack/models"

	"gorm.io/gorm"
)

// Sort orders accepted by ListForUser.
const (
	SortPointsDesc = "points_desc"
	SortPointsAsc  = "points_asc"
	SortDate       = "date"
)

// CategoryAll disables the category filter.
const CategoryAll = "all"

// ScoredAchievement is the presentation row for one catalog entry: the
// achievement joined with its category, the live point value, and the
// requesting user's completion flag.
type ScoredAchievement struct {
	ID               uint             `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Points           int              `json:"points"`
	Achieved         bool             `json:"achieved"`
	AchievementCount int              `json:"achievement_count"`
	TotalUsers       int              `json:"total_users"`
	Category         *models.Category `json:"category"`
	CreatedAt        int64            `json:"created_at"`
}

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// completionCounts returns completions per achievement as one aggregated
// query instead of scanning every user_achievements row in memory.
func (s *CatalogService) completionCounts() (map[uint]int, error) {
	type row struct {
		AchievementID uint
		Count         int
	}
	var rows []row
	err := s.db.Model(&models.UserAchievement{}).
		Select("achievement_id, COUNT(*) as count").
		Group("achievement_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.AchievementID] = r.Count
	}
	return counts, nil
}

// ListForUser produces the ordered catalog visible to one user. Reads are
// not transactionally isolated from concurrent achieves; a count may be
// slightly stale relative to the user's own completion flag.
func (s *CatalogService) ListForUser(userID uint, categoryID string, sortOrder string) ([]ScoredAchievement, error) {
	var achievements []models.Achievement
	if err := s.db.Preload("Category").
		Order("created_at DESC, id DESC").
		Find(&achievements).Error; err != nil {
		return nil, err
	}

	var achievedIDs []uint
	if err := s.db.Model(&models.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &achievedIDs).Error; err != nil {
		return nil, err
	}
	achieved := make(map[uint]bool, len(achievedIDs))
	for _, id := range achievedIDs {
		achieved[id] = true
	}

	counts, err := s.completionCounts()
	if err != nil {
		return nil, err
	}

	var totalUsers int64
	if err := s.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return nil, err
	}

	scored := make([]ScoredAchievement, 0, len(achievements))
	for _, a := range achievements {
		// Rows without a resolvable category are not displayable.
		if a.CategoryID == nil || a.Category == nil {
			continue
		}

		if categoryID != "" && categoryID != CategoryAll && categoryID != strconv.FormatUint(uint64(*a.CategoryID), 10) {
			continue
		}

		count := counts[a.ID]
		scored = append(scored, ScoredAchievement{
			ID:               a.ID,
			Title:            a.Title,
			Description:      a.Description,
			Points:           CalculatePoints(count, int(totalUsers)),
			Achieved:         achieved[a.ID],
			AchievementCount: count,
			TotalUsers:       int(totalUsers),
			Category:         a.Category,
			CreatedAt:        a.CreatedAt.Unix(),
		})
	}

	switch sortOrder {
	case SortPointsAsc:
		sort.SliceStable(scored, func(i, j int) bool { return scored[i].Points < scored[j].Points })
	case SortDate:
		// Already in insertion order, newest first.
	default:
		sort.SliceStable(scored, func(i, j int) bool { return scored[i].Points > scored[j].Points })
	}

	return scored, nil
}
