// models/achievement.go
package models

import "time"

// Category groups achievements for filtering. DisplayOrder defines the
// stable sort used everywhere categories are listed.
type Category struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null;uniqueIndex" json:"name"`
	Description  string    `json:"description"`
	DisplayOrder int       `gorm:"not null;default:0;index" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Achievement is a catalog entry. CategoryID is nullable because legacy
// rows predate categories; new rows always carry one.
type Achievement struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Title             string    `gorm:"not null" json:"title"`
	Description       string    `gorm:"not null;type:text" json:"description"`
	CategoryID        *uint     `gorm:"index" json:"category_id"`
	Category          *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CustomAchievement bool      `gorm:"default:false" json:"custom_achievement"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserAchievement records one user completing one achievement. The
// composite unique index is the invariant that prevents duplicate rows
// under concurrent achieves. PointsAtAchievement is a snapshot taken at
// the moment of completion and never recomputed.
type UserAchievement struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID       uint      `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	AchievedAt          time.Time `json:"achieved_at"`
	PointsAtAchievement int       `gorm:"not null;default:0" json:"points_at_achievement"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

func (Category) TableName() string {
	return "achievement_categories"
}

func (Achievement) TableName() string {
	return "achievements"
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
