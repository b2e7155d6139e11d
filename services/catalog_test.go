package services

import (
	"strconv"
	"testing"
	"time"

	"lifetrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListForUserScoresAndFlags(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db)
	state := NewAchievementService(db)

	category := createCategory(t, db, "Fitness", 1)
	rare := createAchievement(t, db, "Run a marathon", &category.ID)
	common := createAchievement(t, db, "Take a walk", &category.ID)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := state.Achieve(alice.ID, common.ID)
	require.NoError(t, err)
	_, err = state.Achieve(bob.ID, common.ID)
	require.NoError(t, err)

	scored, err := catalog.ListForUser(alice.ID, CategoryAll, SortPointsDesc)
	require.NoError(t, err)
	require.Len(t, scored, 2)

	// Nobody achieved "rare": max points, sorted first.
	assert.Equal(t, rare.ID, scored[0].ID)
	assert.Equal(t, 100, scored[0].Points)
	assert.False(t, scored[0].Achieved)
	assert.Equal(t, 0, scored[0].AchievementCount)

	// Everyone achieved "common": floored at 10.
	assert.Equal(t, common.ID, scored[1].ID)
	assert.Equal(t, 10, scored[1].Points)
	assert.True(t, scored[1].Achieved)
	assert.Equal(t, 2, scored[1].AchievementCount)
	assert.Equal(t, 2, scored[1].TotalUsers)
	require.NotNil(t, scored[1].Category)
	assert.Equal(t, "Fitness", scored[1].Category.Name)
}

func TestListForUserSortOrders(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db)
	state := NewAchievementService(db)

	category := createCategory(t, db, "General", 1)

	older := models.Achievement{Title: "Older", Description: "d", CategoryID: &category.ID, CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, db.Create(&older).Error)
	newer := models.Achievement{Title: "Newer", Description: "d", CategoryID: &category.ID, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&newer).Error)

	alice := createUser(t, db, "alice")
	createUser(t, db, "bob")
	_, err := state.Achieve(alice.ID, older.ID)
	require.NoError(t, err)

	desc, err := catalog.ListForUser(alice.ID, CategoryAll, SortPointsDesc)
	require.NoError(t, err)
	require.Len(t, desc, 2)
	assert.GreaterOrEqual(t, desc[0].Points, desc[1].Points)

	asc, err := catalog.ListForUser(alice.ID, CategoryAll, SortPointsAsc)
	require.NoError(t, err)
	assert.LessOrEqual(t, asc[0].Points, asc[1].Points)

	byDate, err := catalog.ListForUser(alice.ID, CategoryAll, SortDate)
	require.NoError(t, err)
	assert.Equal(t, "Newer", byDate[0].Title, "date order is newest first")
}

func TestListForUserCategoryFilter(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db)

	fitness := createCategory(t, db, "Fitness", 1)
	reading := createCategory(t, db, "Reading", 2)
	createAchievement(t, db, "Run a marathon", &fitness.ID)
	createAchievement(t, db, "Finish a book", &reading.ID)

	alice := createUser(t, db, "alice")

	filtered, err := catalog.ListForUser(alice.ID, strconv.FormatUint(uint64(reading.ID), 10), SortPointsDesc)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Finish a book", filtered[0].Title)

	all, err := catalog.ListForUser(alice.ID, CategoryAll, SortPointsDesc)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListForUserDropsUnresolvedCategories(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db)

	category := createCategory(t, db, "Fitness", 1)
	createAchievement(t, db, "Run a marathon", &category.ID)
	createAchievement(t, db, "Legacy entry", nil)

	alice := createUser(t, db, "alice")

	scored, err := catalog.ListForUser(alice.ID, CategoryAll, SortPointsDesc)
	require.NoError(t, err)
	require.Len(t, scored, 1, "rows without a resolvable category are excluded")
	assert.Equal(t, "Run a marathon", scored[0].Title)
}

func TestListForUserEmptySystemDefaults(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db)

	category := createCategory(t, db, "Fitness", 1)
	createAchievement(t, db, "Run a marathon", &category.ID)

	// No registered users at all: the calculator falls back to the default.
	scored, err := catalog.ListForUser(0, CategoryAll, SortPointsDesc)
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, MinPoints, scored[0].Points)
}
