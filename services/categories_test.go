package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryResolution(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	fitness := createCategory(t, db, "Fitness", 2)
	reading := createCategory(t, db, "Reading", 1)

	byName, err := svc.ResolveName("Fitness")
	require.NoError(t, err)
	assert.Equal(t, fitness.ID, byName.ID)

	byID, err := svc.ResolveID(reading.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reading", byID.Name)

	_, err = svc.ResolveName("Nope")
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = svc.ResolveID(9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryListOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	createCategory(t, db, "Third", 3)
	createCategory(t, db, "First", 1)
	createCategory(t, db, "Second", 2)

	categories, err := svc.List()
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "First", categories[0].Name)
	assert.Equal(t, "Second", categories[1].Name)
	assert.Equal(t, "Third", categories[2].Name)
}

func TestCategoryCreateAppendsDisplayOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	createCategory(t, db, "Existing", 5)

	created, err := svc.Create("Travel", "trips and places")
	require.NoError(t, err)
	assert.Equal(t, 6, created.DisplayOrder)

	// First category in an empty catalog starts the order at 1.
	empty := newTestDB(t)
	first, err := NewCategoryService(empty).Create("Fitness", "")
	require.NoError(t, err)
	assert.Equal(t, 1, first.DisplayOrder)
}
