package services

import (
	"bytes"
	"strings"
	"testing"

	"lifetrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCreatesAchievements(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogCSVService(db)

	createCategory(t, db, "Fitness", 1)

	input := "title,description,category\n" +
		"Run a marathon,Complete a full 42km race,Fitness\n" +
		"Morning stretch,Stretch before breakfast,Fitness\n"

	count, err := svc.Import(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var achievements []models.Achievement
	require.NoError(t, db.Preload("Category").Find(&achievements).Error)
	require.Len(t, achievements, 2)
	for _, a := range achievements {
		assert.False(t, a.CustomAchievement, "imported rows are system-defined")
		require.NotNil(t, a.Category)
		assert.Equal(t, "Fitness", a.Category.Name)
	}
}

func TestImportRejectsMissingColumns(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogCSVService(db)

	input := "title,description\n" +
		"Run a marathon,Complete a full 42km race\n"

	_, err := svc.Import(strings.NewReader(input))
	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"category"}, missing.Columns)

	// Fail fast: nothing was inserted.
	var count int64
	db.Model(&models.Achievement{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestImportRejectsEmptyPayload(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogCSVService(db)

	_, err := svc.Import(strings.NewReader("title,description,category\n"))
	assert.ErrorIs(t, err, ErrEmptyImport)

	_, err = svc.Import(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyImport)
}

func TestImportRejectsMalformedRowAtomically(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogCSVService(db)

	createCategory(t, db, "Fitness", 1)

	// Second row has a field count mismatch: the whole batch is rejected.
	input := "title,description,category\n" +
		"Run a marathon,Complete a full 42km race,Fitness\n" +
		"Broken row,missing category\n"

	_, err := svc.Import(strings.NewReader(input))
	require.Error(t, err)

	var count int64
	db.Model(&models.Achievement{}).Count(&count)
	assert.EqualValues(t, 0, count, "no partial import")
}

func TestImportAutoCreatesUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogCSVService(db)

	createCategory(t, db, "Fitness", 1)

	input := "title,description,category\n" +
		"Visit Kyoto,See the old capital,Travel\n"

	count, err := svc.Import(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	created, err := NewCategoryService(db).ResolveName("Travel")
	require.NoError(t, err)
	assert.Equal(t, 2, created.DisplayOrder, "auto-created category appends to the display order")
}

func TestExportWritesBOMAndUnknownFallback(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogCSVService(db)

	category := createCategory(t, db, "Fitness", 1)
	createAchievement(t, db, "Run a marathon", &category.ID)
	createAchievement(t, db, "Orphaned entry", nil)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(&buf))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}), "export must be BOM-prefixed")

	body := string(out[3:])
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "title,description,category", lines[0])
	assert.Contains(t, body, "Run a marathon,Run a marathon description,Fitness")
	assert.Contains(t, body, "Orphaned entry,Orphaned entry description,Unknown")
}

func TestImportExportRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogCSVService(db)

	createCategory(t, db, "Fitness", 1)
	createCategory(t, db, "Reading", 2)

	input := "title,description,category\n" +
		"Run a marathon,Complete a full 42km race,Fitness\n" +
		"Finish a book,Read one cover to cover,Reading\n"

	_, err := svc.Import(strings.NewReader(input))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(&buf))

	// Exported output re-imports cleanly into a fresh catalog and
	// preserves the (title, description, category) triples.
	fresh := newTestDB(t)
	freshSvc := NewCatalogCSVService(fresh)
	count, err := freshSvc.Import(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var achievements []models.Achievement
	require.NoError(t, fresh.Preload("Category").Order("title").Find(&achievements).Error)
	require.Len(t, achievements, 2)
	assert.Equal(t, "Finish a book", achievements[0].Title)
	assert.Equal(t, "Reading", achievements[0].Category.Name)
	assert.Equal(t, "Run a marathon", achievements[1].Title)
	assert.Equal(t, "Fitness", achievements[1].Category.Name)
}
