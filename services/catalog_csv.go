// services/catalog_csv.go - Bulk catalog import/export (CSV)
package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"lifetrack/models"

	"gorm.io/gorm"
)

// Required CSV columns. Import and export use the same header set.
const (
	ColumnTitle       = "title"
	ColumnDescription = "description"
	ColumnCategory    = "category"
)

var csvHeader = []string{ColumnTitle, ColumnDescription, ColumnCategory}

// utf8BOM keeps non-ASCII titles intact in spreadsheet tools.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var (
	// ErrEmptyImport rejects a header-only (or empty) payload.
	ErrEmptyImport = errors.New("import file contains no data rows")
)

// MissingColumnsError is the fail-fast rejection for a header that lacks
// required columns. No row is processed when it fires.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

type CatalogCSVService struct {
	db *gorm.DB
}

func NewCatalogCSVService(db *gorm.DB) *CatalogCSVService {
	return &CatalogCSVService{db: db}
}

// Import bulk-loads achievement definitions from CSV. The header is
// validated before any row is touched; the batch inserts inside one
// transaction, so a bad row leaves the catalog unchanged. Category names
// with no matching category are auto-created at the end of the display
// order rather than producing rows the catalog view would hide.
//
// Every imported row is a system-defined achievement
// (custom_achievement = false). Returns the number of rows imported.
func (s *CatalogCSVService) Import(r io.Reader) (int, error) {
	reader := csv.NewReader(stripBOM(r))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return 0, ErrEmptyImport
	}
	if err != nil {
		return 0, fmt.Errorf("failed to parse CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, required := range csvHeader {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return 0, &MissingColumnsError{Columns: missing}
	}

	type parsedRow struct {
		title        string
		description  string
		categoryName string
	}

	var rows []parsedRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to parse CSV row: %w", err)
		}
		rows = append(rows, parsedRow{
			title:        record[columns[ColumnTitle]],
			description:  record[columns[ColumnDescription]],
			categoryName: record[columns[ColumnCategory]],
		})
	}

	if len(rows) == 0 {
		return 0, ErrEmptyImport
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		resolver := NewCategoryService(tx)

		achievements := make([]models.Achievement, 0, len(rows))
		for _, row := range rows {
			category, err := resolver.ResolveName(row.categoryName)
			if errors.Is(err, ErrCategoryNotFound) {
				category, err = resolver.Create(row.categoryName, "")
			}
			if err != nil {
				return err
			}

			achievements = append(achievements, models.Achievement{
				Title:             row.title,
				Description:       row.description,
				CategoryID:        &category.ID,
				CustomAchievement: false,
			})
		}

		return tx.Create(&achievements).Error
	})
	if err != nil {
		return 0, err
	}

	return len(rows), nil
}

// Export writes the full catalog in the import format, BOM-prefixed.
// Category identifiers resolve back to display names; unresolved rows get
// the literal "Unknown" marker.
func (s *CatalogCSVService) Export(w io.Writer) error {
	var achievements []models.Achievement
	if err := s.db.Preload("Category").
		Order("created_at DESC, id DESC").
		Find(&achievements).Error; err != nil {
		return err
	}

	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, a := range achievements {
		categoryName := UnknownCategoryName
		if a.Category != nil {
			categoryName = a.Category.Name
		}
		if err := writer.Write([]string{a.Title, a.Description, categoryName}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// stripBOM drops a leading UTF-8 byte-order marker so exported files can
// be re-imported as-is.
func stripBOM(r io.Reader) io.Reader {
	buf := make([]byte, 3)
	n, _ := io.ReadFull(r, buf)
	if n == 3 && buf[0] == utf8BOM[0] && buf[1] == utf8BOM[1] && buf[2] == utf8BOM[2] {
		return r
	}
	return io.MultiReader(strings.NewReader(string(buf[:n])), r)
}
