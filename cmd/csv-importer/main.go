package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"lifetrack/models"
	"lifetrack/services"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Bulk-loads an achievements CSV into a local sqlite catalog, useful for
// seeding a development database without running the server.
func main() {
	dbPath := flag.String("db", "./data/lifetrack.db", "sqlite database file")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("Usage: csv-importer [-db path] <achievements.csv>")
	}
	csvPath := flag.Arg(0)

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Achievement{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	file, err := os.Open(csvPath)
	if err != nil {
		log.Fatal("Failed to open CSV file:", err)
	}
	defer file.Close()

	count, err := services.NewCatalogCSVService(db).Import(file)
	if err != nil {
		log.Fatal("Import failed:", err)
	}

	fmt.Printf("Imported %d achievements into %s\n", count, *dbPath)
}
