package database

import (
	"fmt"
	"strings"

	"catalog-backend/internal/config"
	"catalog-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Init opens the backing store, runs migrations and guarantees the
// default category row exists. DSNs starting with "file:" (or the
// literal ":memory:") select sqlite, anything else is Postgres.
func Init(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(cfg.DatabaseDSN, "file:") || cfg.DatabaseDSN == ":memory:" {
		dialector = sqlite.Open(cfg.DatabaseDSN)
	} else {
		dialector = postgres.Open(cfg.DatabaseDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	if err := EnsureDefaultCategory(db, cfg.DefaultCategoryID, cfg.DefaultCategoryName); err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureDefaultCategory inserts the default category if it is missing.
// Every product whose category is deleted falls back to this row, so it
// must exist before the first request is served.
func EnsureDefaultCategory(db *gorm.DB, id uint, name string) error {
	var count int64
	if err := db.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("default category check failed: %w", err)
	}
	if count > 0 {
		return nil
	}

	cat := models.Category{
		ID:          id,
		Name:        name,
		Description: "Default category for uncategorized products",
	}
	if err := db.Create(&cat).Error; err != nil {
		return fmt.Errorf("could not create default category: %w", err)
	}

	// Inserting with an explicit id does not advance the Postgres
	// identity sequence, so the next auto-id insert would collide with
	// this row. Bump the sequence past it. sqlite picks max+1 on its
	// own and has no sequence to adjust.
	if db.Dialector.Name() == "postgres" {
		err := db.Exec(
			"SELECT setval(pg_get_serial_sequence('categories', 'id'), (SELECT MAX(id) FROM categories))",
		).Error
		if err != nil {
			return fmt.Errorf("could not advance category id sequence: %w", err)
		}
	}
	return nil
}
