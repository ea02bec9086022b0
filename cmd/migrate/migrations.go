package main

import (
	"gorm.io/gorm"

	"github.com/capitrack/engine/internal/models"
)

// registerModels returns all models that need migration
func registerModels() []interface{} {
	return []interface{}{
		// User management
		&models.User{},

		// Projects & lifecycle
		&models.Project{},
		&models.ProjectHistory{},
		&models.Milestone{},
		&models.ProjectUpdate{},

		// Procurement
		&models.Contractor{},
		&models.BidInvitation{},
		&models.Bid{},
	}
}

// runMigrations executes all database migrations
func runMigrations(db *gorm.DB) error {
	models := registerModels()

	if err := db.AutoMigrate(models...); err != nil {
		return err
	}

	return runCustomMigrations(db)
}

// runCustomMigrations handles schema changes AutoMigrate can't handle
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		enableUUIDExtension,
		addHistoryIndexes,
	}

	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}

	return nil
}

// enableUUIDExtension ensures UUID generation is available
func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error
}

// addHistoryIndexes speeds up the per-project audit timeline
func addHistoryIndexes(db *gorm.DB) error {
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_project_history_project_created
		ON project_history(project_id, created_at DESC)
	`).Error
}
