package main

import (
	"fmt"
	"log/slog"

	"accounthub/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(cfg Config) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set; a Postgres DSN is required")
	}
	gcfg := &gorm.Config{}
	if cfg.Release {
		gcfg.Logger = logger.Default.LogMode(logger.Warn)
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN), gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// migrate creates or updates each table on its own so one failure (for
// example missing privileges) does not block the rest.
func migrate(db *gorm.DB) {
	tables := []struct {
		name  string
		model any
	}{
		{"profiles", &models.ProfileRow{}},
		{"activity_log", &models.Activity{}},
		{"notifications", &models.Notification{}},
	}
	for _, t := range tables {
		if err := db.AutoMigrate(t.model); err != nil {
			slog.Warn("migration warning", "table", t.name, "error", err)
		}
	}
}
