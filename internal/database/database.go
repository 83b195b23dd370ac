// Package database opens the relational store and applies the schema
// migration list before any route can reach it.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config selects the storage backend. A non-empty DSN means
// PostgreSQL; otherwise a local SQLite file is used.
type Config struct {
	DSN        string
	SQLitePath string
}

// Open connects to the configured database.
func Open(cfg Config) (*gorm.DB, error) {
	if cfg.DSN != "" {
		db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return db, nil
	}

	path := cfg.SQLitePath
	if path == "" {
		path = "app.db"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	return db, nil
}
