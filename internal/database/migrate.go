package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"storefront/internal/models"
)

// schemaMigration records one applied migration.
type schemaMigration struct {
	ID        string `gorm:"primaryKey;type:varchar(100)"`
	AppliedAt time.Time
}

func (schemaMigration) TableName() string { return "schema_migrations" }

type migration struct {
	id  string
	run func(*gorm.DB) error
}

// The ordered migration list. Entries are applied exactly once; never
// reorder or edit an entry after it has shipped, append a new one.
var migrations = []migration{
	{
		id: "0001_create_core_tables",
		run: func(db *gorm.DB) error {
			return db.AutoMigrate(
				&models.Product{},
				&models.User{},
				&models.Order{},
				&models.OrderItem{},
			)
		},
	},
	{
		// Databases created before products carried a category need
		// the column added; fresh databases already have it from 0001.
		id: "0002_product_category",
		run: func(db *gorm.DB) error {
			if db.Migrator().HasColumn(&models.Product{}, "category") {
				return nil
			}
			return db.Migrator().AddColumn(&models.Product{}, "Category")
		},
	},
}

// Migrate applies every pending migration in order, recording each in
// the schema_migrations table. Running it repeatedly is a no-op.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("failed to prepare schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var applied int64
		if err := db.Model(&schemaMigration{}).Where("id = ?", m.id).Count(&applied).Error; err != nil {
			return fmt.Errorf("failed to check migration %s: %w", m.id, err)
		}
		if applied > 0 {
			continue
		}
		if err := m.run(db); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.id, err)
		}
		record := schemaMigration{ID: m.id, AppliedAt: time.Now()}
		if err := db.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.id, err)
		}
	}
	return nil
}
