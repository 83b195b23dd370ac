package database_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/database"
	"storefront/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	return db
}

func TestMigrateCreatesSchema(t *testing.T) {
	db := openTestDB(t)

	assert.NoError(t, database.Migrate(db))

	migrator := db.Migrator()
	assert.True(t, migrator.HasTable(&models.Product{}))
	assert.True(t, migrator.HasTable(&models.User{}))
	assert.True(t, migrator.HasTable(&models.Order{}))
	assert.True(t, migrator.HasTable(&models.OrderItem{}))
	assert.True(t, migrator.HasColumn(&models.Product{}, "category"))
	assert.True(t, migrator.HasTable("schema_migrations"))
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	assert.NoError(t, database.Migrate(db))
	var first int64
	assert.NoError(t, db.Table("schema_migrations").Count(&first).Error)
	assert.Greater(t, first, int64(0))

	// A second run applies nothing new.
	assert.NoError(t, database.Migrate(db))
	var second int64
	assert.NoError(t, db.Table("schema_migrations").Count(&second).Error)
	assert.Equal(t, first, second)

	// The schema still works after the rerun.
	product := models.Product{ID: "p-1", Name: "Rerun Widget", Price: 1.0}
	assert.NoError(t, db.Create(&product).Error)
}
