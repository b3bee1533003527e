package database

import (
	"testing"

	"real-estate-crm/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestInitSchemaCreatesAllTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	gdb := NewGormDBFromDB(db)
	require.NoError(t, gdb.InitSchema())

	for _, table := range []string{
		"agents", "agent_settings", "contacts", "deals", "tasks",
		"appointments", "properties", "property_images", "communications", "activities",
	} {
		assert.True(t, gdb.DB().Migrator().HasTable(table), "missing table %s", table)
	}

	// Schema init is idempotent
	require.NoError(t, gdb.InitSchema())

	agent := models.Agent{ID: "a1", Email: "a@example.com", PasswordHash: "x"}
	require.NoError(t, gdb.DB().Create(&agent).Error)
}
