package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventbridge/internal/config"
	"eventbridge/internal/db"
	"eventbridge/internal/db/dbtest"
	"eventbridge/internal/models"
)

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := db.Open(config.DBConfig{Driver: "oracle"})
	require.Error(t, err)
}

func TestAutoMigrateCreatesTables(t *testing.T) {
	d := dbtest.Open(t)
	require.NoError(t, db.Ping(d))

	m := d.Gorm.Migrator()
	for _, model := range []any{&models.KalshiEvent{}, &models.PolymarketEvent{}, &models.MappingEvent{}, &models.SyncState{}} {
		assert.True(t, m.HasTable(model))
	}
	assert.True(t, m.HasColumn(&models.MappingEvent{}, "polymarket_clob_token_id"))
	assert.True(t, m.HasColumn(&models.PolymarketEvent{}, "condition_id"))
}

func TestSetTimezoneSkipsSQLite(t *testing.T) {
	d := dbtest.Open(t)
	assert.NoError(t, db.SetTimezone(d, "UTC"))
}

func TestNilHandles(t *testing.T) {
	assert.NoError(t, db.Close(nil))
	assert.NoError(t, db.Ping(nil))
	assert.NoError(t, db.AutoMigrate(nil))
}
