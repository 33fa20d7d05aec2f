package dbtest

import (
	"strings"
	"testing"

	"eventbridge/internal/config"
	"eventbridge/internal/db"
)

// Open opens a migrated in-memory SQLite database private to t.
func Open(t testing.TB) *db.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	d, err := db.Open(config.DBConfig{
		Driver:       db.DriverSQLite,
		DSN:          "file:" + name + "?mode=memory&cache=shared&_foreign_keys=1",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(d) })
	if err := db.AutoMigrate(d); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return d
}
