// Package dbtest opens throwaway sqlite databases with the full schema for tests.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/angelmondragon/warungsunda-backend/pkg/db"
	"github.com/angelmondragon/warungsunda-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
)

// New returns a migrated in-memory database private to t.
func New(t testing.TB) *db.Client {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	conn, err := db.Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	client := db.NewFromConn(conn)
	if err := client.AutoMigrate(context.Background(), models.All()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}
