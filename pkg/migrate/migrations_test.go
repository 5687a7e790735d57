package migrate

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := ValidateDir(embeddedDir); err != nil {
		t.Fatalf("shipped migrations invalid: %v", err)
	}
	if err := ValidateFS(Migrations, embeddedDir); err != nil {
		t.Fatalf("embedded migrations invalid: %v", err)
	}
}

func TestEmbeddedMigrationsMatchDisk(t *testing.T) {
	embedded, err := fs.Glob(Migrations, embeddedDir+"/*.sql")
	if err != nil {
		t.Fatalf("glob embedded: %v", err)
	}
	onDisk, err := filepath.Glob(filepath.Join(embeddedDir, "*.sql"))
	if err != nil {
		t.Fatalf("glob disk: %v", err)
	}
	if len(embedded) == 0 || len(embedded) != len(onDisk) {
		t.Fatalf("embedded=%d disk=%d", len(embedded), len(onDisk))
	}
}

func TestWalletMigrationGuardsBalance(t *testing.T) {
	content := readMigration(t, "*_create_users.sql")
	for _, sub := range []string{
		"CONSTRAINT users_email_key UNIQUE (email)",
		"CHECK (wallet_balance >= 0)",
		"DROP TABLE IF EXISTS users",
	} {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrdersMigrationCascadesItems(t *testing.T) {
	content := readMigration(t, "*_create_orders.sql")
	for _, sub := range []string{
		"CREATE TABLE IF NOT EXISTS order_items",
		"FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE",
		"CHECK (quantity > 0)",
		"DROP TABLE IF EXISTS order_items",
	} {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCreateSQLMigrationWritesTemplate(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Order Notes!", time.Date(2024, 7, 1, 8, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if filepath.Base(path) != "20240701083000_add_order_notes.sql" {
		t.Fatalf("unexpected filename %s", path)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migration invalid: %v", err)
	}
	if _, err := CreateSQLMigration(dir, "add order notes", time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Fatal("expected duplicate migration name to be refused")
	}
	if _, err := CreateSQLMigration(dir, "!!!", time.Now()); err == nil {
		t.Fatal("expected unusable name to be refused")
	}
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "init.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected invalid filename error")
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := fs.Glob(Migrations, embeddedDir+"/"+pattern)
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %s", pattern)
	}
	data, err := fs.ReadFile(Migrations, matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
