package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Leadfive-LLC/estimate-system/pkg/migrate"
)

func TestInitMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no init schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS estimate_items",
		"FOREIGN KEY (estimate_id) REFERENCES estimates(id) ON DELETE CASCADE",
		"FOREIGN KEY (item_id) REFERENCES items(id) ON DELETE RESTRICT",
		"CHECK (status IN ('DRAFT', 'SENT', 'APPROVED', 'REJECTED'))",
		"CHECK (markup_rate > 0)",
		"DROP TABLE IF EXISTS estimate_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "not_a_migration.sql")
	if err := os.WriteFile(bad, []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatalf("expected filename validation error")
	}
}
