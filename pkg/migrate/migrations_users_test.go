package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akozyrev/userpower-backend/pkg/migrate"
)

func TestUsersMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_users.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no users migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE users",
		"is_active     boolean NOT NULL DEFAULT true",
		"roles         text[] NOT NULL DEFAULT '{ROLE_PORTAL_USER}'",
		"CREATE UNIQUE INDEX idx_users_email ON users (email)",
		"DROP TABLE users",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirectoryValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}
