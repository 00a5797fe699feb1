package repo

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenSQLite_CreatesFileAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "support.db")

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	// All four tables must exist after migration.
	for _, table := range []string{"chat_logs", "tickets", "feedback", "idempotency"} {
		var n int64
		if err := db.Table(table).Count(&n).Error; err != nil {
			t.Errorf("table %q not usable after migrate: %v", table, err)
		}
	}

	// Round trip through a repo function sanity-checks the handle.
	if _, err := CreateChatLog(context.Background(), db, "q", "a", "general", 0.4, "s1"); err != nil {
		t.Fatalf("insert after migrate: %v", err)
	}
}

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	_, err := OpenSQLite(filepath.Join(t.TempDir(), "no", "such", "dir.db"))
	if err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
}
