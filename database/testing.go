package database

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
)

// OpenTest, t.TempDir() altında migration'ları uygulanmış bir SQLite DB açar.
// Test bitince bağlantı kapatılır.
func OpenTest(t testing.TB) *DB {
	t.Helper()

	log, _ := test.NewNullLogger()
	db, err := New(filepath.Join(t.TempDir(), "test.db"), Migrations(), log)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
