package store

import (
	"path/filepath"
	"testing"

	gormlogger "gorm.io/gorm/logger"
)

func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "library.db")
	s, err := NewGormStore(dsn, WithSQLLogLevel(gormlogger.Silent))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGormStoreLibraryContract(t *testing.T) {
	runLibraryContract(t, newSQLiteStore(t))
}

func TestGormStoreOrderingContract(t *testing.T) {
	runOrderingContract(t, newSQLiteStore(t))
}

func TestGormStoreBlogContract(t *testing.T) {
	runBlogContract(t, newSQLiteStore(t))
}

func TestOpenDialector(t *testing.T) {
	cases := []struct {
		dsn      string
		postgres bool
		wantErr  bool
	}{
		{dsn: "postgres://u:p@localhost:5432/library?sslmode=disable", postgres: true},
		{dsn: "host=localhost user=u dbname=library", postgres: true},
		{dsn: "sqlite://library.db"},
		{dsn: "file:library.db?cache=shared"},
		{dsn: "./data/library.sqlite3"},
		{dsn: "", wantErr: true},
		{dsn: "mysql://root@localhost/library", wantErr: true},
	}
	for _, tc := range cases {
		_, isPostgres, err := openDialector(tc.dsn)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.dsn)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.dsn, err)
		}
		if isPostgres != tc.postgres {
			t.Fatalf("%q: postgres=%v want %v", tc.dsn, isPostgres, tc.postgres)
		}
	}
}

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	if got := sqliteDSN("library.db"); got != "library.db?_foreign_keys=1" {
		t.Fatalf("unexpected dsn %q", got)
	}
	if got := sqliteDSN("file:x.db?cache=shared"); got != "file:x.db?cache=shared&_foreign_keys=1" {
		t.Fatalf("unexpected dsn %q", got)
	}
	if got := sqliteDSN("x.db?_fk=1"); got != "x.db?_fk=1" {
		t.Fatalf("expected dsn untouched, got %q", got)
	}
}
