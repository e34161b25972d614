package db

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestDetectDialectFromDSN(t *testing.T) {
	cases := []struct {
		dsn     string
		dialect string
	}{
		{"postgres://app@localhost/agencydesk", DialectPostgres},
		{"postgresql://app@localhost/agencydesk", DialectPostgres},
		{"host=localhost user=app dbname=agencydesk", DialectPostgres},
		{"agencydesk.db", DialectSQLite},
		{"file:agencydesk.db?cache=shared", DialectSQLite},
		{"sqlite://data/agencydesk.db", DialectSQLite},
	}
	for _, tc := range cases {
		dialect, errDetect := detectDialectFromDSN(tc.dsn)
		if errDetect != nil {
			t.Fatalf("%s: %v", tc.dsn, errDetect)
		}
		if dialect != tc.dialect {
			t.Fatalf("%s: expected %s, got %s", tc.dsn, tc.dialect, dialect)
		}
	}
}

func TestEnsureSQLiteParamsAddsMissingOnly(t *testing.T) {
	out := ensureSQLiteParams("agencydesk.db")
	for _, key := range []string{"_busy_timeout=", "_journal_mode=WAL", "_foreign_keys=on", "_synchronous=NORMAL"} {
		if !strings.Contains(out, key) {
			t.Fatalf("missing %s in %s", key, out)
		}
	}

	out = ensureSQLiteParams("agencydesk.db?_journal_mode=DELETE")
	if strings.Count(out, "_journal_mode") != 1 {
		t.Fatalf("existing param duplicated: %s", out)
	}
}

func TestSQLitePathFromDSN(t *testing.T) {
	cases := []struct {
		dsn  string
		path string
	}{
		{"file:data/app.db?cache=shared", "data/app.db"},
		{"app.db", "app.db"},
		{":memory:", ""},
		{"file::memory:", ""},
	}
	for _, tc := range cases {
		if got := sqlitePathFromDSN(tc.dsn); got != tc.path {
			t.Fatalf("%s: expected %q, got %q", tc.dsn, tc.path, got)
		}
	}
}

func TestOpenAndMigrateSQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:db_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := Open(dsn)
	if errOpen != nil {
		t.Fatalf("open: %v", errOpen)
	}
	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	migrator := conn.Migrator()
	for _, table := range []string{"users", "agencies", "contacts", "daily_usage"} {
		if !migrator.HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
	for _, column := range []string{"user_id", "date", "viewed_count", "viewed_contact_ids"} {
		if !migrator.HasColumn("daily_usage", column) {
			t.Fatalf("daily_usage missing column %s", column)
		}
	}
}

func TestMigrateNilConnection(t *testing.T) {
	if errMigrate := Migrate(nil); errMigrate == nil {
		t.Fatal("expected error for nil connection")
	}
}
