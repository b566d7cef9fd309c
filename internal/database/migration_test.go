package database

import (
	"reflect"
	"testing"

	"github.com/MadinaDev2107/Group-Manager/internal/config"
)

func TestPendingMigrations_SkipsAppliedAndSorts(t *testing.T) {
	files := []string{
		"migrations/002_create_students.sql",
		"migrations/001_create_groups.sql",
		"migrations/003_add_index.sql",
	}
	applied := []string{"001_create_groups.sql"}

	got := pendingMigrations(files, applied)

	want := []string{"migrations/002_create_students.sql", "migrations/003_add_index.sql"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("pendingMigrations() = %v, want %v", got, want)
	}
}

func TestPendingMigrations_NothingPending(t *testing.T) {
	got := pendingMigrations([]string{"m/001_a.sql"}, []string{"001_a.sql"})
	if len(got) != 0 {
		t.Errorf("expected no pending migrations, got %v", got)
	}
}

func TestDSN(t *testing.T) {
	dsn := DSN(&config.DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", Name: "groups", SSLMode: "disable",
	})
	want := "host=db port=5432 user=u password=p dbname=groups sslmode=disable"
	if dsn != want {
		t.Errorf("DSN() = %q, want %q", dsn, want)
	}
}
