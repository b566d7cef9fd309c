package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

// RunMigrations menjalankan file SQL di folder migrations yang belum tercatat
// di schema_migrations, satu transaksi per file.
func RunMigrations(ctx context.Context, db *sqlx.DB, migrationsPath string) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version     VARCHAR(255) PRIMARY KEY,
			executed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(migrationsPath, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	var applied []string
	if err := db.SelectContext(ctx, &applied, "SELECT version FROM schema_migrations"); err != nil {
		return fmt.Errorf("failed to list applied migrations: %w", err)
	}

	for _, file := range pendingMigrations(files, applied) {
		if err := applyMigration(ctx, db, file); err != nil {
			return err
		}
	}
	return nil
}

// pendingMigrations mengembalikan file yang belum dijalankan, urut 001_, 002_, dst
func pendingMigrations(files, applied []string) []string {
	done := make(map[string]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	var pending []string
	for _, f := range sorted {
		if !done[filepath.Base(f)] {
			pending = append(pending, f)
		}
	}
	return pending
}

func applyMigration(ctx context.Context, db *sqlx.DB, file string) error {
	version := filepath.Base(file)

	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", file, err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", version, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", version, err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", version, err)
	}

	log.Printf("Migration applied: %s", version)
	return nil
}
