package database

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
)

var demoGroups = []string{"Frontend", "Backend", "Mobile"}

type Seeder struct {
	db *sqlx.DB
}

func NewSeeder(db *sqlx.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedDemoGroups mengisi beberapa grup awal jika tabel groups masih kosong
func (s *Seeder) SeedDemoGroups(ctx context.Context) error {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM groups"); err != nil {
		return err
	}
	if count > 0 {
		log.Println("Groups already exist, skipping demo seed")
		return nil
	}

	for _, name := range demoGroups {
		if _, err := s.db.ExecContext(ctx,
			"INSERT INTO groups (name, status) VALUES ($1, $2)", name, true,
		); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d demo groups", len(demoGroups))
	return nil
}
