package database

import (
	"fmt"
	"log"
	"time"

	"github.com/MadinaDev2107/Group-Manager/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver untuk database/sql
	"github.com/jmoiron/sqlx"
)

func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)
}

func Connect(cfg *config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	log.Printf("Database connected: %s:%s/%s", cfg.Host, cfg.Port, cfg.Name)
	return db, nil
}
