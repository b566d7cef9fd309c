package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App            AppConfig
	Database       DatabaseConfig
	JWT            JWTConfig
	Console        ConsoleConfig
	MinIO          MinIOConfig
	MigrationsPath string
	SeedDemo       bool
}

type AppConfig struct {
	Port    string
	Env     string
	Storage string // postgres | memory
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret string
}

// ConsoleConfig dipakai oleh cmd/console
type ConsoleConfig struct {
	Port           string
	BackendURL     string
	APIKey         string
	PublicURL      string
	RequestTimeout time.Duration
	SessionTTL     time.Duration
}

type MinIOConfig struct {
	Endpoint string
	User     string
	Password string
	Bucket   string
	UseSSL   bool
}

// Enabled is false when no endpoint is configured; archiving is then skipped.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

func Load() *Config {
	// Load .env jika ada (development), di production pakai env variable langsung
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment variables")
	}

	minioSSL, _ := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	seedDemo, _ := strconv.ParseBool(getEnv("SEED_DEMO", "false"))

	return &Config{
		App: AppConfig{
			Port:    getEnv("APP_PORT", "8080"),
			Env:     getEnv("APP_ENV", "development"),
			Storage: getEnv("STORAGE_BACKEND", "postgres"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "groups_user"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "groups_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-this-secret"),
		},
		Console: ConsoleConfig{
			Port:           getEnv("CONSOLE_PORT", "3000"),
			BackendURL:     getEnv("BACKEND_URL", "http://localhost:8080/api/v1"),
			APIKey:         getEnv("BACKEND_API_KEY", ""),
			PublicURL:      getEnv("CONSOLE_PUBLIC_URL", "http://localhost:3000"),
			RequestTimeout: getDuration("CONSOLE_REQUEST_TIMEOUT", 10*time.Second),
			SessionTTL:     getDuration("CONSOLE_SESSION_TTL", 2*time.Hour),
		},
		MinIO: MinIOConfig{
			Endpoint: getEnv("MINIO_ENDPOINT", ""),
			User:     getEnv("MINIO_USER", "minioadmin"),
			Password: getEnv("MINIO_PASSWORD", "minioadmin123"),
			Bucket:   getEnv("MINIO_BUCKET", "group-rosters"),
			UseSSL:   minioSSL,
		},
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		SeedDemo:       seedDemo,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
