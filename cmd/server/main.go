package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MadinaDev2107/Group-Manager/internal/config"
	"github.com/MadinaDev2107/Group-Manager/internal/database"
	"github.com/MadinaDev2107/Group-Manager/internal/handler"
	"github.com/MadinaDev2107/Group-Manager/internal/repository"
	"github.com/MadinaDev2107/Group-Manager/internal/service"
)

// @title           Group Manager Collections API
// @version         1.0
// @description     Generic select/insert/update/delete-by-equality API over the groups and students collections.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name apikey
func main() {
	cfg := config.Load()

	// ── Repositories ─────────────────────────────────
	var (
		groupRepo   repository.GroupRepository
		studentRepo repository.StudentRepository
	)

	switch cfg.App.Storage {
	case "memory":
		log.Println("Using in-memory storage, data is lost on restart")
		store := repository.NewMemoryStore()
		groupRepo, studentRepo = store.Groups(), store.Students()
	default:
		db, err := database.Connect(&cfg.Database)
		if err != nil {
			log.Fatalf("Database error: %v", err)
		}
		defer db.Close()

		log.Printf("Running migrations from: %s", cfg.MigrationsPath)
		if err := database.RunMigrations(context.Background(), db, cfg.MigrationsPath); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}

		if cfg.SeedDemo {
			if err := database.NewSeeder(db).SeedDemoGroups(context.Background()); err != nil {
				log.Printf("Warning: seed failed: %v", err)
			}
		}

		groupRepo = repository.NewGroupRepository(db)
		studentRepo = repository.NewStudentRepository(db)
	}

	// ── Services & Handlers ──────────────────────────
	collectionHandler := handler.NewCollectionHandler(
		service.NewGroupService(groupRepo),
		service.NewStudentService(studentRepo),
	)
	router := handler.NewRouter(collectionHandler, cfg.JWT.Secret)

	// ── HTTP Server ──────────────────────────────────
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.App.Port),
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Collections API listening on port %s (mode: %s)", cfg.App.Port, cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
