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

	"github.com/MadinaDev2107/Group-Manager/internal/client"
	"github.com/MadinaDev2107/Group-Manager/internal/config"
	"github.com/MadinaDev2107/Group-Manager/internal/console"
	"github.com/MadinaDev2107/Group-Manager/internal/utils"
)

func main() {
	cfg := config.Load()

	if cfg.Console.APIKey == "" {
		log.Println("Warning: BACKEND_API_KEY is empty, the collections API will reject every call")
	}

	api := client.New(cfg.Console.BackendURL, cfg.Console.APIKey, &http.Client{Timeout: cfg.Console.RequestTimeout})

	// ── Roster archive (optional) ────────────────────
	var archiver console.Archiver
	if cfg.MinIO.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Console.RequestTimeout)
		storage, err := utils.NewStorageService(ctx, &cfg.MinIO)
		cancel()
		if err != nil {
			log.Printf("Warning: MinIO unavailable, archiving disabled: %v", err)
		} else {
			archiver = storage
		}
	}

	sessions := console.NewSessions(cfg.Console.SessionTTL, func() *console.Console {
		return console.New(api)
	})
	h := console.NewHandler(sessions, console.NewExporter(cfg.Console.PublicURL, archiver), cfg.Console.RequestTimeout)

	// ── Session janitor ──────────────────────────────
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := sessions.Evict(); n > 0 {
					log.Printf("Evicted %d idle console session(s), %d active", n, sessions.Len())
				}
			case <-stop:
				return
			}
		}
	}()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Console.Port),
		Handler:      h.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Console listening on port %s, backend %s", cfg.Console.Port, cfg.Console.BackendURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-quit
	close(stop)
	log.Println("Shutting down console...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Console stopped gracefully")
}
