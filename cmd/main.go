// jobtrail-ingest-service
//
// Periodically ingests job postings from the configured external boards for
// every active search preference: concurrent per-source scraping,
// normalization into the canonical job shape, fingerprint deduplication and
// job_feed persistence. Publishes EVENT_FEED_UPDATED reports to Redis for
// the Gateway.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"jobtrail/ingest-service/internal/config"
	"jobtrail/ingest-service/internal/db"
	"jobtrail/ingest-service/internal/ingest"
	"jobtrail/ingest-service/internal/scheduler"
	"jobtrail/ingest-service/internal/source"
	"jobtrail/ingest-service/internal/store"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[ingest-service] .env not loaded: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[ingest-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[ingest-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[ingest-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[ingest-service] PostgreSQL connected ✓")

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[ingest-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[ingest-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[ingest-service] Redis connected ✓")

	// ── Pipeline ─────────────────────────────────────────────────────────────
	registry := source.NewRegistry(
		source.NewAdzuna(cfg.AdzunaAppID, cfg.AdzunaAppKey, cfg.AdzunaCountry),
		source.NewArbeitnow(),
	)
	log.Printf("[ingest-service] Registered sources: %v", registry.Names())

	jobStore := store.New(pool, rdb)
	orchestrator := ingest.NewOrchestrator(registry, jobStore, ingest.Options{
		MaxConcurrentSources: cfg.MaxConcurrentSources,
		SourceTimeout:        time.Duration(cfg.SourceTimeoutSecs) * time.Second,
	})

	// ── Scheduler ────────────────────────────────────────────────────────────
	sched := scheduler.New(pool, rdb, orchestrator, cfg.ScrapeIntervalHours)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[ingest-service] Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[ingest-service] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[ingest-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[ingest-service] Shutting down…")
	cancel() // propagate to in-flight ingestion runs

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ingest-service] Shutdown error: %v", err)
	}
	log.Println("[ingest-service] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "ingest-service",
		"version": version,
	})
}
