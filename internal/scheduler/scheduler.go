// Package scheduler wires up the cron job that periodically runs ingestion
// for all active search preferences.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"jobtrail/ingest-service/internal/ingest"
	"jobtrail/ingest-service/internal/model"
	"jobtrail/ingest-service/internal/store"
)

// feedUpdatedChannel carries ingestion reports to the gateway for SSE
// forwarding.
const feedUpdatedChannel = "EVENT_FEED_UPDATED"

// Scheduler wraps robfig/cron and manages the ingestion loop.
type Scheduler struct {
	cron         *cron.Cron
	pool         *pgxpool.Pool
	rdb          *redis.Client
	orchestrator *ingest.Orchestrator
	spec         string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(pool *pgxpool.Pool, rdb *redis.Client, orchestrator *ingest.Orchestrator, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithLogger(cron.DefaultLogger)),
		pool:         pool,
		rdb:          rdb,
		orchestrator: orchestrator,
		spec:         fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one ingestion
// cycle immediately so the feed is populated without waiting for the first
// tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)

	// Run immediately on startup (non-blocking)
	go s.runCycle(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

// runCycle loads all active preferences and runs one ingestion per user,
// serialized by the per-user advisory lock.
func (s *Scheduler) runCycle(ctx context.Context) {
	log.Println("[scheduler] Ingestion cycle started")

	prefs, err := store.LoadActivePreferences(ctx, s.pool)
	if err != nil {
		log.Printf("[scheduler] LoadActivePreferences error: %v", err)
		return
	}

	if len(prefs) == 0 {
		log.Println("[scheduler] No active search preferences — nothing to ingest")
		return
	}

	log.Printf("[scheduler] Running ingestion for %d preference(s)", len(prefs))
	for _, p := range prefs {
		s.ingestOne(ctx, p)
	}

	log.Println("[scheduler] Ingestion cycle complete")
}

func (s *Scheduler) ingestOne(ctx context.Context, prefs model.Preferences) {
	release, ok, err := store.AcquireIngestLock(ctx, s.rdb, prefs.UserID)
	if err != nil {
		log.Printf("[scheduler] Lock error for user %s: %v", prefs.UserID, err)
		return
	}
	if !ok {
		log.Printf("[scheduler] User %s already has an ingestion in flight — skipping", prefs.UserID)
		return
	}
	defer release()

	report, err := s.orchestrator.Ingest(ctx, prefs)
	if err != nil {
		log.Printf("[scheduler] Ingest error for user %s: %v", prefs.UserID, err)
		return
	}

	log.Printf("[scheduler] User %s run %s — found=%d saved=%d duplicates=%d errors=%d",
		prefs.UserID, report.RunID, report.JobsFound, report.JobsSaved,
		report.DuplicatesFiltered, len(report.Errors))
	if report.Degraded() {
		log.Printf("[scheduler] User %s: all sources failed — degraded run", prefs.UserID)
	}

	s.publishReport(ctx, report)
}

// publishReport forwards the report to the gateway via Redis (non-fatal).
func (s *Scheduler) publishReport(ctx context.Context, report *model.IngestionReport) {
	event, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, feedUpdatedChannel, event).Err(); err != nil {
		log.Printf("[scheduler] Publish %s failed: %v", feedUpdatedChannel, err)
	}
}
