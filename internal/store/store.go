// Package store implements the Job Store collaborator on PostgreSQL, with a
// Redis cache-aside layer over each user's fingerprint set.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"jobtrail/ingest-service/internal/model"
)

const (
	fingerprintKeyPrefix = "fingerprints:"
	fingerprintCacheTTL  = 6 * time.Hour
)

// Store persists normalized jobs into job_feed and answers fingerprint
// lookups for deduplication.
type Store struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
}

// New returns a configured Store.
func New(pool *pgxpool.Pool, rdb *redis.Client) *Store {
	return &Store{pool: pool, rdb: rdb}
}

// ExistingFingerprints returns every fingerprint stored for the user. Served
// from the Redis set when populated, falling back to PostgreSQL and
// re-warming the cache best-effort.
func (s *Store) ExistingFingerprints(ctx context.Context, userID string) (map[string]struct{}, error) {
	key := fingerprintKeyPrefix + userID

	if vals, err := s.rdb.SMembers(ctx, key).Result(); err == nil && len(vals) > 0 {
		set := make(map[string]struct{}, len(vals))
		for _, v := range vals {
			set[v] = struct{}{}
		}
		return set, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT fingerprint FROM job_feed WHERE user_id = $1 AND fingerprint <> ''`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query fingerprints: %w", err)
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("scan fingerprint: %w", err)
		}
		set[fp] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.warmCache(ctx, key, set)
	return set, nil
}

// warmCache repopulates the Redis fingerprint set. Failures are non-fatal —
// the next run simply falls back to PostgreSQL again.
func (s *Store) warmCache(ctx context.Context, key string, set map[string]struct{}) {
	if len(set) == 0 {
		return
	}
	members := make([]interface{}, 0, len(set))
	for fp := range set {
		members = append(members, fp)
	}
	pipe := s.rdb.Pipeline()
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, fingerprintCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("fingerprint cache warm failed", "err", err)
	}
}

// Save inserts one accepted job into job_feed with status NEW, guarded
// against a fingerprint already present for this user (defense in depth —
// the pipeline deduplicates before calling Save, but a row written by an
// earlier run of the same day must still not double-insert).
func (s *Store) Save(ctx context.Context, userID string, job model.NormalizedJob) error {
	rawJSON, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`INSERT INTO job_feed (user_id, fingerprint, source, source_url, raw_data, status)
		 SELECT $1, $2, $3, $4, $5::jsonb, 'NEW'
		 WHERE NOT EXISTS (
		   SELECT 1 FROM job_feed WHERE user_id = $1 AND fingerprint = $2
		 )`,
		userID, job.Fingerprint, job.Source, job.SourceURL, string(rawJSON),
	)
	if err != nil {
		return fmt.Errorf("insert job_feed: %w", err)
	}

	// RowsAffected 0 means the guard fired — the job is already stored, so
	// Save is idempotent rather than failing.
	if tag.RowsAffected() > 0 && job.Fingerprint != "" {
		if err := s.rdb.SAdd(ctx, fingerprintKeyPrefix+userID, job.Fingerprint).Err(); err != nil {
			slog.Warn("fingerprint cache add failed", "err", err)
		}
	}
	return nil
}

// LoadActivePreferences fetches all is_active = true search preferences.
func LoadActivePreferences(ctx context.Context, pool *pgxpool.Pool) ([]model.Preferences, error) {
	rows, err := pool.Query(ctx,
		`SELECT id, user_id, keywords, locations, enabled_sources, red_flags,
		        max_jobs_per_source
		 FROM search_preferences
		 WHERE is_active = true`,
	)
	if err != nil {
		return nil, fmt.Errorf("query search_preferences: %w", err)
	}
	defer rows.Close()

	var prefs []model.Preferences
	for rows.Next() {
		var p model.Preferences
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Keywords, &p.Locations,
			&p.EnabledSources, &p.RedFlags, &p.MaxJobsPerSource,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		prefs = append(prefs, p)
	}

	return prefs, rows.Err()
}
