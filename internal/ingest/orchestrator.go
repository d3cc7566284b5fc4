// Package ingest runs the job ingestion pipeline: concurrent fan-out to the
// enabled source adapters, normalization, fingerprinting, deduplication and
// persistence, summarised in an IngestionReport.
//
// One source's failure never aborts the others; scraping, normalization and
// persistence errors are all recovered locally and surfaced in the report.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"jobtrail/ingest-service/internal/fingerprint"
	"jobtrail/ingest-service/internal/model"
	"jobtrail/ingest-service/internal/normalize"
	"jobtrail/ingest-service/internal/source"
)

const (
	defaultMaxConcurrentSources = 5
	defaultSourceTimeout        = 30 * time.Second
	defaultRetryBackoff         = 2 * time.Second
	defaultMaxJobsPerSource     = 50
)

// Options tune the orchestrator's fan-out. Zero values pick the defaults.
type Options struct {
	MaxConcurrentSources int           // concurrency ceiling across adapters
	SourceTimeout        time.Duration // independent per-adapter timeout
	RetryBackoff         time.Duration // pause before the single retry
}

func (o Options) withDefaults() Options {
	if o.MaxConcurrentSources <= 0 {
		o.MaxConcurrentSources = defaultMaxConcurrentSources
	}
	if o.SourceTimeout <= 0 {
		o.SourceTimeout = defaultSourceTimeout
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = defaultRetryBackoff
	}
	return o
}

// Orchestrator owns one ingestion run at a time. Its collaborators are
// injected, never global.
type Orchestrator struct {
	registry *source.Registry
	store    JobStore
	opts     Options
}

// NewOrchestrator wires the pipeline to its source registry and job store.
func NewOrchestrator(registry *source.Registry, store JobStore, opts Options) *Orchestrator {
	return &Orchestrator{registry: registry, store: store, opts: opts.withDefaults()}
}

// sourceResult buffers one adapter's full contribution before merging, so
// merge order never depends on wall-clock completion order.
type sourceResult struct {
	outcome model.SourceOutcome
	jobs    []model.NormalizedJob
}

// Ingest runs the full pipeline for one user. It returns an error only for
// programmer-level mistakes (invalid preferences) or a failing fingerprint
// lookup; per-source, per-record and per-save failures end up in the report.
func (o *Orchestrator) Ingest(ctx context.Context, prefs model.Preferences) (*model.IngestionReport, error) {
	if prefs.UserID == "" {
		return nil, fmt.Errorf("preferences missing user id")
	}
	maxJobs := prefs.MaxJobsPerSource
	if maxJobs <= 0 {
		maxJobs = defaultMaxJobsPerSource
	}

	report := &model.IngestionReport{
		RunID:  uuid.NewString(),
		UserID: prefs.UserID,
		Errors: make(map[string]string),
	}

	existing, err := o.store.ExistingFingerprints(ctx, prefs.UserID)
	if err != nil {
		return nil, fmt.Errorf("existing fingerprints: %w", err)
	}

	// ── Fan-out ────────────────────────────────────────────────────────────
	keywords := strings.Join(prefs.Keywords, " ")
	results := make([]sourceResult, len(prefs.EnabledSources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.MaxConcurrentSources)
	for i, name := range prefs.EnabledSources {
		i, name := i, name
		g.Go(func() error {
			results[i] = o.scrapeSource(gctx, name, keywords, prefs, maxJobs)
			return nil // fail-soft: errors live in the outcome, not here
		})
	}
	g.Wait()

	// ── Merge, fingerprint, dedup ──────────────────────────────────────────
	var candidates []model.NormalizedJob
	for _, res := range results {
		report.Sources = append(report.Sources, res.outcome)
		if res.outcome.Error != "" {
			report.Errors[res.outcome.Source] = res.outcome.Error
		}
		candidates = append(candidates, res.jobs...)
	}
	for i := range candidates {
		candidates[i].Fingerprint = fingerprint.Job(
			candidates[i].Title, candidates[i].Company, candidates[i].Location)
	}
	report.JobsFound = len(candidates)

	accepted, duplicates := Dedup(candidates, existing)
	report.DuplicatesFiltered = duplicates

	// ── Persist ────────────────────────────────────────────────────────────
	for _, job := range accepted {
		if err := o.store.Save(ctx, prefs.UserID, job); err != nil {
			report.PersistenceFailures++
			report.Errors["persistence:"+job.SourceURL] = err.Error()
			continue
		}
		report.JobsSaved++
	}

	return report, nil
}

// scrapeSource runs one adapter task: fetch (with retry), normalize, filter.
// All failures are folded into the returned outcome.
func (o *Orchestrator) scrapeSource(ctx context.Context, name, keywords string, prefs model.Preferences, maxJobs int) sourceResult {
	res := sourceResult{outcome: model.SourceOutcome{Source: name}}

	adapter, err := o.registry.Get(name)
	if err != nil {
		res.outcome.Error = err.Error()
		return res
	}

	locations := prefs.Locations
	if len(locations) == 0 {
		locations = []string{""}
	}

	var raw []source.RawPosting
	for _, location := range locations {
		if len(raw) >= maxJobs {
			break
		}
		batch, err := o.fetchWithRetry(ctx, adapter, keywords, location, maxJobs-len(raw))
		raw = append(raw, batch...)
		if err != nil {
			// Keep whatever this source already yielded; the error is
			// recorded either way.
			res.outcome.Error = err.Error()
			break
		}
	}

	for _, r := range raw {
		job, err := normalize.Job(r, name)
		if err != nil {
			res.outcome.Invalid++
			continue
		}
		if normalize.ContainsRedFlag(job, prefs.RedFlags) {
			res.outcome.Flagged++
			continue
		}
		res.jobs = append(res.jobs, job)
	}
	res.outcome.Count = len(res.jobs)
	return res
}

// fetchWithRetry calls the adapter under its own timeout, retrying exactly
// once after a short backoff when the failure is network-class. Permanent
// errors (bad credentials, malformed response) are not retried.
func (o *Orchestrator) fetchWithRetry(ctx context.Context, adapter source.Adapter, keywords, location string, maxResults int) ([]source.RawPosting, error) {
	raw, err := o.fetchOnce(ctx, adapter, keywords, location, maxResults)
	if err == nil || !source.IsTransient(err) {
		return raw, err
	}
	if ctx.Err() != nil {
		return raw, err // overall run cancelled — don't retry
	}

	select {
	case <-ctx.Done():
		return raw, err
	case <-time.After(o.opts.RetryBackoff):
	}
	return o.fetchOnce(ctx, adapter, keywords, location, maxResults)
}

func (o *Orchestrator) fetchOnce(ctx context.Context, adapter source.Adapter, keywords, location string, maxResults int) ([]source.RawPosting, error) {
	fctx, cancel := context.WithTimeout(ctx, o.opts.SourceTimeout)
	defer cancel()
	return adapter.Fetch(fctx, keywords, location, maxResults)
}
