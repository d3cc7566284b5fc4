package ingest

import (
	"context"

	"jobtrail/ingest-service/internal/model"
)

// JobStore is the persistence collaborator the pipeline hands accepted jobs
// to. Implementations must tolerate concurrent Save calls for different jobs
// of the same user, though the pipeline itself saves sequentially.
type JobStore interface {
	// ExistingFingerprints returns the fingerprints of every posting already
	// stored for the user. Read-only input to one ingestion run.
	ExistingFingerprints(ctx context.Context, userID string) (map[string]struct{}, error)

	// Save persists one accepted job. Failure carries a reason and affects
	// only that job.
	Save(ctx context.Context, userID string, job model.NormalizedJob) error
}
