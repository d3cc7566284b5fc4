package ingest

import "jobtrail/ingest-service/internal/model"

// Dedup filters candidates against previously stored fingerprints and
// against duplicates within the same batch, in one pass. First-seen wins;
// the tie-break is purely positional. Pure — performs no I/O and does not
// mutate existing.
func Dedup(candidates []model.NormalizedJob, existing map[string]struct{}) (accepted []model.NormalizedJob, duplicates int) {
	seen := make(map[string]struct{}, len(existing)+len(candidates))
	for fp := range existing {
		seen[fp] = struct{}{}
	}

	accepted = make([]model.NormalizedJob, 0, len(candidates))
	for _, job := range candidates {
		key := job.Fingerprint
		if key == "" {
			key = job.SourceURL // uniqueness fallback
		}
		if _, dup := seen[key]; dup {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
		accepted = append(accepted, job)
	}
	return accepted, duplicates
}
