// Package model defines the canonical data structures shared by the
// ingestion pipeline and its collaborators.
package model

// JobType classifies the employment contract of a posting.
type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
	JobTypeInternship JobType = "INTERNSHIP"
	JobTypeFreelance  JobType = "FREELANCE"
	JobTypeUnknown    JobType = "UNKNOWN"
)

// RemoteOption classifies the work-location policy of a posting.
type RemoteOption string

const (
	RemoteOptionRemote  RemoteOption = "REMOTE"
	RemoteOptionHybrid  RemoteOption = "HYBRID"
	RemoteOptionOnsite  RemoteOption = "ONSITE"
	RemoteOptionUnknown RemoteOption = "UNKNOWN"
)

// NormalizedJob is the canonical offer shape every source adapter's output is
// mapped into. It is converted to JSON and stored in job_feed.raw_data (JSONB)
// alongside its fingerprint.
type NormalizedJob struct {
	Title        string       `json:"title"`
	Company      string       `json:"company"`
	Location     string       `json:"location"`
	Description  string       `json:"description,omitempty"`
	Requirements string       `json:"requirements,omitempty"`
	TechStack    []string     `json:"techStack,omitempty"`
	SalaryMin    *int         `json:"salaryMin,omitempty"`
	SalaryMax    *int         `json:"salaryMax,omitempty"`
	JobType      JobType      `json:"jobType"`
	RemoteOption RemoteOption `json:"remoteOption"`
	Source       string       `json:"source"`
	SourceURL    string       `json:"sourceUrl"`
	Fingerprint  string       `json:"fingerprint,omitempty"`
	PublishedAt  string       `json:"publishedAt,omitempty"`
}

// Preferences mirrors the search_preferences table row relevant to ingestion.
type Preferences struct {
	ID               string
	UserID           string
	Keywords         []string
	Locations        []string
	EnabledSources   []string // source names, in the order they were enabled
	RedFlags         []string // exclusion terms — any match discards the offer
	MaxJobsPerSource int
}

// SourceOutcome records how one adapter fared during a single ingestion run.
type SourceOutcome struct {
	Source  string `json:"source"`
	Count   int    `json:"count"`   // normalized candidates contributed
	Invalid int    `json:"invalid"` // raw records the normalizer rejected
	Flagged int    `json:"flagged"` // records discarded by red-flag terms
	Error   string `json:"error,omitempty"`
}

// IngestionReport is the read-only summary returned to the caller after one
// ingestion run. Invariant:
//
//	JobsFound = JobsSaved + DuplicatesFiltered + PersistenceFailures
type IngestionReport struct {
	RunID               string            `json:"runId"`
	UserID              string            `json:"userId"`
	JobsFound           int               `json:"jobsFound"`
	JobsSaved           int               `json:"jobsSaved"`
	DuplicatesFiltered  int               `json:"duplicatesFiltered"`
	PersistenceFailures int               `json:"persistenceFailures"`
	Sources             []SourceOutcome   `json:"sources"`
	Errors              map[string]string `json:"errors,omitempty"`
}

// Degraded reports whether every enabled source failed (or none were
// enabled) — the caller may surface this as a degraded-but-not-crashed run.
func (r *IngestionReport) Degraded() bool {
	if len(r.Sources) == 0 {
		return true
	}
	for _, s := range r.Sources {
		if s.Error == "" {
			return false
		}
	}
	return true
}
