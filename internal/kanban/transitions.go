// Package kanban defines the status state machine for job_feed entries.
//
// Valid status graph:
//
//	NEW ──► TO_APPLY ──► APPLIED ──► INTERVIEW ──► OFFER ──► HIRED
//	 │          │            │             │           │
//	 │          │            └─────────────┴───────────┴──► REJECTED
//	 └──────────┴──► DISMISSED
//
// HIRED, REJECTED and DISMISSED are terminal states. Freshly ingested jobs
// enter the feed as NEW.
package kanban

import "fmt"

// Status values mirror the job_status enum in PostgreSQL.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusToApply   Status = "TO_APPLY"
	StatusApplied   Status = "APPLIED"
	StatusInterview Status = "INTERVIEW"
	StatusOffer     Status = "OFFER"
	StatusHired     Status = "HIRED"
	StatusRejected  Status = "REJECTED"
	StatusDismissed Status = "DISMISSED"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[Status][]Status{
	StatusNew:       {StatusToApply, StatusDismissed},
	StatusToApply:   {StatusApplied, StatusDismissed},
	StatusApplied:   {StatusInterview, StatusRejected},
	StatusInterview: {StatusOffer, StatusRejected},
	StatusOffer:     {StatusHired, StatusRejected},
	// HIRED, REJECTED and DISMISSED are terminal — no outgoing transitions
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusNew, StatusToApply, StatusApplied, StatusInterview,
		StatusOffer, StatusHired, StatusRejected, StatusDismissed:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted by the
// state machine.
func IsTransitionAllowed(from, to Status) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false // terminal state — no outgoing transitions
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsHired returns true when status is HIRED (triggers search-preference
// archival).
func IsHired(s Status) bool { return s == StatusHired }
