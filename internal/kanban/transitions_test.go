package kanban_test

import (
	"testing"

	"jobtrail/ingest-service/internal/kanban"
)

var allStatuses = []kanban.Status{
	kanban.StatusNew,
	kanban.StatusToApply,
	kanban.StatusApplied,
	kanban.StatusInterview,
	kanban.StatusOffer,
	kanban.StatusHired,
	kanban.StatusRejected,
	kanban.StatusDismissed,
}

// ── ParseStatus ────────────────────────────────────────────────────────────

func TestParseStatus_ValidValues(t *testing.T) {
	for _, s := range allStatuses {
		got, err := kanban.ParseStatus(string(s))
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if got != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseStatus_InvalidValue(t *testing.T) {
	_, err := kanban.ParseStatus("UNKNOWN")
	if err == nil {
		t.Error("ParseStatus(\"UNKNOWN\") expected error, got nil")
	}
}

func TestParseStatus_EmptyString(t *testing.T) {
	_, err := kanban.ParseStatus("")
	if err == nil {
		t.Error("ParseStatus(\"\") expected error, got nil")
	}
}

// ParseStatus must be case-sensitive — lowercase variants must not be valid.
func TestParseStatus_CaseSensitive(t *testing.T) {
	lowercase := []string{"new", "to_apply", "applied", "interview", "offer", "hired", "rejected", "dismissed"}
	for _, s := range lowercase {
		_, err := kanban.ParseStatus(s)
		if err == nil {
			t.Errorf("ParseStatus(%q) should reject lowercase value, got nil error", s)
		}
	}
}

// ── IsTransitionAllowed — valid (forward) transitions ─────────────────────

func TestIsTransitionAllowed_ValidForward(t *testing.T) {
	cases := []struct {
		from kanban.Status
		to   kanban.Status
	}{
		{kanban.StatusNew, kanban.StatusToApply},
		{kanban.StatusToApply, kanban.StatusApplied},
		{kanban.StatusApplied, kanban.StatusInterview},
		{kanban.StatusInterview, kanban.StatusOffer},
		{kanban.StatusOffer, kanban.StatusHired},
	}
	for _, c := range cases {
		if !kanban.IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s → %s) should be true", c.from, c.to)
		}
	}
}

// ── Dismissal and rejection paths ──────────────────────────────────────────

func TestIsTransitionAllowed_DismissBeforeApplying(t *testing.T) {
	for _, from := range []kanban.Status{kanban.StatusNew, kanban.StatusToApply} {
		if !kanban.IsTransitionAllowed(from, kanban.StatusDismissed) {
			t.Errorf("IsTransitionAllowed(%s → DISMISSED) should be true", from)
		}
	}
	// Once applied, the posting can be rejected but no longer dismissed.
	for _, from := range []kanban.Status{kanban.StatusApplied, kanban.StatusInterview, kanban.StatusOffer} {
		if kanban.IsTransitionAllowed(from, kanban.StatusDismissed) {
			t.Errorf("IsTransitionAllowed(%s → DISMISSED) should be false", from)
		}
		if !kanban.IsTransitionAllowed(from, kanban.StatusRejected) {
			t.Errorf("IsTransitionAllowed(%s → REJECTED) should be true", from)
		}
	}
}

// ── Terminal states have no outgoing transitions ───────────────────────────

func TestIsTransitionAllowed_FromTerminal(t *testing.T) {
	terminals := []kanban.Status{kanban.StatusHired, kanban.StatusRejected, kanban.StatusDismissed}
	for _, from := range terminals {
		for _, to := range allStatuses {
			if kanban.IsTransitionAllowed(from, to) {
				t.Errorf(
					"IsTransitionAllowed(%s → %s) must be false: %s is a terminal state",
					from, to, from,
				)
			}
		}
	}
}

// NEW is the mandatory initial state written by ingestion — verify it is
// never reachable from any other state.
func TestIsTransitionAllowed_NewIsNeverReachable(t *testing.T) {
	for _, from := range allStatuses {
		if kanban.IsTransitionAllowed(from, kanban.StatusNew) {
			t.Errorf(
				"IsTransitionAllowed(%s → NEW) must be false: NEW is only an initial state",
				from,
			)
		}
	}
}

// ── IsHired ────────────────────────────────────────────────────────────────

func TestIsHired_StrictEquality(t *testing.T) {
	if !kanban.IsHired(kanban.StatusHired) {
		t.Error("IsHired(HIRED) must be true")
	}
	for _, s := range allStatuses {
		if s == kanban.StatusHired {
			continue
		}
		if kanban.IsHired(s) {
			t.Errorf("IsHired(%s) must be false", s)
		}
	}
}
