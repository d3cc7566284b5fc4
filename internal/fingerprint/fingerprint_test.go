package fingerprint_test

import (
	"testing"

	"jobtrail/ingest-service/internal/fingerprint"
)

// ── Determinism ────────────────────────────────────────────────────────────

func TestJob_Deterministic(t *testing.T) {
	a := fingerprint.Job("Backend Engineer", "Acme", "Berlin")
	for i := 0; i < 100; i++ {
		if got := fingerprint.Job("Backend Engineer", "Acme", "Berlin"); got != a {
			t.Fatalf("call %d: fingerprint changed: %q != %q", i, got, a)
		}
	}
}

func TestJob_Length(t *testing.T) {
	got := fingerprint.Job("Backend Engineer", "Acme", "Berlin")
	if len(got) != 16 {
		t.Errorf("fingerprint length = %d, want 16 (got %q)", len(got), got)
	}
	for _, r := range got {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Errorf("fingerprint %q contains non-hex rune %q", got, r)
		}
	}
}

// ── Canonicalization ───────────────────────────────────────────────────────

func TestJob_CaseAndPunctuationInsensitive(t *testing.T) {
	base := fingerprint.Job("Backend Engineer", "Acme", "Berlin")
	variants := []struct {
		title, company, location string
	}{
		{"backend engineer", "acme", "berlin"},
		{"BACKEND ENGINEER", "ACME", "BERLIN"},
		{"Backend   Engineer", "Acme", "  Berlin  "},
		{"Backend Engineer!", "Acme,", "Berlin."},
		{"Backend\tEngineer", "Acme", "Berlin\n"},
	}
	for _, v := range variants {
		if got := fingerprint.Job(v.title, v.company, v.location); got != base {
			t.Errorf("Job(%q, %q, %q) = %q, want %q", v.title, v.company, v.location, got, base)
		}
	}
}

func TestJob_UnicodeNormalization(t *testing.T) {
	// Composed ü (U+00FC) vs decomposed u + combining diaeresis must agree
	// after NFKC, and casefolding must handle locale-sensitive letters.
	composed := fingerprint.Job("Entwickler", "Müller GmbH", "Köln")
	decomposed := fingerprint.Job("Entwickler", "Müller GmbH", "Köln")
	if composed != decomposed {
		t.Errorf("composed %q != decomposed %q", composed, decomposed)
	}

	upper := fingerprint.Job("Entwickler", "MÜLLER GMBH", "KÖLN")
	if composed != upper {
		t.Errorf("casefold: %q != %q", composed, upper)
	}

	// NFKC folds the ﬀ ligature into plain "ff".
	ligature := fingerprint.Job("Oﬀer Manager", "Acme", "Berlin")
	plain := fingerprint.Job("Offer Manager", "Acme", "Berlin")
	if ligature != plain {
		t.Errorf("ligature: %q != %q", ligature, plain)
	}
}

// ── Distinctness ───────────────────────────────────────────────────────────

func TestJob_DifferentFieldsDiffer(t *testing.T) {
	base := fingerprint.Job("Backend Engineer", "Acme", "Berlin")
	others := []struct {
		title, company, location string
	}{
		{"Frontend Engineer", "Acme", "Berlin"},
		{"Backend Engineer", "Globex", "Berlin"},
		{"Backend Engineer", "Acme", "Munich"},
	}
	for _, o := range others {
		if got := fingerprint.Job(o.title, o.company, o.location); got == base {
			t.Errorf("Job(%q, %q, %q) collided with base fingerprint", o.title, o.company, o.location)
		}
	}
}

// Field boundaries must matter: ("ab", "c") and ("a", "bc") are different
// postings even though their concatenation is equal.
func TestJob_FieldBoundaries(t *testing.T) {
	a := fingerprint.Job("ab", "c", "x")
	b := fingerprint.Job("a", "bc", "x")
	if a == b {
		t.Error("field contents leaked across the separator")
	}
}
