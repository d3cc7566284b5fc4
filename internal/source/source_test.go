package source_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"jobtrail/ingest-service/internal/source"
)

// ── Transient classification ───────────────────────────────────────────────

func TestIsTransient_MarkedError(t *testing.T) {
	err := source.Transient(errors.New("503 from upstream"))
	if !source.IsTransient(err) {
		t.Error("explicitly marked error must be transient")
	}
	// Wrapping must not hide the marker.
	wrapped := fmt.Errorf("page 2: %w", err)
	if !source.IsTransient(wrapped) {
		t.Error("wrapped transient error must stay transient")
	}
}

func TestIsTransient_DeadlineExceeded(t *testing.T) {
	if !source.IsTransient(context.DeadlineExceeded) {
		t.Error("deadline expiry must be transient")
	}
}

func TestIsTransient_PermanentErrors(t *testing.T) {
	for _, err := range []error{
		errors.New("bad credentials"),
		context.Canceled,
	} {
		if source.IsTransient(err) {
			t.Errorf("%v must not be transient", err)
		}
	}
}

func TestTransient_Nil(t *testing.T) {
	if source.Transient(nil) != nil {
		t.Error("Transient(nil) must be nil")
	}
}

// ── Registry ───────────────────────────────────────────────────────────────

type stubAdapter struct{ name string }

func (s *stubAdapter) Name() string { return s.name }
func (s *stubAdapter) Fetch(ctx context.Context, keywords, location string, maxResults int) ([]source.RawPosting, error) {
	return nil, nil
}

func TestRegistry_GetAndNames(t *testing.T) {
	r := source.NewRegistry(&stubAdapter{name: "bravo"}, &stubAdapter{name: "alpha"})

	a, err := r.Get("alpha")
	if err != nil || a.Name() != "alpha" {
		t.Errorf("Get(alpha) = %v, %v", a, err)
	}

	if _, err := r.Get("missing"); err == nil {
		t.Error("Get(missing) expected error, got nil")
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "bravo" {
		t.Errorf("Names() = %v, want sorted [alpha bravo]", names)
	}
}
