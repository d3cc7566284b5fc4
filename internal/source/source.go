// Package source defines the adapter contract for external job boards and
// the registry the orchestrator resolves enabled sources from.
//
// Each adapter queries one board and converts its site-specific JSON into
// RawPosting envelopes. The heterogeneous board schema never crosses the
// adapter boundary — the normalizer only ever sees RawPosting.
package source

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
)

// RawPosting is the loose, adapter-filled envelope for one fetched record.
// Fields an adapter cannot supply stay zero; the normalizer applies defaults.
// No invariants hold beyond "came from exactly one adapter call".
type RawPosting struct {
	Title        string
	Company      string
	Location     string
	Description  string
	Requirements string
	SalaryText   string   // free-form, e.g. "100k - 150k" or "$120,000"
	JobTypeText  string   // board's own vocabulary, e.g. "permanent"
	RemoteText   string   // board's own vocabulary, e.g. "hybrid"
	Tags         []string // tech/skill tags as returned by the board
	URL          string
	PublishedAt  string
}

// Adapter fetches raw postings from one external job board.
//
// Fetch must report network and API failures as an error value, never a
// panic, and must respect maxResults even when paginating internally. Calls
// are independent and safe to run concurrently.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, keywords, location string, maxResults int) ([]RawPosting, error)
}

// ─── Error classification ────────────────────────────────────────────────────

// errTransient marks failures worth one retry (timeouts, 429, 5xx).
type errTransient struct{ err error }

func (e *errTransient) Error() string { return e.err.Error() }
func (e *errTransient) Unwrap() error { return e.err }

// Transient wraps err so IsTransient reports true for it.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &errTransient{err: err}
}

// IsTransient reports whether err is a network-class failure the
// orchestrator may retry once: an explicitly marked transient error, a
// deadline expiry, or a net.Error timeout.
func IsTransient(err error) bool {
	var te *errTransient
	if errors.As(err, &te) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// ─── Registry ────────────────────────────────────────────────────────────────

// Registry maps source names to adapters. Which sources actually run is
// decided entirely by the caller's preferences; the registry imposes no
// default set.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry builds a registry from the given adapters, keyed by Name().
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Name()] = a
	}
	return r
}

// Get resolves a source name to its adapter.
func (r *Registry) Get(name string) (Adapter, error) {
	a, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("unknown source %q", name)
	}
	return a, nil
}

// Names returns all registered source names, sorted for stable logging.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
