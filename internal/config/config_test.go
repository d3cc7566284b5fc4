package config_test

import (
	"testing"

	"jobtrail/ingest-service/internal/config"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobtrail")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	if _, err := config.Load(); err == nil {
		t.Error("expected error when DATABASE_URL is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("SCRAPE_INTERVAL_HOURS", "")
	t.Setenv("MAX_CONCURRENT_SOURCES", "")
	t.Setenv("SOURCE_TIMEOUT_SECONDS", "")
	t.Setenv("INGEST_PORT", "")
	t.Setenv("ADZUNA_COUNTRY", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ScrapeIntervalHours != 6 {
		t.Errorf("ScrapeIntervalHours = %d, want 6", cfg.ScrapeIntervalHours)
	}
	if cfg.MaxConcurrentSources != 5 {
		t.Errorf("MaxConcurrentSources = %d, want 5", cfg.MaxConcurrentSources)
	}
	if cfg.SourceTimeoutSecs != 30 {
		t.Errorf("SourceTimeoutSecs = %d, want 30", cfg.SourceTimeoutSecs)
	}
	if cfg.Port != "8081" {
		t.Errorf("Port = %q, want 8081", cfg.Port)
	}
	if cfg.AdzunaCountry != "fr" {
		t.Errorf("AdzunaCountry = %q, want fr", cfg.AdzunaCountry)
	}
}

func TestLoad_RejectsNonPositiveInterval(t *testing.T) {
	setRequired(t)
	for _, bad := range []string{"0", "-3", "six"} {
		t.Setenv("SCRAPE_INTERVAL_HOURS", bad)
		if _, err := config.Load(); err == nil {
			t.Errorf("SCRAPE_INTERVAL_HOURS=%q should be rejected", bad)
		}
	}
}
