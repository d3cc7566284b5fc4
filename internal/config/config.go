// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime configuration for the ingest service.
type Config struct {
	Port                 string
	DatabaseURL          string
	RedisURL             string
	AdzunaAppID          string
	AdzunaAppKey         string
	AdzunaCountry        string // e.g. "fr", "gb", "us"
	ScrapeIntervalHours  int    // how often the cron job fires
	MaxConcurrentSources int    // fan-out concurrency ceiling
	SourceTimeoutSecs    int    // independent per-source timeout
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	interval, err := positiveInt("SCRAPE_INTERVAL_HOURS", 6)
	if err != nil {
		return nil, err
	}

	maxConcurrent, err := positiveInt("MAX_CONCURRENT_SOURCES", 5)
	if err != nil {
		return nil, err
	}

	sourceTimeout, err := positiveInt("SOURCE_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}

	country := os.Getenv("ADZUNA_COUNTRY")
	if country == "" {
		country = "fr"
	}

	port := os.Getenv("INGEST_PORT")
	if port == "" {
		port = "8081"
	}

	return &Config{
		Port:                 port,
		DatabaseURL:          dbURL,
		RedisURL:             redisURL,
		AdzunaAppID:          os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey:         os.Getenv("ADZUNA_APP_KEY"),
		AdzunaCountry:        country,
		ScrapeIntervalHours:  interval,
		MaxConcurrentSources: maxConcurrent,
		SourceTimeoutSecs:    sourceTimeout,
	}, nil
}

func positiveInt(name string, def int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return v, nil
}
