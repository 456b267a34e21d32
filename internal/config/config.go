// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	GitHubToken  string
	GitHubOwner  string
	GitHubRepo   string
	GitHubFile   string
	GitHubBranch string

	CacheTTL   time.Duration
	ListenAddr string
	DBPath     string

	AdminKey     string
	SecretaryKey string
	AuthorityKey string
}

// Load reads configuration from environment variables and returns a validated
// Config. PAUTAPANEL_GITHUB_OWNER and PAUTAPANEL_GITHUB_REPO are required;
// PAUTAPANEL_GITHUB_TOKEN is required too since both reads and uploads go
// through the authenticated contents API.
// Optional variables with defaults: PAUTAPANEL_GITHUB_FILE (baseaud.csv),
// PAUTAPANEL_GITHUB_BRANCH (main), PAUTAPANEL_CACHE_TTL (1s),
// PAUTAPANEL_LISTEN_ADDR (127.0.0.1:8080), PAUTAPANEL_DB_PATH
// (pautapanel.db), and the three access keys.
func Load() (*Config, error) {
	token := os.Getenv("PAUTAPANEL_GITHUB_TOKEN")
	owner := os.Getenv("PAUTAPANEL_GITHUB_OWNER")
	repo := os.Getenv("PAUTAPANEL_GITHUB_REPO")

	if token == "" {
		return nil, fmt.Errorf("PAUTAPANEL_GITHUB_TOKEN is required")
	}
	if owner == "" {
		return nil, fmt.Errorf("PAUTAPANEL_GITHUB_OWNER is required")
	}
	if repo == "" {
		return nil, fmt.Errorf("PAUTAPANEL_GITHUB_REPO is required")
	}

	cacheTTL := time.Second
	if v, ok := os.LookupEnv("PAUTAPANEL_CACHE_TTL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("PAUTAPANEL_CACHE_TTL has invalid duration %q: %w", v, err)
		}
		cacheTTL = parsed
	}

	return &Config{
		GitHubToken:  token,
		GitHubOwner:  owner,
		GitHubRepo:   repo,
		GitHubFile:   envOr("PAUTAPANEL_GITHUB_FILE", "baseaud.csv"),
		GitHubBranch: envOr("PAUTAPANEL_GITHUB_BRANCH", "main"),
		CacheTTL:     cacheTTL,
		ListenAddr:   envOr("PAUTAPANEL_LISTEN_ADDR", "127.0.0.1:8080"),
		DBPath:       envOr("PAUTAPANEL_DB_PATH", "pautapanel.db"),
		AdminKey:     envOr("PAUTAPANEL_ADMIN_KEY", "sisbase"),
		SecretaryKey: envOr("PAUTAPANEL_SECRETARY_KEY", "sissecret"),
		AuthorityKey: envOr("PAUTAPANEL_AUTHORITY_KEY", "sisautoridades"),
	}, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
