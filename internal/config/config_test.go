package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every PAUTAPANEL_ env var that Load() reads.
var allConfigKeys = []string{
	"PAUTAPANEL_GITHUB_TOKEN",
	"PAUTAPANEL_GITHUB_OWNER",
	"PAUTAPANEL_GITHUB_REPO",
	"PAUTAPANEL_GITHUB_FILE",
	"PAUTAPANEL_GITHUB_BRANCH",
	"PAUTAPANEL_CACHE_TTL",
	"PAUTAPANEL_LISTEN_ADDR",
	"PAUTAPANEL_DB_PATH",
	"PAUTAPANEL_ADMIN_KEY",
	"PAUTAPANEL_SECRETARY_KEY",
	"PAUTAPANEL_AUTHORITY_KEY",
}

// isolateConfigEnv saves and unsets all PAUTAPANEL_ env vars so tests don't
// inherit values from the host environment. t.Cleanup restores original
// values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func setRequired(t *testing.T) {
	t.Setenv("PAUTAPANEL_GITHUB_TOKEN", "ghp_test123")
	t.Setenv("PAUTAPANEL_GITHUB_OWNER", "tjowner")
	t.Setenv("PAUTAPANEL_GITHUB_REPO", "pauta-data")
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	setRequired(t)
	t.Setenv("PAUTAPANEL_GITHUB_FILE", "outra.csv")
	t.Setenv("PAUTAPANEL_GITHUB_BRANCH", "producao")
	t.Setenv("PAUTAPANEL_CACHE_TTL", "5s")
	t.Setenv("PAUTAPANEL_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("PAUTAPANEL_DB_PATH", "/tmp/test.db")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "ghp_test123", cfg.GitHubToken)
	assert.Equal(t, "tjowner", cfg.GitHubOwner)
	assert.Equal(t, "pauta-data", cfg.GitHubRepo)
	assert.Equal(t, "outra.csv", cfg.GitHubFile)
	assert.Equal(t, "producao", cfg.GitHubBranch)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	setRequired(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "baseaud.csv", cfg.GitHubFile)
	assert.Equal(t, "main", cfg.GitHubBranch)
	assert.Equal(t, time.Second, cfg.CacheTTL)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "pautapanel.db", cfg.DBPath)
	assert.Equal(t, "sisbase", cfg.AdminKey)
	assert.Equal(t, "sissecret", cfg.SecretaryKey)
	assert.Equal(t, "sisautoridades", cfg.AuthorityKey)
}

func TestLoad_MissingTokenFails(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("PAUTAPANEL_GITHUB_OWNER", "tjowner")
	t.Setenv("PAUTAPANEL_GITHUB_REPO", "pauta-data")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAUTAPANEL_GITHUB_TOKEN")
}

func TestLoad_InvalidTTLFails(t *testing.T) {
	isolateConfigEnv(t)
	setRequired(t)
	t.Setenv("PAUTAPANEL_CACHE_TTL", "banana")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAUTAPANEL_CACHE_TTL")
}
