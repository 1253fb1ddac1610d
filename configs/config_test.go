package configs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-labs/assistant-mcp/configs"
)

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_testtoken")
	t.Setenv("GOOGLE_TOKEN_FILE", "/tmp/creds.json")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := configs.Load()
	require.NoError(t, err)

	assert.Equal(t, "ghp_testtoken", cfg.GitHubToken)
	assert.Equal(t, "/tmp/creds.json", cfg.GoogleTokenFile)
	assert.Equal(t, "https://api.github.com", cfg.GitHubAPIURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPClientTimeout)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	os.Unsetenv("GITHUB_TOKEN")
	os.Unsetenv("ASSISTANT_MCP_GITHUB_TOKEN")
	os.Unsetenv("CONFIG_FILE")
	os.Unsetenv("ASSISTANT_MCP_CONFIG_FILE")

	_, err := configs.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, configs.ErrMissingGitHubToken)
}

func TestLoad_FileFillsGaps(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assistant-mcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"github_token: file-token\ngoogle_token_file: /opt/google/token.json\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("GITHUB_TOKEN", "")
	os.Unsetenv("GITHUB_TOKEN")
	os.Unsetenv("ASSISTANT_MCP_GITHUB_TOKEN")
	os.Unsetenv("GOOGLE_TOKEN_FILE")
	os.Unsetenv("ASSISTANT_MCP_GOOGLE_TOKEN_FILE")

	cfg, err := configs.Load()
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.GitHubToken)
	assert.Equal(t, "/opt/google/token.json", cfg.GoogleTokenFile)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assistant-mcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("github_token: file-token\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("GITHUB_TOKEN", "env-token")

	cfg, err := configs.Load()
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.GitHubToken)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("GITHUB_TOKEN", "ghp_testtoken")

	_, err := configs.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestParsedLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"bogus", "INFO"},
	}
	for _, tc := range tests {
		cfg := configs.Config{LogLevel: tc.in}
		assert.Equal(t, tc.want, cfg.ParsedLogLevel().String(), "level %q", tc.in)
	}
}
