package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	in := Config{
		OrgID:     "org-1",
		AgentID:   "agent-1",
		KID:       "agent-1-key-v1",
		BaseURL:   "https://api.example.com",
		AgentName: "ci-bot",
		Token:     "tok",
	}
	require.NoError(t, in.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &in, out)
}

func TestLoad_DefaultsBaseURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"org_id":"o","agent_id":"a","kid":"k","agent_name":"n"}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestResolveBaseURL(t *testing.T) {
	cfg := &Config{BaseURL: "https://configured.example.com"}
	assert.Equal(t, "https://configured.example.com", cfg.ResolveBaseURL())

	t.Setenv(EnvBaseURL, "https://env.example.com")
	assert.Equal(t, "https://env.example.com", cfg.ResolveBaseURL())

	t.Setenv(EnvBaseURL, "")
	assert.Equal(t, DefaultBaseURL, (&Config{}).ResolveBaseURL())
}

func TestDir(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	dir, err := Dir("agent-7")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".elydora", "agent-7"), dir)
}
