package app_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"octokey/internal/app"
	"octokey/internal/domain"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := app.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "git@github.com", cfg.Remote)
	assert.Equal(t, "ed25519", cfg.KeyType)
	assert.Equal(t, "your_email@example.com", cfg.DefaultEmail)
	assert.Equal(t, app.BackendExec, cfg.Generator)
	assert.Equal(t, app.BackendExec, cfg.Agent)
	assert.Equal(t, "ssh-keygen", cfg.SSHKeygen)
	assert.Equal(t, "ssh-add", cfg.SSHAdd)
	assert.Equal(t, "ssh", cfg.SSH)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("OCTOKEY_SSH_DIR", "/keys")
	t.Setenv("OCTOKEY_REMOTE", "git@gitlab.com")
	t.Setenv("OCTOKEY_GENERATOR", "native")
	t.Setenv("OCTOKEY_AGENT", "socket")
	t.Setenv("SSH_AUTH_SOCK", "/tmp/agent.sock")

	cfg, err := app.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/keys", cfg.SSHDir)
	assert.Equal(t, "git@gitlab.com", cfg.Remote)
	assert.Equal(t, app.BackendNative, cfg.Generator)
	assert.Equal(t, app.BackendSocket, cfg.Agent)
	assert.Equal(t, "/tmp/agent.sock", cfg.AuthSock)
}

func TestLoadConfig_IgnoresUnprefixedEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "trace")
	t.Setenv("SSH_DIR", "/elsewhere")
	t.Setenv("AGENT", "forwarded")
	t.Setenv("GENERATOR", "native")
	t.Setenv("REMOTE", "git@example.org")
	t.Setenv("SSH", "/usr/local/bin/ssh")

	cfg, err := app.LoadConfig()
	require.NoError(t, err)

	assert.Empty(t, cfg.SSHDir)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, app.BackendExec, cfg.Agent)
	assert.Equal(t, app.BackendExec, cfg.Generator)
	assert.Equal(t, "git@github.com", cfg.Remote)
	assert.Equal(t, "ssh", cfg.SSH)
}

func TestLoadConfig_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("OCTOKEY_AGENT", "carrier-pigeon")
	_, err := app.LoadConfig()
	assert.ErrorContains(t, err, "OCTOKEY_AGENT")
}

func TestConfig_Validate_NativeNeedsEd25519(t *testing.T) {
	cfg := app.Config{Generator: app.BackendNative, Agent: app.BackendExec, KeyType: "rsa"}
	assert.Error(t, cfg.Validate())
}

func TestConfig_KeyDir(t *testing.T) {
	t.Setenv("HOME", "/home/octo")

	dir, err := app.Config{}.KeyDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/octo", ".ssh"), dir)

	dir, err = app.Config{SSHDir: "/elsewhere"}.KeyDir()
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere", dir)
}

func TestConfig_KeyDir_NoHome(t *testing.T) {
	t.Setenv("HOME", "")

	_, err := app.Config{}.KeyDir()
	assert.ErrorIs(t, err, domain.ErrEnvironmentUnavailable)
}
