package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"

	"octokey/internal/domain"
)

// Backend names accepted by Generator and Agent.
const (
	BackendExec   = "exec"
	BackendNative = "native"
	BackendSocket = "socket"
)

// Config holds runtime wiring options for building the app.
//
// Tags carry the full OCTOKEY_ names and LoadConfig passes no prefix, so
// envconfig never falls back to a bare LOG_LEVEL or SSH_DIR.
type Config struct {
	// SSHDir is the key-storage directory; empty means $HOME/.ssh.
	SSHDir string `envconfig:"OCTOKEY_SSH_DIR"`
	// Remote is the handshake target used by check.
	Remote       string `envconfig:"OCTOKEY_REMOTE" default:"git@github.com"`
	KeyType      string `envconfig:"OCTOKEY_KEY_TYPE" default:"ed25519"`
	DefaultEmail string `envconfig:"OCTOKEY_DEFAULT_EMAIL" default:"your_email@example.com"`

	// Generator is exec or native; Agent is exec or socket.
	Generator string `envconfig:"OCTOKEY_GENERATOR" default:"exec"`
	Agent     string `envconfig:"OCTOKEY_AGENT" default:"exec"`

	SSHKeygen string `envconfig:"OCTOKEY_SSH_KEYGEN" default:"ssh-keygen"`
	SSHAdd    string `envconfig:"OCTOKEY_SSH_ADD" default:"ssh-add"`
	SSH       string `envconfig:"OCTOKEY_SSH" default:"ssh"`

	LogLevel string `envconfig:"OCTOKEY_LOG_LEVEL" default:"warn"`

	// AuthSock is $SSH_AUTH_SOCK, used by the socket agent backend.
	AuthSock string `ignored:"true"`
}

// LoadConfig reads Config from OCTOKEY_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg.AuthSock = os.Getenv("SSH_AUTH_SOCK")
	return cfg, cfg.Validate()
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch c.Generator {
	case BackendExec, BackendNative:
	default:
		return fmt.Errorf("OCTOKEY_GENERATOR: unknown backend %q (want %s or %s)", c.Generator, BackendExec, BackendNative)
	}
	switch c.Agent {
	case BackendExec, BackendSocket:
	default:
		return fmt.Errorf("OCTOKEY_AGENT: unknown backend %q (want %s or %s)", c.Agent, BackendExec, BackendSocket)
	}
	if c.Generator == BackendNative && domain.KeyType(c.KeyType) != domain.KeyTypeEd25519 {
		return fmt.Errorf("OCTOKEY_KEY_TYPE: native generator only supports %s", domain.KeyTypeEd25519)
	}
	return nil
}

// KeyDir resolves the key-storage directory: SSHDir if set, otherwise
// ~/.ssh. An unresolvable home directory is reported as
// domain.ErrEnvironmentUnavailable.
func (c Config) KeyDir() (string, error) {
	if c.SSHDir != "" {
		return c.SSHDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: get home directory: %w", domain.ErrEnvironmentUnavailable, err)
	}
	return filepath.Join(home, ".ssh"), nil
}
