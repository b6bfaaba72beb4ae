package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"

	"octokey/internal/domain"
)

// SocketAgent manages identities by speaking the agent protocol directly to
// the ssh-agent listening on a unix socket.
type SocketAgent struct {
	socket string
	log    *zap.Logger
}

// NewSocketAgent returns a SocketAgent for socket, normally $SSH_AUTH_SOCK.
func NewSocketAgent(socket string, log *zap.Logger) *SocketAgent {
	if log == nil {
		log = zap.NewNop()
	}
	return &SocketAgent{socket: socket, log: log}
}

// agentConnection wraps an agent client with its connection for cleanup.
type agentConnection struct {
	agent.ExtendedAgent
	conn io.Closer
}

func (a *agentConnection) Close() error { return a.conn.Close() }

func (s *SocketAgent) connect(ctx context.Context) (*agentConnection, error) {
	if s.socket == "" {
		return nil, fmt.Errorf("%w: SSH_AUTH_SOCK is not set", domain.ErrEnvironmentUnavailable)
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", s.socket)
	if err != nil {
		return nil, fmt.Errorf("%w: connect to ssh-agent: %w", domain.ErrExternalProcess, err)
	}
	return &agentConnection{ExtendedAgent: agent.NewClient(conn), conn: conn}, nil
}

// LoadIdentity adds the unencrypted private key at privateKeyPath.
// Encrypted keys need ssh-add to prompt, so they are rejected here.
func (s *SocketAgent) LoadIdentity(ctx context.Context, privateKeyPath string) error {
	pem, err := os.ReadFile(privateKeyPath) //nolint:gosec // path is confined to the key directory
	if err != nil {
		return fmt.Errorf("%w: read private key: %w", domain.ErrIOFailed, err)
	}
	key, err := ssh.ParseRawPrivateKey(pem)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			return fmt.Errorf("%w: %s is passphrase protected; use OCTOKEY_AGENT=exec", domain.ErrExternalProcess, privateKeyPath)
		}
		return fmt.Errorf("%w: parse private key: %w", domain.ErrExternalProcess, err)
	}

	ag, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer ag.Close()

	if err := ag.Add(agent.AddedKey{PrivateKey: key, Comment: filepath.Base(privateKeyPath)}); err != nil {
		return fmt.Errorf("%w: add identity: %w", domain.ErrExternalProcess, err)
	}
	s.log.Debug("agent identity added", zap.String("path", privateKeyPath))
	return nil
}

// FlushIdentities removes every identity from the agent.
func (s *SocketAgent) FlushIdentities(ctx context.Context) error {
	ag, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer ag.Close()

	if err := ag.RemoveAll(); err != nil {
		return fmt.Errorf("%w: remove all identities: %w", domain.ErrExternalProcess, err)
	}
	s.log.Debug("agent identities removed")
	return nil
}

// Compile-time assertion that SocketAgent implements domain.Agent.
var _ domain.Agent = (*SocketAgent)(nil)
