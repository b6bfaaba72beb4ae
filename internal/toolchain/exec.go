package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"octokey/internal/domain"
)

// ExecOptions configures an Exec toolchain.
type ExecOptions struct {
	KeygenPath string // defaults to "ssh-keygen"
	AddPath    string // defaults to "ssh-add"
	SSHPath    string // defaults to "ssh"
	Remote     string // handshake target, e.g. git@github.com

	// Streams handed to ssh-keygen and ssh-add. ssh-add may prompt for a
	// passphrase when switching to an encrypted key.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Log *zap.Logger
}

// Exec drives the OpenSSH command-line tools.
type Exec struct {
	opts ExecOptions
	log  *zap.Logger
}

// NewExec returns an Exec toolchain.
func NewExec(opts ExecOptions) *Exec {
	if opts.KeygenPath == "" {
		opts.KeygenPath = "ssh-keygen"
	}
	if opts.AddPath == "" {
		opts.AddPath = "ssh-add"
	}
	if opts.SSHPath == "" {
		opts.SSHPath = "ssh"
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Exec{opts: opts, log: log}
}

// GenerateKeyPair runs ssh-keygen -t TYPE -C COMMENT -f PATH -N PASSPHRASE.
func (e *Exec) GenerateKeyPair(ctx context.Context, req domain.GenerateRequest) error {
	return e.run(ctx, e.opts.KeygenPath,
		"-t", string(req.Type),
		"-C", req.Comment,
		"-f", req.Path,
		"-N", req.Passphrase,
	)
}

// LoadIdentity runs ssh-add PATH.
func (e *Exec) LoadIdentity(ctx context.Context, privateKeyPath string) error {
	return e.run(ctx, e.opts.AddPath, privateKeyPath)
}

// FlushIdentities runs ssh-add -D.
func (e *Exec) FlushIdentities(ctx context.Context) error {
	return e.run(ctx, e.opts.AddPath, "-D")
}

// Authenticate runs ssh -T REMOTE and captures both output streams.
//
// A non-zero exit status is part of the handshake result, not an error:
// GitHub ends every successful ssh -T with status 1.
func (e *Exec) Authenticate(ctx context.Context) (domain.Handshake, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.opts.SSHPath, "-T", e.opts.Remote)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.log.Debug("exec", zap.String("cmd", cmd.Path), zap.Strings("args", cmd.Args[1:]))
	err := cmd.Run()

	hs := domain.Handshake{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		hs.ExitCode = exitErr.ExitCode()
	default:
		return hs, fmt.Errorf("%w: %s: %w", domain.ErrExternalProcess, e.opts.SSHPath, err)
	}
	e.log.Debug("handshake finished", zap.String("remote", e.opts.Remote), zap.Int("exit_code", hs.ExitCode))
	return hs, nil
}

func (e *Exec) run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = e.opts.Stdin
	cmd.Stdout = e.opts.Stdout
	cmd.Stderr = e.opts.Stderr

	e.log.Debug("exec", zap.String("cmd", name), zap.String("args", strings.Join(args, " ")))
	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		e.log.Debug("exec failed", zap.String("cmd", name), zap.Int("exit_code", exitErr.ExitCode()))
		return fmt.Errorf("%w: %s exited with status %d", domain.ErrExternalProcess, name, exitErr.ExitCode())
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrExternalProcess, name, err)
}

// Compile-time assertions that Exec implements every collaborator.
var (
	_ domain.KeyGenerator  = (*Exec)(nil)
	_ domain.Agent         = (*Exec)(nil)
	_ domain.Authenticator = (*Exec)(nil)
)
