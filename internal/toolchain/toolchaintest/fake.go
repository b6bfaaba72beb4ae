// Package toolchaintest provides an in-memory toolchain for tests.
//
// Toolchain records every collaborator call and keeps the agent session
// state in a real golang.org/x/crypto/ssh/agent keyring, so tests can assert
// which identities are loaded after an operation.
package toolchaintest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"

	"octokey/internal/crypto"
	"octokey/internal/domain"
)

// Method names recorded in Call.Method.
const (
	MethodGenerate     = "GenerateKeyPair"
	MethodLoad         = "LoadIdentity"
	MethodFlush        = "FlushIdentities"
	MethodAuthenticate = "Authenticate"
)

// Call is one recorded collaborator invocation.
type Call struct {
	Method string
	Arg    string
}

// Toolchain implements domain.KeyGenerator, domain.Agent and
// domain.Authenticator.
type Toolchain struct {
	Keyring agent.Agent
	Calls   []Call

	// Canned failures, returned before any side effect.
	GenerateErr error
	LoadErr     error
	FlushErr    error
	AuthErr     error

	Handshake domain.Handshake
}

// New returns a Toolchain with an empty keyring.
func New() *Toolchain {
	return &Toolchain{Keyring: agent.NewKeyring()}
}

// GenerateKeyPair writes a real ed25519 pair to req.Path.
func (t *Toolchain) GenerateKeyPair(_ context.Context, req domain.GenerateRequest) error {
	t.Calls = append(t.Calls, Call{Method: MethodGenerate, Arg: req.Path})
	if t.GenerateErr != nil {
		return t.GenerateErr
	}
	privPEM, pubLine, err := crypto.GenerateEd25519(req.Comment)
	if err != nil {
		return err
	}
	if err := os.WriteFile(req.Path, privPEM, 0o600); err != nil {
		return err
	}
	return os.WriteFile(req.Path+domain.PublicKeySuffix, pubLine, 0o644)
}

// LoadIdentity parses the key file and adds it to the keyring, commented
// with the file's base name.
func (t *Toolchain) LoadIdentity(_ context.Context, privateKeyPath string) error {
	t.Calls = append(t.Calls, Call{Method: MethodLoad, Arg: privateKeyPath})
	if t.LoadErr != nil {
		return t.LoadErr
	}
	b, err := os.ReadFile(privateKeyPath) //nolint:gosec // test helper
	if err != nil {
		return err
	}
	key, err := ssh.ParseRawPrivateKey(b)
	if err != nil {
		return fmt.Errorf("parse %s: %w", privateKeyPath, err)
	}
	return t.Keyring.Add(agent.AddedKey{PrivateKey: key, Comment: filepath.Base(privateKeyPath)})
}

// FlushIdentities empties the keyring.
func (t *Toolchain) FlushIdentities(context.Context) error {
	t.Calls = append(t.Calls, Call{Method: MethodFlush})
	if t.FlushErr != nil {
		return t.FlushErr
	}
	return t.Keyring.RemoveAll()
}

// Authenticate returns the canned Handshake.
func (t *Toolchain) Authenticate(context.Context) (domain.Handshake, error) {
	t.Calls = append(t.Calls, Call{Method: MethodAuthenticate})
	if t.AuthErr != nil {
		return domain.Handshake{}, t.AuthErr
	}
	return t.Handshake, nil
}

// Methods returns the recorded method names in call order.
func (t *Toolchain) Methods() []string {
	out := make([]string, len(t.Calls))
	for i, c := range t.Calls {
		out[i] = c.Method
	}
	return out
}

// Identities returns the comments of the keys held by the keyring.
func (t *Toolchain) Identities() ([]string, error) {
	keys, err := t.Keyring.List()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.Comment
	}
	return out, nil
}

// Compile-time assertions that Toolchain implements every collaborator.
var (
	_ domain.KeyGenerator  = (*Toolchain)(nil)
	_ domain.Agent         = (*Toolchain)(nil)
	_ domain.Authenticator = (*Toolchain)(nil)
)
