package toolchain

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"octokey/internal/crypto"
	"octokey/internal/domain"
	"octokey/internal/util/memzero"
)

// NativeGenerator writes ed25519 key pairs without calling ssh-keygen. The
// files match what ssh-keygen -t ed25519 -N "" produces: an unencrypted
// OpenSSH private key (0600) and an authorized_keys line (0644).
type NativeGenerator struct {
	log *zap.Logger
}

// NewNativeGenerator returns a NativeGenerator; log may be nil.
func NewNativeGenerator(log *zap.Logger) *NativeGenerator {
	if log == nil {
		log = zap.NewNop()
	}
	return &NativeGenerator{log: log}
}

// GenerateKeyPair writes req.Path and req.Path+".pub". It refuses to
// overwrite either file.
func (g *NativeGenerator) GenerateKeyPair(ctx context.Context, req domain.GenerateRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Type != domain.KeyTypeEd25519 {
		return fmt.Errorf("%w: native generator: unsupported key type %q", domain.ErrExternalProcess, req.Type)
	}
	if req.Passphrase != "" {
		return fmt.Errorf("%w: native generator: passphrase-protected keys are not supported", domain.ErrExternalProcess)
	}

	privPEM, pubLine, err := crypto.GenerateEd25519(req.Comment)
	if err != nil {
		return fmt.Errorf("%w: native generator: %w", domain.ErrExternalProcess, err)
	}
	defer memzero.Zero(privPEM)

	if err := writeNew(req.Path, privPEM, 0o600); err != nil {
		return fmt.Errorf("%w: write private key: %w", domain.ErrIOFailed, err)
	}
	pubPath := req.Path + domain.PublicKeySuffix
	if err := writeNew(pubPath, pubLine, 0o644); err != nil {
		return fmt.Errorf("%w: write public key: %w", domain.ErrIOFailed, err)
	}

	g.log.Debug("generated key pair", zap.String("path", req.Path), zap.String("type", string(req.Type)))
	return nil
}

// writeNew creates path exclusively and writes b to it.
func writeNew(path string, b []byte, mode os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Compile-time assertion that NativeGenerator implements domain.KeyGenerator.
var _ domain.KeyGenerator = (*NativeGenerator)(nil)
