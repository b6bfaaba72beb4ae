package toolchain_test

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh/agent"

	"octokey/internal/domain"
	"octokey/internal/toolchain"
)

// serveKeyring starts an in-memory agent on a unix socket and returns the
// socket path together with the keyring behind it.
func serveKeyring(t *testing.T) (string, agent.Agent) {
	t.Helper()
	dir, err := os.MkdirTemp("", "agent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	socket := filepath.Join(dir, "agent.sock")
	l, err := net.Listen("unix", socket)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	keyring := agent.NewKeyring()
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				_ = agent.ServeAgent(keyring, conn)
			}()
		}
	}()
	return socket, keyring
}

func generate(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, toolchain.NewNativeGenerator(nil).GenerateKeyPair(context.Background(), domain.GenerateRequest{
		Type: domain.KeyTypeEd25519,
		Path: path,
	}))
	return path
}

func TestSocketAgent_LoadAndFlush(t *testing.T) {
	socket, keyring := serveKeyring(t)
	keys := t.TempDir()
	work := generate(t, keys, "work")
	personal := generate(t, keys, "personal")

	sa := toolchain.NewSocketAgent(socket, nil)
	ctx := context.Background()

	require.NoError(t, sa.LoadIdentity(ctx, work))
	require.NoError(t, sa.LoadIdentity(ctx, personal))
	loaded, err := keyring.List()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	require.NoError(t, sa.FlushIdentities(ctx))
	loaded, err = keyring.List()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, sa.LoadIdentity(ctx, personal))
	loaded, err = keyring.List()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "personal", loaded[0].Comment)
}

func TestSocketAgent_NoSocket(t *testing.T) {
	err := toolchain.NewSocketAgent("", nil).FlushIdentities(context.Background())
	assert.ErrorIs(t, err, domain.ErrEnvironmentUnavailable)
}

func TestSocketAgent_DialFailure(t *testing.T) {
	sa := toolchain.NewSocketAgent(filepath.Join(t.TempDir(), "missing.sock"), nil)
	err := sa.FlushIdentities(context.Background())
	assert.ErrorIs(t, err, domain.ErrExternalProcess)
}

func TestSocketAgent_BadKeyFile(t *testing.T) {
	socket, _ := serveKeyring(t)
	path := filepath.Join(t.TempDir(), "garbage")
	require.NoError(t, os.WriteFile(path, []byte("not a key"), 0o600))

	sa := toolchain.NewSocketAgent(socket, nil)
	assert.ErrorIs(t, sa.LoadIdentity(context.Background(), path), domain.ErrExternalProcess)
	assert.ErrorIs(t, sa.LoadIdentity(context.Background(), path+".missing"), domain.ErrIOFailed)
}
