package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"octokey/internal/domain"
	"octokey/internal/store"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestListPublicKeys_Empty(t *testing.T) {
	keys, err := store.NewKeyDir(t.TempDir()).ListPublicKeys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestListPublicKeys_OnlyRegularPubFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "work", "private")
	writeFile(t, dir, "work.pub", "ssh-ed25519 AAAA work")
	writeFile(t, dir, "personal.pub", "ssh-ed25519 AAAA personal")
	writeFile(t, dir, "known_hosts", "github.com ssh-ed25519 AAAA")
	writeFile(t, dir, "config", "Host *")
	writeFile(t, dir, ".pub", "no stem")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.pub"), 0o700))

	keys, err := store.NewKeyDir(dir).ListPublicKeys()
	require.NoError(t, err)
	assert.Equal(t, []domain.KeyName{"personal", "work"}, keys)
}

func TestListPublicKeys_FollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "real.pub", "ssh-ed25519 AAAA")
	require.NoError(t, os.Symlink(filepath.Join(dir, "real.pub"), filepath.Join(dir, "linked.pub")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling.pub")))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o700))
	require.NoError(t, os.Symlink(filepath.Join(dir, "sub"), filepath.Join(dir, "subdir.pub")))

	keys, err := store.NewKeyDir(dir).ListPublicKeys()
	require.NoError(t, err)
	assert.Equal(t, []domain.KeyName{"linked", "real"}, keys)
}

func TestListPublicKeys_MissingDirectory(t *testing.T) {
	_, err := store.NewKeyDir(filepath.Join(t.TempDir(), "nope")).ListPublicKeys()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDirectoryUnreadable)
	assert.ErrorIs(t, err, domain.ErrIOFailed)
}

func TestKeyDir_Unavailable(t *testing.T) {
	kd := store.UnavailableKeyDir(errors.New("$HOME is not defined"))

	_, err := kd.ListPublicKeys()
	assert.ErrorIs(t, err, domain.ErrEnvironmentUnavailable)

	_, err = kd.Exists("work")
	assert.ErrorIs(t, err, domain.ErrEnvironmentUnavailable)

	_, err = kd.ReadPublicKey("work")
	assert.ErrorIs(t, err, domain.ErrEnvironmentUnavailable)

	_, err = kd.KeyFiles("work")
	assert.ErrorIs(t, err, domain.ErrEnvironmentUnavailable)

	_, err = store.NewKeyDir("").Dir()
	assert.ErrorIs(t, err, domain.ErrEnvironmentUnavailable)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "work", "private")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder"), 0o700))
	kd := store.NewKeyDir(dir)

	ok, err := kd.Exists("work")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = kd.Exists("Work")
	require.NoError(t, err)
	assert.False(t, ok, "names are case-sensitive")

	ok, err = kd.Exists("folder")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPrivatePath_RejectsInvalidNames(t *testing.T) {
	kd := store.NewKeyDir(t.TempDir())
	for _, name := range []domain.KeyName{"", ".", "..", "../evil", "a/b"} {
		_, err := kd.PrivatePath(name)
		assert.ErrorIs(t, err, domain.ErrInvalidKeyName, "name %q", name)
		assert.ErrorIs(t, err, domain.ErrPreconditionFailed, "name %q", name)
	}
}

func TestReadPublicKey(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "work.pub", "ssh-ed25519 AAAA me@example.com\n")
	kd := store.NewKeyDir(dir)

	pub, err := kd.ReadPublicKey("work")
	require.NoError(t, err)
	assert.Equal(t, "ssh-ed25519 AAAA me@example.com\n", pub)

	_, err = kd.ReadPublicKey("absent")
	assert.ErrorIs(t, err, domain.ErrIOFailed)
}

func TestKeyFiles(t *testing.T) {
	dir := t.TempDir()
	kd := store.NewKeyDir(dir)

	files, err := kd.KeyFiles("work")
	require.NoError(t, err)
	assert.Empty(t, files)

	writeFile(t, dir, "work", "private")
	files, err = kd.KeyFiles("work")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "work")}, files)

	writeFile(t, dir, "work.pub", "ssh-ed25519 AAAA")
	files, err = kd.KeyFiles("work")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "work"), filepath.Join(dir, "work.pub")}, files)

	_, err = kd.KeyFiles("../work")
	assert.ErrorIs(t, err, domain.ErrInvalidKeyName)
}
