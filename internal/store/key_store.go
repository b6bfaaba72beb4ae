package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"octokey/internal/domain"
)

// KeyDir is the key-storage directory.
type KeyDir struct {
	dir string
	err error
}

// NewKeyDir returns a KeyDir rooted at dir.
func NewKeyDir(dir string) *KeyDir {
	return &KeyDir{dir: dir}
}

// UnavailableKeyDir returns a KeyDir whose location could not be resolved.
// Every method fails with domain.ErrEnvironmentUnavailable wrapping cause.
func UnavailableKeyDir(cause error) *KeyDir {
	return &KeyDir{err: cause}
}

// Dir returns the directory path.
func (d *KeyDir) Dir() (string, error) {
	if d.err != nil {
		return "", fmt.Errorf("%w: resolve key directory: %w", domain.ErrEnvironmentUnavailable, d.err)
	}
	if d.dir == "" {
		return "", fmt.Errorf("%w: key directory not configured", domain.ErrEnvironmentUnavailable)
	}
	return d.dir, nil
}

// PrivatePath returns the path of the private half of name.
func (d *KeyDir) PrivatePath(name domain.KeyName) (string, error) {
	dir, err := d.Dir()
	if err != nil {
		return "", err
	}
	if err := name.Validate(); err != nil {
		return "", err
	}
	return filepath.Join(dir, name.String()), nil
}

// Exists reports whether an entry named name is present.
func (d *KeyDir) Exists(name domain.KeyName) (bool, error) {
	path, err := d.PrivatePath(name)
	if err != nil {
		return false, err
	}
	ok, err := entryExists(path)
	if err != nil {
		return false, fmt.Errorf("%w: stat %s: %w", domain.ErrIOFailed, path, err)
	}
	return ok, nil
}

// KeyFiles returns whichever of {name} and {name}.pub are present, private
// half first.
func (d *KeyDir) KeyFiles(name domain.KeyName) ([]string, error) {
	path, err := d.PrivatePath(name)
	if err != nil {
		return nil, err
	}
	var present []string
	for _, p := range []string{path, path + domain.PublicKeySuffix} {
		ok, err := entryExists(p)
		if err != nil {
			return present, fmt.Errorf("%w: stat %s: %w", domain.ErrIOFailed, p, err)
		}
		if ok {
			present = append(present, p)
		}
	}
	return present, nil
}

// ReadPublicKey returns the contents of {name}.pub.
func (d *KeyDir) ReadPublicKey(name domain.KeyName) (string, error) {
	path, err := d.PrivatePath(name)
	if err != nil {
		return "", err
	}
	b, err := readFile(path + domain.PublicKeySuffix)
	if err != nil {
		return "", fmt.Errorf("%w: read public key: %w", domain.ErrIOFailed, err)
	}
	return string(b), nil
}

// ListPublicKeys returns the stem of every regular *.pub file, sorted.
func (d *KeyDir) ListPublicKeys() ([]domain.KeyName, error) {
	dir, err := d.Dir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDirectoryUnreadable, dir, err)
	}

	names := make([]domain.KeyName, 0, len(entries))
	for _, entry := range entries {
		stem, ok := strings.CutSuffix(entry.Name(), domain.PublicKeySuffix)
		if !ok || stem == "" {
			continue
		}
		regular, err := isRegularFile(dir, entry)
		if err != nil {
			return nil, fmt.Errorf("%w: stat %s: %w", domain.ErrIOFailed, entry.Name(), err)
		}
		if !regular {
			continue
		}
		names = append(names, domain.KeyName(stem))
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names, nil
}

// Compile-time assertion that KeyDir implements domain.KeyStore.
var _ domain.KeyStore = (*KeyDir)(nil)
