package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PublicKeySuffix is appended to a key name to form its public half.
const PublicKeySuffix = ".pub"

// KeyName identifies a key pair inside the key-storage directory.
type KeyName string

func (n KeyName) String() string { return string(n) }

// Validate reports whether n can name a file directly inside the key directory.
func (n KeyName) Validate() error {
	s := string(n)
	switch {
	case s == "":
		return fmt.Errorf("%w: empty name", ErrInvalidKeyName)
	case s == "." || s == "..":
		return fmt.Errorf("%w: %q", ErrInvalidKeyName, s)
	case strings.ContainsRune(s, filepath.Separator) || strings.ContainsRune(s, '/'):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidKeyName, s)
	}
	return nil
}

// KeyType is the algorithm requested from the key generator.
type KeyType string

const (
	KeyTypeEd25519 KeyType = "ed25519"
)

// KeyPair is a generated identity on disk.
type KeyPair struct {
	Name        KeyName
	PrivatePath string
	PublicPath  string
	PublicKey   string // authorized_keys line, as written by the generator
}

// KeySummary describes one listed key. Only Name is set by a plain listing.
type KeySummary struct {
	Name        KeyName
	Type        string
	Fingerprint string
	Comment     string
	Invalid     bool
}

// GenerateRequest is handed to a KeyGenerator.
type GenerateRequest struct {
	Type       KeyType
	Comment    string
	Path       string // private key path; the public key goes to Path+".pub"
	Passphrase string
}

// Handshake is the raw result of authenticating against the remote endpoint.
type Handshake struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}
