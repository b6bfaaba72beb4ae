package domain

import "context"

// KeyGenerator produces a private/public key file pair.
type KeyGenerator interface {
	GenerateKeyPair(ctx context.Context, req GenerateRequest) error
}

// Agent adds and removes identities held by a running ssh-agent.
type Agent interface {
	LoadIdentity(ctx context.Context, privateKeyPath string) error
	FlushIdentities(ctx context.Context) error
}

// Authenticator performs a handshake with the remote endpoint using whatever
// identities the agent currently offers.
type Authenticator interface {
	Authenticate(ctx context.Context) (Handshake, error)
}

// KeyStore is the read side of the key-storage directory.
type KeyStore interface {
	Dir() (string, error)
	PrivatePath(name KeyName) (string, error)
	Exists(name KeyName) (bool, error)
	ReadPublicKey(name KeyName) (string, error)
	ListPublicKeys() ([]KeyName, error)
	// KeyFiles returns the paths of the halves of name currently on disk.
	KeyFiles(name KeyName) ([]string, error)
}

// KeyService is the key manager exposed to the CLI.
//
// PrepareAdd and PrepareSwitch run only the preconditions of Add and Switch,
// so callers can report progress once the operation is known to proceed.
// A nil email passed to Add selects the configured default comment.
type KeyService interface {
	PrepareAdd(name KeyName) error
	Add(ctx context.Context, name KeyName, email *string) (KeyPair, error)
	PrepareSwitch(name KeyName) error
	Switch(ctx context.Context, name KeyName) error
	Check(ctx context.Context) (Handshake, error)
	List() ([]KeyName, error)
	ListDetailed() ([]KeySummary, error)
}
