package keys

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"octokey/internal/crypto"
	"octokey/internal/domain"
)

// DefaultEmail is the key comment used when Add is given a nil email.
const DefaultEmail = "your_email@example.com"

// Deps are the collaborators the Service drives.
type Deps struct {
	Store     domain.KeyStore
	Generator domain.KeyGenerator
	Agent     domain.Agent
	Remote    domain.Authenticator

	KeyType      domain.KeyType // defaults to ed25519
	DefaultEmail string         // defaults to DefaultEmail
	Log          *zap.Logger
}

// Service manages SSH key identities.
type Service struct {
	deps Deps
	log  *zap.Logger
}

// New returns a key manager over deps.
func New(deps Deps) *Service {
	if deps.KeyType == "" {
		deps.KeyType = domain.KeyTypeEd25519
	}
	if deps.DefaultEmail == "" {
		deps.DefaultEmail = DefaultEmail
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{deps: deps, log: log}
}

// PrepareAdd fails if Add(name) could not proceed: the name is invalid, the
// directory is unavailable, or an entry called name already exists.
func (s *Service) PrepareAdd(name domain.KeyName) error {
	_, err := s.addTarget(name)
	return err
}

func (s *Service) addTarget(name domain.KeyName) (string, error) {
	path, err := s.deps.Store.PrivatePath(name)
	if err != nil {
		return "", err
	}
	exists, err := s.deps.Store.Exists(name)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("key %q: %w", name, domain.ErrKeyExists)
	}
	return path, nil
}

// Add generates a new key pair called name, loads it into the agent and
// returns it with the public key text to register with the remote service.
// A nil email uses the configured default; an empty one is kept as is.
func (s *Service) Add(ctx context.Context, name domain.KeyName, email *string) (domain.KeyPair, error) {
	path, err := s.addTarget(name)
	if err != nil {
		return domain.KeyPair{}, err
	}
	comment := s.deps.DefaultEmail
	if email != nil {
		comment = *email
	}

	log := s.log.With(zap.String("op", "add"), zap.Stringer("key", name))
	log.Debug("generating key pair", zap.String("path", path), zap.String("type", string(s.deps.KeyType)))

	err = s.deps.Generator.GenerateKeyPair(ctx, domain.GenerateRequest{
		Type:    s.deps.KeyType,
		Comment: comment,
		Path:    path,
	})
	if err != nil {
		return domain.KeyPair{}, s.retainPartialState("add", "generate key pair", err, name)
	}

	if err := s.deps.Agent.LoadIdentity(ctx, path); err != nil {
		return domain.KeyPair{}, s.retainPartialState("add", "load identity", err, name)
	}

	pub, err := s.deps.Store.ReadPublicKey(name)
	if err != nil {
		return domain.KeyPair{}, s.retainPartialState("add", "read public key", err, name)
	}

	log.Debug("key added")
	return domain.KeyPair{
		Name:        name,
		PrivatePath: path,
		PublicPath:  path + domain.PublicKeySuffix,
		PublicKey:   pub,
	}, nil
}

// PrepareSwitch fails if Switch(name) could not proceed because no entry
// called name exists.
func (s *Service) PrepareSwitch(name domain.KeyName) error {
	_, err := s.switchTarget(name)
	return err
}

func (s *Service) switchTarget(name domain.KeyName) (string, error) {
	path, err := s.deps.Store.PrivatePath(name)
	if err != nil {
		return "", err
	}
	exists, err := s.deps.Store.Exists(name)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("key %q: %w", name, domain.ErrKeyNotFound)
	}
	return path, nil
}

// Switch replaces every identity in the agent with name.
func (s *Service) Switch(ctx context.Context, name domain.KeyName) error {
	path, err := s.switchTarget(name)
	if err != nil {
		return err
	}

	log := s.log.With(zap.String("op", "switch"), zap.Stringer("key", name))

	if err := s.deps.Agent.FlushIdentities(ctx); err != nil {
		return fmt.Errorf("switch: flush identities: %w", err)
	}
	log.Debug("agent flushed")

	if err := s.deps.Agent.LoadIdentity(ctx, path); err != nil {
		return &domain.PartialStateError{
			Op:       "switch",
			Step:     "load identity",
			Retained: []string{"ssh-agent holds no identities"},
			Err:      err,
		}
	}
	log.Debug("identity loaded", zap.String("path", path))
	return nil
}

// Check authenticates against the remote endpoint with whatever the agent
// offers. The response is returned unparsed.
func (s *Service) Check(ctx context.Context) (domain.Handshake, error) {
	hs, err := s.deps.Remote.Authenticate(ctx)
	if err != nil {
		return hs, fmt.Errorf("check: %w", err)
	}
	return hs, nil
}

// List returns the names of all keys with a public half, sorted.
func (s *Service) List() ([]domain.KeyName, error) {
	return s.deps.Store.ListPublicKeys()
}

// ListDetailed is List plus type, fingerprint and comment of each public
// key. Keys whose public half cannot be parsed are marked Invalid.
func (s *Service) ListDetailed() ([]domain.KeySummary, error) {
	names, err := s.deps.Store.ListPublicKeys()
	if err != nil {
		return nil, err
	}
	out := make([]domain.KeySummary, 0, len(names))
	for _, name := range names {
		sum := domain.KeySummary{Name: name}
		pub, err := s.deps.Store.ReadPublicKey(name)
		if err != nil {
			return nil, err
		}
		info, err := crypto.ParsePublicKey([]byte(pub))
		if err != nil {
			s.log.Debug("unparsable public key", zap.Stringer("key", name), zap.Error(err))
			sum.Invalid = true
		} else {
			sum.Type = info.Type
			sum.Fingerprint = info.Fingerprint
			sum.Comment = info.Comment
		}
		out = append(out, sum)
	}
	return out, nil
}

// retainPartialState wraps a failure of a step that ran after key generation
// started. Whatever key files exist are left on disk and named in the error.
func (s *Service) retainPartialState(op, step string, err error, name domain.KeyName) error {
	retained, statErr := s.deps.Store.KeyFiles(name)
	if statErr != nil {
		s.log.Debug("listing retained key files", zap.Error(statErr))
	}
	if len(retained) == 0 {
		return fmt.Errorf("%s: %s: %w", op, step, err)
	}
	s.log.Debug("keeping partial state", zap.String("op", op), zap.String("step", step), zap.Strings("retained", retained))
	return &domain.PartialStateError{Op: op, Step: step, Retained: retained, Err: err}
}

// Compile-time assertion that Service implements domain.KeyService.
var _ domain.KeyService = (*Service)(nil)
