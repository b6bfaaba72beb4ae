package app

import (
	"go.uber.org/zap"

	"octokey/internal/domain"
	keysvc "octokey/internal/services/keys"
	"octokey/internal/store"
	"octokey/internal/toolchain"
)

// Tools are the collaborators behind the key manager.
type Tools struct {
	Generator domain.KeyGenerator
	Agent     domain.Agent
	Remote    domain.Authenticator
}

// NewTools builds the toolchain backends selected by cfg.
func NewTools(cfg Config, streams Streams, log *zap.Logger) Tools {
	if log == nil {
		log = zap.NewNop()
	}
	execTools := toolchain.NewExec(toolchain.ExecOptions{
		KeygenPath: cfg.SSHKeygen,
		AddPath:    cfg.SSHAdd,
		SSHPath:    cfg.SSH,
		Remote:     cfg.Remote,
		Stdin:      streams.In,
		Stdout:     streams.Out,
		Stderr:     streams.Err,
		Log:        log.Named("exec"),
	})
	tools := Tools{Generator: execTools, Agent: execTools, Remote: execTools}

	if cfg.Generator == BackendNative {
		tools.Generator = toolchain.NewNativeGenerator(log.Named("native"))
	}
	if cfg.Agent == BackendSocket {
		tools.Agent = toolchain.NewSocketAgent(cfg.AuthSock, log.Named("agent"))
	}
	return tools
}

// New constructs the dependency graph from cfg.
func New(cfg Config, streams Streams, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewWithTools(cfg, NewTools(cfg, streams, log), log), nil
}

// NewWithTools is New with the collaborators supplied by the caller.
func NewWithTools(cfg Config, tools Tools, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}

	// Resolved once; a missing home only fails the operations that need it.
	var keyStore *store.KeyDir
	if dir, err := cfg.KeyDir(); err != nil {
		log.Debug("key directory unavailable", zap.Error(err))
		keyStore = store.UnavailableKeyDir(err)
	} else {
		keyStore = store.NewKeyDir(dir)
	}

	svc := keysvc.New(keysvc.Deps{
		Store:        keyStore,
		Generator:    tools.Generator,
		Agent:        tools.Agent,
		Remote:       tools.Remote,
		KeyType:      domain.KeyType(cfg.KeyType),
		DefaultEmail: cfg.DefaultEmail,
		Log:          log.Named("keys"),
	})
	return &App{Keys: svc, Log: log}
}
