package app

import (
	"io"

	"go.uber.org/zap"

	"octokey/internal/domain"
)

// App is what the commands see.
type App struct {
	Keys domain.KeyService
	Log  *zap.Logger
}

// Streams are the process's standard streams, handed to subprocesses.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}
