// Package session carries per-invocation driver state: a unique id
// and the structured logger every command shares. The compiler core
// never logs; all observability lives at this layer.
package session

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Session is the per-invocation driver context.
type Session struct {
	ID     string
	Logger *zap.Logger
}

// New creates a session with a fresh id and a logger at the given
// level. A logger that cannot be built falls back to the nop logger
// rather than failing the command.
func New(level string) *Session {
	id := uuid.New().String()
	logger, err := newLogger(level)
	if err != nil {
		logger = zap.NewNop()
	}
	return &Session{
		ID:     id,
		Logger: logger.With(zap.String("session", id)),
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// Close flushes buffered log entries.
func (s *Session) Close() {
	_ = s.Logger.Sync()
}
