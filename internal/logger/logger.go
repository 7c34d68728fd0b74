// Package logger builds the zap logger shared by the API and its workers.
//
// Loggers are injected and usually Named after the component using them,
// e.g. log.Named("leads").
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON production logger, or a console logger when
// environment is "development".
func New(level, environment string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if environment == "development" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return NewWith(cfg)
}

// NewWith builds a logger from a prepared zap.Config.
func NewWith(cfg zap.Config) (*zap.Logger, error) {
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.With(zap.String("service", "fluent-crm")), nil
}
