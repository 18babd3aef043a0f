// Package logging builds the process logger.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the logger flavour. Mode "prod" writes JSON lines,
// anything else writes human-readable console lines. Both go to stderr so
// command output on stdout stays clean.
type Config struct {
	Mode  string `mapstructure:"mode" validate:"omitempty,oneof=dev development prod production"`
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig logs warnings and above in console form.
func DefaultConfig() Config {
	return Config{Mode: "dev", Level: "warn"}
}

// New builds a logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	var zc zap.Config
	switch strings.ToLower(cfg.Mode) {
	case "prod", "production":
		zc = zap.NewProductionConfig()
	default:
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if cfg.Level != "" {
		lvl, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
