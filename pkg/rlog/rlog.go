// Package rlog builds the zap logger shared by the router, the tile store
// and the host binaries, following cmd/engine's logger.New() call shape in
// the teacher repo.
package rlog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-encoded logger, or a console-encoded one when
// env is "dev"/"development" (read from the NAVCORE_ENV environment
// variable, since this package has no viper dependency of its own).
func New() (*zap.Logger, error) {
	env := os.Getenv("NAVCORE_ENV")
	if env == "dev" || env == "development" {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg.Build()
	}
	return zap.NewProduction()
}

// Nop returns a no-op logger for callers that don't inject one.
func Nop() *zap.Logger {
	return zap.NewNop()
}
