package logger

import (
	"go.uber.org/zap"

	"github.com/abhisek/pathrecall/internal/config"
)

// New builds the logger for the configured environment. The local
// environment only reports warnings so CLI output stays readable.
func New(cfg *config.Config) (*zap.Logger, error) {
	switch cfg.Env {
	case "production":
		return zap.NewProduction()
	case "dev", "development":
		return zap.NewDevelopment()
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	zc.DisableStacktrace = true
	return zc.Build()
}
