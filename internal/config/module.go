package config

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module exposes configuration loader for fx graphs and reports unsafe
// settings once the logger is available.
var Module = fx.Options(
	fx.Provide(Load),
	fx.Invoke(warnInsecureDefaults),
)

func warnInsecureDefaults(cfg *Config, logger *slog.Logger) {
	if cfg.JWTSecret == defaultJWTSecret {
		logger.Warn("auth tokens are signed with the built-in secret, set JWT_SECRET")
	}
	if cfg.AdminLogin == "" {
		logger.Info("no administrator configured, admin endpoints stay unreachable until one exists")
	}
}
