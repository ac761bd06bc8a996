package logger

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module wires slog logger for dependency injection and installs it as the
// process default so library logs share the JSON format.
var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(slog.SetDefault),
)
