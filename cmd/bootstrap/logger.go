package bootstrap

import (
	"log/slog"

	"warehouse-booking/internal/handler/middleware"
	"warehouse-booking/internal/pkg/config"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
		func(l *middleware.Logger) *slog.Logger { return l.GetSlogLogger() },
	),
)

// FxLogger routes fx lifecycle events through the application logger.
var FxLogger = fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
	return &fxevent.SlogLogger{Logger: logger}
})

func NewLogger(cfg config.Config) *middleware.Logger {
	return middleware.NewLogger(cfg.Log)
}
