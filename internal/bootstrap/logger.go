package bootstrap

import (
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewLogger builds the process logger. APP_ENV=development switches to the
// human readable console encoder.
func NewLogger() (*zap.Logger, error) {
	if Getenv("APP_ENV", "production") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewFxLogger routes fx lifecycle events through the application logger.
func NewFxLogger(log *zap.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: log.Named("fx")}
}
