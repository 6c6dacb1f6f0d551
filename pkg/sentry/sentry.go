package sentry

import (
	"clipscope/pkg/build"
	"clipscope/pkg/config"
	"log/slog"

	"github.com/getsentry/sentry-go"
)

// Init enables error reporting when a DSN is configured.
func Init(cfg *config.Config) error {
	if cfg.Sentry.DSN == "" {
		slog.Info("Sentry DSN not configured, error reporting disabled")
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      cfg.Sentry.Environment,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Release:          "clipscope@" + build.Tag,
		AttachStacktrace: true,
		ServerName:       "clipscope",
	})
	if err != nil {
		return err
	}

	slog.Info("Sentry initialized",
		slog.String("environment", cfg.Sentry.Environment),
		slog.String("release", build.Tag),
	)

	return nil
}
