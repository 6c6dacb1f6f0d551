package main

import (
	"clipscope/app/client/legacy"
	"clipscope/app/client/twitch"
	"clipscope/app/service/clips"
	"clipscope/app/service/report"
	"clipscope/pkg/config"
	sentry2 "clipscope/pkg/sentry"
	"clipscope/pkg/tlog"
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	di := do.New()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = tlog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	if err = sentry2.Init(cfg); err != nil {
		slog.Error("Sentry initialization failed", slog.Any("error", err))
	}
	defer sentry.Flush(time.Second)
	defer sentry.RecoverWithContext(appCtx)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	token, err := twitch.GetAccessToken(appCtx, cfg.Twitch.ClientID, cfg.Twitch.ClientSecret, cfg.Twitch.Scopes...)
	if err != nil {
		log.Fatalf("access token request failed: %v", err)
	}
	slog.Debug("Access token acquired",
		slog.Int("expires_in", token.ExpiresIn),
		slog.Any("scopes", token.Scope.List()),
	)

	do.ProvideValue(di, legacy.New())
	do.Provide(di, func(di *do.Injector) (*twitch.Client, error) {
		return twitch.NewClient(token.AccessToken,
			twitch.WithClientID(cfg.Twitch.ClientID),
			twitch.WithLegacyClient(do.MustInvoke[*legacy.Client](di)),
		), nil
	})
	do.Provide(di, clips.New)
	do.Provide(di, report.New)

	if err = do.MustInvoke[*report.Service](di).Run(appCtx); err != nil {
		log.Fatalf("report failed: %v", err)
	}

	_ = di.Shutdown()
}
