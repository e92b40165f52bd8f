package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/michaeljip/rt07/modules/account"
	"github.com/michaeljip/rt07/modules/feed"
	"github.com/michaeljip/rt07/modules/navigation"
	"github.com/michaeljip/rt07/pkg/apiclient"
	"github.com/michaeljip/rt07/pkg/config"
	"github.com/michaeljip/rt07/pkg/kvstore"
	"github.com/michaeljip/rt07/pkg/logger"
	"github.com/michaeljip/rt07/svc/identity"
	"github.com/michaeljip/rt07/svc/session"
)

func main() {
	var cfg Config
	config.MustLoad(&cfg)

	logOpts := []logger.Option{logger.WithProduction("rt07")}
	if cfg.Debug {
		logOpts = []logger.Option{logger.WithDevelopment("rt07")}
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newStore(ctx, cfg)
	if err != nil {
		log.Error("open session store", slog.Any("error", err))
		os.Exit(1)
	}

	var sessions *session.Manager
	client := apiclient.New(cfg.APIBaseURL,
		apiclient.WithRequestInterceptor(apiclient.BearerToken(store, session.StorageKeyToken)),
		apiclient.WithResponseInterceptor(apiclient.EvictTokenOnUnauthorized(store, session.StorageKeyToken, func() {
			sessions.HandleUnauthorized()
		})),
	)
	sessions = session.New(store, client)
	defer sessions.Close()

	provider := identity.NewGoogleProvider(
		cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL,
		promptAuthCode(os.Stdin, os.Stdout),
	)
	adapter := identity.NewAdapter(provider, sessions, log)

	accounts := account.NewService(client, sessions, account.WithGoogleAdapter(adapter))
	posts := feed.NewService(apiclient.New(cfg.DemoAPIURL))
	router := navigation.New(sessions)
	defer router.Close()

	app := newApp(log, sessions, router, accounts, adapter, posts)
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("app terminated", slog.Any("error", err))
		os.Exit(1)
	}
}

func newStore(ctx context.Context, cfg Config) (kvstore.Store, error) {
	if cfg.RedisURL != "" {
		return kvstore.NewRedisStore(ctx, cfg.RedisURL, "rt07")
	}
	return kvstore.NewFileStore(cfg.StorePath)
}
