package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"web-larek/internal/config"
	"web-larek/internal/larekapi"
	"web-larek/internal/logging"
	"web-larek/internal/storefront"
	"web-larek/internal/view"
)

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	logger := logging.New("storefront", cfg.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	templates, err := view.LoadTemplates()
	if err != nil {
		logger.Fatal().Err(err).Msg("load templates")
	}

	api := larekapi.New(cfg.APIURL, &http.Client{Timeout: cfg.APITimeout}, &logger)

	store := storefront.NewStore(cfg.SessionTTL, func(ctx context.Context, id string) (*storefront.Session, error) {
		sess, err := storefront.NewSession(id, api, templates, cfg.CDNURL, &logger)
		if err != nil {
			return nil, err
		}
		sess.Load(ctx)
		return sess, nil
	}, &logger)

	runCtx, stopRun := context.WithCancel(context.Background())
	defer stopRun()
	go store.Run(runCtx, time.Minute)

	srv := storefront.NewServer(cfg.StorefrontAddr, store, &logger)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.StorefrontAddr).Str("api", cfg.APIURL).Msg("starting storefront")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("server error")
	}
	stopRun()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		logger.Info().Msg("storefront stopped")
	}
}
