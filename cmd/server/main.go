package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/snelllabs/creativeboard/internal/config"
	"github.com/snelllabs/creativeboard/internal/dashboard"
	"github.com/snelllabs/creativeboard/internal/httpx"
	"github.com/snelllabs/creativeboard/internal/ingest"
	"github.com/snelllabs/creativeboard/internal/obs"
	"github.com/snelllabs/creativeboard/internal/store"
)

func main() {
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	cl := ingest.NewHTTPClient(cfg.HTTPTimeout)
	st := store.NewViewStore()
	metrics := obs.New()
	ref := ingest.NewRefresher(cl, st, logger, metrics, cfg.Projects)
	svc := dashboard.NewService(st)

	r := httpx.NewRouter(logger, ref, svc, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := ref.Run(ctx); err != nil {
			logger.Error("initial refresh failed", slog.String("err", err.Error()))
		}
	}()
	go ref.Loop(ctx, cfg.RefreshInterval)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server",
		slog.String("port", cfg.Port),
		slog.Int("projects", len(cfg.Projects)),
		slog.Duration("refresh_interval", cfg.RefreshInterval))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
