package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/snelllabs/creativeboard/internal/models"
	"github.com/snelllabs/creativeboard/internal/obs"
	"github.com/snelllabs/creativeboard/internal/sheet"
	"github.com/snelllabs/creativeboard/internal/store"
)

// Refresher runs the full fetch-all -> aggregate-all -> merge pipeline.
// A run is all-or-nothing: any fetch or parse failure leaves the store's
// previous view in place.
type Refresher struct {
	c        HTTPClient
	st       *store.ViewStore
	log      *slog.Logger
	metrics  *obs.Metrics
	projects []models.ProjectConfig // sorted by key at config time
}

func NewRefresher(c HTTPClient, st *store.ViewStore, log *slog.Logger, metrics *obs.Metrics, projects []models.ProjectConfig) *Refresher {
	return &Refresher{c: c, st: st, log: log, metrics: metrics, projects: projects}
}

func (r *Refresher) Run(ctx context.Context) error {
	if len(r.projects) == 0 {
		return fmt.Errorf("no projects configured")
	}

	texts := make([]string, len(r.projects))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range r.projects {
		i, p := i, p
		g.Go(func() error {
			start := time.Now()
			body, err := FetchCSV(gctx, r.c, p.ExportURL())
			r.metrics.ObserveFetch(p.Key, time.Since(start), err)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", p.Key, err)
			}
			texts[i] = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.metrics.RefreshRuns.WithLabelValues("error").Inc()
		return err
	}

	aggregates := make(map[string]*models.ProjectAggregate, len(r.projects))
	for i, p := range r.projects {
		agg, err := sheet.AggregateProject(texts[i], p.Key)
		if err != nil {
			r.metrics.RefreshRuns.WithLabelValues("error").Inc()
			return err
		}
		aggregates[p.Key] = agg
		r.log.Debug("project aggregated",
			slog.String("project", p.Key),
			slog.String("latest_date", agg.LatestDate),
			slog.Int("creatives", len(agg.CreativeHistory)),
			slog.Int("account_columns", agg.AccountColumnCount))
	}

	view := sheet.MergeProjects(aggregates)
	r.st.Swap(view)
	r.metrics.RefreshRuns.WithLabelValues("ok").Inc()
	r.metrics.Creatives.Set(float64(view.Summary.TotalCreatives))
	r.log.Info("refresh complete",
		slog.String("latest_date", view.LatestDate),
		slog.Int("creatives", view.Summary.TotalCreatives),
		slog.Int("accounts", view.Summary.TotalAccounts))
	return nil
}

// Loop refreshes on a fixed interval until the context is cancelled.
// Failures are logged and the loop keeps going.
func (r *Refresher) Loop(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := r.Run(ctx); err != nil {
				r.log.Error("scheduled refresh failed", slog.String("err", err.Error()))
			}
		}
	}
}
