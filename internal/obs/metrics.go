package obs

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics carries the service's Prometheus collectors on a private registry.
type Metrics struct {
	reg *prometheus.Registry

	RefreshRuns   *prometheus.CounterVec
	FetchAttempts *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	Creatives     prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		RefreshRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creativeboard_refresh_runs_total",
			Help: "Completed refresh runs by outcome.",
		}, []string{"status"}),
		FetchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creativeboard_sheet_fetch_total",
			Help: "Sheet fetches by project and outcome.",
		}, []string{"project", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "creativeboard_sheet_fetch_duration_seconds",
			Help:    "Wall time of sheet fetches, including fallback attempts.",
			Buckets: prometheus.DefBuckets,
		}, []string{"project"}),
		Creatives: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "creativeboard_creatives",
			Help: "Distinct creatives in the current dashboard view.",
		}),
	}
	m.reg.MustRegister(m.RefreshRuns, m.FetchAttempts, m.FetchDuration, m.Creatives)
	return m
}

func (m *Metrics) ObserveFetch(project string, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.FetchAttempts.WithLabelValues(project, outcome).Inc()
	m.FetchDuration.WithLabelValues(project).Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
