package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/snelllabs/creativeboard/internal/dashboard"
	"github.com/snelllabs/creativeboard/internal/ingest"
	"github.com/snelllabs/creativeboard/internal/obs"
	"github.com/snelllabs/creativeboard/internal/utils"
)

func NewRouter(log *slog.Logger, ref *ingest.Refresher, svc *dashboard.Service, metrics *obs.Metrics) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })

	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := svc.Overview(); err != nil {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
		w.Write([]byte("ready"))
	})

	mux.Post("/refresh/run", func(w http.ResponseWriter, r *http.Request) {
		if err := ref.Run(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		ov, err := svc.Overview()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{
			"latest_date": ov.LatestDate,
			"creatives":   ov.Summary.TotalCreatives,
			"updated_at":  ov.UpdatedAt,
		})
	})

	mux.Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		ov, err := svc.Overview()
		if err != nil {
			writeViewErr(w, err)
			return
		}
		writeJSON(w, ov)
	})

	mux.Get("/dashboard/creatives", func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.Creatives(r.URL.Query())
		if err != nil {
			writeViewErr(w, err)
			return
		}
		writeJSON(w, rows)
	})

	mux.Get("/dashboard/projects", func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Projects()
		if err != nil {
			writeViewErr(w, err)
			return
		}
		writeJSON(w, stats)
	})

	mux.Method(http.MethodGet, "/metrics", metrics.Handler())

	return mux
}

func writeViewErr(w http.ResponseWriter, err error) {
	if errors.Is(err, dashboard.ErrNoView) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
