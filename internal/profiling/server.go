// Package profiling serves pprof and a health probe on a separate listener.
package profiling

import (
	"fmt"
	"net/http"
	"time"

	"companydir/internal"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Health reports what the process has loaded
type Health interface {
	Records() int
	Categories() int
	Dropped() int
}

// NewRouter mounts the pprof handlers under /debug and a /healthz probe
func NewRouter(health Health, logger *internal.Logger) *chi.Mux {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	logger = logger.Named("Profiling")

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Mount("/debug", middleware.Profiler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if health == nil {
			fmt.Fprintln(w, "ok")
			return
		}
		if _, err := fmt.Fprintf(w, "ok records=%d categories=%d dropped=%d\n", health.Records(), health.Categories(), health.Dropped()); err != nil {
			logger.Debug("healthz write failed: %v", err)
		}
	})

	return r
}

// NewServer wraps the router in an http.Server listening on addr
func NewServer(addr string, health Health, logger *internal.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(health, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
