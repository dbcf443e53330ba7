package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"companydir/internal"
	"companydir/internal/profiling"

	"golang.org/x/sync/errgroup"
)

type namedServer struct {
	name string
	*http.Server
}

func newWebServer(addr string, handler http.Handler) *namedServer {
	return &namedServer{
		name: "web",
		Server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

func newProfilingServer(host, port string, health profiling.Health, logger *internal.Logger) *namedServer {
	return &namedServer{
		name:   "profiling",
		Server: profiling.NewServer(net.JoinHostPort(host, port), health, logger),
	}
}

// serve runs every server until ctx is done or one of them fails, then shuts
// all of them down within timeout.
func serve(ctx context.Context, timeout time.Duration, logger *internal.Logger, servers ...*namedServer) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			logger.Info("Starting %s server on http://%s", srv.name, srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var firstErr error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("%s server shutdown: %v", srv.name, err)
				if firstErr == nil {
					firstErr = err
				}
			}
		}
		logger.Info("Servers stopped")
		return firstErr
	})

	return g.Wait()
}
