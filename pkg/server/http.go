package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"duplocloud-mcp/internal/metrics"
)

const (
	mcpEndpoint     = "/mcp"
	healthEndpoint  = "/healthz"
	metricsEndpoint = "/metrics"
)

func newHTTPHandler(server *sdkmcp.Server, recorder *metrics.Recorder) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(mcpEndpoint, sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, nil))
	mux.HandleFunc(healthEndpoint, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle(metricsEndpoint, recorder.Handler())
	return mux
}

// serveHTTP serves handler on addr until ctx is done, then shuts down
// gracefully.
func serveHTTP(ctx context.Context, handler http.Handler, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		klog.V(0).InfoS("HTTP server starting", "addr", addr, "endpoints", []string{mcpEndpoint, healthEndpoint, metricsEndpoint})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		klog.V(0).InfoS("shutting down HTTP server")
		return httpServer.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
