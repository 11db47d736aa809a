// Package transport exposes the indexer's HTTP surface: Prometheus metrics and sweep status.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/goodnatureofminers/ethtxs-indexer/internal/evm/service/indexer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// StatusProvider reports the progress of the running sweep.
type StatusProvider interface {
	Status() indexer.Snapshot
}

// StatusHandler serves the sweep snapshot as JSON.
type StatusHandler struct {
	provider StatusProvider
	logger   *zap.Logger
}

// NewStatusHandler returns a StatusHandler instance.
func NewStatusHandler(provider StatusProvider, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{provider: provider, logger: logger}
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.provider.Status()); err != nil {
		h.logger.Warn("encode status failed", zap.Error(err))
	}
}

// NewHandler routes /metrics and /status behind permissive CORS.
func NewHandler(provider StatusProvider, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/status", NewStatusHandler(provider, logger))
	return cors.Default().Handler(mux)
}

// Serve runs an HTTP server on addr until ctx is canceled.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
