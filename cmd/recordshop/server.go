package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"recordshop/internal/app/records"
	"recordshop/internal/config"
	"recordshop/internal/http/middleware"
	"recordshop/internal/httpapi"
	"recordshop/internal/logging"
)

const shutdownTimeout = 30 * time.Second

// newHTTPHandler wraps the API routes in the middleware chain, outermost first:
// recovery, request logging, CORS, rate limiting.
func newHTTPHandler(ctx context.Context, cfg *config.Config, dataStore albumStore) http.Handler {
	handler := httpapi.New(records.New(dataStore), dataStore).Routes()

	if cfg.RateLimit.Enabled() {
		limiter := middleware.NewRateLimiter(ctx, cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		handler = limiter.Middleware()(handler)
	}
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)

	return handler
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.WithContext(ctx).Info().Str("addr", addr).Msg("record shop API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			logging.Error(err, "server stopped unexpectedly")
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error(err, "graceful shutdown failed")
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logging.Info("server exited")
	return nil
}
