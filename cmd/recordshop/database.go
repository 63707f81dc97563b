package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"

	"recordshop/internal/app/records"
	"recordshop/internal/config"
	"recordshop/internal/logging"
	"recordshop/internal/store"
)

// albumStore is a record backend that can report its reachability.
type albumStore interface {
	records.Store
	Ping(ctx context.Context) error
}

// openStore builds the configured album backend. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config) (albumStore, func() error, error) {
	if cfg.Store == config.StoreMemory {
		logging.Warn("using in-memory album store; data is lost on exit")
		return store.NewMemory(), func() error { return nil }, nil
	}

	db, err := openDatabase(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	logging.WithContext(ctx).Info().Str("driver", cfg.Database.Driver).Msg("connected to database")
	return store.New(db), db.Close, nil
}

// openDatabase establishes a database connection and retries until the instance responds.
func openDatabase(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	const (
		pingTimeout    = 5 * time.Second
		maxWait        = 30 * time.Second
		initialBackoff = 500 * time.Millisecond
		maxBackoff     = 5 * time.Second
	)

	deadline := time.Now().Add(maxWait)
	backoff := initialBackoff
	var lastErr error

	for {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()

		if lastErr == nil {
			return db, nil
		}

		if ctx.Err() != nil || time.Now().After(deadline) {
			break
		}

		logging.WithContext(ctx).Warn().
			Err(lastErr).
			Dur("retry_in", backoff).
			Msg("database not ready")

		select {
		case <-ctx.Done():
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	_ = db.Close()
	return nil, fmt.Errorf("ping database: %w", lastErr)
}
