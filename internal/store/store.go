package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"recordshop/internal/logging"
)

var (
	// ErrInvalidAlbum indicates the database rejected album data.
	ErrInvalidAlbum = errors.New("invalid album")
	// ErrAlbumNotFound signals a missing album record.
	ErrAlbumNotFound = errors.New("album not found")
)

// Store provides album persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, query, args...)
	logging.DBQuery(compactQuery(query), time.Since(start), err)
	return rows, err
}

func (s *Store) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := s.db.QueryRowContext(ctx, query, args...)
	logging.DBQuery(compactQuery(query), time.Since(start), row.Err())
	return row
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := s.db.ExecContext(ctx, query, args...)
	logging.DBQuery(compactQuery(query), time.Since(start), err)
	return res, err
}

// isConstraintViolation reports integrity constraint failures (SQLSTATE class 23)
// from either driver.
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "23"
	}
	return false
}

func compactQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
