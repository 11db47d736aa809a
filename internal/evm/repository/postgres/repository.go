// Package postgres persists normalized transactions into the ethtxs table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Pool is the subset of pgxpool.Pool the repository uses.
	Pool interface {
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	}
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// ErrWrite marks a block whose rows could not be persisted.
var ErrWrite = errors.New("write failed")

type Repository struct {
	pool         Pool
	metrics      Metrics
	skipExisting bool
}

// Option configures a Repository.
type Option func(*Repository)

// WithSkipExisting drops rows whose transaction hash is already stored.
func WithSkipExisting() Option {
	return func(r *Repository) {
		r.skipExisting = true
	}
}

func NewRepository(pool Pool, metrics Metrics, opts ...Option) *Repository {
	r := &Repository{pool: pool, metrics: metrics}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewPool opens and pings a connection pool. maxConns <= 0 keeps the pgx default.
func NewPool(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}
