package lob

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pglo/pglo/internal/logger"
)

// Store manages a PostgreSQL connection pool and hands out transaction-scoped
// registries for large object access.
//
// The Store only owns the connection and transaction plumbing. All large
// object semantics live on Registry and Object; callers who manage their own
// pgx transactions can skip the Store entirely and use NewRegistry.
type Store struct {
	pool   *pgxpool.Pool
	config *Config
	logger *slog.Logger
}

// NewStore connects to PostgreSQL and returns a Store.
func NewStore(ctx context.Context, cfg *Config) (*Store, error) {
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.With("component", "lob_store")

	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod

	if cfg.QueryTimeout > 0 {
		poolConfig.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%dms", cfg.QueryTimeout.Milliseconds())
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	log.Info("large object store connected",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.Database,
		"max_conns", cfg.MaxConns,
	)

	return &Store{
		pool:   pool,
		config: cfg,
		logger: log,
	}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.logger.Debug("closing large object store")
	s.pool.Close()
	return nil
}

// Healthcheck verifies the pool can reach the server.
func (s *Store) Healthcheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// WithTransaction executes fn against a Registry inside a transaction.
//
// If fn returns an error, the transaction is rolled back.
// If fn returns nil, the transaction is committed.
func (s *Store) WithTransaction(ctx context.Context, fn func(r *Registry) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // No-op if committed

	if err := fn(NewRegistry(tx)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// WithObject opens the object with the given OID inside its own transaction,
// runs fn against it, and closes both the handle and the transaction.
//
// The handle's close error is observed when fn succeeds; after an fn failure
// the deferred close only releases the descriptor and its error is
// deliberately discarded.
func (s *Store) WithObject(ctx context.Context, oid uint32, mode Mode, fn func(o *Object) error) error {
	return s.WithTransaction(ctx, func(r *Registry) error {
		obj, err := r.Open(ctx, oid, mode)
		if err != nil {
			return err
		}
		defer obj.Close() // No-op after an explicit Close

		if err := fn(obj); err != nil {
			return err
		}

		return obj.Close()
	})
}
