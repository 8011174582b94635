package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Clark-Hu/hostel-service/internal/metrics"
)

// MigrationPattern matches forward migration files under a migrations dir.
const MigrationPattern = "*_*.up.sql"

// Options tunes the hostel database pool. Zero values keep the pgx defaults.
type Options struct {
	MaxConns               int32
	MinConns               int32
	MaxConnIdleTime        time.Duration
	MaxConnLifetime        time.Duration
	ConnTimeout            time.Duration
	StatementCacheCapacity int
	// Registerer receives the pool gauges. Nil skips registration.
	Registerer prometheus.Registerer
	Logger     *zap.Logger
}

// Store owns the PostgreSQL pool shared by the hostel, category, rating,
// reply and image repositories.
type Store struct {
	pool    *pgxpool.Pool
	logger  *zap.Logger
	timeout time.Duration
}

// Execer runs a statement. *pgxpool.Pool and pgx.Tx both satisfy it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// New connects, pings and, when opts.Registerer is set, exposes pool gauges.
func New(ctx context.Context, dbURL string, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("store")

	cfg, err := poolConfig(dbURL, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("opening hostel database pool",
		zap.String("host", cfg.ConnConfig.Host),
		zap.String("database", cfg.ConnConfig.Database),
		zap.Int32("max_conns", cfg.MaxConns),
		zap.Int32("min_conns", cfg.MinConns),
		zap.Int("stmt_cache", cfg.ConnConfig.StatementCacheCapacity))

	connCtx, cancel := withTimeout(ctx, opts.ConnTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(connCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &Store{pool: pool, logger: logger, timeout: opts.ConnTimeout}
	if opts.Registerer != nil {
		if err := registerPoolGauges(opts.Registerer, s); err != nil {
			logger.Warn("pool gauges not registered", zap.Error(err))
		}
	}
	return s, nil
}

// poolConfig parses dbURL and layers the non-zero options on top.
func poolConfig(dbURL string, opts Options) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		cfg.MinConns = opts.MinConns
	}
	if opts.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = opts.MaxConnIdleTime
	}
	if opts.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.StatementCacheCapacity > 0 {
		cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement
		cfg.ConnConfig.StatementCacheCapacity = opts.StatementCacheCapacity
	} else if opts.StatementCacheCapacity == 0 {
		// 0 turns statement caching off entirely.
		cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec
	}
	return cfg, nil
}

// Migrate applies every forward migration in dir, in file-name order.
func (s *Store) Migrate(ctx context.Context, dir string) error {
	applied, err := ApplyMigrations(ctx, s.pool, dir)
	if err != nil {
		return err
	}
	s.logger.Info("migrations applied", zap.String("dir", dir), zap.Strings("files", applied))
	return nil
}

// ApplyMigrations executes the MigrationPattern files of dir in lexical order
// and returns their base names. The migrations are plain idempotent DDL; no
// version table is kept.
func ApplyMigrations(ctx context.Context, db Execer, dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, MigrationPattern))
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no migrations found in %s", dir)
	}
	sort.Strings(files)

	applied := make([]string, 0, len(files))
	for _, path := range files {
		payload, err := os.ReadFile(path)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", path, err)
		}
		if _, err := db.Exec(ctx, string(payload)); err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", filepath.Base(path), err)
		}
		applied = append(applied, filepath.Base(path))
	}
	return applied, nil
}

func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.logger.Info("closing hostel database pool")
	s.pool.Close()
}

// HealthCheck pings the database within the configured connect timeout.
func (s *Store) HealthCheck(ctx context.Context) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("store not initialized")
	}
	checkCtx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return s.pool.Ping(checkCtx)
}

func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Stats is polled by the pool gauges on every scrape.
func (s *Store) Stats() *pgxpool.Stat {
	if s == nil || s.pool == nil {
		return nil
	}
	return s.pool.Stat()
}

func registerPoolGauges(reg prometheus.Registerer, s *Store) error {
	return metrics.RegisterPoolStats(reg, s.Stats)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
