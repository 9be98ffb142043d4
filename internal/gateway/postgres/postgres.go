// Package postgres implements the entity gateway against a local PostgreSQL
// database for self-hosted deployments.
package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/quickdesk/quickdesk/internal/config"
	"github.com/quickdesk/quickdesk/internal/gateway"
)

const migrationsDir = "migrations"

// Store wraps a pgx connection pool and exposes per-entity gateways.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// Open establishes the connection pool.
func Open(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required for the postgres gateway driver")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("connected to postgres")
	return &Store{pool: pool, logger: logger}, nil
}

// Gateways returns the per-entity gateways backed by this store.
func (s *Store) Gateways() gateway.Gateways {
	return gateway.Gateways{
		Tickets:     &ticketGateway{pool: s.pool},
		Users:       &userGateway{pool: s.pool},
		Categories:  &categoryGateway{pool: s.pool},
		Invitations: &invitationGateway{pool: s.pool},
	}
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases pool resources.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// RunMigrations executes the SQL migrations located in the /migrations
// directory, in filename order.
func (s *Store) RunMigrations(ctx context.Context) error {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	filenames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		filenames = append(filenames, entry.Name())
	}
	sort.Strings(filenames)

	for _, name := range filenames {
		content, err := os.ReadFile(filepath.Join(migrationsDir, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		s.logger.Info("applying migration", zap.String("file", name))
		if _, err := s.pool.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}

	s.logger.Info("migrations applied", zap.Int("count", len(filenames)))
	return nil
}
