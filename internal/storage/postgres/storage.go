package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/furnirent/internal/domain/errors"
	"github.com/polkiloo/furnirent/internal/domain/repository"
)

const uniqueViolation = "23505"

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Payments() repository.PaymentRepository {
	return &paymentRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            name TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL DEFAULT 'USER',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
            image_url TEXT NOT NULL DEFAULT '',
            stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS rental_orders (
            id TEXT PRIMARY KEY,
            renter_id BIGINT NOT NULL REFERENCES users(id),
            renter_name TEXT NOT NULL DEFAULT '',
            renter_email TEXT NOT NULL DEFAULT '',
            total NUMERIC(12,2) NOT NULL,
            status TEXT NOT NULL,
            ordered_at TIMESTAMPTZ NOT NULL,
            start_date TIMESTAMPTZ,
            end_date TIMESTAMPTZ,
            delivery_address TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT '',
            transport_status TEXT NOT NULL,
            user_proposed_cost NUMERIC(12,2),
            admin_proposed_cost NUMERIC(12,2),
            accepted_cost NUMERIC(12,2) NOT NULL DEFAULT 0,
            last_proposer TEXT NOT NULL DEFAULT '',
            proposed_at TIMESTAMPTZ,
            deposit_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
            balance_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
            deposit_status TEXT NOT NULL DEFAULT '',
            balance_status TEXT NOT NULL DEFAULT '',
            deposit_paid_at TIMESTAMPTZ,
            balance_paid_at TIMESTAMPTZ,
            pay_on_delivery BOOLEAN NOT NULL DEFAULT FALSE,
            version BIGINT NOT NULL DEFAULT 1,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_lines (
            order_id TEXT NOT NULL REFERENCES rental_orders(id) ON DELETE CASCADE,
            position INTEGER NOT NULL,
            product_id TEXT NOT NULL REFERENCES products(id),
            product_name TEXT NOT NULL,
            image_url TEXT NOT NULL DEFAULT '',
            unit_price NUMERIC(12,2) NOT NULL,
            quantity INTEGER NOT NULL,
            rental_days INTEGER NOT NULL,
            subtotal NUMERIC(12,2) NOT NULL,
            PRIMARY KEY (order_id, position)
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id TEXT PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES rental_orders(id),
            payer_id BIGINT NOT NULL REFERENCES users(id),
            amount NUMERIC(12,2) NOT NULL,
            kind TEXT NOT NULL,
            method TEXT NOT NULL,
            status TEXT NOT NULL,
            paid_at TIMESTAMPTZ,
            transaction_ref TEXT UNIQUE NOT NULL,
            card_last4 TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            checked_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_rental_orders_renter ON rental_orders(renter_id, ordered_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_rental_orders_status ON rental_orders(status, ordered_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_pending ON payments(status, checked_at NULLS FIRST)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.ErrNotFound
	}
	return err
}
