package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a uniqueness constraint rejects a write,
	// e.g. a second contribution or payout for the same (pool, hand).
	ErrDuplicate = errors.New("duplicate")
	// ErrLockNotAvailable is returned when the pool row is held by another
	// in-flight operation. Callers may retry a bounded number of times.
	ErrLockNotAvailable = errors.New("lock not available")
	ErrInvalidOwner     = errors.New("pool owner must be exactly one of club or union")
)

// Store wraps DB access.
type Store struct {
	Pool *pgxpool.Pool
}

func New(dsn string) (*Store, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.Pool.Ping(ctx)
}

const (
	pgCodeUniqueViolation  = "23505"
	pgCodeLockNotAvailable = "55P03"
)

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeUniqueViolation:
			return ErrDuplicate
		case pgCodeLockNotAvailable:
			return ErrLockNotAvailable
		}
	}
	return err
}
