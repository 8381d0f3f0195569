package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const poolColumns = `id, club_id, union_id, main_c, backup_c, promo_c,
	total_contributed_c, total_paid_out_c, hit_count,
	last_hit_at, last_hit_amount_c, last_hit_winner, last_hit_loser,
	created_at, updated_at`

func scanPool(row pgx.Row) (*Pool, error) {
	var p Pool
	var clubID, unionID pgtype.Text
	var lastHitAt pgtype.Timestamptz
	var lastHitAmount pgtype.Int8
	err := row.Scan(
		&p.ID, &clubID, &unionID, &p.MainC, &p.BackupC, &p.PromoC,
		&p.TotalContributedC, &p.TotalPaidOutC, &p.HitCount,
		&lastHitAt, &lastHitAmount, &p.LastHitWinner, &p.LastHitLoser,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	p.ClubID = textVal(clubID)
	p.UnionID = textVal(unionID)
	p.LastHitAt = timePtrVal(lastHitAt)
	p.LastHitAmountC = int64PtrVal(lastHitAmount)
	return &p, nil
}

// GetOrCreatePool returns the pool owned by the given club or union, creating
// it with zero balances on first use. Creating a pool for an owner that
// already has one returns the existing pool.
func (s *Store) GetOrCreatePool(ctx context.Context, owner PoolOwner) (*Pool, error) {
	if !owner.Valid() {
		return nil, ErrInvalidOwner
	}
	if owner.ClubID != "" {
		_, err := s.Pool.Exec(ctx, `
			INSERT INTO pools (id, club_id) VALUES ($1, $2)
			ON CONFLICT (club_id) WHERE club_id IS NOT NULL DO NOTHING
		`, NewID(), owner.ClubID)
		if err != nil {
			return nil, mapPgError(err)
		}
		return scanPool(s.Pool.QueryRow(ctx, `SELECT `+poolColumns+` FROM pools WHERE club_id = $1`, owner.ClubID))
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO pools (id, union_id) VALUES ($1, $2)
		ON CONFLICT (union_id) WHERE union_id IS NOT NULL DO NOTHING
	`, NewID(), owner.UnionID)
	if err != nil {
		return nil, mapPgError(err)
	}
	return scanPool(s.Pool.QueryRow(ctx, `SELECT `+poolColumns+` FROM pools WHERE union_id = $1`, owner.UnionID))
}

func (s *Store) GetPool(ctx context.Context, poolID string) (*Pool, error) {
	return scanPool(s.Pool.QueryRow(ctx, `SELECT `+poolColumns+` FROM pools WHERE id = $1`, poolID))
}

// WithPoolLock runs fn inside a transaction holding an exclusive lock on the
// pool row. The lock is taken with NOWAIT so a contended pool surfaces
// ErrLockNotAvailable instead of queueing; the whole transaction commits or
// rolls back as one unit.
func (s *Store) WithPoolLock(ctx context.Context, poolID string, fn func(tx pgx.Tx, pool *Pool) error) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	pool, err := scanPool(tx.QueryRow(ctx, `SELECT `+poolColumns+` FROM pools WHERE id = $1 FOR UPDATE NOWAIT`, poolID))
	if err != nil {
		return err
	}
	if err := fn(tx, pool); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ApplyContributionBalances adds the three split portions to their reserves
// and bumps the lifetime contribution total. Must run under WithPoolLock.
func (s *Store) ApplyContributionBalances(ctx context.Context, tx pgx.Tx, poolID string, mainC, backupC, promoC int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE pools
		SET main_c = main_c + $2,
		    backup_c = backup_c + $3,
		    promo_c = promo_c + $4,
		    total_contributed_c = total_contributed_c + $5,
		    updated_at = now()
		WHERE id = $1
	`, poolID, mainC, backupC, promoC, mainC+backupC+promoC)
	return mapPgError(err)
}

// ReseedPoolAfterHit moves Backup into Main, zeroes Backup and records the
// hit. paidOutC is the Main balance that was just distributed. Must run under
// WithPoolLock.
func (s *Store) ReseedPoolAfterHit(ctx context.Context, tx pgx.Tx, poolID string, paidOutC int64, winner, loser string, hitAt time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE pools
		SET main_c = backup_c,
		    backup_c = 0,
		    total_paid_out_c = total_paid_out_c + $2,
		    hit_count = hit_count + 1,
		    last_hit_at = $3,
		    last_hit_amount_c = $2,
		    last_hit_winner = $4,
		    last_hit_loser = $5,
		    updated_at = now()
		WHERE id = $1
	`, poolID, paidOutC, hitAt, winner, loser)
	return mapPgError(err)
}

// DeductPromo removes amountC from the promo reserve. Must run under
// WithPoolLock; the caller checks the balance first, the CHECK constraint is
// the backstop.
func (s *Store) DeductPromo(ctx context.Context, tx pgx.Tx, poolID string, amountC int64) error {
	_, err := tx.Exec(ctx, `
		UPDATE pools SET promo_c = promo_c - $2, updated_at = now() WHERE id = $1
	`, poolID, amountC)
	return mapPgError(err)
}
