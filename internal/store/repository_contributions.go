package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const contributionColumns = `id, pool_id, hand_id, table_id, amount_c,
	main_portion_c, backup_portion_c, promo_portion_c, big_blind_c, created_at`

// InsertContribution writes the immutable contribution record. A second
// contribution for the same (pool, hand) returns ErrDuplicate.
func (s *Store) InsertContribution(ctx context.Context, tx pgx.Tx, c *Contribution) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO contributions (id, pool_id, hand_id, table_id, amount_c,
			main_portion_c, backup_portion_c, promo_portion_c, big_blind_c)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at
	`, c.ID, c.PoolID, c.HandID, c.TableID, c.AmountC,
		c.MainPortionC, c.BackupPortionC, c.PromoPortionC, c.BigBlindC).Scan(&c.CreatedAt)
	return mapPgError(err)
}

func (s *Store) GetContribution(ctx context.Context, id string) (*Contribution, error) {
	return scanContribution(s.Pool.QueryRow(ctx, `SELECT `+contributionColumns+` FROM contributions WHERE id = $1`, id))
}

func (s *Store) ListContributionsByPool(ctx context.Context, poolID string, limit, offset int) ([]Contribution, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT `+contributionColumns+` FROM contributions
		WHERE pool_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, poolID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectContributions(rows)
}

func (s *Store) ListContributionsByHand(ctx context.Context, handID string) ([]Contribution, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT `+contributionColumns+` FROM contributions
		WHERE hand_id = $1 ORDER BY created_at DESC
	`, handID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectContributions(rows)
}

func scanContribution(row pgx.Row) (*Contribution, error) {
	var c Contribution
	err := row.Scan(&c.ID, &c.PoolID, &c.HandID, &c.TableID, &c.AmountC,
		&c.MainPortionC, &c.BackupPortionC, &c.PromoPortionC, &c.BigBlindC, &c.CreatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	return &c, nil
}

func collectContributions(rows pgx.Rows) ([]Contribution, error) {
	out := []Contribution{}
	for rows.Next() {
		var c Contribution
		if err := rows.Scan(&c.ID, &c.PoolID, &c.HandID, &c.TableID, &c.AmountC,
			&c.MainPortionC, &c.BackupPortionC, &c.PromoPortionC, &c.BigBlindC, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
