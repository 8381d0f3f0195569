package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const payoutColumns = `id, pool_id, hand_id, recipient_a, recipient_b,
	total_amount_c, recipient_a_share_c, recipient_b_share_c, table_share_c,
	dealt_in_count, hand_name_a, hand_name_b, status, created_at`

// InsertPayout writes the immutable payout record. A second payout for the
// same (pool, hand) returns ErrDuplicate.
func (s *Store) InsertPayout(ctx context.Context, tx pgx.Tx, p *Payout) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO payouts (id, pool_id, hand_id, recipient_a, recipient_b,
			total_amount_c, recipient_a_share_c, recipient_b_share_c, table_share_c,
			dealt_in_count, hand_name_a, hand_name_b, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING created_at
	`, p.ID, p.PoolID, p.HandID, p.RecipientA, p.RecipientB,
		p.TotalAmountC, p.RecipientAShareC, p.RecipientBShareC, p.TableShareC,
		p.DealtInCount, p.HandNameA, p.HandNameB, p.Status).Scan(&p.CreatedAt)
	return mapPgError(err)
}

func (s *Store) InsertPayoutRecipients(ctx context.Context, tx pgx.Tx, recipients []PayoutRecipient) error {
	for _, r := range recipients {
		_, err := tx.Exec(ctx, `
			INSERT INTO payout_recipients (id, payout_id, user_id, amount_c)
			VALUES ($1,$2,$3,$4)
		`, r.ID, r.PayoutID, r.UserID, r.AmountC)
		if err != nil {
			return mapPgError(err)
		}
	}
	return nil
}

func (s *Store) GetPayout(ctx context.Context, id string) (*Payout, error) {
	return scanPayout(s.Pool.QueryRow(ctx, `SELECT `+payoutColumns+` FROM payouts WHERE id = $1`, id))
}

func (s *Store) GetPayoutByHand(ctx context.Context, poolID, handID string) (*Payout, error) {
	return scanPayout(s.Pool.QueryRow(ctx, `SELECT `+payoutColumns+` FROM payouts WHERE pool_id = $1 AND hand_id = $2`, poolID, handID))
}

func (s *Store) ListPayoutsByPool(ctx context.Context, poolID string, limit, offset int) ([]Payout, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT `+payoutColumns+` FROM payouts
		WHERE pool_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, poolID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Payout{}
	for rows.Next() {
		var p Payout
		if err := scanPayoutFields(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) ListPayoutRecipients(ctx context.Context, payoutID string) ([]PayoutRecipient, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, payout_id, user_id, amount_c, created_at FROM payout_recipients
		WHERE payout_id = $1 ORDER BY created_at ASC, id ASC
	`, payoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayoutRecipients(rows)
}

// ListPayoutSharesByUser returns a user's pool-share history, newest first.
func (s *Store) ListPayoutSharesByUser(ctx context.Context, userID string, limit, offset int) ([]PayoutRecipient, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, payout_id, user_id, amount_c, created_at FROM payout_recipients
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayoutRecipients(rows)
}

func scanPayout(row pgx.Row) (*Payout, error) {
	var p Payout
	if err := scanPayoutFields(row, &p); err != nil {
		return nil, mapPgError(err)
	}
	return &p, nil
}

func scanPayoutFields(row pgx.Row, p *Payout) error {
	return row.Scan(&p.ID, &p.PoolID, &p.HandID, &p.RecipientA, &p.RecipientB,
		&p.TotalAmountC, &p.RecipientAShareC, &p.RecipientBShareC, &p.TableShareC,
		&p.DealtInCount, &p.HandNameA, &p.HandNameB, &p.Status, &p.CreatedAt)
}

func collectPayoutRecipients(rows pgx.Rows) ([]PayoutRecipient, error) {
	out := []PayoutRecipient{}
	for rows.Next() {
		var r PayoutRecipient
		if err := rows.Scan(&r.ID, &r.PayoutID, &r.UserID, &r.AmountC, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
