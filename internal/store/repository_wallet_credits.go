package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

const walletCreditColumns = `id, user_id, amount_c, reason, ref_type, ref_id,
	status, attempts, next_attempt_at, created_at, sent_at`

// EnqueueWalletCredit inserts a pending outbox row. Called inside the same
// transaction that persists the payout or promo event the credit belongs to.
func (s *Store) EnqueueWalletCredit(ctx context.Context, tx pgx.Tx, c WalletCredit) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO wallet_credits (id, user_id, amount_c, reason, ref_type, ref_id, status)
		VALUES ($1,$2,$3,$4,$5,$6,'pending')
	`, c.ID, c.UserID, c.AmountC, c.Reason, c.RefType, c.RefID)
	return mapPgError(err)
}

// ListDueWalletCredits returns pending credits whose next attempt time has
// passed, oldest first.
func (s *Store) ListDueWalletCredits(ctx context.Context, now time.Time, limit int) ([]WalletCredit, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT `+walletCreditColumns+` FROM wallet_credits
		WHERE status = 'pending' AND next_attempt_at <= $1
		ORDER BY next_attempt_at ASC LIMIT $2
	`, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWalletCredits(rows)
}

func (s *Store) MarkWalletCreditSent(ctx context.Context, id string, at time.Time) error {
	_, err := s.Pool.Exec(ctx, `
		UPDATE wallet_credits SET status = 'sent', sent_at = $2 WHERE id = $1
	`, id, at)
	return mapPgError(err)
}

func (s *Store) ScheduleWalletCreditRetry(ctx context.Context, id string, nextAt time.Time) error {
	_, err := s.Pool.Exec(ctx, `
		UPDATE wallet_credits SET attempts = attempts + 1, next_attempt_at = $2 WHERE id = $1
	`, id, nextAt)
	return mapPgError(err)
}

func (s *Store) MarkWalletCreditFailed(ctx context.Context, id string) error {
	_, err := s.Pool.Exec(ctx, `
		UPDATE wallet_credits SET status = 'failed', attempts = attempts + 1 WHERE id = $1
	`, id)
	return mapPgError(err)
}

func (s *Store) ListWalletCredits(ctx context.Context, status string, limit, offset int) ([]WalletCredit, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows pgx.Rows
	var err error
	if status == "" {
		rows, err = s.Pool.Query(ctx, `
			SELECT `+walletCreditColumns+` FROM wallet_credits
			ORDER BY created_at DESC LIMIT $1 OFFSET $2
		`, limit, offset)
	} else {
		rows, err = s.Pool.Query(ctx, `
			SELECT `+walletCreditColumns+` FROM wallet_credits
			WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
		`, status, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWalletCredits(rows)
}

func (s *Store) ListWalletCreditsByRef(ctx context.Context, refType, refID string) ([]WalletCredit, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT `+walletCreditColumns+` FROM wallet_credits
		WHERE ref_type = $1 AND ref_id = $2 ORDER BY created_at ASC, id ASC
	`, refType, refID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWalletCredits(rows)
}

func collectWalletCredits(rows pgx.Rows) ([]WalletCredit, error) {
	out := []WalletCredit{}
	for rows.Next() {
		var c WalletCredit
		var sentAt *time.Time
		if err := rows.Scan(&c.ID, &c.UserID, &c.AmountC, &c.Reason, &c.RefType, &c.RefID,
			&c.Status, &c.Attempts, &c.NextAttemptAt, &c.CreatedAt, &sentAt); err != nil {
			return nil, err
		}
		c.SentAt = sentAt
		out = append(out, c)
	}
	return out, rows.Err()
}
