package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const promoEventColumns = `id, pool_id, event_type, reason, amount_c,
	recipient_count, triggered_by, status, created_at`

func (s *Store) InsertPromoEvent(ctx context.Context, tx pgx.Tx, e *PromoEvent) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO promo_events (id, pool_id, event_type, reason, amount_c,
			recipient_count, triggered_by, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at
	`, e.ID, e.PoolID, e.EventType, e.Reason, e.AmountC,
		e.RecipientCount, e.TriggeredBy, e.Status).Scan(&e.CreatedAt)
	return mapPgError(err)
}

func (s *Store) GetPromoEvent(ctx context.Context, id string) (*PromoEvent, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+promoEventColumns+` FROM promo_events WHERE id = $1`, id)
	var e PromoEvent
	if err := row.Scan(&e.ID, &e.PoolID, &e.EventType, &e.Reason, &e.AmountC,
		&e.RecipientCount, &e.TriggeredBy, &e.Status, &e.CreatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return &e, nil
}

func (s *Store) ListPromoEventsByPool(ctx context.Context, poolID string, limit, offset int) ([]PromoEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT `+promoEventColumns+` FROM promo_events
		WHERE pool_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, poolID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []PromoEvent{}
	for rows.Next() {
		var e PromoEvent
		if err := rows.Scan(&e.ID, &e.PoolID, &e.EventType, &e.Reason, &e.AmountC,
			&e.RecipientCount, &e.TriggeredBy, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
