package ledger

import (
	"context"
	"errors"
	"time"

	"bbj-ledger/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// sumToleranceC is the reconciliation tolerance for caller-declared payout
// shares, one cent.
const sumToleranceC = 1

const lockRetryBackoff = 25 * time.Millisecond

const (
	PayoutStatusSettled     = "settled"
	PromoStatusAuthorized   = "authorized"
	reasonPayoutShareA      = "bbj_payout_share_a"
	reasonPayoutShareB      = "bbj_payout_share_b"
	reasonPayoutTableShare  = "bbj_payout_table_share"
	reasonPromoDisbursement = "promo_disbursement"
)

var promoEventTypes = map[string]bool{
	"rain":        true,
	"high_hand":   true,
	"leaderboard": true,
	"custom":      true,
}

// Service implements the jackpot ledger operations. Every operation mutates
// exactly one pool inside one transaction, holding an exclusive lock on the
// pool row for the whole read-modify-write sequence.
type Service struct {
	store        *store.Store
	lockRetryMax int
}

func NewService(st *store.Store, lockRetryMax int) *Service {
	if lockRetryMax < 1 {
		lockRetryMax = 3
	}
	return &Service{store: st, lockRetryMax: lockRetryMax}
}

type RecordContributionInput struct {
	PoolID    string
	HandID    string
	TableID   string
	AmountC   int64
	BigBlindC int64
}

// RecordContribution splits a hand's BBJ drop across the three reserves,
// picking the allocation tier from the pool's Main balance at the moment of
// the locked read, and records the immutable contribution.
func (s *Service) RecordContribution(ctx context.Context, in RecordContributionInput) (*store.Contribution, error) {
	if in.PoolID == "" || in.HandID == "" || in.AmountC <= 0 {
		return nil, ErrInvalidRequest
	}
	var out *store.Contribution
	err := s.withPoolRetry(ctx, in.PoolID, func(tx pgx.Tx, pool *store.Pool) error {
		mainC, backupC, promoC := splitAmount(in.AmountC, allocationFor(pool.MainC))
		if mainC+backupC+promoC != in.AmountC {
			// Unreachable by construction of splitAmount; asserted anyway so a
			// broken split can never reach the balances.
			metricSumMismatchTotal.Add(1)
			return ErrSumMismatch
		}
		c := store.Contribution{
			ID:             store.NewID(),
			PoolID:         pool.ID,
			HandID:         in.HandID,
			TableID:        in.TableID,
			AmountC:        in.AmountC,
			MainPortionC:   mainC,
			BackupPortionC: backupC,
			PromoPortionC:  promoC,
			BigBlindC:      in.BigBlindC,
		}
		if err := s.store.InsertContribution(ctx, tx, &c); err != nil {
			return err
		}
		if err := s.store.ApplyContributionBalances(ctx, tx, pool.ID, mainC, backupC, promoC); err != nil {
			return err
		}
		out = &c
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	metricContributionsTotal.Add(1)
	return out, nil
}

type ExecutePayoutInput struct {
	PoolID           string
	HandID           string
	RecipientA       string
	RecipientB       string
	DealtInPlayerIDs []string
	RecipientAShareC int64
	RecipientBShareC int64
	TableShareC      int64
	HandNameA        string
	HandNameB        string
}

// ExecutePayout settles a jackpot hit: the entire Main reserve is
// distributed across the two distinguished recipients and an even table
// split, then the pool reseeds from Backup. The caller's three shares must
// sum to the Main balance read under the lock.
func (s *Service) ExecutePayout(ctx context.Context, in ExecutePayoutInput) (*store.Payout, error) {
	if in.PoolID == "" || in.HandID == "" || in.RecipientA == "" || in.RecipientB == "" {
		return nil, ErrInvalidRequest
	}
	if len(in.DealtInPlayerIDs) == 0 || hasDuplicates(in.DealtInPlayerIDs) {
		return nil, ErrInvalidRequest
	}
	if in.RecipientAShareC < 0 || in.RecipientBShareC < 0 || in.TableShareC < 0 {
		return nil, ErrInvalidRequest
	}
	var out *store.Payout
	err := s.withPoolRetry(ctx, in.PoolID, func(tx pgx.Tx, pool *store.Pool) error {
		total := pool.MainC
		declared := in.RecipientAShareC + in.RecipientBShareC + in.TableShareC
		if diff := declared - total; diff > sumToleranceC || diff < -sumToleranceC {
			metricSumMismatchTotal.Add(1)
			return ErrSumMismatch
		}

		p := store.Payout{
			ID:               store.NewID(),
			PoolID:           pool.ID,
			HandID:           in.HandID,
			RecipientA:       in.RecipientA,
			RecipientB:       in.RecipientB,
			TotalAmountC:     total,
			RecipientAShareC: in.RecipientAShareC,
			RecipientBShareC: in.RecipientBShareC,
			TableShareC:      in.TableShareC,
			DealtInCount:     len(in.DealtInPlayerIDs),
			HandNameA:        in.HandNameA,
			HandNameB:        in.HandNameB,
			Status:           PayoutStatusSettled,
		}
		if err := s.store.InsertPayout(ctx, tx, &p); err != nil {
			return err
		}

		tableSplits := splitEvenly(in.TableShareC, len(in.DealtInPlayerIDs))
		recipients := make([]store.PayoutRecipient, 0, len(in.DealtInPlayerIDs))
		for i, userID := range in.DealtInPlayerIDs {
			recipients = append(recipients, store.PayoutRecipient{
				ID:       store.NewID(),
				PayoutID: p.ID,
				UserID:   userID,
				AmountC:  tableSplits[i],
			})
		}
		if err := s.store.InsertPayoutRecipients(ctx, tx, recipients); err != nil {
			return err
		}

		credits := []store.WalletCredit{
			{UserID: in.RecipientA, AmountC: in.RecipientAShareC, Reason: reasonPayoutShareA},
			{UserID: in.RecipientB, AmountC: in.RecipientBShareC, Reason: reasonPayoutShareB},
		}
		for _, r := range recipients {
			credits = append(credits, store.WalletCredit{UserID: r.UserID, AmountC: r.AmountC, Reason: reasonPayoutTableShare})
		}
		for _, c := range credits {
			if c.AmountC == 0 {
				continue
			}
			c.ID = store.NewID()
			c.RefType = store.WalletRefPayout
			c.RefID = p.ID
			if err := s.store.EnqueueWalletCredit(ctx, tx, c); err != nil {
				return err
			}
		}

		if err := s.store.ReseedPoolAfterHit(ctx, tx, pool.ID, total, in.RecipientA, in.RecipientB, time.Now().UTC()); err != nil {
			return err
		}
		out = &p
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	metricPayoutsTotal.Add(1)
	log.Info().Str("pool_id", in.PoolID).Str("hand_id", in.HandID).
		Int64("total_c", out.TotalAmountC).Int("dealt_in", out.DealtInCount).
		Msg("jackpot payout settled")
	return out, nil
}

type PromoPayoutInput struct {
	PoolID       string
	AmountC      int64
	RecipientIDs []string
	Reason       string
	TriggeredBy  string
	EventType    string
}

// PromoPayout authorizes a manual withdrawal from the Promo reserve and logs
// the immutable event. Crediting each recipient's spendable balance is
// delegated to the wallet collaborator through the outbox.
func (s *Service) PromoPayout(ctx context.Context, in PromoPayoutInput) (*store.PromoEvent, error) {
	if in.PoolID == "" || in.AmountC <= 0 || len(in.RecipientIDs) == 0 || !promoEventTypes[in.EventType] {
		return nil, ErrInvalidRequest
	}
	var out *store.PromoEvent
	err := s.withPoolRetry(ctx, in.PoolID, func(tx pgx.Tx, pool *store.Pool) error {
		if pool.PromoC < in.AmountC {
			return ErrInsufficientBalance
		}
		if err := s.store.DeductPromo(ctx, tx, pool.ID, in.AmountC); err != nil {
			return err
		}
		e := store.PromoEvent{
			ID:             store.NewID(),
			PoolID:         pool.ID,
			EventType:      in.EventType,
			Reason:         in.Reason,
			AmountC:        in.AmountC,
			RecipientCount: len(in.RecipientIDs),
			TriggeredBy:    in.TriggeredBy,
			Status:         PromoStatusAuthorized,
		}
		if err := s.store.InsertPromoEvent(ctx, tx, &e); err != nil {
			return err
		}
		splits := splitEvenly(in.AmountC, len(in.RecipientIDs))
		for i, userID := range in.RecipientIDs {
			if splits[i] == 0 {
				continue
			}
			credit := store.WalletCredit{
				ID:      store.NewID(),
				UserID:  userID,
				AmountC: splits[i],
				Reason:  reasonPromoDisbursement,
				RefType: store.WalletRefPromo,
				RefID:   e.ID,
			}
			if err := s.store.EnqueueWalletCredit(ctx, tx, credit); err != nil {
				return err
			}
		}
		out = &e
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	metricPromoPayoutsTotal.Add(1)
	return out, nil
}

// withPoolRetry retries the locked transaction a bounded number of times when
// the pool row is contended. All other errors surface immediately.
func (s *Service) withPoolRetry(ctx context.Context, poolID string, fn func(tx pgx.Tx, pool *store.Pool) error) error {
	var err error
	for attempt := 0; attempt < s.lockRetryMax; attempt++ {
		if attempt > 0 {
			metricLockRetriesTotal.Add(1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * lockRetryBackoff):
			}
		}
		err = s.store.WithPoolLock(ctx, poolID, fn)
		if !errors.Is(err, store.ErrLockNotAvailable) {
			return err
		}
	}
	metricLockRetryExhaustedTotal.Add(1)
	return err
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrPoolNotFound
	case errors.Is(err, store.ErrDuplicate):
		return ErrDuplicateHand
	case errors.Is(err, store.ErrLockNotAvailable):
		return ErrPoolBusy
	default:
		return err
	}
}

func hasDuplicates(ids []string) bool {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}
