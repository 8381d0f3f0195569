package wallet

import (
	"context"
	"time"

	"bbj-ledger/internal/store"

	"github.com/rs/zerolog/log"
)

type outboxStore interface {
	ListDueWalletCredits(ctx context.Context, now time.Time, limit int) ([]store.WalletCredit, error)
	MarkWalletCreditSent(ctx context.Context, id string, at time.Time) error
	ScheduleWalletCreditRetry(ctx context.Context, id string, nextAt time.Time) error
	MarkWalletCreditFailed(ctx context.Context, id string) error
}

type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
	RetryMax     int
	RetryBase    time.Duration
}

// Outbox drains pending wallet credits: rows enqueued atomically with their
// payout or promo event are delivered here, retried with exponential backoff
// and parked as failed once RetryMax attempts are spent.
type Outbox struct {
	store    outboxStore
	creditor Creditor
	cfg      OutboxConfig
	done     chan struct{}
}

func NewOutbox(st outboxStore, creditor Creditor, cfg OutboxConfig) *Outbox {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.RetryMax <= 0 {
		cfg.RetryMax = 8
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 500 * time.Millisecond
	}
	return &Outbox{store: st, creditor: creditor, cfg: cfg, done: make(chan struct{})}
}

func (o *Outbox) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(o.cfg.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-o.done:
				return
			case <-ticker.C:
				o.Drain(ctx)
			}
		}
	}()
}

func (o *Outbox) Stop() {
	close(o.done)
}

// Drain processes one batch of due credits. Exported so tests and the admin
// surface can run a pass without waiting for the ticker.
func (o *Outbox) Drain(ctx context.Context) {
	credits, err := o.store.ListDueWalletCredits(ctx, time.Now().UTC(), o.cfg.BatchSize)
	if err != nil {
		metricOutboxPollErrTotal.Add(1)
		log.Error().Err(err).Msg("wallet outbox poll failed")
		return
	}
	metricCreditBatchSize.Set(int64(len(credits)))
	for _, c := range credits {
		o.deliver(ctx, c)
	}
}

func (o *Outbox) deliver(ctx context.Context, c store.WalletCredit) {
	err := o.creditor.CreditWallet(ctx, c.UserID, c.AmountC, c.Reason)
	if err == nil {
		if err := o.store.MarkWalletCreditSent(ctx, c.ID, time.Now().UTC()); err != nil {
			log.Error().Err(err).Str("credit_id", c.ID).Msg("mark credit sent failed")
			return
		}
		metricCreditSentTotal.Add(1)
		return
	}

	if c.Attempts+1 >= o.cfg.RetryMax {
		metricCreditFailedTotal.Add(1)
		log.Error().Err(err).Str("credit_id", c.ID).Str("user_id", c.UserID).
			Int("attempts", c.Attempts+1).Msg("wallet credit gave up")
		if err := o.store.MarkWalletCreditFailed(ctx, c.ID); err != nil {
			log.Error().Err(err).Str("credit_id", c.ID).Msg("mark credit failed failed")
		}
		return
	}

	metricCreditRetryTotal.Add(1)
	delay := o.cfg.RetryBase * time.Duration(1<<c.Attempts)
	nextAt := time.Now().UTC().Add(delay)
	log.Warn().Err(err).Str("credit_id", c.ID).Dur("retry_in", delay).Msg("wallet credit retry scheduled")
	if err := o.store.ScheduleWalletCreditRetry(ctx, c.ID, nextAt); err != nil {
		log.Error().Err(err).Str("credit_id", c.ID).Msg("schedule credit retry failed")
	}
}
