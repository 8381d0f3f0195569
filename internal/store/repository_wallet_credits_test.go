package store_test

import (
	"context"
	"testing"
	"time"

	"bbj-ledger/internal/store"
	"bbj-ledger/internal/testutil"
)

func enqueueCredit(t *testing.T, st *store.Store, c store.WalletCredit) {
	t.Helper()
	ctx := context.Background()
	tx, err := st.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback(ctx)
	if err := st.EnqueueWalletCredit(ctx, tx, c); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestWalletCreditLifecycle(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	id := store.NewID()
	enqueueCredit(t, st, store.WalletCredit{
		ID: id, UserID: "user-a", AmountC: 50_00,
		Reason: "bbj_payout_share_a", RefType: store.WalletRefPayout, RefID: store.NewID(),
	})

	due, err := st.ListDueWalletCredits(ctx, time.Now().UTC(), 10)
	if err != nil {
		t.Fatalf("list due: %v", err)
	}
	if len(due) != 1 || due[0].ID != id {
		t.Fatalf("expected the enqueued credit to be due, got %+v", due)
	}
	if due[0].Status != store.WalletCreditPending || due[0].Attempts != 0 {
		t.Fatalf("unexpected fresh credit state: %+v", due[0])
	}

	// Retry pushes the attempt count and the next delivery window.
	nextAt := time.Now().UTC().Add(time.Minute)
	if err := st.ScheduleWalletCreditRetry(ctx, id, nextAt); err != nil {
		t.Fatalf("schedule retry: %v", err)
	}
	due, err = st.ListDueWalletCredits(ctx, time.Now().UTC(), 10)
	if err != nil {
		t.Fatalf("list due after retry: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("retried credit should not be due yet, got %d rows", len(due))
	}
	due, err = st.ListDueWalletCredits(ctx, nextAt.Add(time.Second), 10)
	if err != nil {
		t.Fatalf("list due at retry window: %v", err)
	}
	if len(due) != 1 || due[0].Attempts != 1 {
		t.Fatalf("expected one credit with attempts=1, got %+v", due)
	}

	if err := st.MarkWalletCreditSent(ctx, id, time.Now().UTC()); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	due, err = st.ListDueWalletCredits(ctx, time.Now().UTC().Add(time.Hour), 10)
	if err != nil {
		t.Fatalf("list due after sent: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("sent credit still listed as due")
	}

	sent, err := st.ListWalletCredits(ctx, store.WalletCreditSent, 10, 0)
	if err != nil {
		t.Fatalf("list sent: %v", err)
	}
	if len(sent) != 1 || sent[0].SentAt == nil {
		t.Fatalf("expected one sent credit with sent_at, got %+v", sent)
	}
}

func TestWalletCreditMarkFailed(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	id := store.NewID()
	enqueueCredit(t, st, store.WalletCredit{
		ID: id, UserID: "user-a", AmountC: 10_00,
		Reason: "promo_disbursement", RefType: store.WalletRefPromo, RefID: store.NewID(),
	})

	if err := st.MarkWalletCreditFailed(ctx, id); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	due, err := st.ListDueWalletCredits(ctx, time.Now().UTC().Add(time.Hour), 10)
	if err != nil {
		t.Fatalf("list due: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("failed credit still listed as due")
	}
	failed, err := st.ListWalletCredits(ctx, store.WalletCreditFailed, 10, 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(failed) != 1 || failed[0].ID != id {
		t.Fatalf("expected the failed credit, got %+v", failed)
	}
}

func TestListWalletCreditsByRef(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()

	refID := store.NewID()
	for _, user := range []string{"user-a", "user-b"} {
		enqueueCredit(t, st, store.WalletCredit{
			ID: store.NewID(), UserID: user, AmountC: 25_00,
			Reason: "bbj_payout_table_share", RefType: store.WalletRefPayout, RefID: refID,
		})
	}
	enqueueCredit(t, st, store.WalletCredit{
		ID: store.NewID(), UserID: "user-c", AmountC: 5_00,
		Reason: "promo_disbursement", RefType: store.WalletRefPromo, RefID: store.NewID(),
	})

	credits, err := st.ListWalletCreditsByRef(ctx, store.WalletRefPayout, refID)
	if err != nil {
		t.Fatalf("list by ref: %v", err)
	}
	if len(credits) != 2 {
		t.Fatalf("expected 2 credits for ref, got %d", len(credits))
	}
}
