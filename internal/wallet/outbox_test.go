package wallet

import (
	"context"
	"errors"
	"testing"
	"time"

	"bbj-ledger/internal/store"
)

type fakeOutboxStore struct {
	due       []store.WalletCredit
	listErr   error
	sentIDs   []string
	retryIDs  []string
	retryAt   []time.Time
	failedIDs []string
}

func (f *fakeOutboxStore) ListDueWalletCredits(context.Context, time.Time, int) ([]store.WalletCredit, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.due, nil
}

func (f *fakeOutboxStore) MarkWalletCreditSent(_ context.Context, id string, _ time.Time) error {
	f.sentIDs = append(f.sentIDs, id)
	return nil
}

func (f *fakeOutboxStore) ScheduleWalletCreditRetry(_ context.Context, id string, nextAt time.Time) error {
	f.retryIDs = append(f.retryIDs, id)
	f.retryAt = append(f.retryAt, nextAt)
	return nil
}

func (f *fakeOutboxStore) MarkWalletCreditFailed(_ context.Context, id string) error {
	f.failedIDs = append(f.failedIDs, id)
	return nil
}

type fakeCreditor struct {
	err   error
	calls []string
}

func (f *fakeCreditor) CreditWallet(_ context.Context, userID string, _ int64, _ string) error {
	f.calls = append(f.calls, userID)
	return f.err
}

func TestOutboxDrainMarksSent(t *testing.T) {
	st := &fakeOutboxStore{due: []store.WalletCredit{
		{ID: "c1", UserID: "user-a", AmountC: 100},
		{ID: "c2", UserID: "user-b", AmountC: 200},
	}}
	creditor := &fakeCreditor{}
	o := NewOutbox(st, creditor, OutboxConfig{})

	o.Drain(context.Background())

	if len(creditor.calls) != 2 {
		t.Fatalf("expected 2 credit calls, got %d", len(creditor.calls))
	}
	if len(st.sentIDs) != 2 || st.sentIDs[0] != "c1" || st.sentIDs[1] != "c2" {
		t.Fatalf("unexpected sent ids: %v", st.sentIDs)
	}
	if len(st.retryIDs) != 0 || len(st.failedIDs) != 0 {
		t.Fatalf("no retries or failures expected")
	}
}

func TestOutboxDrainSchedulesRetryWithBackoff(t *testing.T) {
	st := &fakeOutboxStore{due: []store.WalletCredit{
		{ID: "c1", UserID: "user-a", AmountC: 100, Attempts: 0},
		{ID: "c2", UserID: "user-b", AmountC: 200, Attempts: 3},
	}}
	creditor := &fakeCreditor{err: errors.New("wallet down")}
	o := NewOutbox(st, creditor, OutboxConfig{RetryMax: 8, RetryBase: time.Second})

	before := time.Now().UTC()
	o.Drain(context.Background())

	if len(st.retryIDs) != 2 {
		t.Fatalf("expected both credits rescheduled, got %v", st.retryIDs)
	}
	// First attempt backs off one base interval, the fourth by 2^3.
	if d := st.retryAt[0].Sub(before); d < time.Second || d > 3*time.Second {
		t.Fatalf("first retry delay out of range: %v", d)
	}
	if d := st.retryAt[1].Sub(before); d < 8*time.Second || d > 10*time.Second {
		t.Fatalf("fourth retry delay out of range: %v", d)
	}
	if len(st.failedIDs) != 0 {
		t.Fatalf("credits should not be parked yet")
	}
}

func TestOutboxDrainParksAfterRetryMax(t *testing.T) {
	st := &fakeOutboxStore{due: []store.WalletCredit{
		{ID: "c1", UserID: "user-a", AmountC: 100, Attempts: 7},
	}}
	creditor := &fakeCreditor{err: errors.New("wallet down")}
	o := NewOutbox(st, creditor, OutboxConfig{RetryMax: 8})

	o.Drain(context.Background())

	if len(st.failedIDs) != 1 || st.failedIDs[0] != "c1" {
		t.Fatalf("expected credit parked as failed, got %v", st.failedIDs)
	}
	if len(st.retryIDs) != 0 {
		t.Fatalf("exhausted credit should not be rescheduled")
	}
}

func TestOutboxDrainPollErrorIsNonFatal(t *testing.T) {
	st := &fakeOutboxStore{listErr: errors.New("db gone")}
	o := NewOutbox(st, &fakeCreditor{}, OutboxConfig{})

	o.Drain(context.Background())

	if len(st.sentIDs) != 0 || len(st.retryIDs) != 0 || len(st.failedIDs) != 0 {
		t.Fatalf("nothing should be processed when the poll fails")
	}
}

func TestOutboxStartStops(t *testing.T) {
	st := &fakeOutboxStore{}
	o := NewOutbox(st, &fakeCreditor{}, OutboxConfig{PollInterval: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	o.Start(ctx)
	time.Sleep(20 * time.Millisecond)
	o.Stop()
	cancel()
}
