package ledger

import "errors"

var (
	ErrPoolNotFound        = errors.New("pool_not_found")
	ErrInsufficientBalance = errors.New("insufficient_promo_balance")
	ErrSumMismatch         = errors.New("sum_mismatch")
	ErrDuplicateHand       = errors.New("duplicate_hand")
	// ErrPoolBusy surfaces after bounded retries against a pool row that is
	// continuously held by concurrent operations. Transient.
	ErrPoolBusy       = errors.New("pool_busy")
	ErrInvalidRequest = errors.New("invalid_request")
)
