package ledger

import "expvar"

var (
	metricContributionsTotal      = expvar.NewInt("ledger_contributions_total")
	metricPayoutsTotal            = expvar.NewInt("ledger_payouts_total")
	metricPromoPayoutsTotal       = expvar.NewInt("ledger_promo_payouts_total")
	metricSumMismatchTotal        = expvar.NewInt("ledger_sum_mismatch_total")
	metricLockRetriesTotal        = expvar.NewInt("ledger_lock_retries_total")
	metricLockRetryExhaustedTotal = expvar.NewInt("ledger_lock_retry_exhausted_total")
)
