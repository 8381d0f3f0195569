package wallet

import "expvar"

var (
	metricCreditSentTotal    = expvar.NewInt("wallet_credit_sent_total")
	metricCreditRetryTotal   = expvar.NewInt("wallet_credit_retry_total")
	metricCreditFailedTotal  = expvar.NewInt("wallet_credit_failed_total")
	metricCreditBatchSize    = expvar.NewInt("wallet_credit_batch_size")
	metricOutboxPollErrTotal = expvar.NewInt("wallet_outbox_poll_errors_total")
)
