package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/finbooks/ledger/internal/domain"
)

// Metrics holds the Prometheus collectors for posting activity.
type Metrics struct {
	TransactionsPosted prometheus.Counter
	TransactionsFailed *prometheus.CounterVec
	EntriesCreated     prometheus.Counter
	PostingDuration    prometheus.Histogram
	AccountsCreated    prometheus.Counter
}

// New creates and registers the posting metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransactionsPosted: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_transactions_posted_total",
			Help: "Total number of successfully posted transactions",
		}),
		TransactionsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transactions_failed_total",
				Help: "Total number of rejected or failed transactions by reason",
			},
			[]string{"reason"},
		),
		EntriesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_entries_created_total",
			Help: "Total number of ledger entries written",
		}),
		PostingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_posting_duration_seconds",
			Help:    "Duration of transaction posting operations",
			Buckets: prometheus.DefBuckets,
		}),
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
	}
}

// FailureReason maps a posting error to the label value recorded on
// TransactionsFailed.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTooFewEntries):
		return "too_few_entries"
	case errors.Is(err, domain.ErrNonPositiveAmount):
		return "non_positive_amount"
	case errors.Is(err, domain.ErrUnbalancedTransaction):
		return "unbalanced"
	case errors.Is(err, domain.ErrInvalidDirection):
		return "invalid_direction"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return "duplicate_transaction"
	case errors.Is(err, domain.ErrCommitConflict):
		return "commit_conflict"
	default:
		return "internal"
	}
}
