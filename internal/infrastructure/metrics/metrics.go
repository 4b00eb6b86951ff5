package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersCreated  prometheus.Counter
	TransfersReversed prometheus.Counter
	TransferDuration  prometheus.Histogram
	TransferAmount    prometheus.Histogram
	TransferErrors    *prometheus.CounterVec

	// Holder metrics
	HoldersCreated   prometheus.Counter
	HolderOperations *prometheus.CounterVec

	// Withdrawal metrics
	WithdrawalsRequested prometheus.Counter
	WithdrawalsApproved  prometheus.Counter
	WithdrawalsRejected  prometheus.Counter

	// Database metrics
	DBQueries *prometheus.CounterVec
	DBErrors  *prometheus.CounterVec
	DBRetries prometheus.Counter

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Outbox metrics
	EventsPublished prometheus.Counter
	EventsFailed    prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_transfers_created_total",
			Help: "Total number of transfers created",
		}),
		TransfersReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_transfers_reversed_total",
			Help: "Total number of transfers reversed",
		}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletledger_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletledger_transfer_amount",
			Help:    "Transfer amounts in minor units",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletledger_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),

		HoldersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_holders_created_total",
			Help: "Total number of wallet holders created",
		}),
		HolderOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletledger_holder_operations_total",
				Help: "Total holder operations by type",
			},
			[]string{"operation"},
		),

		WithdrawalsRequested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_withdrawals_requested_total",
			Help: "Total number of withdrawal requests",
		}),
		WithdrawalsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_withdrawals_approved_total",
			Help: "Total number of withdrawals approved",
		}),
		WithdrawalsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_withdrawals_rejected_total",
			Help: "Total number of withdrawals rejected",
		}),

		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletledger_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),
		DBRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_db_retries_total",
			Help: "Total database transaction retries",
		}),

		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletledger_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletledger_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_events_published_total",
			Help: "Total outbox events published",
		}),
		EventsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_events_failed_total",
			Help: "Total outbox events that failed to publish",
		}),
	}
}
