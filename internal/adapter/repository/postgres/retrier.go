package postgres

import (
	"context"
	"errors"
	"time"

	"log/slog"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes that are safe to retry: the transaction lost a lock
// fight, it was not rejected by a constraint.
const (
	pgCodeDeadlockDetected     = "40P01"
	pgCodeSerializationFailure = "40001"
	pgCodeLockNotAvailable     = "55P03"
)

// Retrier re-runs money operations that lost a row-lock conflict. Holder
// rows are always locked in sorted ID order, so conflicts resolve fast.
type Retrier struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          *slog.Logger
}

// NewRetrier creates a retrier with defaults tuned for short lock conflicts
// on transfer and withdrawal transactions.
func NewRetrier() *Retrier {
	return &Retrier{
		maxAttempts:     3,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     time.Second,
		maxElapsedTime:  10 * time.Second,
		logger:          slog.Default(),
	}
}

// Retry executes operation, backing off exponentially on retryable postgres
// errors. Everything else is returned immediately.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.initialInterval
	policy.MaxInterval = r.maxInterval
	policy.MaxElapsedTime = r.maxElapsedTime

	attempts := 0

	return backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !retryablePgError(err) {
			return backoff.Permanent(err)
		}

		attempts++
		if attempts > r.maxAttempts {
			return backoff.Permanent(err)
		}

		r.logger.Warn("lock conflict, retrying transaction",
			slog.String("error", err.Error()),
			slog.Int("attempt", attempts),
		)

		return err
	}, backoff.WithContext(policy, ctx))
}

func retryablePgError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgCodeDeadlockDetected, pgCodeSerializationFailure, pgCodeLockNotAvailable:
		return true
	}
	return false
}
