package identitysync

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL error numbers that indicate a transient serialization conflict. The
// whole unit of work is rolled back on failure, so redoing it from scratch is
// safe.
const (
	mysqlErrLockDeadlock    = 1213
	mysqlErrLockWaitTimeout = 1205
)

// RetryOptions bounds the retry loop around one transactional unit of work.
type RetryOptions struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultRetryOptions returns the retry budget used by the webhook handlers.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries: 3,
		BaseDelay:  25 * time.Millisecond,
		MaxDelay:   250 * time.Millisecond,
	}
}

func (o RetryOptions) withDefaults() RetryOptions {
	def := DefaultRetryOptions()
	if o.MaxRetries <= 0 {
		o.MaxRetries = def.MaxRetries
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = def.BaseDelay
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = def.MaxDelay
	}
	return o
}

// IsTransientError reports whether err (anywhere in its unwrap chain) is a
// storage conflict that is expected to succeed on retry. Everything else is
// fatal and must surface unchanged.
func IsTransientError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	switch mysqlErr.Number {
	case mysqlErrLockDeadlock, mysqlErrLockWaitTimeout:
		return true
	default:
		return false
	}
}

// RunWithRetry executes attempt until it succeeds, fails with a non-transient
// error, or the retry budget is exhausted. Between attempts it sleeps
// min(base*2^(n-1), max). The last error propagates unchanged so the caller's
// error handling is uniform whether the failure was transient-exhausted or
// immediately fatal.
func RunWithRetry(ctx context.Context, opts RetryOptions, attempt func() error) error {
	opts = opts.withDefaults()

	for n := 1; ; n++ {
		err := attempt()
		if err == nil {
			return nil
		}
		if !IsTransientError(err) || n > opts.MaxRetries {
			return err
		}

		delay := opts.BaseDelay << (n - 1)
		if delay > opts.MaxDelay {
			delay = opts.MaxDelay
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// TxWithRetry runs fn inside one database transaction per attempt. A rolled
// back attempt leaves no side effects, so retrying re-runs fn from scratch.
func TxWithRetry(ctx context.Context, db *gorm.DB, opts RetryOptions, fn func(tx *gorm.DB) error) error {
	return RunWithRetry(ctx, opts, func() error {
		return db.WithContext(ctx).Transaction(fn)
	})
}
