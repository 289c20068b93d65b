package identitysync

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
)

func fastRetryOptions() RetryOptions {
	return RetryOptions{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestRunWithRetryRecoversFromTransientErrors(t *testing.T) {
	calls := 0
	err := RunWithRetry(context.Background(), fastRetryOptions(), func() error {
		calls++
		if calls < 3 {
			return &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success after transient failures, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestRunWithRetryDoesNotRetryFatalErrors(t *testing.T) {
	fatal := errors.New("column count mismatch")
	calls := 0
	err := RunWithRetry(context.Background(), fastRetryOptions(), func() error {
		calls++
		return fatal
	})
	if !errors.Is(err, fatal) {
		t.Fatalf("expected the fatal error unchanged, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected exactly 1 attempt for a fatal error, got %d", calls)
	}
}

func TestRunWithRetryExhaustsBudget(t *testing.T) {
	conflict := &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}
	calls := 0
	opts := RetryOptions{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
	err := RunWithRetry(context.Background(), opts, func() error {
		calls++
		return conflict
	})
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != 1205 {
		t.Fatalf("expected the last conflict error unchanged, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected initial attempt plus 2 retries, got %d attempts", calls)
	}
}

func TestRunWithRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := RunWithRetry(ctx, fastRetryOptions(), func() error {
		calls++
		return &mysql.MySQLError{Number: 1213}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected a single attempt before the canceled context was observed, got %d", calls)
	}
}

func TestIsTransientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadlock", &mysql.MySQLError{Number: 1213}, true},
		{"lock wait timeout", &mysql.MySQLError{Number: 1205}, true},
		{"wrapped deadlock", fmt.Errorf("reconcile memberships: %w", &mysql.MySQLError{Number: 1213}), true},
		{"duplicate key", &mysql.MySQLError{Number: 1062}, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransientError(tt.err); got != tt.want {
				t.Errorf("IsTransientError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
