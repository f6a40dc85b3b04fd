package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

type timeoutError struct{ timeout bool }

func (e timeoutError) Error() string   { return "net error" }
func (e timeoutError) Timeout() bool   { return e.timeout }
func (e timeoutError) Temporary() bool { return false }

func fastConfig(attempts int) Config {
	return Config{MaxAttempts: attempts, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func TestDo_RetriesOnTransientError(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(3), IsTransient, func() error {
		attempts++
		return timeoutError{timeout: true}
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestDo_NoRetryOnPermanentError(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(3), IsTransient, func() error {
		attempts++
		return errors.New("boom")
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestDo_SucceedsAfterRetry(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastConfig(3), IsTransient, func() error {
		attempts++
		if attempts == 1 {
			return timeoutError{timeout: true}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Do(ctx, fastConfig(3), IsTransient, func() error {
		attempts++
		return timeoutError{timeout: true}
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if attempts != 0 {
		t.Fatalf("expected 0 attempts, got %d", attempts)
	}
}

func TestIsTransient(t *testing.T) {
	if !IsTransient(context.DeadlineExceeded) {
		t.Error("expected context deadline to be transient")
	}
	if IsTransient(context.Canceled) {
		t.Error("expected cancellation not to be transient")
	}
	if IsTransient(errors.New("boom")) {
		t.Error("expected plain error not to be transient")
	}
	if !IsTransient(timeoutError{timeout: true}) {
		t.Error("expected net timeout to be transient")
	}
}

func TestBackoffDelay_NoBaseDelay(t *testing.T) {
	if delay := backoffDelay(0, time.Second, 1); delay != 0 {
		t.Fatalf("expected zero delay, got %v", delay)
	}
}
