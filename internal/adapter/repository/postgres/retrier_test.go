package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

func TestRetrierRetriesOnRetryableError(t *testing.T) {
	r := NewRetrier(zerolog.Nop())
	r.maxRetries = 2
	r.initialInterval = 1 * time.Millisecond
	r.maxInterval = 2 * time.Millisecond
	r.maxElapsedTime = 10 * time.Millisecond

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return &pgconn.PgError{Code: pgErrSerializationFailure}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestRetrierStopsOnPermanentError(t *testing.T) {
	r := NewRetrier(zerolog.Nop())
	attempts := 0
	permanentErr := errors.New("permanent")

	err := r.Retry(context.Background(), func() error {
		attempts++
		return permanentErr
	})

	if !errors.Is(err, permanentErr) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestRetrierGivesUpAfterMaxRetries(t *testing.T) {
	r := NewRetrier(zerolog.Nop())
	r.maxRetries = 2
	r.initialInterval = 1 * time.Millisecond
	r.maxInterval = 2 * time.Millisecond
	r.maxElapsedTime = 50 * time.Millisecond

	attempts := 0
	deadlock := &pgconn.PgError{Code: pgErrDeadlock}

	err := r.Retry(context.Background(), func() error {
		attempts++
		return deadlock
	})

	if !errors.Is(err, deadlock) {
		t.Fatalf("expected deadlock error, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestIsRetryableError(t *testing.T) {
	if !isRetryableError(&pgconn.PgError{Code: pgErrDeadlock}) {
		t.Fatalf("expected deadlock error to be retryable")
	}

	if !isRetryableError(&pgconn.PgError{Code: pgErrSerializationFailure}) {
		t.Fatalf("expected serialization failure to be retryable")
	}

	if isRetryableError(&pgconn.PgError{Code: "23505"}) {
		t.Fatalf("expected unique violation to be non-retryable")
	}

	if isRetryableError(errors.New("other")) {
		t.Fatalf("expected generic error to be non-retryable")
	}
}
