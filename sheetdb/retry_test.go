package sheetdb

import (
	"errors"
	"testing"
	"time"
)

func TestWithRetryEventualSuccess(t *testing.T) {
	retryDelay = time.Millisecond
	defer func() { retryDelay = time.Second }()

	calls := 0
	err := withRetry("op", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestWithRetryExhaustion(t *testing.T) {
	retryDelay = time.Millisecond
	defer func() { retryDelay = time.Second }()

	calls := 0
	last := errors.New("still broken")
	err := withRetry("op", func() error {
		calls++
		return last
	})
	if calls != maxRetries {
		t.Errorf("expected %d attempts, got %d", maxRetries, calls)
	}
	if !errors.Is(err, last) {
		t.Errorf("expected the last error to propagate, got %v", err)
	}
}

func TestWithRetryNoRetryOnSuccess(t *testing.T) {
	calls := 0
	if err := withRetry("op", func() error { calls++; return nil }); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
}
