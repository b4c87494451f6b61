package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Attempts != 3 {
		t.Errorf("expected Attempts=3, got %d", cfg.Attempts)
	}
	if cfg.Delay != time.Second {
		t.Errorf("expected Delay=1s, got %v", cfg.Delay)
	}
}

func TestDo_Success(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Config{Attempts: 3}, "save", func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Config{Attempts: 3, Delay: time.Millisecond}, "open", func() error {
		calls++
		if calls < 3 {
			return errors.New("busy")
		}
		return nil
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestDo_Exhausted(t *testing.T) {
	first := errors.New("first")
	last := errors.New("last")
	calls := 0
	err := Do(context.Background(), Config{Attempts: 3}, "open drawing", func() error {
		calls++
		if calls == 3 {
			return last
		}
		return first
	})

	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ExhaustedError, got %T: %v", err, err)
	}
	if exhausted.Attempts != 3 || exhausted.Op != "open drawing" {
		t.Errorf("unexpected error fields: %+v", exhausted)
	}
	if !errors.Is(err, last) {
		t.Errorf("expected error to wrap the last failure, got %v", err)
	}
	if errors.Is(err, first) {
		t.Error("expected earlier failures to be dropped")
	}
}

func TestDo_AttemptsBelowOne(t *testing.T) {
	for _, attempts := range []int{0, -2} {
		calls := 0
		err := Do(context.Background(), Config{Attempts: attempts}, "op", func() error {
			calls++
			return errors.New("fail")
		})
		if calls != 1 {
			t.Errorf("attempts=%d: expected a single call, got %d", attempts, calls)
		}
		var exhausted *ExhaustedError
		if !errors.As(err, &exhausted) || exhausted.Attempts != 1 {
			t.Errorf("attempts=%d: expected ExhaustedError after 1 attempt, got %v", attempts, err)
		}
	}
}

func TestDo_Permanent(t *testing.T) {
	sentinel := errors.New("no such layout")
	calls := 0
	err := Do(context.Background(), Config{Attempts: 5}, "lookup", func() error {
		calls++
		return Permanent(sentinel)
	})
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("expected sentinel, got %v", err)
	}
	var exhausted *ExhaustedError
	if errors.As(err, &exhausted) {
		t.Error("permanent errors should not be reported as exhausted")
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, Config{Attempts: 10, Delay: 50 * time.Millisecond}, "write", func() error {
		calls++
		cancel()
		return errors.New("fail")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls >= 10 {
		t.Errorf("expected cancellation to stop retries, got %d calls", calls)
	}
}

func TestDoWithResult(t *testing.T) {
	calls := 0
	got, err := DoWithResult(context.Background(), Config{Attempts: 2}, "layouts", func() ([]string, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("not ready")
		}
		return []string{"Layout1"}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "Layout1" {
		t.Errorf("unexpected result %v", got)
	}
}
