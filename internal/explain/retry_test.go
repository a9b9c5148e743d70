package explain

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

var okReply = StubReply{JSON: json.RawMessage(`{"ok":true}`)}

func TestRetry_FirstAttempt(t *testing.T) {
	stub := NewStub(okReply)
	c, err := WithRetry(stub, fastRetry()).Complete(context.Background(), Prompt{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(c.JSON) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", c.JSON)
	}
	if stub.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", stub.CallCount())
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	stub := NewStub(
		StubReply{Err: &ErrRateLimit{Err: errors.New("slow down")}},
		okReply,
	)
	if _, err := WithRetry(stub, fastRetry()).Complete(context.Background(), Prompt{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", stub.CallCount())
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	down := StubReply{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
	stub := NewStub(down, down, down, okReply)

	_, err := WithRetry(stub, fastRetry()).Complete(context.Background(), Prompt{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if stub.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", stub.CallCount())
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	bad := StubReply{Err: &ErrInvalidResponse{Err: errors.New("bad json")}}
	stub := NewStub(bad, bad, okReply)

	_, err := WithRetry(stub, fastRetry()).Complete(context.Background(), Prompt{})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if stub.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", stub.CallCount())
	}
}

func TestRetry_NoRetryOnMaxTokens(t *testing.T) {
	stub := NewStub(StubReply{Err: &ErrMaxTokensExceeded{}}, okReply)

	_, err := WithRetry(stub, fastRetry()).Complete(context.Background(), Prompt{})
	var mt *ErrMaxTokensExceeded
	if !errors.As(err, &mt) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
	}
	if stub.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", stub.CallCount())
	}
}

func TestRetry_NoRetryOnContextError(t *testing.T) {
	stub := NewStub(StubReply{Err: context.DeadlineExceeded}, okReply)

	_, err := WithRetry(stub, fastRetry()).Complete(context.Background(), Prompt{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if stub.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", stub.CallCount())
	}
}

func TestRetry_CancelledWhileWaiting(t *testing.T) {
	stub := NewStub(StubReply{Err: &ErrProviderUnavailable{}}, okReply)
	cfg := fastRetry()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := WithRetry(stub, cfg).Complete(ctx, Prompt{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRetry_RespectsRetryAfter(t *testing.T) {
	r := &retrying{cfg: fastRetry()}
	got := r.backoff(0, &ErrRateLimit{RetryAfter: 3 * time.Second})
	if got != 3*time.Second {
		t.Fatalf("expected 3s, got %s", got)
	}
}

func TestRetry_BackoffCapped(t *testing.T) {
	r := &retrying{cfg: fastRetry()}
	for attempt := range 10 {
		got := r.backoff(attempt, errors.New("x"))
		if got > 12*time.Millisecond {
			t.Fatalf("attempt %d: backoff %s above cap plus jitter", attempt, got)
		}
	}
}
