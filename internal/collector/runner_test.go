package collector

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/source"
)

// stubSource lets tests script adapter behavior per call.
type stubSource struct {
	name  string
	fetch func(ctx context.Context, company string, params source.Params) (source.Payload, error)
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(ctx context.Context, company string, params source.Params) (source.Payload, error) {
	return s.fetch(ctx, company, params)
}

func stubConfig(name string, fetch func(ctx context.Context, company string, params source.Params) (source.Payload, error)) source.Config {
	return source.Config{
		Name:   name,
		Key:    name + "_data",
		Source: &stubSource{name: name, fetch: fetch},
	}
}

// testRunner returns a runner whose backoff sleeps are recorded, not slept.
func testRunner(timeout time.Duration, maxRetries int) (*runner, *[]time.Duration) {
	var slept []time.Duration
	r := newRunner(timeout, maxRetries, Linear{Step: time.Second})
	r.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return r, &slept
}

func TestRunnerSuccessFirstAttempt(t *testing.T) {
	r, slept := testRunner(time.Second, 2)
	cfg := stubConfig("apollo", func(_ context.Context, _ string, _ source.Params) (source.Payload, error) {
		return source.Payload{"organization": map[string]any{"name": "Acme"}}, nil
	})

	out := r.Run(context.Background(), cfg, "acme", nil)
	if !out.OK() {
		t.Fatalf("expected success, got error %q", out.Error)
	}
	if out.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", out.Attempts)
	}
	if len(*slept) != 0 {
		t.Errorf("expected no backoff sleeps, got %v", *slept)
	}
}

func TestRunnerRetriesThenSucceeds(t *testing.T) {
	r, slept := testRunner(time.Second, 2)
	var calls int32
	cfg := stubConfig("serper", func(_ context.Context, _ string, _ source.Params) (source.Payload, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return nil, errors.New("upstream 503")
		}
		return source.Payload{"organic": []any{map[string]any{"title": "Acme"}}}, nil
	})

	out := r.Run(context.Background(), cfg, "acme", nil)
	if !out.OK() {
		t.Fatalf("expected success after retries, got error %q", out.Error)
	}
	if out.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", out.Attempts)
	}
	// Linear backoff: 1s after the first failure, 2s after the second.
	want := []time.Duration{time.Second, 2 * time.Second}
	if len(*slept) != len(want) || (*slept)[0] != want[0] || (*slept)[1] != want[1] {
		t.Errorf("backoff sleeps = %v, want %v", *slept, want)
	}
}

func TestRunnerExhaustsRetries(t *testing.T) {
	r, _ := testRunner(time.Second, 2)
	var calls int32
	cfg := stubConfig("news", func(_ context.Context, _ string, _ source.Params) (source.Payload, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("always fails")
	})

	out := r.Run(context.Background(), cfg, "acme", nil)
	if out.OK() {
		t.Fatal("expected failure outcome")
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("expected maxRetries+1 = 3 calls, got %d", got)
	}
	if out.Attempts != 3 {
		t.Errorf("expected 3 attempts recorded, got %d", out.Attempts)
	}
	if out.Error != "always fails" {
		t.Errorf("expected last error preserved, got %q", out.Error)
	}
}

func TestRunnerEmptyPayloadIsFailure(t *testing.T) {
	r, _ := testRunner(time.Second, 0)
	cfg := stubConfig("linkedin", func(_ context.Context, _ string, _ source.Params) (source.Payload, error) {
		return source.Payload{}, nil
	})

	out := r.Run(context.Background(), cfg, "acme", nil)
	if out.OK() {
		t.Fatal("expected empty payload to fail")
	}
	if !strings.Contains(out.Error, "empty payload") {
		t.Errorf("unexpected error: %q", out.Error)
	}
}

func TestRunnerErrorStatusIsFailure(t *testing.T) {
	r, _ := testRunner(time.Second, 0)
	cfg := stubConfig("linkedin", func(_ context.Context, _ string, _ source.Params) (source.Payload, error) {
		return source.Payload{"status": "failed", "reason": "page not found"}, nil
	})

	out := r.Run(context.Background(), cfg, "acme", nil)
	if out.OK() {
		t.Fatal("expected failed status to fail")
	}
	if !strings.Contains(out.Error, "failed") {
		t.Errorf("unexpected error: %q", out.Error)
	}
}

func TestRunnerHardTimeout(t *testing.T) {
	r, _ := testRunner(30*time.Millisecond, 0)
	cfg := stubConfig("playwright", func(_ context.Context, _ string, _ source.Params) (source.Payload, error) {
		// Ignores its context entirely.
		time.Sleep(500 * time.Millisecond)
		return source.Payload{"title": "too late"}, nil
	})

	start := time.Now()
	out := r.Run(context.Background(), cfg, "acme", nil)
	if out.OK() {
		t.Fatal("expected timeout failure")
	}
	if !strings.Contains(out.Error, "timeout") {
		t.Errorf("unexpected error: %q", out.Error)
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("runner waited %v, should honor hard timeout", elapsed)
	}
}

func TestRunnerRecoversPanic(t *testing.T) {
	r, _ := testRunner(time.Second, 0)
	cfg := stubConfig("government", func(_ context.Context, _ string, _ source.Params) (source.Payload, error) {
		panic("adapter bug")
	})

	out := r.Run(context.Background(), cfg, "acme", nil)
	if out.OK() {
		t.Fatal("expected panic to become failure outcome")
	}
	if !strings.Contains(out.Error, "panicked") {
		t.Errorf("unexpected error: %q", out.Error)
	}
}

func TestRunnerStopsWhenContextCancelledDuringBackoff(t *testing.T) {
	r := newRunner(time.Second, 5, Linear{Step: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	r.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	cfg := stubConfig("apollo", func(_ context.Context, _ string, _ source.Params) (source.Payload, error) {
		return nil, errors.New("down")
	})

	out := r.Run(ctx, cfg, "acme", nil)
	if out.OK() {
		t.Fatal("expected failure")
	}
	if out.Attempts != 1 {
		t.Errorf("expected retry loop to stop after cancellation, attempts = %d", out.Attempts)
	}
}
