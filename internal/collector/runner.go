package collector

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/source"
)

// runner executes a single source with a hard per-attempt timeout and
// bounded retry. It never returns an error: every failure mode, including
// an adapter panic, is converted into a failure outcome.
type runner struct {
	timeout    time.Duration
	maxRetries int
	backoff    Backoff
	// sleep is injectable so retry tests don't wait wall-clock time.
	sleep func(ctx context.Context, d time.Duration) error
}

func newRunner(timeout time.Duration, maxRetries int, backoff Backoff) *runner {
	return &runner{
		timeout:    timeout,
		maxRetries: maxRetries,
		backoff:    backoff,
		sleep:      sleepCtx,
	}
}

// Run fetches from one source, retrying unusable results and errors up to
// maxRetries times with backoff. Success short-circuits immediately.
func (r *runner) Run(ctx context.Context, cfg source.Config, company string, params source.Params) model.SourceOutcome {
	start := time.Now()
	outcome := model.SourceOutcome{SourceName: cfg.Name}

	var lastErr string
	for attempt := 0; ; attempt++ {
		outcome.Attempts = attempt + 1

		payload, err := r.attempt(ctx, cfg, company, params)
		switch {
		case err != nil:
			lastErr = err.Error()
		case payload.Usable():
			outcome.Payload = payload
			outcome.DurationMS = time.Since(start).Milliseconds()
			zap.L().Debug("source fetch succeeded",
				zap.String("source", cfg.Name),
				zap.Int("attempts", outcome.Attempts),
				zap.Int64("duration_ms", outcome.DurationMS),
			)
			return outcome
		case len(payload) == 0:
			lastErr = "invalid result: empty payload"
		default:
			lastErr = fmt.Sprintf("invalid result: status %q", payload.Status())
		}

		if attempt >= r.maxRetries {
			break
		}

		delay := r.backoff.Delay(attempt)
		zap.L().Debug("source fetch failed, retrying",
			zap.String("source", cfg.Name),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", delay),
			zap.String("error", lastErr),
		)
		if err := r.sleep(ctx, delay); err != nil {
			// Caller context ended while backing off; report the last error.
			break
		}
	}

	outcome.Error = lastErr
	outcome.DurationMS = time.Since(start).Milliseconds()
	zap.L().Warn("source fetch failed",
		zap.String("source", cfg.Name),
		zap.Int("attempts", outcome.Attempts),
		zap.String("error", lastErr),
	)
	return outcome
}

// attempt runs one fetch under the hard timeout. The fetch runs in its own
// goroutine so a stuck adapter cannot block past the deadline, and panics
// are converted to errors.
func (r *runner) attempt(ctx context.Context, cfg source.Config, company string, params source.Params) (payload source.Payload, err error) {
	actx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		payload source.Payload
		err     error
	}
	ch := make(chan result, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				ch <- result{err: fmt.Errorf("source %s panicked: %v", cfg.Name, p)}
			}
		}()
		p, ferr := cfg.Source.Fetch(actx, company, params)
		ch <- result{payload: p, err: ferr}
	}()

	select {
	case <-actx.Done():
		if ctx.Err() != nil {
			return nil, fmt.Errorf("cancelled: %v", ctx.Err())
		}
		return nil, fmt.Errorf("timeout after %ds", int(r.timeout.Seconds()))
	case res := <-ch:
		return res.payload, res.err
	}
}

// sleepCtx sleeps for d unless ctx ends first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
