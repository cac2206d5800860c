// Package collector implements the multi-source collection orchestrator:
// fan-out execution, per-source timeout and retry, partial-failure
// aggregation, and data-quality scoring.
package collector

import (
	"math"
	"time"
)

// Backoff computes the sleep before retry number attempt+1. Attempt is
// zero-based: Delay(0) is the sleep after the first failed attempt.
type Backoff interface {
	Delay(attempt int) time.Duration
}

// Linear backs off by a fixed step per attempt: step, 2*step, 3*step, ...
type Linear struct {
	Step time.Duration
}

// Delay implements Backoff.
func (l Linear) Delay(attempt int) time.Duration {
	step := l.Step
	if step <= 0 {
		step = time.Second
	}
	if attempt < 0 {
		attempt = 0
	}
	return step * time.Duration(attempt+1)
}

// Exponential backs off by Initial * Multiplier^attempt, capped at Max.
type Exponential struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
}

// Delay implements Backoff.
func (e Exponential) Delay(attempt int) time.Duration {
	initial := e.Initial
	if initial <= 0 {
		initial = 500 * time.Millisecond
	}
	max := e.Max
	if max <= 0 {
		max = 30 * time.Second
	}
	mult := e.Multiplier
	if mult <= 0 {
		mult = 2.0
	}
	if attempt < 0 {
		attempt = 0
	}

	delay := float64(initial) * math.Pow(mult, float64(attempt))
	if delay > float64(max) {
		delay = float64(max)
	}
	return time.Duration(delay)
}

// BackoffFor maps a config policy name to its Backoff. Unknown names get
// the linear default.
func BackoffFor(policy string) Backoff {
	if policy == "exponential" {
		return Exponential{}
	}
	return Linear{Step: time.Second}
}
