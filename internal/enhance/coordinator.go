package enhance

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
)

const defaultTimeout = 60 * time.Second

// Enhancer turns a collection aggregate into an analysis. It tries one LLM
// pass and falls back to the manual heuristics on any failure, so Enhance
// always returns a structurally complete result and never an error.
type Enhancer struct {
	llm     LLM
	timeout time.Duration
	log     *zap.Logger
	now     func() time.Time
}

// Option configures an Enhancer.
type Option func(*Enhancer)

// WithTimeout bounds the LLM call. Values <= 0 keep the default.
func WithTimeout(d time.Duration) Option {
	return func(e *Enhancer) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger replaces the default nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Enhancer) {
		if log != nil {
			e.log = log
		}
	}
}

// New builds an Enhancer. A nil llm disables the AI path entirely; every
// Enhance call then goes straight to the manual fallback.
func New(llm LLM, opts ...Option) *Enhancer {
	e := &Enhancer{
		llm:     llm,
		timeout: defaultTimeout,
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enhance produces the analysis for an aggregate. The three exits are:
// validation failure, LLM failure (error, timeout, unparseable output), or
// success. The first two return the manual fallback with a reason attached.
func (e *Enhancer) Enhance(ctx context.Context, agg *model.AggregateResult) model.EnhancementResult {
	if detail := validate(agg); detail != "" {
		e.log.Info("enhancement fell back",
			zap.String("company", companyOf(agg)),
			zap.String("reason", reasonValidationFailed),
			zap.String("detail", detail))
		return e.fallback(agg, reasonValidationFailed)
	}

	if e.llm == nil {
		return e.fallback(agg, "llm_disabled")
	}

	result, reason := e.tryLLM(ctx, agg)
	if reason != "" {
		e.log.Warn("llm enhancement failed, using manual fallback",
			zap.String("company", agg.Company),
			zap.String("reason", reason))
		return e.fallback(agg, reason)
	}

	e.log.Info("enhancement complete",
		zap.String("company", agg.Company),
		zap.String("model", e.llm.Name()))
	return *result
}

// tryLLM runs the model call in its own goroutine so a provider that ignores
// context cancellation still cannot hold up the pipeline past the deadline.
func (e *Enhancer) tryLLM(ctx context.Context, agg *model.AggregateResult) (*model.EnhancementResult, string) {
	prompt, err := buildPrompt(agg)
	if err != nil {
		return nil, err.Error()
	}

	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type outcome struct {
		text string
		err  error
	}
	ch := make(chan outcome, 1)
	go func() {
		text, err := e.llm.Complete(cctx, systemPrompt, prompt)
		ch <- outcome{text: text, err: err}
	}()

	var out outcome
	select {
	case <-cctx.Done():
		return nil, fmt.Sprintf("timeout after %ds", int(e.timeout.Seconds()))
	case out = <-ch:
	}
	if out.err != nil {
		return nil, out.err.Error()
	}

	parsed, err := parseAnalysis(out.text)
	if err != nil {
		return nil, err.Error()
	}

	return &model.EnhancementResult{
		Company:            agg.Company,
		CompanyBackground:  parsed.CompanyBackground,
		BusinessModel:      parsed.BusinessModel,
		TechnologyStack:    parsed.TechnologyStack,
		PainPoints:         parsed.PainPoints,
		RecentDevelopments: parsed.RecentDevelopments,
		DecisionMakers:     parsed.DecisionMakers,
		EnhancementStatus:  model.StatusAIEnhanced,
		Model:              e.llm.Name(),
		GeneratedAt:        e.now().UTC(),
	}, ""
}

func (e *Enhancer) fallback(agg *model.AggregateResult, reason string) model.EnhancementResult {
	if agg == nil {
		agg = &model.AggregateResult{}
	}
	res := Fallback(agg)
	res.FallbackReason = reason
	res.GeneratedAt = e.now().UTC()
	return res
}

// reasonValidationFailed is the contractual fallback reason for aggregates
// that carry nothing an analysis could be based on. The specific shortfall
// only goes to the log.
const reasonValidationFailed = "validation_failed"

// validate returns a non-empty detail string when the aggregate fails the
// pre-enhancement check.
func validate(agg *model.AggregateResult) string {
	if agg == nil || len(agg.Data) == 0 {
		return "no collected data"
	}
	for _, key := range model.ResultKeys {
		if agg.HasData(key) {
			return ""
		}
	}
	return "no usable source payloads"
}

func companyOf(agg *model.AggregateResult) string {
	if agg == nil {
		return ""
	}
	return agg.Company
}
