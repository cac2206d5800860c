package enhance

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
)

// fakeLLM scripts the provider response for coordinator tests.
type fakeLLM struct {
	calls    int32
	response string
	err      error
	delay    time.Duration
}

func (f *fakeLLM) Name() string { return "fake-model" }

func (f *fakeLLM) Complete(ctx context.Context, system, prompt string) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.response, f.err
}

const validAnalysisJSON = `{
	"company_background": "Acme builds rockets.",
	"business_model": "Manufacturing",
	"technology_stack": ["Go"],
	"pain_points": [],
	"recent_developments": [],
	"decision_makers": ["Jo Smith - CEO"]
}`

func usableAggregate() *model.AggregateResult {
	return &model.AggregateResult{
		Company: "acme",
		Data: map[string]map[string]any{
			model.KeyApollo: {"organization": map[string]any{"description": "Acme builds rockets."}},
		},
	}
}

func assertComplete(t *testing.T, res model.EnhancementResult) {
	t.Helper()
	if !res.Complete() {
		t.Errorf("result not structurally complete: %+v", res)
	}
}

func TestEnhanceAIPath(t *testing.T) {
	llm := &fakeLLM{response: validAnalysisJSON}
	e := New(llm)

	res := e.Enhance(context.Background(), usableAggregate())
	if res.EnhancementStatus != model.StatusAIEnhanced {
		t.Fatalf("status = %q, want ai_enhanced (reason %q)", res.EnhancementStatus, res.FallbackReason)
	}
	if res.CompanyBackground != "Acme builds rockets." {
		t.Errorf("background = %q", res.CompanyBackground)
	}
	if res.Model != "fake-model" {
		t.Errorf("model = %q", res.Model)
	}
	assertComplete(t, res)
}

func TestEnhanceFencedJSONAccepted(t *testing.T) {
	llm := &fakeLLM{response: "```json\n" + validAnalysisJSON + "\n```"}
	e := New(llm)

	res := e.Enhance(context.Background(), usableAggregate())
	if res.EnhancementStatus != model.StatusAIEnhanced {
		t.Errorf("status = %q, want ai_enhanced", res.EnhancementStatus)
	}
}

func TestEnhanceLLMErrorFallsBack(t *testing.T) {
	llm := &fakeLLM{err: errors.New("api quota exceeded")}
	e := New(llm)

	res := e.Enhance(context.Background(), usableAggregate())
	if res.EnhancementStatus != model.StatusManualFallback {
		t.Fatalf("status = %q, want manual_fallback", res.EnhancementStatus)
	}
	if !strings.Contains(res.FallbackReason, "quota") {
		t.Errorf("fallback reason = %q, want provider error text", res.FallbackReason)
	}
	assertComplete(t, res)
}

func TestEnhanceUnparseableOutputFallsBack(t *testing.T) {
	llm := &fakeLLM{response: "I cannot help with that."}
	e := New(llm)

	res := e.Enhance(context.Background(), usableAggregate())
	if res.EnhancementStatus != model.StatusManualFallback {
		t.Errorf("status = %q, want manual_fallback", res.EnhancementStatus)
	}
	assertComplete(t, res)
}

func TestEnhanceTimeoutFallsBack(t *testing.T) {
	llm := &fakeLLM{response: validAnalysisJSON, delay: 500 * time.Millisecond}
	e := New(llm, WithTimeout(30*time.Millisecond))

	start := time.Now()
	res := e.Enhance(context.Background(), usableAggregate())
	if res.EnhancementStatus != model.StatusManualFallback {
		t.Fatalf("status = %q, want manual_fallback", res.EnhancementStatus)
	}
	if res.FallbackReason != "timeout after 0s" {
		t.Errorf("fallback reason = %q, want timeout after 0s", res.FallbackReason)
	}
	if elapsed := time.Since(start); elapsed > 300*time.Millisecond {
		t.Errorf("enhance waited %v past its deadline", elapsed)
	}
	assertComplete(t, res)
}

func TestEnhanceValidationFailureSkipsLLM(t *testing.T) {
	llm := &fakeLLM{response: validAnalysisJSON}
	e := New(llm)

	cases := []*model.AggregateResult{
		nil,
		{Company: "acme"},
		{Company: "acme", Data: map[string]map[string]any{}},
		{Company: "acme", Data: map[string]map[string]any{model.KeyApollo: nil}},
	}
	for i, agg := range cases {
		res := e.Enhance(context.Background(), agg)
		if res.EnhancementStatus != model.StatusManualFallback {
			t.Errorf("case %d: status = %q, want manual_fallback", i, res.EnhancementStatus)
		}
		if res.FallbackReason != "validation_failed" {
			t.Errorf("case %d: reason = %q, want exactly validation_failed", i, res.FallbackReason)
		}
		assertComplete(t, res)
	}
	if got := atomic.LoadInt32(&llm.calls); got != 0 {
		t.Errorf("llm called %d times for invalid input, want 0", got)
	}
}

func TestEnhanceNilLLMUsesFallback(t *testing.T) {
	e := New(nil)

	res := e.Enhance(context.Background(), usableAggregate())
	if res.EnhancementStatus != model.StatusManualFallback {
		t.Fatalf("status = %q, want manual_fallback", res.EnhancementStatus)
	}
	if res.FallbackReason != "llm_disabled" {
		t.Errorf("reason = %q, want llm_disabled", res.FallbackReason)
	}
	assertComplete(t, res)
}
