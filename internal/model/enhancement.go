package model

import "time"

// EnhancementStatus tags which path produced an EnhancementResult.
type EnhancementStatus string

// The two enhancement paths. They produce structurally identical results so
// report rendering is agnostic to which one ran.
const (
	StatusAIEnhanced     EnhancementStatus = "ai_enhanced"
	StatusManualFallback EnhancementStatus = "manual_fallback"
)

// EnhancementResult is the output of the enhancement coordinator: either the
// merged LLM analysis or the deterministic manual derivation over the raw
// aggregate.
type EnhancementResult struct {
	Company string `json:"company"`

	CompanyBackground  string   `json:"company_background"`
	BusinessModel      string   `json:"business_model"`
	TechnologyStack    []string `json:"technology_stack"`
	PainPoints         []string `json:"pain_points"`
	RecentDevelopments []string `json:"recent_developments"`
	DecisionMakers     []string `json:"decision_makers"`

	EnhancementStatus EnhancementStatus `json:"enhancement_status"`
	// FallbackReason is set iff EnhancementStatus is manual_fallback.
	FallbackReason string `json:"fallback_reason,omitempty"`
	// Model is the LLM identifier when the AI path ran.
	Model string `json:"model,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Complete reports whether every manual field is populated (non-nil slices,
// non-empty strings). Both paths must satisfy this.
func (e *EnhancementResult) Complete() bool {
	return e.CompanyBackground != "" &&
		e.BusinessModel != "" &&
		e.TechnologyStack != nil &&
		e.PainPoints != nil &&
		e.RecentDevelopments != nil &&
		e.DecisionMakers != nil
}
