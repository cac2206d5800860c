package model

import (
	"time"

	"github.com/rotisserie/eris"
)

// Mode selects which sources run and what parameters they receive.
type Mode string

// Collection modes, from cheapest to most thorough.
const (
	ModeQuick         Mode = "quick"
	ModeComprehensive Mode = "comprehensive"
	ModeDeep          Mode = "deep"
)

// ParseMode validates a mode string from CLI flags or API requests.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeQuick, ModeComprehensive, ModeDeep:
		return Mode(s), nil
	case "":
		return ModeComprehensive, nil
	default:
		return "", eris.Errorf("model: unknown mode %q (want quick, comprehensive, or deep)", s)
	}
}

// Canonical result keys, one per source adapter.
const (
	KeyApollo     = "apollo_data"
	KeySerper     = "serper_search"
	KeyPlaywright = "playwright_data"
	KeyLinkedIn   = "linkedin_data"
	KeyJobBoards  = "job_boards"
	KeyNews       = "news_data"
	KeyGovernment = "government_data"
)

// ResultKeys lists all canonical result keys in collection order.
var ResultKeys = []string{
	KeyApollo,
	KeySerper,
	KeyPlaywright,
	KeyLinkedIn,
	KeyJobBoards,
	KeyNews,
	KeyGovernment,
}

// SourceOutcome is the normalized result of one adapter call. Exactly one of
// Payload and Error is populated in the success sense: a non-empty payload
// with a usable status, or an error string.
type SourceOutcome struct {
	SourceName string         `json:"source_name"`
	Payload    map[string]any `json:"payload,omitempty"`
	Error      string         `json:"error,omitempty"`
	DurationMS int64          `json:"duration_ms"`
	Attempts   int            `json:"attempts"`
}

// OK reports whether the outcome carries a usable payload.
func (o SourceOutcome) OK() bool {
	return o.Error == "" && len(o.Payload) > 0
}

// AggregateResult is the merged output of all source attempts for one
// collection request. It is created fresh per request and never mutated once
// quality scoring and recommendations have been attached.
type AggregateResult struct {
	Company   string    `json:"company"`
	Mode      Mode      `json:"mode"`
	Timestamp time.Time `json:"timestamp"`

	// Data maps canonical result keys to raw source payloads. Keys for
	// failed or inactive sources are present with a nil value so report
	// rendering can distinguish "not collected" from "collected empty".
	Data map[string]map[string]any `json:"data"`

	SuccessfulSources []string `json:"successful_sources"`
	FailedSources     []string `json:"failed_sources"`
	Errors            []string `json:"errors"`

	QualityScore    int      `json:"quality_score"`
	QualityGrade    string   `json:"quality_grade"`
	QualityFactors  []string `json:"quality_factors"`
	Recommendations []string `json:"recommendations"`

	SuccessfulCount int     `json:"successful_count"`
	FailedCount     int     `json:"failed_count"`
	TotalCount      int     `json:"total_count"`
	SuccessRate     float64 `json:"success_rate"`

	ElapsedMS int64 `json:"elapsed_ms"`
	// SourceTimings records per-source execution time in sequential mode.
	SourceTimings map[string]int64 `json:"source_timings,omitempty"`
}

// Payload returns the payload stored under key, or nil when the source did
// not produce one.
func (a *AggregateResult) Payload(key string) map[string]any {
	if a == nil || a.Data == nil {
		return nil
	}
	return a.Data[key]
}

// HasData reports whether the source under key produced a non-empty payload.
func (a *AggregateResult) HasData(key string) bool {
	return len(a.Payload(key)) > 0
}
