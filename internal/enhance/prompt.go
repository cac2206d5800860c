package enhance

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
)

const systemPrompt = `You are a B2B sales research analyst. You receive raw
data collected about a company from several providers and produce a concise
structured analysis. Respond with ONLY a single JSON object, no prose.`

// analysis is the JSON shape the LLM must return.
type analysis struct {
	CompanyBackground  string   `json:"company_background"`
	BusinessModel      string   `json:"business_model"`
	TechnologyStack    []string `json:"technology_stack"`
	PainPoints         []string `json:"pain_points"`
	RecentDevelopments []string `json:"recent_developments"`
	DecisionMakers     []string `json:"decision_makers"`
}

// buildPrompt serializes the aggregate's payloads into the analysis request.
func buildPrompt(agg *model.AggregateResult) (string, error) {
	data, err := json.MarshalIndent(agg.Data, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "enhance: marshal aggregate data")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n\n", agg.Company)
	b.WriteString("Collected data by source (null means the source failed or was not run):\n")
	b.Write(data)
	b.WriteString(`

Return a JSON object with exactly these keys:
- company_background (string): 2-3 sentence company overview
- business_model (string): one short label, e.g. "SaaS" or "Consulting Services"
- technology_stack (array of strings): technologies the company appears to use
- pain_points (array of strings): likely business challenges
- recent_developments (array of strings): notable recent events, newest first
- decision_makers (array of strings): "Name - Title" entries

Use empty arrays where the data supports nothing; never invent names.`)

	return b.String(), nil
}

// parseAnalysis validates the LLM output. Markdown code fences are stripped
// before parsing since some models wrap JSON despite instructions.
func parseAnalysis(raw string) (*analysis, error) {
	text := strings.TrimSpace(raw)
	if idx := strings.Index(text, "```"); idx >= 0 {
		text = strings.TrimPrefix(text[idx:], "```json")
		text = strings.TrimPrefix(text, "```")
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
		text = strings.TrimSpace(text)
	}

	var a analysis
	if err := json.Unmarshal([]byte(text), &a); err != nil {
		return nil, eris.Wrap(err, "enhance: parse llm output")
	}
	if strings.TrimSpace(a.CompanyBackground) == "" {
		return nil, eris.New("enhance: llm output missing company_background")
	}
	if strings.TrimSpace(a.BusinessModel) == "" {
		return nil, eris.New("enhance: llm output missing business_model")
	}

	// Normalize nil slices so both enhancement paths are structurally equal.
	if a.TechnologyStack == nil {
		a.TechnologyStack = []string{}
	}
	if a.PainPoints == nil {
		a.PainPoints = []string{}
	}
	if a.RecentDevelopments == nil {
		a.RecentDevelopments = []string{}
	}
	if a.DecisionMakers == nil {
		a.DecisionMakers = []string{}
	}

	return &a, nil
}
