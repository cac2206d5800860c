package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
)

func reportFixtures() (*model.AggregateResult, *model.EnhancementResult) {
	agg := &model.AggregateResult{
		Company:   "acme corp",
		Mode:      model.ModeComprehensive,
		Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Data: map[string]map[string]any{
			model.KeyApollo:    {"organization": map[string]any{"name": "Acme"}},
			model.KeySerper:    {"organic": []any{}},
			model.KeyLinkedIn:  nil,
			model.KeyJobBoards: {"jobs": []any{}},
		},
		SuccessfulSources: []string{"apollo", "serper", "job_boards"},
		FailedSources:     []string{"linkedin"},
		Errors:            []string{"linkedin: timeout after 30s"},
		QualityScore:      65,
		QualityGrade:      "Good",
		Recommendations:   []string{"Enable or configure the news provider for recent developments"},
		SuccessfulCount:   3,
		FailedCount:       1,
		TotalCount:        4,
		SuccessRate:       0.75,
		ElapsedMS:         1234,
	}
	enh := &model.EnhancementResult{
		Company:            "acme corp",
		CompanyBackground:  "Acme builds rockets.",
		BusinessModel:      "Manufacturing",
		TechnologyStack:    []string{"Go", "AWS"},
		PainPoints:         []string{},
		RecentDevelopments: []string{"Raised Series B"},
		DecisionMakers:     []string{"Jo Smith - CEO"},
		EnhancementStatus:  model.StatusAIEnhanced,
		Model:              "test-model",
	}
	return agg, enh
}

func TestMarkdownFullReport(t *testing.T) {
	agg, enh := reportFixtures()
	md := Markdown(agg, enh)

	assert.True(t, strings.HasPrefix(md, "# Acme Corp\n"))
	assert.Contains(t, md, "Quality: 65/100 (Good)")
	assert.Contains(t, md, "## Analysis")
	assert.Contains(t, md, "Acme builds rockets.")
	assert.Contains(t, md, "**Business model:** Manufacturing")
	assert.Contains(t, md, "- Go\n- AWS")
	assert.Contains(t, md, "Jo Smith - CEO")
	assert.Contains(t, md, "_Generated by test-model._")

	assert.Contains(t, md, "## Collection summary")
	assert.Contains(t, md, "3 of 4 sources succeeded (75%)")
	assert.Contains(t, md, "| LinkedIn | failed |")
	assert.Contains(t, md, "| News | not run |")
	assert.Contains(t, md, "| Apollo Enrichment | ok |")
	assert.Contains(t, md, "linkedin: timeout after 30s")

	assert.Contains(t, md, "## Recommendations")
	assert.Contains(t, md, "news provider")
}

func TestMarkdownFallbackAttribution(t *testing.T) {
	agg, enh := reportFixtures()
	enh.EnhancementStatus = model.StatusManualFallback
	enh.FallbackReason = "timeout after 60s"
	enh.Model = ""

	md := Markdown(agg, enh)
	assert.Contains(t, md, "keyword heuristics (timeout after 60s)")
	assert.NotContains(t, md, "_Generated by test-model._")
}

func TestMarkdownWithoutEnhancement(t *testing.T) {
	agg, _ := reportFixtures()
	md := Markdown(agg, nil)

	assert.NotContains(t, md, "## Analysis")
	assert.Contains(t, md, "## Collection summary")
}

func TestMarkdownEmptyListsOmitted(t *testing.T) {
	agg, enh := reportFixtures()
	md := Markdown(agg, enh)

	// PainPoints is empty, so its heading must not render.
	assert.NotContains(t, md, "**Pain points:**")
	assert.Contains(t, md, "**Technology stack:**")
}
