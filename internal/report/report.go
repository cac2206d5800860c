// Package report renders collection runs as markdown, spreadsheets, and
// Notion pages.
package report

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
)

var titleCaser = cases.Title(language.English)

// sourceLabels maps result keys to human-readable section names.
var sourceLabels = map[string]string{
	model.KeyApollo:     "Apollo Enrichment",
	model.KeySerper:     "Web Search",
	model.KeyPlaywright: "Website",
	model.KeyLinkedIn:   "LinkedIn",
	model.KeyJobBoards:  "Job Postings",
	model.KeyNews:       "News",
	model.KeyGovernment: "Government Registry",
}

// Markdown renders a full research report for one run. The enhancement may be
// nil when the run failed before analysis.
func Markdown(agg *model.AggregateResult, enh *model.EnhancementResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", titleCaser.String(agg.Company))
	fmt.Fprintf(&b, "Mode: %s | Collected: %s | Quality: %d/100 (%s)\n\n",
		agg.Mode, agg.Timestamp.Format(time.RFC3339), agg.QualityScore, agg.QualityGrade)

	if enh != nil {
		writeAnalysis(&b, enh)
	}

	writeCollection(&b, agg)
	writeRecommendations(&b, agg)

	return b.String()
}

func writeAnalysis(b *strings.Builder, enh *model.EnhancementResult) {
	b.WriteString("## Analysis\n\n")
	if enh.EnhancementStatus == model.StatusManualFallback {
		fmt.Fprintf(b, "_Generated by keyword heuristics (%s)._\n\n", enh.FallbackReason)
	} else if enh.Model != "" {
		fmt.Fprintf(b, "_Generated by %s._\n\n", enh.Model)
	}

	fmt.Fprintf(b, "%s\n\n", enh.CompanyBackground)
	fmt.Fprintf(b, "**Business model:** %s\n\n", enh.BusinessModel)

	writeList(b, "Technology stack", enh.TechnologyStack)
	writeList(b, "Pain points", enh.PainPoints)
	writeList(b, "Recent developments", enh.RecentDevelopments)
	writeList(b, "Decision makers", enh.DecisionMakers)
}

func writeCollection(b *strings.Builder, agg *model.AggregateResult) {
	b.WriteString("## Collection summary\n\n")
	fmt.Fprintf(b, "%d of %d sources succeeded (%.0f%%), %dms total.\n\n",
		agg.SuccessfulCount, agg.TotalCount, agg.SuccessRate*100, agg.ElapsedMS)

	b.WriteString("| Source | Status |\n|---|---|\n")
	for _, key := range model.ResultKeys {
		label := sourceLabels[key]
		if _, collected := agg.Data[key]; !collected {
			fmt.Fprintf(b, "| %s | not run |\n", label)
			continue
		}
		if agg.HasData(key) {
			fmt.Fprintf(b, "| %s | ok |\n", label)
		} else {
			fmt.Fprintf(b, "| %s | failed |\n", label)
		}
	}
	b.WriteString("\n")

	if len(agg.Errors) > 0 {
		b.WriteString("### Errors\n\n")
		for _, e := range agg.Errors {
			fmt.Fprintf(b, "- %s\n", e)
		}
		b.WriteString("\n")
	}
}

func writeRecommendations(b *strings.Builder, agg *model.AggregateResult) {
	if len(agg.Recommendations) == 0 {
		return
	}
	b.WriteString("## Recommendations\n\n")
	for _, r := range agg.Recommendations {
		fmt.Fprintf(b, "- %s\n", r)
	}
	b.WriteString("\n")
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s:**\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
