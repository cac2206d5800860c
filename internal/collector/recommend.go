package collector

import (
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
)

// criticalAdvice maps each critical source to the suggestion emitted when it
// fails. Checked in criticalSources order so output is deterministic.
var criticalAdvice = map[string]string{
	"apollo":     "Check Apollo API credentials and remaining credits",
	"serper":     "Check Serper API key and query quota",
	"playwright": "Verify browser automation service token and target site availability",
}

// richnessAdvice maps data-richness result keys to the suggestion emitted
// when they produced nothing.
var richnessAdvice = []struct {
	key    string
	advice string
}{
	{model.KeyJobBoards, "Enable or configure job board credentials for hiring signals"},
	{model.KeyNews, "Enable or configure the news provider for recent developments"},
	{model.KeyGovernment, "Enable or configure the government registry lookup"},
}

// Recommendations derives actionable suggestions from which sources failed.
// Pure function over the aggregate; order is fixed.
func Recommendations(agg *model.AggregateResult) []string {
	failed := map[string]bool{}
	for _, name := range agg.FailedSources {
		failed[name] = true
	}

	var recs []string
	for _, name := range criticalSources {
		if failed[name] {
			recs = append(recs, criticalAdvice[name])
		}
	}

	if agg.SuccessRate < 0.5 {
		recs = append(recs, "Review data source configuration and network connectivity")
	}

	for _, r := range richnessAdvice {
		if !agg.HasData(r.key) {
			recs = append(recs, r.advice)
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "Data collection performing well - no improvements needed")
	}
	return recs
}
