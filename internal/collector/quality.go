package collector

import (
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
)

// criticalSources is the fixed subset whose success dominates the quality
// score. Order matters for deterministic factor/recommendation output.
var criticalSources = []string{"apollo", "serper", "playwright"}

// Assessment is the quality assessor's output.
type Assessment struct {
	Score   int
	Grade   string
	Factors []string
}

// Assess derives a 0-100 quality score and its contributing factors from an
// aggregate result. Pure function: same input, same output.
func Assess(agg *model.AggregateResult) Assessment {
	a := Assessment{Factors: []string{}}

	succeeded := map[string]bool{}
	for _, name := range agg.SuccessfulSources {
		succeeded[name] = true
	}

	criticalOK := 0
	for _, name := range criticalSources {
		if succeeded[name] {
			criticalOK++
		}
	}
	switch {
	case criticalOK == len(criticalSources):
		a.Score += 40
		a.Factors = append(a.Factors, "All critical sources successful")
	case criticalOK >= 2:
		a.Score += 25
		a.Factors = append(a.Factors, "Most critical sources successful")
	default:
		a.Factors = append(a.Factors, "Some critical sources failed")
	}

	if agg.HasData(model.KeyJobBoards) {
		a.Score += 15
		a.Factors = append(a.Factors, "Job postings data available")
	}
	if agg.HasData(model.KeyNews) {
		a.Score += 15
		a.Factors = append(a.Factors, "Recent news data available")
	}
	if agg.HasData(model.KeyGovernment) {
		a.Score += 15
		a.Factors = append(a.Factors, "Government registry data available")
	}

	switch {
	case agg.SuccessRate >= 0.8:
		a.Score += 15
		a.Factors = append(a.Factors, "High source success rate")
	case agg.SuccessRate >= 0.6:
		a.Score += 10
		a.Factors = append(a.Factors, "Good source success rate")
	}

	if a.Score > 100 {
		a.Score = 100
	}
	a.Grade = grade(a.Score)
	return a
}

func grade(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Poor"
	}
}
