package enhance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
)

// titleCaser formats company names in generated text.
var titleCaser = cases.Title(language.English)

// techKeywords maps lowercase indicators to canonical technology labels.
// Matching is best-effort substring classification, not semantic extraction.
var techKeywords = map[string]string{
	"aws":              "AWS",
	"amazon web serv":  "AWS",
	"azure":            "Microsoft Azure",
	"google cloud":     "Google Cloud",
	"kubernetes":       "Kubernetes",
	"docker":           "Docker",
	"terraform":        "Terraform",
	"react":            "React",
	"angular":          "Angular",
	"node.js":          "Node.js",
	"python":           "Python",
	"java ":            "Java",
	"golang":           "Go",
	".net":             ".NET",
	"salesforce":       "Salesforce",
	"sap ":             "SAP",
	"snowflake":        "Snowflake",
	"databricks":       "Databricks",
	"machine learning": "Machine Learning",
	"artificial intelligence": "AI",
	"postgresql": "PostgreSQL",
	"mongodb":    "MongoDB",
}

// businessModelKeywords maps lowercase indicators to business model labels.
// Longest match wins so "professional services" beats "services".
var businessModelKeywords = map[string]string{
	"saas":                  "SaaS",
	"software as a service": "SaaS",
	"subscription":          "SaaS",
	"marketplace":           "Marketplace",
	"e-commerce":            "E-commerce",
	"ecommerce":             "E-commerce",
	"retail":                "Retail",
	"consulting":            "Consulting Services",
	"professional services": "Professional Services",
	"managed services":      "Managed Services",
	"manufactur":            "Manufacturing",
	"distribut":             "Distribution",
	"logistics":             "Logistics",
	"financial services":    "Financial Services",
	"fintech":               "Financial Services",
	"insurance":             "Insurance",
	"healthcare":            "Healthcare",
	"biotech":               "Healthcare",
	"construction":          "Construction",
	"real estate":           "Real Estate",
	"education":             "Education",
	"software":              "Software",
	"agency":                "Agency Services",
	"non-profit":            "Non-profit",
	"government":            "Government",
}

// painPointVocabulary maps challenge indicators to pain point statements.
var painPointVocabulary = map[string]string{
	"legacy":         "Legacy system modernization",
	"migration":      "Platform or cloud migration in progress",
	"compliance":     "Regulatory compliance burden",
	"security":       "Security and risk management pressure",
	"scaling":        "Scaling operations to meet growth",
	"talent":         "Talent acquisition and retention",
	"hiring":         "Talent acquisition and retention",
	"restructur":     "Organizational restructuring",
	"layoff":         "Workforce reduction pressures",
	"competition":    "Competitive market pressure",
	"cost reduction": "Cost reduction initiatives",
	"digital transformation": "Digital transformation initiatives",
}

// Fallback derives the analysis field set from the raw aggregate using fixed
// heuristics. Pure function of its input: no external calls, deterministic
// output, always structurally complete. The caller sets FallbackReason.
func Fallback(agg *model.AggregateResult) model.EnhancementResult {
	corpus := strings.ToLower(collectText(agg))

	return model.EnhancementResult{
		Company:            agg.Company,
		CompanyBackground:  deriveBackground(agg),
		BusinessModel:      deriveBusinessModel(corpus),
		TechnologyStack:    scanKeywords(corpus, techKeywords),
		PainPoints:         derivePainPoints(agg, corpus),
		RecentDevelopments: deriveDevelopments(agg),
		DecisionMakers:     deriveDecisionMakers(agg),
		EnhancementStatus:  model.StatusManualFallback,
		GeneratedAt:        time.Now().UTC(),
	}
}

// collectText concatenates every free-text field the payloads carry.
func collectText(agg *model.AggregateResult) string {
	var b strings.Builder

	if p := agg.Payload(model.KeyApollo); p != nil {
		org := subMap(p, "organization")
		b.WriteString(str(org, "description"))
		b.WriteString(" ")
		b.WriteString(str(org, "industry"))
		b.WriteString(" ")
		for _, kw := range list(org, "keywords") {
			if s, ok := kw.(string); ok {
				b.WriteString(s)
				b.WriteString(" ")
			}
		}
	}
	if p := agg.Payload(model.KeySerper); p != nil {
		b.WriteString(str(subMap(p, "knowledge_graph"), "description"))
		b.WriteString(" ")
		for _, r := range list(p, "organic") {
			if m, ok := r.(map[string]any); ok {
				b.WriteString(str(m, "title"))
				b.WriteString(" ")
				b.WriteString(str(m, "snippet"))
				b.WriteString(" ")
			}
		}
	}
	if p := agg.Payload(model.KeyPlaywright); p != nil {
		b.WriteString(str(p, "description"))
		b.WriteString(" ")
		b.WriteString(str(p, "text"))
		b.WriteString(" ")
	}
	if p := agg.Payload(model.KeyLinkedIn); p != nil {
		b.WriteString(str(p, "about"))
		b.WriteString(" ")
	}
	if p := agg.Payload(model.KeyNews); p != nil {
		for _, a := range list(p, "articles") {
			if m, ok := a.(map[string]any); ok {
				b.WriteString(str(m, "title"))
				b.WriteString(" ")
				b.WriteString(str(m, "description"))
				b.WriteString(" ")
			}
		}
	}
	if p := agg.Payload(model.KeyJobBoards); p != nil {
		for _, j := range list(p, "jobs") {
			if m, ok := j.(map[string]any); ok {
				b.WriteString(str(m, "title"))
				b.WriteString(" ")
				b.WriteString(str(m, "description"))
				b.WriteString(" ")
			}
		}
	}

	return b.String()
}

func deriveBackground(agg *model.AggregateResult) string {
	if desc := str(subMap(agg.Payload(model.KeyApollo), "organization"), "description"); desc != "" {
		return desc
	}
	if desc := str(subMap(agg.Payload(model.KeySerper), "knowledge_graph"), "description"); desc != "" {
		return desc
	}
	if desc := str(agg.Payload(model.KeyPlaywright), "description"); desc != "" {
		return desc
	}
	if gov := agg.Payload(model.KeyGovernment); gov != nil {
		if regs := list(gov, "registrations"); len(regs) > 0 {
			if m, ok := regs[0].(map[string]any); ok {
				name := str(m, "legal_name")
				if name != "" {
					return fmt.Sprintf("%s is a registered entity (%s, %s).",
						name, str(m, "registration_status"), str(m, "country"))
				}
			}
		}
	}
	return fmt.Sprintf("%s - no detailed background collected; manual research recommended.",
		titleCaser.String(agg.Company))
}

func deriveBusinessModel(corpus string) string {
	bestKey := ""
	bestLabel := ""
	for kw, label := range businessModelKeywords {
		if strings.Contains(corpus, kw) && len(kw) > len(bestKey) {
			bestKey = kw
			bestLabel = label
		}
	}
	if bestLabel != "" {
		return bestLabel
	}
	return "Other"
}

// scanKeywords returns matched labels deduplicated in first-match order over
// a fixed key ordering.
func scanKeywords(corpus string, keywords map[string]string) []string {
	matched := map[string]bool{}
	var out []string
	for _, kw := range sortedKeys(keywords) {
		label := keywords[kw]
		if matched[label] {
			continue
		}
		if strings.Contains(corpus, kw) {
			matched[label] = true
			out = append(out, label)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func derivePainPoints(agg *model.AggregateResult, corpus string) []string {
	points := scanKeywords(corpus, painPointVocabulary)

	if jobs := agg.Payload(model.KeyJobBoards); jobs != nil {
		if n, ok := jobs["job_count"].(int); ok && n >= 10 {
			points = append(points, "Rapid hiring suggests growth and onboarding strain")
		} else if f, ok := jobs["job_count"].(float64); ok && f >= 10 {
			points = append(points, "Rapid hiring suggests growth and onboarding strain")
		}
	}
	return points
}

func deriveDevelopments(agg *model.AggregateResult) []string {
	out := []string{}
	if p := agg.Payload(model.KeyNews); p != nil {
		for _, a := range list(p, "articles") {
			if len(out) >= 5 {
				break
			}
			if m, ok := a.(map[string]any); ok {
				title := str(m, "title")
				if title == "" {
					continue
				}
				if src := str(m, "source"); src != "" {
					out = append(out, fmt.Sprintf("%s (%s)", title, src))
				} else {
					out = append(out, title)
				}
			}
		}
	}
	return out
}

func deriveDecisionMakers(agg *model.AggregateResult) []string {
	out := []string{}
	if p := agg.Payload(model.KeyApollo); p != nil {
		for _, person := range list(p, "people") {
			if m, ok := person.(map[string]any); ok {
				name := str(m, "name")
				if name == "" {
					continue
				}
				if title := str(m, "title"); title != "" {
					out = append(out, name+" - "+title)
				} else {
					out = append(out, name)
				}
			}
		}
	}
	return out
}

// --- small payload accessors ---

func str(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func subMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	sub, _ := m[key].(map[string]any)
	return sub
}

func list(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	l, _ := m[key].([]any)
	return l
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
