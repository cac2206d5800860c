package source

import (
	"context"
	"time"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/newsapi"
)

// NewsSource fetches recent news coverage for the company.
type NewsSource struct {
	client newsapi.Client
	now    func() time.Time
}

// NewNewsSource wraps a NewsAPI client as a Source.
func NewNewsSource(client newsapi.Client) *NewsSource {
	return &NewsSource{client: client, now: time.Now}
}

func (s *NewsSource) Name() string { return "news" }

func (s *NewsSource) Fetch(ctx context.Context, company string, params Params) (Payload, error) {
	lookbackDays := params.Int("lookback_days", 7)
	pageSize := params.Int("max_articles", 20)

	resp, err := s.client.Everything(ctx, newsapi.EverythingRequest{
		Query:    `"` + company + `"`,
		From:     s.now().AddDate(0, 0, -lookbackDays),
		Language: "en",
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}

	articles := make([]any, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		articles = append(articles, map[string]any{
			"title":        a.Title,
			"description":  a.Description,
			"url":          a.URL,
			"source":       a.Source.Name,
			"published_at": a.PublishedAt.Format(time.RFC3339),
		})
	}

	return Payload{
		"status":        "success",
		"articles":      articles,
		"total_results": resp.TotalResults,
		"lookback_days": lookbackDays,
	}, nil
}
