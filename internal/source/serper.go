package source

import (
	"context"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/serper"
)

// SerperSource fetches web search results for the company.
type SerperSource struct {
	client serper.Client
}

// NewSerperSource wraps a Serper client as a Source.
func NewSerperSource(client serper.Client) *SerperSource {
	return &SerperSource{client: client}
}

func (s *SerperSource) Name() string { return "serper" }

func (s *SerperSource) Fetch(ctx context.Context, company string, params Params) (Payload, error) {
	num := params.Int("results", 10)
	resp, err := s.client.Search(ctx, serper.SearchRequest{
		Query: company + " company",
		Num:   num,
	})
	if err != nil {
		return nil, err
	}

	organic := make([]any, 0, len(resp.Organic))
	for _, r := range resp.Organic {
		organic = append(organic, map[string]any{
			"title":   r.Title,
			"link":    r.Link,
			"snippet": r.Snippet,
		})
	}

	payload := Payload{
		"status":        "success",
		"organic":       organic,
		"results_count": len(organic),
	}
	if kg := resp.KnowledgeGraph; kg != nil {
		payload["knowledge_graph"] = map[string]any{
			"title":       kg.Title,
			"type":        kg.Type,
			"website":     kg.Website,
			"description": kg.Description,
		}
	}

	return payload, nil
}
