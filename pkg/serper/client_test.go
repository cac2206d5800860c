package serper

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     string
		wantOrganic int
		wantKG      string
	}{
		{
			name:   "success_with_knowledge_graph",
			status: http.StatusOK,
			body: `{
				"organic": [
					{"title": "Acme Corp", "link": "https://acme.example", "snippet": "Rockets", "position": 1},
					{"title": "Acme on LinkedIn", "link": "https://linkedin.com/company/acme", "snippet": "", "position": 2}
				],
				"knowledgeGraph": {"title": "Acme Corp", "type": "Company", "description": "Makes rockets"}
			}`,
			wantOrganic: 2,
			wantKG:      "Acme Corp",
		},
		{
			name:        "success_no_knowledge_graph",
			status:      http.StatusOK,
			body:        `{"organic": []}`,
			wantOrganic: 0,
		},
		{
			name:    "unauthorized",
			status:  http.StatusForbidden,
			body:    `{"message": "Unauthorized"}`,
			wantErr: "unexpected status 403",
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `{not json`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/search", r.URL.Path)
				assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))

				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				var req SearchRequest
				require.NoError(t, json.Unmarshal(body, &req))
				assert.Equal(t, "acme corp company", req.Query)
				assert.Equal(t, 20, req.Num)

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient("test-key", WithBaseURL(srv.URL), WithRateLimit(1000, 10))
			resp, err := c.Search(context.Background(), SearchRequest{Query: "acme corp company", Num: 20})

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, resp.Organic, tt.wantOrganic)
			if tt.wantKG != "" {
				require.NotNil(t, resp.KnowledgeGraph)
				assert.Equal(t, tt.wantKG, resp.KnowledgeGraph.Title)
			} else {
				assert.Nil(t, resp.KnowledgeGraph)
			}
		})
	}
}

func TestSearchContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient("test-key", WithRateLimit(0.001, 1))
	_, err := c.Search(ctx, SearchRequest{Query: "acme"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
}
