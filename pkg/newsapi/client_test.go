package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEverything(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/everything", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		q := r.URL.Query()
		assert.Equal(t, `"acme corp"`, q.Get("q"))
		assert.Equal(t, "2026-07-01", q.Get("from"))
		assert.Equal(t, "en", q.Get("language"))
		assert.Equal(t, "20", q.Get("pageSize"))
		assert.Equal(t, "publishedAt", q.Get("sortBy"))

		_, _ = w.Write([]byte(`{
			"status": "ok",
			"totalResults": 2,
			"articles": [
				{"source": {"name": "TechWire"}, "title": "Acme raises Series B", "url": "https://techwire.example/a", "publishedAt": "2026-07-15T08:00:00Z"},
				{"source": {"name": "Daily"}, "title": "Acme expands", "url": "https://daily.example/b", "publishedAt": "2026-07-20T08:00:00Z"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := c.Everything(context.Background(), EverythingRequest{
		Query:    `"acme corp"`,
		From:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		Language: "en",
		PageSize: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalResults)
	require.Len(t, resp.Articles, 2)
	assert.Equal(t, "Acme raises Series B", resp.Articles[0].Title)
	assert.Equal(t, "TechWire", resp.Articles[0].Source.Name)
}

func TestEverythingOmitsEmptyParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.False(t, q.Has("from"))
		assert.False(t, q.Has("language"))
		assert.False(t, q.Has("pageSize"))
		_, _ = w.Write([]byte(`{"status": "ok", "totalResults": 0, "articles": []}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := c.Everything(context.Background(), EverythingRequest{Query: "acme"})
	require.NoError(t, err)
	assert.Empty(t, resp.Articles)
}

func TestEverythingErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "http_error",
			status:  http.StatusUnauthorized,
			body:    `{"status": "error", "code": "apiKeyInvalid"}`,
			wantErr: "unexpected status 401",
		},
		{
			name:    "api_level_error",
			status:  http.StatusOK,
			body:    `{"status": "error", "articles": []}`,
			wantErr: `api status "error"`,
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `not json`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient("test-key", WithBaseURL(srv.URL))
			_, err := c.Everything(context.Background(), EverythingRequest{Query: "acme"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
