// Package adzuna is a minimal client for the Adzuna job search API.
package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.adzuna.com/v1/api"

// Client searches job postings.
type Client interface {
	SearchJobs(ctx context.Context, req JobSearchRequest) (*JobSearchResponse, error)
}

// JobSearchRequest holds query parameters for the job search endpoint.
type JobSearchRequest struct {
	Company    string
	Country    string // two-letter country code, defaults to "au"
	Page       int    // 1-based, defaults to 1
	MaxResults int
}

// Job is a single posting.
type Job struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Created     string `json:"created"`
	RedirectURL string `json:"redirect_url"`
}

// JobSearchResponse is the search response.
type JobSearchResponse struct {
	Count   int   `json:"count"`
	Results []Job `json:"results"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	appID   string
	appKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates an Adzuna API client.
func NewClient(appID, appKey string, opts ...Option) Client {
	c := &httpClient{
		appID:   appID,
		appKey:  appKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) SearchJobs(ctx context.Context, req JobSearchRequest) (*JobSearchResponse, error) {
	country := req.Country
	if country == "" {
		country = "au"
	}
	page := req.Page
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("app_id", c.appID)
	q.Set("app_key", c.appKey)
	q.Set("company", req.Company)
	if req.MaxResults > 0 {
		q.Set("results_per_page", strconv.Itoa(req.MaxResults))
	}

	endpoint := fmt.Sprintf("%s/jobs/%s/search/%d?%s", c.baseURL, country, page, q.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, eris.Wrap(err, "adzuna: create request")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "adzuna: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "adzuna: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("adzuna: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result JobSearchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "adzuna: unmarshal response")
	}

	return &result, nil
}
