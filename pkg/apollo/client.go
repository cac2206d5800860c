// Package apollo is a minimal client for the Apollo.io enrichment API.
package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.apollo.io/api/v1"

// Client exposes the Apollo operations used by the collector.
type Client interface {
	EnrichOrganization(ctx context.Context, name string) (*Organization, error)
	SearchPeople(ctx context.Context, req PeopleSearchRequest) (*PeopleSearchResponse, error)
}

// Organization is the enriched company record.
type Organization struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	WebsiteURL       string   `json:"website_url"`
	LinkedInURL      string   `json:"linkedin_url"`
	Industry         string   `json:"industry"`
	EstimatedNumEmployees int `json:"estimated_num_employees"`
	ShortDescription string   `json:"short_description"`
	Keywords         []string `json:"keywords"`
	FoundedYear      int      `json:"founded_year"`
	City             string   `json:"city"`
	Country          string   `json:"country"`
}

type enrichResponse struct {
	Organization *Organization `json:"organization"`
}

// PeopleSearchRequest is the request body for POST /mixed_people/search.
type PeopleSearchRequest struct {
	OrganizationName string   `json:"q_organization_name,omitempty"`
	PersonTitles     []string `json:"person_titles,omitempty"`
	PerPage          int      `json:"per_page,omitempty"`
}

// Person is a single contact returned by the people search.
type Person struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Email       string `json:"email"`
	LinkedInURL string `json:"linkedin_url"`
	Seniority   string `json:"seniority"`
}

// PeopleSearchResponse is the response from POST /mixed_people/search.
type PeopleSearchResponse struct {
	People     []Person `json:"people"`
	Pagination struct {
		TotalEntries int `json:"total_entries"`
	} `json:"pagination"`
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
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates an Apollo API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		// Apollo free tier allows ~50 requests/minute.
		limiter: rate.NewLimiter(rate.Limit(0.8), 2),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) EnrichOrganization(ctx context.Context, name string) (*Organization, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "apollo: rate limit wait")
	}

	q := url.Values{}
	q.Set("name", name)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/organizations/enrich?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "apollo: create request")
	}
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	var result enrichResponse
	if err := c.do(httpReq, &result); err != nil {
		return nil, err
	}
	if result.Organization == nil {
		return nil, eris.Errorf("apollo: no organization match for %q", name)
	}
	return result.Organization, nil
}

func (c *httpClient) SearchPeople(ctx context.Context, req PeopleSearchRequest) (*PeopleSearchResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "apollo: rate limit wait")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "apollo: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/mixed_people/search", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "apollo: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	var result PeopleSearchResponse
	if err := c.do(httpReq, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *httpClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "apollo: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "apollo: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("apollo: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return eris.Wrap(err, "apollo: unmarshal response")
	}
	return nil
}
