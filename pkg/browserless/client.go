// Package browserless is a minimal client for a browserless.io-compatible
// headless browser service. It renders JavaScript-heavy pages the plain HTTP
// fetchers cannot.
package browserless

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://chrome.browserless.io"

// Client renders pages through a remote headless browser.
type Client interface {
	Content(ctx context.Context, req ContentRequest) (string, error)
}

// Cookie is a browser cookie sent with the render request, used for
// authenticated browsing sessions.
type Cookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain"`
}

// ContentRequest is the request body for POST /content.
type ContentRequest struct {
	URL       string   `json:"url"`
	WaitUntil string   `json:"waitUntil,omitempty"` // e.g. "networkidle2"
	Cookies   []Cookie `json:"cookies,omitempty"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default service URL.
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
	token   string
	baseURL string
	http    *http.Client
}

// NewClient creates a browserless client.
func NewClient(token string, opts ...Option) Client {
	c := &httpClient{
		token:   token,
		baseURL: defaultBaseURL,
		http: &http.Client{
			// Page renders are slow; allow well beyond the API clients.
			Timeout: 60 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Content renders the page and returns its full HTML.
func (c *httpClient) Content(ctx context.Context, req ContentRequest) (string, error) {
	if req.URL == "" {
		return "", eris.New("browserless: url required")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", eris.Wrap(err, "browserless: marshal request")
	}

	endpoint := c.baseURL + "/content"
	if c.token != "" {
		endpoint += "?token=" + url.QueryEscape(c.token)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", eris.Wrap(err, "browserless: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", eris.Wrap(err, "browserless: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "browserless: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("browserless: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	return string(respBody), nil
}
