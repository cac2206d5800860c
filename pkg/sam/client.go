// Package sam is a minimal client for the SAM.gov entity information API.
package sam

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.sam.gov/entity-information/v3"

// Client looks up government entity registrations.
type Client interface {
	SearchEntities(ctx context.Context, legalName string) (*EntityResponse, error)
}

// Entity is a single registered entity.
type Entity struct {
	EntityRegistration struct {
		UEISAM             string `json:"ueiSAM"`
		LegalBusinessName  string `json:"legalBusinessName"`
		RegistrationStatus string `json:"registrationStatus"`
		RegistrationDate   string `json:"registrationDate"`
		CageCode           string `json:"cageCode"`
	} `json:"entityRegistration"`
	CoreData struct {
		GeneralInformation struct {
			EntityStructureDesc string `json:"entityStructureDesc"`
			StateOfIncorporation string `json:"stateOfIncorporationCode"`
		} `json:"generalInformation"`
		PhysicalAddress struct {
			City            string `json:"city"`
			StateOrProvince string `json:"stateOrProvinceCode"`
			CountryCode     string `json:"countryCode"`
		} `json:"physicalAddress"`
	} `json:"coreData"`
}

// EntityResponse is the response from GET /entities.
type EntityResponse struct {
	TotalRecords int      `json:"totalRecords"`
	Entities     []Entity `json:"entityData"`
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
}

// NewClient creates a SAM.gov API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
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

func (c *httpClient) SearchEntities(ctx context.Context, legalName string) (*EntityResponse, error) {
	q := url.Values{}
	q.Set("legalBusinessName", legalName)
	q.Set("api_key", c.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/entities?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "sam: create request")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "sam: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "sam: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("sam: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result EntityResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "sam: unmarshal response")
	}

	return &result, nil
}
