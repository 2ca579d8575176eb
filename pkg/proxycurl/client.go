// Package proxycurl is a thin client for the Proxycurl company API, used
// for professional-network company profiles.
package proxycurl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/intel-orchestrator/internal/resilience"
)

const defaultBaseURL = "https://nubela.co/proxycurl/api"

// Client fetches company profiles from Proxycurl.
type Client interface {
	CompanyProfile(ctx context.Context, companyName string) (*CompanyProfile, error)
}

// CompanyProfile is the subset of the Proxycurl company payload kept.
type CompanyProfile struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Industry       string   `json:"industry"`
	CompanySize    []int    `json:"company_size,omitempty"`
	HQ             *HQ      `json:"hq,omitempty"`
	Specialties    []string `json:"specialities,omitempty"`
	FollowerCount  int      `json:"follower_count"`
	Website        string   `json:"website"`
	FoundedYear    int      `json:"founded_year"`
	LocationsCount int      `json:"locations_count,omitempty"`
	LinkedInURL    string   `json:"linkedin_url,omitempty"`
	UpdatedAtEpoch int64    `json:"last_updated,omitempty"`
}

// HQ is the headquarters location.
type HQ struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
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

// NewClient creates a Proxycurl API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 45 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) CompanyProfile(ctx context.Context, companyName string) (*CompanyProfile, error) {
	q := url.Values{}
	q.Set("company_name", companyName)
	q.Set("enrich_profile", "enrich")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/linkedin/company/resolve?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "proxycurl: create request")
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "proxycurl: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "proxycurl: read response")
	}

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("proxycurl: unexpected status %d: %s", resp.StatusCode, string(respBody))
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	var profile CompanyProfile
	if err := json.Unmarshal(respBody, &profile); err != nil {
		return nil, eris.Wrap(err, "proxycurl: unmarshal response")
	}

	return &profile, nil
}
