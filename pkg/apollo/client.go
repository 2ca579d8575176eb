// Package apollo is a thin client for the Apollo.io people API, used for
// contact enrichment (decision makers and their contact details).
package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/intel-orchestrator/internal/resilience"
)

const defaultBaseURL = "https://api.apollo.io/api/v1"

// Client searches contacts at a company.
type Client interface {
	PeopleSearch(ctx context.Context, req PeopleSearchRequest) (*PeopleSearchResponse, error)
}

// PeopleSearchRequest is the request body for POST /mixed_people/search.
type PeopleSearchRequest struct {
	OrganizationName string   `json:"q_organization_name,omitempty"`
	PersonTitles     []string `json:"person_titles,omitempty"`
	PerPage          int      `json:"per_page,omitempty"`
}

// PeopleSearchResponse is the subset of the Apollo payload kept.
type PeopleSearchResponse struct {
	People     []Person `json:"people"`
	TotalCount int      `json:"total_entries"`
}

// Person is one enriched contact.
type Person struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Email       string   `json:"email,omitempty"`
	LinkedInURL string   `json:"linkedin_url,omitempty"`
	Seniority   string   `json:"seniority,omitempty"`
	Departments []string `json:"departments,omitempty"`
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

// NewClient creates an Apollo API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
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

func (c *httpClient) PeopleSearch(ctx context.Context, req PeopleSearchRequest) (*PeopleSearchResponse, error) {
	if req.PerPage == 0 {
		req.PerPage = 10
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "apollo: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mixed_people/search", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "apollo: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "apollo: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "apollo: read response")
	}

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("apollo: unexpected status %d: %s", resp.StatusCode, string(respBody))
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	var result PeopleSearchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "apollo: unmarshal response")
	}

	return &result, nil
}
