// Package brightdata is a thin client for Bright Data marketplace dataset
// snapshots: trigger a company lookup, then poll until the snapshot is
// ready. Also serves technology-stack lookups from the same dataset family.
package brightdata

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

const defaultBaseURL = "https://api.brightdata.com/datasets/v3"

// Client triggers and polls marketplace dataset snapshots.
type Client interface {
	TriggerSnapshot(ctx context.Context, datasetID, companyName string) (string, error)
	GetSnapshot(ctx context.Context, snapshotID string) (*Snapshot, error)
	// CollectCompany triggers a snapshot and polls until ready or ctx ends.
	CollectCompany(ctx context.Context, datasetID, companyName string) (json.RawMessage, error)
}

// Snapshot is a dataset snapshot in progress or delivered.
type Snapshot struct {
	ID     string          `json:"snapshot_id"`
	Status string          `json:"status"` // "running", "ready", "failed"
	Data   json.RawMessage `json:"data,omitempty"`
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

// WithPollInterval overrides the snapshot poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(c *httpClient) {
		c.pollInterval = d
	}
}

type httpClient struct {
	apiKey       string
	baseURL      string
	pollInterval time.Duration
	http         *http.Client
}

// NewClient creates a Bright Data API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		pollInterval: 2 * time.Second,
		http: &http.Client{
			Timeout: 60 * time.Second,
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

func (c *httpClient) TriggerSnapshot(ctx context.Context, datasetID, companyName string) (string, error) {
	body, err := json.Marshal([]map[string]string{{"company_name": companyName}})
	if err != nil {
		return "", eris.Wrap(err, "brightdata: marshal request")
	}

	url := c.baseURL + "/trigger?dataset_id=" + datasetID
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", eris.Wrap(err, "brightdata: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	var snap Snapshot
	if err := c.do(httpReq, &snap); err != nil {
		return "", err
	}
	return snap.ID, nil
}

func (c *httpClient) GetSnapshot(ctx context.Context, snapshotID string) (*Snapshot, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/snapshot/"+snapshotID, nil)
	if err != nil {
		return nil, eris.Wrap(err, "brightdata: create request")
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	var snap Snapshot
	if err := c.do(httpReq, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *httpClient) CollectCompany(ctx context.Context, datasetID, companyName string) (json.RawMessage, error) {
	id, err := c.TriggerSnapshot(ctx, datasetID, companyName)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, eris.Wrap(ctx.Err(), "brightdata: snapshot poll cancelled")
		case <-ticker.C:
			snap, err := c.GetSnapshot(ctx, id)
			if err != nil {
				return nil, err
			}
			switch snap.Status {
			case "ready":
				return snap.Data, nil
			case "failed":
				return nil, eris.Errorf("brightdata: snapshot %s failed", id)
			}
		}
	}
}

func (c *httpClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "brightdata: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "brightdata: read response")
	}

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("brightdata: unexpected status %d: %s", resp.StatusCode, string(respBody))
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return resilience.NewTransientError(err, resp.StatusCode)
		}
		return err
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return eris.Wrap(err, "brightdata: unmarshal response")
	}
	return nil
}
