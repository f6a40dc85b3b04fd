// Package lambdalabs is a minimal client for the Lambda Labs public cloud
// API. It covers only the instance-types listing the watchdog needs and
// uses a direct HTTP client rather than a generated SDK to keep the
// dependency tree light.
package lambdalabs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://cloud.lambda.ai"
	clientTimeout  = 30 * time.Second
)

// Client talks to the Lambda Labs API using a static bearer API key.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a Client with the given API key. Leading and trailing
// whitespace in the key is discarded; pasted keys often carry a newline.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: clientTimeout},
	}
}

// instanceTypesEnvelope is the response wrapper for the instance-types
// endpoint.
type instanceTypesEnvelope struct {
	Data Snapshot `json:"data"`
}

// InstanceTypes fetches the current provider-wide availability snapshot.
// A non-2xx response yields an *APIError carrying the status code and raw
// body.
func (c *Client) InstanceTypes(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/instance-types", nil)
	if err != nil {
		return nil, fmt.Errorf("lambdalabs: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lambdalabs: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("lambdalabs: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var envelope instanceTypesEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("lambdalabs: failed to decode response: %w", err)
	}
	return envelope.Data, nil
}
