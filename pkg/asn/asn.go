// Package asn enriches IP addresses with autonomous-system metadata
// from the ip-api.com JSON endpoint.
package asn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultBaseURL = "http://ip-api.com"

// Info holds the AS number and name of an IP address.
type Info struct {
	ASN    string `json:"as"`
	ASName string `json:"asname"`
}

// Client queries ip-api.com. Lookups are best effort: callers treat
// any error as "no ASN data" and carry on.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates an ASN lookup client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithBaseURL creates a client against a non-default
// endpoint. Used by tests.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// Lookup fetches the AS number and name for ip.
func (c *Client) Lookup(ctx context.Context, ip string) (Info, error) {
	url := fmt.Sprintf("%s/json/%s?fields=as,asname", c.baseURL, ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Info{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Info{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Info{}, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	var info Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return Info{}, err
	}
	return info, nil
}
