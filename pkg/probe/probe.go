// Package probe implements the HTTP probing stage of the pipeline: a
// timeout-bounded GET of a fixed path on every resolved hostname.
package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zeroday/hostrecon/pkg/model"
)

// DefaultPath is the endpoint probed on every hostname.
const DefaultPath = "/front/checkIp"

// DefaultTimeout bounds each probe request.
const DefaultTimeout = 3 * time.Second

// userAgent mimics mobile Safari; some targets answer differently to
// obvious tooling.
const userAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 15_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) CriOS/94.0.4606.52 Mobile/15E148 Safari/604.1"

// Prober issues HTTPS GET requests against a fixed path, with
// certificate validation disabled. The client is shared read-only
// across all concurrent operations of a run.
type Prober struct {
	client  *http.Client
	path    string
	timeout time.Duration
}

// NewProber creates a prober for the given path.
func NewProber(path string, timeout time.Duration) *Prober {
	return &Prober{
		client: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		path:    path,
		timeout: timeout,
	}
}

// Do probes a single hostname. All failure modes are absorbed into
// the returned record: StatusCode 0 with Error "Timeout" when the
// deadline fires, StatusCode 0 with the transport error text when the
// request never yields a response, and the actual status code with no
// error for any received response. The body is captured only for
// status 200; a body read failure is recorded inside Response rather
// than treated as a probe failure.
func (p *Prober) Do(ctx context.Context, hostname string) model.HTTPResult {
	result := model.HTTPResult{
		Hostname:  hostname,
		Path:      p.path,
		Timestamp: time.Now().UTC(),
	}

	url := fmt.Sprintf("https://%s%s", hostname, p.path)

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			result.Error = "Timeout"
		} else {
			result.Error = err.Error()
		}
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode == http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			result.Response = fmt.Sprintf("Error reading response: %s", err)
		} else {
			result.Response = string(body)
		}
	}

	return result
}
