package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// AdapterConfig is the per-provider HTTP configuration.
type AdapterConfig struct {
	BaseURL string
	APIKey  string
	Model   string

	// Timeout bounds each attempt. The original system leaned on the
	// hosting runtime's implicit execution limit; here it is explicit.
	Timeout time.Duration

	// HTTPClient overrides the default client (for tests).
	HTTPClient *http.Client
}

// WithDefaults returns a copy with the base URL normalized and defaults
// applied.
func (c AdapterConfig) WithDefaults(defaultBaseURL string) AdapterConfig {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.BaseURL == "" {
		c.BaseURL = strings.TrimRight(defaultBaseURL, "/")
	}
	if c.Timeout <= 0 {
		c.Timeout = 20 * time.Second
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Transport: defaultTransport()}
	}
	return c
}

// defaultTransport creates an HTTP transport with connection pooling and
// reasonable timeouts for upstream calls.
func defaultTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// postJSON marshals body, POSTs it with the given headers under the
// adapter's timeout, and decodes a 2xx response into out. A non-2xx status
// is an error carrying a truncated body excerpt.
func postJSON(ctx context.Context, cfg AdapterConfig, url string, headers map[string]string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := cfg.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upstream %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode upstream response: %w", err)
	}

	return nil
}

// truncate limits string length for logging and error messages.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
