// Package fetcher retrieves rendered page content through a rendering proxy.
// The proxy is addressed by prefixing the target URL with the proxy origin,
// e.g. https://r.jina.ai/example.com.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/pagescout/internal/common"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultMaxBytes  = 4 << 20
	defaultUserAgent = "pagescout/1.0"
)

// StatusError reports a non-2xx answer from the proxy.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("proxy returned status %d", e.Code)
}

type Options struct {
	ProxyURL string
	// APIKey is sent as a bearer token when set.
	APIKey   string
	Timeout  time.Duration
	MaxBytes int64
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

type Client struct {
	proxyURL   string
	apiKey     string
	httpClient *http.Client
	maxBytes   int64
}

func New(opts Options) (*Client, error) {
	proxy := strings.TrimSpace(opts.ProxyURL)
	if proxy == "" {
		return nil, errors.New("fetcher: proxy url is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		proxyURL:   proxy,
		apiKey:     opts.APIKey,
		httpClient: hc,
		maxBytes:   maxBytes,
	}, nil
}

// ProxyURL returns the address fetched for targetURL.
func (c *Client) ProxyURL(targetURL string) string {
	return c.proxyURL + targetURL
}

// Fetch returns the proxy's rendering of targetURL as text. Transport
// failures, non-2xx statuses and oversized bodies are reported as
// common.ErrFetch wrapping the cause.
func (c *Client) Fetch(ctx context.Context, targetURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ProxyURL(targetURL), nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", common.ErrFetch, err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return "", fmt.Errorf("%w: %w", common.ErrFetch, &StatusError{Code: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", common.ErrFetch, err)
	}
	if int64(len(body)) > c.maxBytes {
		return "", fmt.Errorf("%w: content exceeds %d bytes", common.ErrFetch, c.maxBytes)
	}

	return string(body), nil
}
