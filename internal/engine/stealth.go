package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"

	stealth "github.com/anatolykoptev/go-stealth"
)

// Re-export stealth types and functions for engine consumers.
type BrowserClient = stealth.BrowserClient

var DefaultRetryConfig = stealth.DefaultRetryConfig

func ChromeHeaders() map[string]string { return stealth.ChromeHeaders() }
func RandomUserAgent() string          { return stealth.RandomUserAgent() }

func RetryHTTP(ctx context.Context, rc stealth.RetryConfig, fn func() (*http.Response, error)) (*http.Response, error) {
	return stealth.RetryHTTP(ctx, rc, fn)
}

// FetchPage GETs an HTML page and returns at most limit bytes of its body.
// Goes through the Chrome-fingerprint BrowserClient when one is configured,
// otherwise through Cfg.HTTPClient with retries on transient statuses.
// Cfg.FetchTimeout, when set, bounds the whole fetch including retries.
func FetchPage(ctx context.Context, pageURL string, limit int64) ([]byte, error) {
	if cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.FetchTimeout)
		defer cancel()
	}
	if cfg.BrowserClient != nil {
		headers := ChromeHeaders()
		headers["accept-language"] = "en-US,en;q=0.9"
		data, _, status, err := cfg.BrowserClient.Do(http.MethodGet, pageURL, headers, nil)
		if err != nil {
			return nil, fmt.Errorf("browser fetch: %w", err)
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("browser fetch: status %d", status)
		}
		if int64(len(data)) > limit {
			data = data[:limit]
		}
		return data, nil
	}

	resp, err := RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", RandomUserAgent())
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}
