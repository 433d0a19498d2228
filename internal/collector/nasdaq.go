package collector

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"

	"StockStats/internal/calculator"
)

const (
	DefaultNasdaqBaseURL = "https://api.nasdaq.com"
	DefaultTimeout       = 10 * time.Second

	// historyLimit asks the API for every row in the date range.
	historyLimit = 9999
)

// NasdaqFetcher implements Fetcher using the public Nasdaq quote API.
type NasdaqFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewNasdaqFetcher creates a fetcher with the given timeout and optional proxy.
func NewNasdaqFetcher(baseURL string, timeout time.Duration, proxyURL string) *NasdaqFetcher {
	if baseURL == "" {
		baseURL = DefaultNasdaqBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &NasdaqFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *NasdaqFetcher) Name() string { return "nasdaq" }

// HistoricalURL builds the historical quotes endpoint for ticker starting at from.
func (f *NasdaqFetcher) HistoricalURL(ticker string, from time.Time) string {
	q := url.Values{}
	q.Set("assetclass", "stocks")
	q.Set("fromdate", from.Format(calculator.DateLayout))
	q.Set("limit", fmt.Sprint(historyLimit))
	return fmt.Sprintf("%s/api/quote/%s/historical?%s", f.BaseURL, url.PathEscape(ticker), q.Encode())
}

// FetchHistorical performs a single GET for ticker. It does not retry.
func (f *NasdaqFetcher) FetchHistorical(ctx context.Context, ticker string, from time.Time) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.HistoricalURL(ticker, from), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	// The API rejects requests that do not look like a browser.
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nasdaq fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("nasdaq read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("nasdaq: status %d, body: %s", resp.StatusCode, truncate(body, 200))
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("nasdaq decode: %w", err)
	}
	return data, nil
}

// readBody decodes the body according to Content-Encoding. Setting
// Accept-Encoding by hand disables the transport's transparent gzip.
func readBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	case "deflate":
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		// zlib-wrapped per RFC 9110, but many servers send raw DEFLATE
		if zr, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
			defer zr.Close()
			r = zr
		} else {
			fr := flate.NewReader(bytes.NewReader(raw))
			defer fr.Close()
			r = fr
		}
	case "br":
		r = brotli.NewReader(resp.Body)
	}
	return io.ReadAll(r)
}

func truncate(b []byte, n int) string {
	b = bytes.TrimSpace(b)
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
