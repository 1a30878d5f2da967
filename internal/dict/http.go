// internal/dict/http.go
//
// HTTP dictionary client for the open-dictionary search API:
//
//	GET {base}/api/search?q=<word>
//	→ 200 {"total": N, "items": [{"headword","pos","definition"}, ...]}
//
// total == 0 means the word does not exist (definitive). Any transport
// error, non-200 status, or undecodable body wraps ErrUnavailable so the
// caller can tell "not a word" from "could not check".
package dict

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultLookupTimeout = 4 * time.Second

// Config carries the knobs for the HTTP client.
type Config struct {
	BaseURL string        // e.g. https://opendict.example.com
	APIKey  string        // sent as X-Api-Key when non-empty
	Timeout time.Duration // per-request; defaults to 4s
}

// HTTPClient looks words up against a remote dictionary API.
type HTTPClient struct {
	base   string
	apiKey string
	hc     *http.Client
}

// NewHTTP builds a client from cfg. The base URL is used as-is apart from
// trailing-slash trimming; validation of reachability happens per lookup.
func NewHTTP(cfg Config) *HTTPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &HTTPClient{
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey: cfg.APIKey,
		hc:     &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Name() string { return "http" }

type searchEntry struct {
	Headword   string `json:"headword"`
	Pos        string `json:"pos"`
	Definition string `json:"definition"`
}

type searchResponse struct {
	Total int           `json:"total"`
	Items []searchEntry `json:"items"`
}

// Lookup queries the search endpoint for word.
func (c *HTTPClient) Lookup(ctx context.Context, word string) (Result, error) {
	word = strings.TrimSpace(word)
	u := c.base + "/api/search?q=" + url.QueryEscape(word)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Result{}, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	if body.Total <= 0 || len(body.Items) == 0 {
		return Result{Exists: false}, nil
	}
	first := body.Items[0]
	return Result{Exists: true, POS: first.Pos, Definition: first.Definition}, nil
}
