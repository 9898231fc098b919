// Package search looks up web results through the DuckDuckGo instant answer
// API. The endpoint is public and unauthenticated, so callers must treat
// every failure as recoverable: Lookup returns an empty slice (plus the
// error) and the executor falls back to opening a browser search page.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.duckduckgo.com"
	maxResults     = 5
)

// Result is one title/link pair from the instant answer response.
type Result struct {
	Title string
	Link  string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(baseURL string, log *zap.Logger) *Client {
	c := NewClient(log)
	c.baseURL = baseURL
	return c
}

type instantAnswer struct {
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

// Lookup returns up to 5 related-topic results for the query. An empty slice
// with a nil error means the API answered but had nothing useful.
func (c *Client) Lookup(ctx context.Context, query string) ([]Result, error) {
	endpoint := fmt.Sprintf("%s/?q=%s&format=json&no_html=1&skip_disambig=1",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("web search failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("web search non-200", zap.String("query", query), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("search API returned %d", resp.StatusCode)
	}

	var answer instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	topics := answer.RelatedTopics
	if len(topics) > maxResults {
		topics = topics[:maxResults]
	}
	results := make([]Result, 0, len(topics))
	for _, topic := range topics {
		if topic.Text == "" || topic.FirstURL == "" {
			continue
		}
		results = append(results, Result{Title: topic.Text, Link: topic.FirstURL})
	}
	return results, nil
}
