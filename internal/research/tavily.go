// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"blogsmith/internal/apierr"
)

// Tavily searches with the Tavily API (POST /search).
type Tavily struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewTavily creates a Tavily client. An empty baseURL uses the public API.
func NewTavily(apiKey, baseURL string) *Tavily {
	if baseURL == "" {
		baseURL = "https://api.tavily.com"
	}
	return &Tavily{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Searcher = (*Tavily)(nil)

func (c *Tavily) Name() string { return "tavily" }

// Search runs an advanced general search. Tavily has no per-hit summary, so
// the content snippet fills Summary and the raw page text fills Text.
// CountryCode is not forwarded.
func (c *Tavily) Search(ctx context.Context, q Query) ([]Document, error) {
	maxResults := q.NumResults
	if maxResults <= 0 {
		maxResults = 5
	}
	body := tavilyRequest{
		Query:             q.Text,
		SearchDepth:       "advanced",
		Topic:             "general",
		MaxResults:        maxResults,
		IncludeRawContent: true,
		IncludeDomains:    q.IncludeDomains,
		ExcludeDomains:    q.ExcludeDomains,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("tavily marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("tavily request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily http: %w", apierr.Transport("tavily", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tavily read body: %w", apierr.Transport("tavily", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apierr.Upstream("tavily", resp.StatusCode, string(respBody))
	}

	var result tavilyResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("tavily unmarshal: %w", err)
	}

	docs := make([]Document, 0, len(result.Results))
	for _, r := range result.Results {
		docs = append(docs, Document{
			Title:         r.Title,
			URL:           r.URL,
			PublishedDate: r.PublishedDate,
			Text:          r.RawContent,
			Summary:       r.Content,
		})
	}
	return docs, nil
}

// --- Tavily API types ---

type tavilyRequest struct {
	Query             string   `json:"query"`
	SearchDepth       string   `json:"search_depth,omitempty"`
	Topic             string   `json:"topic,omitempty"`
	MaxResults        int      `json:"max_results,omitempty"`
	IncludeRawContent bool     `json:"include_raw_content,omitempty"`
	IncludeDomains    []string `json:"include_domains,omitempty"`
	ExcludeDomains    []string `json:"exclude_domains,omitempty"`
}

type tavilyResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	RawContent    string  `json:"raw_content"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date"`
}

type tavilyResponse struct {
	Query   string         `json:"query"`
	Results []tavilyResult `json:"results"`
}
