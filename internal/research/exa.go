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

// Exa searches with the Exa API (POST /search).
type Exa struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewExa creates an Exa client. An empty baseURL uses the public API.
func NewExa(apiKey, baseURL string) *Exa {
	if baseURL == "" {
		baseURL = "https://api.exa.ai"
	}
	return &Exa{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

var _ Searcher = (*Exa)(nil)

func (c *Exa) Name() string { return "exa" }

// Search runs an "auto" search and asks for text, summary and highlights.
func (c *Exa) Search(ctx context.Context, q Query) ([]Document, error) {
	numResults := q.NumResults
	if numResults <= 0 {
		numResults = 10
	}
	body := exaRequest{
		Query:          q.Text,
		NumResults:     numResults,
		Type:           "auto",
		UserLocation:   q.CountryCode,
		IncludeDomains: q.IncludeDomains,
		ExcludeDomains: q.ExcludeDomains,
		Text:           true,
		Summary:        true,
		Highlights:     true,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("exa marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("exa request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exa http: %w", apierr.Transport("exa", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("exa read body: %w", apierr.Transport("exa", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apierr.Upstream("exa", resp.StatusCode, string(respBody))
	}

	var result exaResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("exa unmarshal: %w", err)
	}

	docs := make([]Document, 0, len(result.Results))
	for _, r := range result.Results {
		docs = append(docs, Document{
			Title:         r.Title,
			URL:           r.URL,
			Author:        r.Author,
			PublishedDate: r.PublishedDate,
			Text:          r.Text,
			Summary:       r.Summary,
			Highlights:    r.Highlights,
		})
	}
	return docs, nil
}

// --- Exa API types ---

type exaRequest struct {
	Query          string   `json:"query"`
	NumResults     int      `json:"numResults"`
	Type           string   `json:"type"`
	UserLocation   string   `json:"userLocation,omitempty"`
	IncludeDomains []string `json:"includeDomains,omitempty"`
	ExcludeDomains []string `json:"excludeDomains,omitempty"`
	Text           bool     `json:"text"`
	Summary        bool     `json:"summary"`
	Highlights     bool     `json:"highlights"`
}

type exaResult struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Author        string   `json:"author"`
	PublishedDate string   `json:"publishedDate"`
	Text          string   `json:"text"`
	Summary       string   `json:"summary"`
	Highlights    []string `json:"highlights"`
}

type exaResponse struct {
	RequestID string      `json:"requestId"`
	Results   []exaResult `json:"results"`
}
