// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package research defines the web-research collaborator and its Exa and
// Tavily implementations.
package research

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"blogsmith/internal/models"
)

// Searcher runs one web search.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]Document, error)
	Name() string
}

// Query is a provider-neutral search request.
type Query struct {
	Text           string
	NumResults     int
	CountryCode    string // ISO 3166-1 alpha-2, optional
	IncludeDomains []string
	ExcludeDomains []string
}

// Document is one search hit.
type Document struct {
	Title         string
	URL           string
	Author        string
	PublishedDate string
	Text          string
	Summary       string
	Highlights    []string
}

// summaryFallbackRunes caps the text excerpt used when a hit has no summary.
const summaryFallbackRunes = 280

// Sources converts search hits into research sources with IDs source-1..N,
// keeping at most limit documents (all when limit <= 0).
func Sources(docs []Document, limit int) []models.ResearchSource {
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	out := make([]models.ResearchSource, 0, len(docs))
	for i, d := range docs {
		summary := strings.TrimSpace(d.Summary)
		if summary == "" {
			summary = truncateRunes(strings.TrimSpace(d.Text), summaryFallbackRunes)
		}
		out = append(out, models.ResearchSource{
			ID:            "source-" + strconv.Itoa(i+1),
			Title:         d.Title,
			URL:           d.URL,
			Summary:       summary,
			Author:        d.Author,
			PublishedDate: d.PublishedDate,
			Highlights:    d.Highlights,
		})
	}
	return out
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
