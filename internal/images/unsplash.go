// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package images finds stock photos for article sections using the
// Unsplash search API. Requests are rate limited to the account's hourly
// quota and results can be cached in Valkey.
package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"blogsmith/internal/apierr"
	"blogsmith/internal/models"
)

// DefaultRequestsPerMinute paces lookups for a production-tier key
// (5000 requests/hour, about 83 per minute) with headroom. Demo keys allow
// only 50 requests/hour in total.
const DefaultRequestsPerMinute = 50

// Cache stores lookup results between requests. *cache.Lookup satisfies it.
type Cache interface {
	Get(ctx context.Context, key string, v any) bool
	Set(ctx context.Context, key string, v any)
}

// Unsplash is an image finder backed by GET /search/photos.
type Unsplash struct {
	accessKey string
	baseURL   string
	client    *http.Client
	limiter   *rate.Limiter
	cache     Cache
}

// Option configures an Unsplash client.
type Option func(*Unsplash)

// WithRequestsPerMinute sets the client-side rate limit. Zero or less
// disables limiting.
func WithRequestsPerMinute(rpm int) Option {
	return func(u *Unsplash) {
		if rpm <= 0 {
			u.limiter = nil
			return
		}
		u.limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), rpm)
	}
}

// WithCache enables result caching.
func WithCache(c Cache) Option {
	return func(u *Unsplash) { u.cache = c }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(u *Unsplash) { u.client = c }
}

// NewUnsplash creates an Unsplash client. An empty baseURL uses the public API.
func NewUnsplash(accessKey, baseURL string, opts ...Option) *Unsplash {
	if baseURL == "" {
		baseURL = "https://api.unsplash.com"
	}
	u := &Unsplash{
		accessKey: accessKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: 15 * time.Second},
	}
	WithRequestsPerMinute(DefaultRequestsPerMinute)(u)
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Find returns the top landscape photo for query, or (nil, nil) when the
// search has no results.
func (u *Unsplash) Find(ctx context.Context, query string) (*models.Image, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	key := cacheKey(query)
	if u.cache != nil {
		var cached models.Image
		if u.cache.Get(ctx, key, &cached) {
			return &cached, nil
		}
	}

	if u.limiter != nil {
		if err := u.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("unsplash rate limit: %w", err)
		}
	}

	img, err := u.search(ctx, query)
	if err != nil {
		return nil, err
	}
	if img != nil && u.cache != nil {
		u.cache.Set(ctx, key, img)
	}
	return img, nil
}

func (u *Unsplash) search(ctx context.Context, query string) (*models.Image, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", "3")
	params.Set("orientation", "landscape")
	params.Set("content_filter", "high")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("unsplash request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+u.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unsplash http: %w", apierr.Transport("unsplash", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("unsplash read body: %w", apierr.Transport("unsplash", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apierr.Upstream("unsplash", resp.StatusCode, string(body))
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unsplash unmarshal: %w", err)
	}
	if len(result.Results) == 0 {
		return nil, nil
	}

	p := result.Results[0]
	alt := strings.TrimSpace(p.AltDescription)
	if alt == "" {
		alt = strings.TrimSpace(p.Description)
	}
	if alt == "" {
		alt = query
	}
	return &models.Image{
		ID:                   p.ID,
		URL:                  p.URLs.Regular,
		Alt:                  alt,
		PhotographerName:     p.User.Name,
		PhotographerUsername: p.User.Username,
		PhotographerProfile:  p.User.Links.HTML,
		Width:                p.Width,
		Height:               p.Height,
		Color:                p.Color,
	}, nil
}

func cacheKey(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

// --- Unsplash API types ---

type searchResponse struct {
	Total   int     `json:"total"`
	Results []photo `json:"results"`
}

type photo struct {
	ID             string `json:"id"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Color          string `json:"color"`
	Description    string `json:"description"`
	AltDescription string `json:"alt_description"`
	URLs           struct {
		Regular string `json:"regular"`
	} `json:"urls"`
	User struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Links    struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"user"`
}
