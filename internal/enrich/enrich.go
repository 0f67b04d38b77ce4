// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package enrich turns validated draft sections into enriched sections with
// stable anchors and a stock photo each.
package enrich

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"blogsmith/internal/metrics"
	"blogsmith/internal/models"
	"blogsmith/internal/slug"
)

// DefaultConcurrency bounds simultaneous image lookups per article.
const DefaultConcurrency = 4

// ImageFinder looks up one image for a text query. A nil image with a nil
// error means nothing matched.
type ImageFinder interface {
	Find(ctx context.Context, query string) (*models.Image, error)
}

// Enricher attaches anchors and images to sections.
type Enricher struct {
	images      ImageFinder
	concurrency int
	timeout     time.Duration
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithConcurrency sets the maximum number of concurrent image lookups.
func WithConcurrency(n int) Option {
	return func(e *Enricher) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithLookupTimeout caps each image lookup. Zero means no per-lookup cap.
func WithLookupTimeout(d time.Duration) Option {
	return func(e *Enricher) { e.timeout = d }
}

// New creates an Enricher. A nil finder disables image lookups.
func New(images ImageFinder, opts ...Option) *Enricher {
	e := &Enricher{images: images, concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ImageQuery joins the non-blank parts of an image search query.
func ImageQuery(imagePrompt, keyword, location string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{imagePrompt, keyword, location} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Enrich returns one enriched section per input section, in input order.
// Image lookups run concurrently; a failed lookup is logged and leaves that
// section without an image. It never fails as a whole.
func (e *Enricher) Enrich(ctx context.Context, sections []models.Section, keyword, location string) []models.EnrichedSection {
	out := make([]models.EnrichedSection, len(sections))
	anchors := slug.NewSet()
	for i, s := range sections {
		anchor := anchors.Unique(s.Heading)
		out[i] = models.EnrichedSection{
			ID:            anchor,
			Anchor:        anchor,
			Heading:       s.Heading,
			Paragraphs:    s.Paragraphs,
			Stats:         s.Stats,
			CallToAction:  s.CallToAction,
			FocusKeywords: s.FocusKeywords,
			ImageQuery:    ImageQuery(s.ImagePrompt, keyword, location),
		}
	}

	if e.images == nil {
		return out
	}

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i := range out {
		// Each task writes only out[i].
		g.Go(func() error {
			out[i].Image = e.lookup(ctx, out[i].Anchor, out[i].ImageQuery)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (e *Enricher) lookup(ctx context.Context, anchor, query string) *models.Image {
	if query == "" || ctx.Err() != nil {
		metrics.ImageLookups.WithLabelValues("skipped").Inc()
		return nil
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	img, err := e.images.Find(ctx, query)
	if err != nil {
		metrics.ImageLookups.WithLabelValues("error").Inc()
		slog.Warn("image lookup failed", "section", anchor, "query", query, "error", err)
		return nil
	}
	if img == nil {
		metrics.ImageLookups.WithLabelValues("miss").Inc()
		return nil
	}
	metrics.ImageLookups.WithLabelValues("hit").Inc()
	return img
}
