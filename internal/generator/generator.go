// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generator runs the article pipeline: research, one text
// generation call, draft recovery and validation, section enrichment and
// content filtering.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"blogsmith/internal/ai"
	"blogsmith/internal/apierr"
	"blogsmith/internal/draft"
	"blogsmith/internal/enrich"
	"blogsmith/internal/filter"
	"blogsmith/internal/metrics"
	"blogsmith/internal/models"
	"blogsmith/internal/research"
)

// ErrNoResearch is returned when the research step yields no documents.
// The text generator is not called in that case.
var ErrNoResearch = apierr.ErrNoResearch

// Article generation settings.
const (
	articleResearchResults = 12
	articleMaxTokens       = 4096
	articleTemperature     = 0.6
)

// TextGenerator produces raw model output for a prompt. *ai.Registry
// satisfies it.
type TextGenerator interface {
	Generate(ctx context.Context, prompt ai.Prompt) (string, error)
}

// Moderator screens user-supplied prompts. *ai.Registry satisfies it.
type Moderator interface {
	CheckPrompt(ctx context.Context, text string) (*ai.ModerationResult, error)
}

// Generator wires the collaborators together. It holds no per-request
// state and is safe for concurrent use.
type Generator struct {
	text      TextGenerator
	searcher  research.Searcher
	enricher  *enrich.Enricher
	filter    *filter.Filter
	moderator Moderator
	timeout   time.Duration
	now       func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithModerator screens the answer prompt before any collaborator call.
func WithModerator(m Moderator) Option {
	return func(g *Generator) { g.moderator = m }
}

// WithTimeout caps a whole generation run. Zero means no cap beyond the
// caller's context.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) { g.timeout = d }
}

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a Generator. A nil enricher attaches anchors without images
// and a nil filter uses the default phrase list.
func New(text TextGenerator, searcher research.Searcher, enricher *enrich.Enricher, f *filter.Filter, opts ...Option) *Generator {
	if enricher == nil {
		enricher = enrich.New(nil)
	}
	if f == nil {
		f = filter.New(filter.DefaultPhrases)
	}
	g := &Generator{
		text:     text,
		searcher: searcher,
		enricher: enricher,
		filter:   f,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces one article. Errors are classified by apierr.Kind.
func (g *Generator) Generate(ctx context.Context, in Input) (*models.Article, error) {
	start := time.Now()
	article, err := g.generate(ctx, in)

	outcome := "success"
	if err != nil {
		outcome = apierr.Kind(err)
	}
	metrics.Generations.WithLabelValues(outcome).Inc()
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		slog.Warn("article generation failed",
			"keyword", in.PrimaryKeyword, "outcome", outcome, "error", err)
		return nil, err
	}
	slog.Info("article generated",
		"id", article.ID, "keyword", in.PrimaryKeyword,
		"sections", len(article.Sections), "sources", len(article.Sources),
		"duration", time.Since(start))
	return article, nil
}

func (g *Generator) generate(ctx context.Context, in Input) (*models.Article, error) {
	in, err := in.Normalize()
	if err != nil {
		return nil, err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if err := g.moderate(ctx, in.AnswerPrompt); err != nil {
		return nil, err
	}

	sources, err := g.research(ctx, research.Query{
		Text:        in.ResearchQuery(),
		NumResults:  articleResearchResults,
		CountryCode: in.CountryCode,
	}, articleResearchResults)
	if err != nil {
		return nil, err
	}

	raw, err := g.text.Generate(ctx, ai.Prompt{
		System:      articleSystemPrompt,
		User:        articleUserPrompt(in, sources),
		MaxTokens:   articleMaxTokens,
		Temperature: articleTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generator draft: %w", err)
	}

	d, err := draft.Decode(raw, draft.Context{
		PrimaryKeyword: in.PrimaryKeyword,
		AnswerPrompt:   in.AnswerPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("generator decode: %w", err)
	}

	sections := g.enricher.Enrich(ctx, d.Sections, in.PrimaryKeyword, in.Location)
	kept, dropped := g.filter.Apply(sections)
	if dropped > 0 {
		metrics.SectionsFiltered.Add(float64(dropped))
		slog.Info("sections filtered", "dropped", dropped, "kept", len(kept))
	}

	return &models.Article{
		ID:         uuid.New(),
		Title:      d.Title,
		Intro:      d.Intro,
		TLDR:       d.TLDR,
		Sections:   kept,
		FAQs:       d.FAQs,
		Conclusion: d.Conclusion,
		Meta:       d.Meta,
		Sources:    sources,
		CreatedAt:  g.now().UTC(),
	}, nil
}

// research runs one search and converts the hits into cited sources.
func (g *Generator) research(ctx context.Context, q research.Query, limit int) ([]models.ResearchSource, error) {
	docs, err := g.searcher.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("generator research: %w", err)
	}
	sources := research.Sources(docs, limit)
	if len(sources) == 0 {
		return nil, ErrNoResearch
	}
	slog.Info("research complete", "provider", g.searcher.Name(), "sources", len(sources))
	return sources, nil
}

func (g *Generator) moderate(ctx context.Context, text string) error {
	if g.moderator == nil {
		return nil
	}
	result, err := g.moderator.CheckPrompt(ctx, text)
	if err != nil {
		// Moderation is advisory: an outage must not block generation.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		slog.Warn("prompt moderation unavailable", "error", err)
		return nil
	}
	if !result.Safe {
		return apierr.Invalid("prompt flagged by moderation: %s", strings.Join(result.Categories, ", "))
	}
	return nil
}
