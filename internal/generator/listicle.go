// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"blogsmith/internal/ai"
	"blogsmith/internal/apierr"
	"blogsmith/internal/draft"
	"blogsmith/internal/models"
	"blogsmith/internal/research"
)

// Listicle settings.
const (
	listicleSearchResults  = 15
	listicleSources        = 12
	listicleSummaryRunes   = 220
	listicleMaxTokens      = 2048
	listicleTemperature    = 0.5
	listiclePromptCount    = 5
	minListicleTopic       = 5
	minListiclePrompt      = 10
	minListiclePlatform    = 2
	minEditorialDirection  = 10
	defaultListicleRanking = 10
)

// ListicleRequest asks for comparative listicle concepts on a topic.
type ListicleRequest struct {
	Topic     string   `json:"topic"`
	Prompts   []string `json:"prompts"`
	Platforms []string `json:"platforms"`
}

// Normalize trims the request and checks its limits.
func (r ListicleRequest) Normalize() (ListicleRequest, error) {
	r.Topic = strings.TrimSpace(r.Topic)
	if utf8.RuneCountInString(r.Topic) < minListicleTopic {
		return r, apierr.Invalid("topic must be at least %d characters", minListicleTopic)
	}

	if len(r.Prompts) != listiclePromptCount {
		return r, apierr.Invalid("provide exactly %d prompts", listiclePromptCount)
	}
	prompts := make([]string, len(r.Prompts))
	for i, p := range r.Prompts {
		prompts[i] = strings.TrimSpace(p)
		if utf8.RuneCountInString(prompts[i]) < minListiclePrompt {
			return r, apierr.Invalid("prompts[%d] must be at least %d characters", i, minListiclePrompt)
		}
	}
	r.Prompts = prompts

	if len(r.Platforms) == 0 {
		return r, apierr.Invalid("select at least one platform")
	}
	platforms := make([]string, len(r.Platforms))
	for i, p := range r.Platforms {
		platforms[i] = strings.TrimSpace(p)
		if utf8.RuneCountInString(platforms[i]) < minListiclePlatform {
			return r, apierr.Invalid("platforms[%d] must be at least %d characters", i, minListiclePlatform)
		}
	}
	r.Platforms = platforms
	return r, nil
}

// ListicleArticleRequest turns one chosen concept into a full article.
type ListicleArticleRequest struct {
	ListicleRequest
	Suggestion         models.ListicleSuggestion `json:"suggestion"`
	EditorialDirection string                    `json:"editorialDirection,omitempty"`
}

const listicleSystemPrompt = "You are a senior content strategist and market researcher. " +
	"Generate comparative listicle concepts that synthesize competitive intelligence and SEO opportunities. " +
	"Always respond with strict JSON matching the provided schema. " +
	"Use research insights to highlight competitors, market gaps, and differentiators."

const listicleSchema = `Return JSON with this shape:
{
  "suggestions": [
    {
      "title": string,
      "subtitle": string,
      "summary": string,
      "platformFocus": string,
      "keyTakeaways": string[],
      "competitorHighlights": string[]
    }
  ],
  "editorialDirection": string?
}`

const listicleRequirements = `Requirements:
- Combine the five prompts into one coherent comparative listicle approach.
- Produce 4-6 unique title concepts that mirror competitive roundup headlines.
- Each title must feel data-backed and feature a year or metric when appropriate.
- The subtitle should be a short positioning phrase (for example, "Buyer's Guide" or "Market Outlook").
- Summaries should outline how the article would break down the market and call out the angle.
- Platform focus must explicitly reference one or more of the requested platforms.
- keyTakeaways should note intent, primary CTA, and SEO opportunities in short phrases.
- competitorHighlights should cite two or more notable competitors using the format "[source-number] insight".
- Keep language crisp, persuasive, and ready for executive review.
- Do not invent URLs or competitors beyond what the research provides.`

// GenerateListicleConcepts researches the topic and asks the text
// generator for 3 to 7 comparative listicle concepts.
func (g *Generator) GenerateListicleConcepts(ctx context.Context, req ListicleRequest) (*models.ListicleConcepts, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if err := g.moderate(ctx, strings.Join(append([]string{req.Topic}, req.Prompts...), "\n")); err != nil {
		return nil, err
	}

	query := strings.Join(append([]string{req.Topic}, req.Prompts...), " ")
	sources, err := g.research(ctx, research.Query{Text: query, NumResults: listicleSearchResults}, listicleSources)
	if err != nil {
		return nil, err
	}

	raw, err := g.text.Generate(ctx, ai.Prompt{
		System:      listicleSystemPrompt,
		User:        listicleSchema + "\n\n" + listicleUserPrompt(req, sources),
		MaxTokens:   listicleMaxTokens,
		Temperature: listicleTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("listicle concepts: %w", err)
	}

	concepts, err := draft.DecodeListicle(raw)
	if err != nil {
		return nil, fmt.Errorf("listicle decode: %w", err)
	}
	slog.Info("listicle concepts generated", "topic", req.Topic, "suggestions", len(concepts.Suggestions))
	return concepts, nil
}

func listicleUserPrompt(req ListicleRequest, sources []models.ResearchSource) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Platforms to optimize for: %s\n", strings.Join(req.Platforms, ", "))
	b.WriteString("Prompts to answer:\n")
	b.WriteString(numbered(req.Prompts))
	b.WriteString("\n\nResearch notes (use these sources for evidence and comparison, cite by number in competitorHighlights):\n")

	notes := make([]string, 0, len(sources))
	for i, s := range sources {
		summary := s.Summary
		if utf8.RuneCountInString(summary) > listicleSummaryRunes {
			summary = string([]rune(summary)[:listicleSummaryRunes])
		}
		note := fmt.Sprintf("[%d] %s — %s\n%s", i+1, s.Title, s.URL, summary)
		if len(s.Highlights) > 0 {
			note += "\nHighlights: " + strings.Join(s.Highlights, " | ")
		}
		notes = append(notes, strings.TrimSpace(note))
	}
	b.WriteString(strings.Join(notes, "\n\n"))
	b.WriteString("\n\n")
	b.WriteString(listicleRequirements)
	return b.String()
}

func numbered(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(lines, "\n")
}

var rankPattern = regexp.MustCompile(`(?i)(?:Top|Best)\s+(\d{1,2})`)

// RankTarget reads the ranking length from a "Top N" or "Best N" title.
func RankTarget(title string) int {
	m := rankPattern.FindStringSubmatch(title)
	if m == nil {
		return defaultListicleRanking
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n == 0 {
		return defaultListicleRanking
	}
	return n
}

// ListicleInput builds the article request for a chosen concept. year is
// the buyer year named in the answer prompt.
func ListicleInput(req ListicleArticleRequest, year int) Input {
	platforms := strings.Join(req.Platforms, ", ")
	rank := RankTarget(req.Suggestion.Title)

	brief := []string{
		"Prompts to cover in depth:\n" + numbered(req.Prompts),
		fmt.Sprintf("Platform optimization guidance must reference: %s. Describe how the narrative ties back to each platform (distribution strategy, prompt engineering angles, repurposing tactics).", platforms),
		fmt.Sprintf("Ensure the article explicitly ranks competitors in a numbered list from 1 to %d, providing quantitative evidence and positioning for each vendor.", rank),
		"Incorporate these competitor insights verbatim where relevant to support your ranking decisions:\n" + strings.Join(req.Suggestion.CompetitorHighlights, "\n"),
	}
	if s := strings.TrimSpace(req.Suggestion.Summary); s != "" {
		brief = append(brief, "Angle summary from concept: "+s)
	}
	if d := strings.TrimSpace(req.EditorialDirection); d != "" {
		brief = append(brief, "Editorial direction: "+d)
	}
	brief = append(brief, "Structure requirements: include TL;DR, Table of Contents, dedicated sections for each ranked competitor, Key Features/Tips section, FAQ, and Conclusion. Maintain a data-backed analyst tone and supply actionable buyer guidance.")

	return Input{
		PrimaryKeyword:   strings.TrimSpace(req.Suggestion.Title),
		SecondaryKeyword: req.Topic,
		AnswerPrompt: fmt.Sprintf("Produce a %d-entry comparative listicle titled %q that evaluates the leading %s for %d buyers.",
			rank, strings.TrimSpace(req.Suggestion.Title), req.Topic, year),
		Tone:     "Analyst-grade, statistics-backed narrative optimized for " + platforms,
		Language: DefaultLanguage,
		Brief:    strings.Join(brief, "\n\n"),
	}
}

// GenerateListicleArticle runs the article pipeline for a chosen concept.
func (g *Generator) GenerateListicleArticle(ctx context.Context, req ListicleArticleRequest) (*models.Article, error) {
	base, err := req.ListicleRequest.Normalize()
	if err != nil {
		return nil, err
	}
	req.ListicleRequest = base

	if err := draft.ValidateSuggestion(req.Suggestion); err != nil {
		return nil, apierr.Invalid("%v", err)
	}
	if d := strings.TrimSpace(req.EditorialDirection); d != "" && utf8.RuneCountInString(d) < minEditorialDirection {
		return nil, apierr.Invalid("editorialDirection must be at least %d characters", minEditorialDirection)
	}

	return g.Generate(ctx, ListicleInput(req, g.now().Year()))
}
