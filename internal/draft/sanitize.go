// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package draft

import "strings"

// Fallback text used when the generator omits required content.
const (
	FallbackHeading        = "Key Insight"
	FallbackSectionHeading = "Overview"
	FallbackFAQAnswer      = "Prioritize the most immediate actions outlined above, track results weekly, and review source data each month to keep your strategy aligned with the latest insights."
	genericConclusion      = "In summary, the evidence above details the primary opportunities and critical actions to pursue."
	secondParagraphSuffix  = " This perspective builds on the data above and connects the insight back to tangible actions."
	minFAQs                = 3
)

// Context carries the request inputs that fallback text is derived from.
type Context struct {
	PrimaryKeyword string
	AnswerPrompt   string
}

// FallbackParagraph is injected into sections that have no usable
// paragraphs.
func (c Context) FallbackParagraph() string {
	if p := strings.TrimSpace(c.AnswerPrompt); p != "" {
		return "Answering " + p + " with data-backed insights and actionable recommendations."
	}
	return "Exploring " + strings.TrimSpace(c.PrimaryKeyword) + " with data-backed insights and actionable recommendations."
}

// FallbackImagePrompt replaces a missing or blank section image prompt.
func (c Context) FallbackImagePrompt() string {
	subject := c.subject("topic")
	return "Editorial photo illustrating " + strings.ToLower(subject) +
		" with modern lighting, cinematic composition, and professional styling"
}

// FallbackFAQQuestion fills blank FAQ questions and padding entries.
func (c Context) FallbackFAQQuestion() string {
	return "What is the first step to act on " + c.subject("this topic") + "?"
}

func (c Context) subject(def string) string {
	if p := strings.TrimSpace(c.AnswerPrompt); p != "" {
		return p
	}
	if k := strings.TrimSpace(c.PrimaryKeyword); k != "" {
		return k
	}
	return def
}

// Sanitize backfills a parsed draft so that recoverable omissions do not
// fail validation. It mutates raw in place and returns it. Content that is
// already well formed is only trimmed.
func Sanitize(raw map[string]any, ctx Context) map[string]any {
	if raw == nil {
		raw = make(map[string]any)
	}

	if c, ok := raw["conclusion"].(string); !ok || strings.TrimSpace(c) == "" {
		raw["conclusion"] = fallbackConclusion(raw["tldr"])
	}

	paragraph := ctx.FallbackParagraph()
	imagePrompt := ctx.FallbackImagePrompt()

	sections := make([]any, 0)
	for _, entry := range asSlice(raw["sections"]) {
		section, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		sections = append(sections, sanitizeSection(section, paragraph, imagePrompt))
	}
	if len(sections) == 0 {
		sections = append(sections, sanitizeSection(map[string]any{
			"heading": FallbackSectionHeading,
		}, paragraph, imagePrompt))
	}
	raw["sections"] = sections

	question := ctx.FallbackFAQQuestion()
	faqs := make([]any, 0, minFAQs)
	for _, entry := range asSlice(raw["faqs"]) {
		faq, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		faq["question"] = trimmedOr(faq["question"], question)
		faq["answer"] = trimmedOr(faq["answer"], FallbackFAQAnswer)
		faqs = append(faqs, faq)
	}
	for len(faqs) < minFAQs {
		faqs = append(faqs, map[string]any{"question": question, "answer": FallbackFAQAnswer})
	}
	raw["faqs"] = faqs

	return raw
}

func fallbackConclusion(tldr any) string {
	if m, ok := tldr.(map[string]any); ok {
		if s, ok := m["summary"].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return "In summary, " + s
			}
		}
	}
	return genericConclusion
}

func sanitizeSection(section map[string]any, paragraph, imagePrompt string) map[string]any {
	section["heading"] = trimmedOr(section["heading"], FallbackHeading)

	paragraphs := make([]any, 0, 2)
	for _, p := range asSlice(section["paragraphs"]) {
		if s, ok := p.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				paragraphs = append(paragraphs, s)
			}
		}
	}
	if len(paragraphs) == 0 {
		paragraphs = append(paragraphs, paragraph)
	}
	if len(paragraphs) == 1 {
		paragraphs = append(paragraphs, paragraphs[0].(string)+secondParagraphSuffix)
	}
	section["paragraphs"] = paragraphs

	if list, ok := section["stats"].([]any); ok {
		stats := make([]any, 0, len(list))
		for _, entry := range list {
			if stat, ok := sanitizeStat(entry); ok {
				stats = append(stats, stat)
			}
		}
		if len(stats) > 0 {
			section["stats"] = stats
		} else {
			delete(section, "stats")
		}
	} else {
		delete(section, "stats")
	}

	section["imagePrompt"] = trimmedOr(section["imagePrompt"], imagePrompt)
	return section
}

// sanitizeStat keeps a stat only when label, value and sourceId are all
// non-blank strings.
func sanitizeStat(entry any) (map[string]any, bool) {
	stat, ok := entry.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, key := range []string{"label", "value", "sourceId"} {
		s, _ := stat[key].(string)
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, false
		}
		stat[key] = s
	}
	return stat, true
}

func trimmedOr(v any, fallback string) string {
	if s, ok := v.(string); ok {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return fallback
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}
