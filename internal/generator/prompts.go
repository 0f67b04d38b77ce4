// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"fmt"
	"strings"

	"blogsmith/internal/models"
)

// Defaults applied to the SEO descriptor when the request leaves them blank.
const (
	DefaultTone     = "data-driven and statistics-backed"
	DefaultLanguage = "English"
)

var articleSystemPrompt = strings.Join([]string{
	"You are an expert SEO strategist and editorial writer.",
	"Craft geo-targeted, conversion-focused blog content with impeccable structure.",
	"Respect the provided JSON schema exactly and never include prose outside JSON.",
	"Embed hyperlinks using the provided sources by inserting markers in the format <<source-id|Anchor Text>> within paragraphs.",
	"In each section, create at least two paragraphs and reference at least one provided source. Highlight any statistics inside the stats array.",
	"Maintain a data-driven, statistics-rich voice throughout.",
	"Integrate quantitative evidence directly inside body paragraphs; do not produce standalone key-stat or keyword callout sections.",
}, " ")

const articleSchema = `
Return JSON with the following shape:
{
  "title": string,
  "intro": string,
  "tldr": {
    "summary": string,
    "bulletPoints": string[]
  },
  "sections": [
    {
      "heading": string,
      "paragraphs": string[],
      "stats": [
        { "label": string, "value": string, "sourceId": string }
      ],
      "callToAction": string?,
      "imagePrompt": string,
      "focusKeywords": string[]
    }
  ],
  "faqs": [
    { "question": string, "answer": string }
  ],
  "conclusion": string,
  "meta": {
    "seoTitle": string,
    "seoDescription": string,
    "keywords": string[]
  }
}
`

const styleCues = `Style cues (structure only, do not reuse any wording):
- Open with approachable, empathetic paragraphs that acknowledge the reader's problem before transitioning into clarity.
- Let each H2 pose or answer a specific question, mirroring educational blog flow.
- Explain concepts plainly, define jargon in-line, and interleave statistics naturally within paragraphs rather than in separate boxes.
- Use short declarative sentences mixed with reassuring guidance, similar to an experienced SEO coach.
- Maintain smooth transitions so the article reads like one continuous document ready for publishing.`

// researchContext renders one line per source, keyed by source ID so the
// model can cite it in markers.
func researchContext(sources []models.ResearchSource) string {
	lines := make([]string, 0, len(sources))
	for _, s := range sources {
		line := fmt.Sprintf("%s: %s — %s — %s.", s.ID, s.Title, s.URL, s.Summary)
		if len(s.Highlights) > 0 {
			line += " Key quotes: " + strings.Join(s.Highlights, " | ") + "."
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// seoDescriptor lists the request parameters, one per line, skipping
// absent optional ones.
func seoDescriptor(in Input) string {
	tone := in.Tone
	if tone == "" {
		tone = DefaultTone
	}
	language := in.Language
	if language == "" {
		language = DefaultLanguage
	}

	lines := []string{"Primary keyword: " + in.PrimaryKeyword}
	if in.SecondaryKeyword != "" {
		lines = append(lines, "Secondary keyword: "+in.SecondaryKeyword)
	}
	lines = append(lines, "Focus question: "+in.AnswerPrompt)
	if in.Location != "" {
		lines = append(lines, "Geo focus: "+in.Location)
	}
	if in.Audience != "" {
		lines = append(lines, "Audience: "+in.Audience)
	}
	lines = append(lines, "Preferred tone: "+tone)
	if in.WordCountGoal > 0 {
		lines = append(lines, fmt.Sprintf("Target word count: ~%d", in.WordCountGoal))
	}
	lines = append(lines, "Language: "+language)
	if in.Brief != "" {
		lines = append(lines, "Strategic brief: "+in.Brief)
	}
	return strings.Join(lines, "\n")
}

// articleUserPrompt builds the user message: schema, request descriptor,
// sources and writing instructions.
func articleUserPrompt(in Input, sources []models.ResearchSource) string {
	var b strings.Builder
	b.WriteString(articleSchema)
	b.WriteString("\n\n")
	b.WriteString(seoDescriptor(in))
	b.WriteString("\n\nSources:\n")
	b.WriteString(researchContext(sources))
	b.WriteString("\n\nInstructions:\n")
	b.WriteString("- Use the sources responsibly; do not invent URLs or stats.\n")
	b.WriteString("- When referencing a source, insert <<source-id|Anchor Text>> where the anchor text should be linked.\n")
	b.WriteString("- Keep paragraphs concise (120-180 words) and skimmable.\n")
	b.WriteString("- Provide \"imagePrompt\" values that describe a scene suitable for Unsplash (avoid mentioning brand names).\n")
	b.WriteString("- The \"stats\" array should capture numeric insights with their sourceId.\n")
	b.WriteString("- Integrate statistics and keyword mentions naturally within paragraphs; do not output dedicated \"Key stats\" or \"Focus keywords\" sections.\n")
	b.WriteString("- Maintain a professional yet approachable tone aligned with the audience.\n")
	fmt.Fprintf(&b, "- Frame the narrative to directly answer the long-tail question: %s.\n", in.AnswerPrompt)
	if in.Brief != "" {
		fmt.Fprintf(&b, "- Integrate the strategic brief requirements: %s\n", in.Brief)
	}
	b.WriteString("\n")
	b.WriteString(styleCues)
	b.WriteString("\n\nOnly output valid JSON.\n")
	return b.String()
}
