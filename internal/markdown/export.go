// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"fmt"
	"strings"

	"blogsmith/internal/citation"
	"blogsmith/internal/models"
)

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
)

// Escape backslash-escapes characters that would otherwise start Markdown
// emphasis, links, code or raw HTML.
func Escape(s string) string {
	return escaper.Replace(s)
}

// FromArticle renders a as a Markdown document. Citation markers become
// inline links; unresolved markers keep their anchor text.
func FromArticle(a *models.Article) string {
	cite := citation.NewRenderer(a.Sources)
	prose := func(s string) string {
		var b strings.Builder
		for _, seg := range cite.Segments(s) {
			if seg.IsLink() {
				fmt.Fprintf(&b, "[%s](%s)", Escape(seg.Text), seg.Href)
				continue
			}
			b.WriteString(Escape(seg.Text))
		}
		return b.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", prose(a.Title))
	fmt.Fprintf(&b, "%s\n\n", prose(a.Intro))

	b.WriteString("## TL;DR\n\n")
	fmt.Fprintf(&b, "%s\n\n", prose(a.TLDR.Summary))
	for _, bullet := range a.TLDR.BulletPoints {
		fmt.Fprintf(&b, "- %s\n", prose(bullet))
	}
	b.WriteString("\n")

	if len(a.Sections) > 0 {
		b.WriteString("## Table of Contents\n\n")
		for i, s := range a.Sections {
			fmt.Fprintf(&b, "%d. [%s](#%s)\n", i+1, Escape(citation.Strip(s.Heading)), s.Anchor)
		}
		b.WriteString("\n")
	}

	for _, s := range a.Sections {
		fmt.Fprintf(&b, "## %s\n\n", prose(s.Heading))
		if s.HasImage() {
			fmt.Fprintf(&b, "![%s](%s)\n\n", Escape(s.Image.Alt), s.Image.URL)
			if s.Image.PhotographerName != "" {
				fmt.Fprintf(&b, "*Photo by %s on Unsplash*\n\n", Escape(s.Image.PhotographerName))
			}
		}
		for _, p := range s.Paragraphs {
			fmt.Fprintf(&b, "%s\n\n", prose(p))
		}
		for _, st := range s.Stats {
			line := fmt.Sprintf("- **%s**: %s", prose(st.Label), prose(st.Value))
			if src, ok := a.SourceByID(st.SourceID); ok && src.URL != "" {
				line += fmt.Sprintf(" ([%s](%s))", Escape(src.Title), src.URL)
			}
			b.WriteString(line + "\n")
		}
		if len(s.Stats) > 0 {
			b.WriteString("\n")
		}
		if s.CallToAction != "" {
			fmt.Fprintf(&b, "> %s\n\n", prose(s.CallToAction))
		}
	}

	b.WriteString("## Conclusion\n\n")
	fmt.Fprintf(&b, "%s\n\n", prose(a.Conclusion))

	if len(a.FAQs) > 0 {
		b.WriteString("## Frequently Asked Questions\n\n")
		for _, f := range a.FAQs {
			fmt.Fprintf(&b, "### %s\n\n%s\n\n", prose(f.Question), prose(f.Answer))
		}
	}

	if len(a.Sources) > 0 {
		b.WriteString("## Sources\n\n")
		for i, src := range a.Sources {
			fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, Escape(src.Title), src.URL)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
