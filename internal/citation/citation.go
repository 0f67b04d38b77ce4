// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package citation renders <<sourceId|anchor text>> markers embedded in
// generated prose. A single scan (Parse) backs both output modes: plain
// segments for API consumers and escaped HTML for documents.
package citation

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	"blogsmith/internal/models"
)

// markerPattern matches <<sourceId|anchor text>>.
var markerPattern = regexp.MustCompile(`<<([^|>]+)\|([^>]+)>>`)

// Token is one piece of scanned text: either literal text or a marker.
type Token struct {
	Text     string
	SourceID string
	Marker   bool
}

// Segment is one piece of rendered prose. A non-empty Href makes it a link.
type Segment struct {
	Text string `json:"text"`
	Href string `json:"href,omitempty"`
}

// IsLink reports whether the segment links to a source.
func (s Segment) IsLink() bool { return s.Href != "" }

// Parse splits text into literal and marker tokens. For marker tokens Text
// is the trimmed anchor text.
func Parse(text string) []Token {
	if text == "" {
		return nil
	}
	matches := markerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []Token{{Text: text}}
	}

	tokens := make([]Token, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			tokens = append(tokens, Token{Text: text[last:m[0]]})
		}
		tokens = append(tokens, Token{
			Marker:   true,
			SourceID: strings.TrimSpace(text[m[2]:m[3]]),
			Text:     strings.TrimSpace(text[m[4]:m[5]]),
		})
		last = m[1]
	}
	if last < len(text) {
		tokens = append(tokens, Token{Text: text[last:]})
	}
	return tokens
}

// Escape is the one escaping primitive used for every piece of text the
// package emits as HTML.
func Escape(s string) string {
	return html.EscapeString(s)
}

// Renderer resolves markers against a fixed set of research sources.
type Renderer struct {
	sources map[string]models.ResearchSource
}

// NewRenderer indexes sources by ID. Later duplicates win.
func NewRenderer(sources []models.ResearchSource) *Renderer {
	m := make(map[string]models.ResearchSource, len(sources))
	for _, s := range sources {
		m[s.ID] = s
	}
	return &Renderer{sources: m}
}

// resolve returns the link target for a marker, or "" when the source is
// unknown or its URL is not a web link.
func (r *Renderer) resolve(id string) (models.ResearchSource, string) {
	src, ok := r.sources[id]
	if !ok {
		return src, ""
	}
	href := strings.TrimSpace(src.URL)
	u, err := url.Parse(href)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return src, ""
	}
	return src, href
}

// Segments renders text as plain segments. Adjacent plain pieces are merged,
// so text without resolvable markers yields a single segment.
func (r *Renderer) Segments(text string) []Segment {
	var out []Segment
	appendPlain := func(s string) {
		if s == "" {
			return
		}
		if n := len(out); n > 0 && !out[n-1].IsLink() {
			out[n-1].Text += s
			return
		}
		out = append(out, Segment{Text: s})
	}

	for _, tok := range Parse(text) {
		if !tok.Marker {
			appendPlain(tok.Text)
			continue
		}
		src, href := r.resolve(tok.SourceID)
		anchor := tok.Text
		if anchor == "" {
			anchor = src.Title
		}
		if href == "" || anchor == "" {
			appendPlain(anchor)
			continue
		}
		out = append(out, Segment{Text: anchor, Href: href})
	}
	return out
}

// HTML renders text as an HTML fragment. Literal text is escaped exactly
// once; links open in a new tab.
func (r *Renderer) HTML(text string) string {
	var b strings.Builder
	for _, seg := range r.Segments(text) {
		if !seg.IsLink() {
			b.WriteString(Escape(seg.Text))
			continue
		}
		b.WriteString(`<a href="`)
		b.WriteString(Escape(seg.Href))
		b.WriteString(`" target="_blank" rel="noopener noreferrer">`)
		b.WriteString(Escape(seg.Text))
		b.WriteString(`</a>`)
	}
	return b.String()
}

// Strip removes markers, keeping their anchor text. Used where links cannot
// be rendered, such as SEO metadata.
func Strip(text string) string {
	var b strings.Builder
	for _, tok := range Parse(text) {
		b.WriteString(tok.Text)
	}
	return b.String()
}
