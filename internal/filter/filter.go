// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package filter drops enriched sections that contain denylisted phrases.
package filter

import (
	"strings"

	"blogsmith/internal/models"
)

// DefaultPhrases is the denylist used when none is configured.
var DefaultPhrases = []string{
	"New Construction Standard — ENERGY STAR and LEED Certified",
	"Compare new construction developments with existing renovated properties to determine the best fit for your needs.",
	"new construction green homes Austin",
	"existing sustainable homes Austin",
	"renovated eco-friendly homes",
	"LEED new construction Austin",
}

// Filter matches sections against a case-insensitive phrase list.
type Filter struct {
	phrases []string
}

// New builds a filter from phrases. Blank phrases are ignored.
func New(phrases []string) *Filter {
	f := &Filter{}
	for _, p := range phrases {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			f.phrases = append(f.phrases, p)
		}
	}
	return f
}

// Phrases returns the normalized phrase list.
func (f *Filter) Phrases() []string {
	return append([]string(nil), f.phrases...)
}

// Apply returns the sections that match no phrase, in their original order,
// and the number dropped.
func (f *Filter) Apply(sections []models.EnrichedSection) ([]models.EnrichedSection, int) {
	kept := make([]models.EnrichedSection, 0, len(sections))
	for _, s := range sections {
		if f.Matches(s) {
			continue
		}
		kept = append(kept, s)
	}
	return kept, len(sections) - len(kept)
}

// Matches reports whether any paragraph, stat label or value, call to
// action or focus keyword of the section contains a denylisted phrase.
func (f *Filter) Matches(s models.EnrichedSection) bool {
	if len(f.phrases) == 0 {
		return false
	}
	for _, p := range s.Paragraphs {
		if f.contains(p) {
			return true
		}
	}
	for _, st := range s.Stats {
		if f.contains(st.Label) || f.contains(st.Value) {
			return true
		}
	}
	if f.contains(s.CallToAction) {
		return true
	}
	for _, k := range s.FocusKeywords {
		if f.contains(k) {
			return true
		}
	}
	return false
}

func (f *Filter) contains(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, p := range f.phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
