// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the article documents that flow through the
// generation pipeline: research sources, the validated draft, and the
// enriched article returned to callers.
package models

import (
	"time"

	"github.com/google/uuid"
)

// ResearchSource is one document returned by the research collaborator.
// Generated prose cites it by ID through <<id|anchor>> markers.
type ResearchSource struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Summary       string   `json:"summary,omitempty"`
	Author        string   `json:"author,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	Highlights    []string `json:"highlights,omitempty"`
}

// TLDR is the short summary block shown above the article body.
type TLDR struct {
	Summary      string   `json:"summary"`
	BulletPoints []string `json:"bulletPoints"`
}

// Stat is a numeric insight backed by a research source.
type Stat struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	SourceID string `json:"sourceId"`
}

// Section is one body section as produced by the text generator.
type Section struct {
	Heading       string   `json:"heading"`
	Paragraphs    []string `json:"paragraphs"`
	Stats         []Stat   `json:"stats,omitempty"`
	CallToAction  string   `json:"callToAction,omitempty"`
	ImagePrompt   string   `json:"imagePrompt"`
	FocusKeywords []string `json:"focusKeywords,omitempty"`
}

// FAQ is a question/answer pair. FAQs render in slice order.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Meta holds optional SEO metadata.
type Meta struct {
	SEOTitle       string   `json:"seoTitle"`
	SEODescription string   `json:"seoDescription"`
	Keywords       []string `json:"keywords"`
}

// Draft is the schema-validated output of the text generator, before
// enrichment.
type Draft struct {
	Title      string    `json:"title"`
	Intro      string    `json:"intro"`
	TLDR       TLDR      `json:"tldr"`
	Sections   []Section `json:"sections"`
	FAQs       []FAQ     `json:"faqs"`
	Conclusion string    `json:"conclusion"`
	Meta       *Meta     `json:"meta,omitempty"`
}

// Image describes a stock photo chosen for a section.
type Image struct {
	ID                   string `json:"id"`
	URL                  string `json:"url"`
	Alt                  string `json:"alt"`
	PhotographerName     string `json:"photographerName"`
	PhotographerUsername string `json:"photographerUsername"`
	PhotographerProfile  string `json:"photographerProfile"`
	Width                int    `json:"width"`
	Height               int    `json:"height"`
	Color                string `json:"color,omitempty"`
}

// EnrichedSection is a validated section with its anchor and image.
// A nil Image means the image collaborator found nothing.
type EnrichedSection struct {
	ID            string   `json:"id"`
	Anchor        string   `json:"anchor"`
	Heading       string   `json:"heading"`
	Paragraphs    []string `json:"paragraphs"`
	Stats         []Stat   `json:"stats,omitempty"`
	CallToAction  string   `json:"callToAction,omitempty"`
	FocusKeywords []string `json:"focusKeywords,omitempty"`
	ImageQuery    string   `json:"imageQuery"`
	Image         *Image   `json:"image"`
}

// Article is the final, render-ready result of one generation request.
type Article struct {
	ID         uuid.UUID         `json:"id"`
	Title      string            `json:"title"`
	Intro      string            `json:"intro"`
	TLDR       TLDR              `json:"tldr"`
	Sections   []EnrichedSection `json:"sections"`
	FAQs       []FAQ             `json:"faqs"`
	Conclusion string            `json:"conclusion"`
	Meta       *Meta             `json:"meta,omitempty"`
	Sources    []ResearchSource  `json:"sources"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// SourceByID returns the research source with the given ID.
func (a *Article) SourceByID(id string) (ResearchSource, bool) {
	for _, s := range a.Sources {
		if s.ID == id {
			return s, true
		}
	}
	return ResearchSource{}, false
}

// HasImage reports whether the section carries an image.
func (s *EnrichedSection) HasImage() bool {
	return s.Image != nil && s.Image.URL != ""
}
