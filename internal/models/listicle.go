// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// ListicleSuggestion is one comparative listicle concept.
type ListicleSuggestion struct {
	Title                string   `json:"title"`
	Subtitle             string   `json:"subtitle"`
	Summary              string   `json:"summary"`
	PlatformFocus        string   `json:"platformFocus"`
	KeyTakeaways         []string `json:"keyTakeaways"`
	CompetitorHighlights []string `json:"competitorHighlights"`
}

// ListicleConcepts is the set of concepts proposed for a topic.
type ListicleConcepts struct {
	Suggestions        []ListicleSuggestion `json:"suggestions"`
	EditorialDirection string               `json:"editorialDirection,omitempty"`
}
