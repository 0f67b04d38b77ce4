// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package draft

import (
	"encoding/json"
	"fmt"
	"strconv"

	"blogsmith/internal/models"
)

// Listicle concept minimums, counted in runes.
const (
	minSuggestions          = 3
	maxSuggestions          = 7
	minEditorialDirection   = 20
	minSuggestionTitle      = 12
	minSuggestionSubtitle   = 6
	minSuggestionSummary    = 40
	minPlatformFocus        = 3
	minTakeaways            = 2
	minTakeaway             = 8
	minCompetitorHighlights = 2
	minCompetitorHighlight  = 12
)

// DecodeListicle recovers and validates listicle concepts from raw
// generator output. Concepts are not sanitized: a short or malformed
// concept is a validation failure.
func DecodeListicle(raw string) (*models.ListicleConcepts, error) {
	candidate, err := Recover(raw)
	if err != nil {
		return nil, err
	}
	return ValidateListicle(candidate)
}

// ValidateListicle checks a candidate against the listicle concept schema.
func ValidateListicle(candidate map[string]any) (*models.ListicleConcepts, error) {
	c := &checker{}

	if suggestions, ok := c.array("suggestions", candidate["suggestions"]); ok {
		switch {
		case len(suggestions) < minSuggestions:
			c.fail("suggestions", "min items "+strconv.Itoa(minSuggestions))
		case len(suggestions) > maxSuggestions:
			c.fail("suggestions", "max items "+strconv.Itoa(maxSuggestions))
		}
		for i, entry := range suggestions {
			c.suggestion(index("suggestions", i), entry)
		}
	}

	if dir, present := candidate["editorialDirection"]; present && dir != nil {
		c.str("editorialDirection", dir, minEditorialDirection)
	}

	if len(c.violations) > 0 {
		return nil, &ValidationError{Violations: c.violations}
	}

	data, err := json.Marshal(candidate)
	if err != nil {
		return nil, fmt.Errorf("listicle encode: %w", err)
	}
	var concepts models.ListicleConcepts
	if err := json.Unmarshal(data, &concepts); err != nil {
		return nil, fmt.Errorf("listicle decode: %w", err)
	}
	return &concepts, nil
}

// ValidateSuggestion checks a single concept, as sent back by a client
// that picked one of the generated suggestions.
func ValidateSuggestion(s models.ListicleSuggestion) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("suggestion encode: %w", err)
	}
	var candidate map[string]any
	if err := json.Unmarshal(data, &candidate); err != nil {
		return fmt.Errorf("suggestion decode: %w", err)
	}
	c := &checker{}
	c.suggestion("suggestion", candidate)
	if len(c.violations) > 0 {
		return &ValidationError{Violations: c.violations}
	}
	return nil
}

func (c *checker) suggestion(path string, entry any) {
	s, ok := c.object(path, entry)
	if !ok {
		return
	}
	c.str(path+".title", s["title"], minSuggestionTitle)
	c.str(path+".subtitle", s["subtitle"], minSuggestionSubtitle)
	c.str(path+".summary", s["summary"], minSuggestionSummary)
	c.str(path+".platformFocus", s["platformFocus"], minPlatformFocus)
	c.strings(path+".keyTakeaways", s["keyTakeaways"], minTakeaways, minTakeaway)
	c.strings(path+".competitorHighlights", s["competitorHighlights"], minCompetitorHighlights, minCompetitorHighlight)
}
