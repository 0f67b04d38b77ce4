// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"blogsmith/internal/apierr"
	"blogsmith/internal/models"
)

// Validation limits for posted documents.
const (
	maxTitleLen      = 300
	maxSections      = 40
	maxSources       = 100
	maxSegmentsText  = 50_000
	maxEditedHTMLLen = 2_000_000
	defaultPageSize  = 20
	maxPageSize      = 100
)

// invalid wraps a validation message as an input error.
func invalid(msg string) error {
	return apierr.Invalid("%s", msg)
}

// validateArticle checks a posted article before rendering and returns
// the first error found.
func validateArticle(a *models.Article) string {
	title := strings.TrimSpace(a.Title)
	if title == "" {
		return "Article title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Article title is too long (max 300 characters)."
	}
	if len(a.Sections) > maxSections {
		return "Article has too many sections (max 40)."
	}
	if len(a.Sources) > maxSources {
		return "Article has too many sources (max 100)."
	}
	for i, s := range a.Sections {
		if strings.TrimSpace(s.Anchor) == "" {
			return "Section " + strconv.Itoa(i+1) + " is missing its anchor."
		}
	}
	return ""
}

// validateSegments checks a segments request.
func validateSegments(text string, sources int) string {
	if utf8.RuneCountInString(text) > maxSegmentsText {
		return "Text is too long (max 50,000 characters)."
	}
	if sources > maxSources {
		return "Too many sources (max 100)."
	}
	return ""
}

// validateEditedHTML checks an edited document body.
func validateEditedHTML(body string) string {
	if strings.TrimSpace(body) == "" {
		return "Document body is required."
	}
	if len(body) > maxEditedHTMLLen {
		return "Document is too large (max 2 MB)."
	}
	return ""
}

// parsePage reads limit/offset query values, clamping them to sane bounds.
func parsePage(limitRaw, offsetRaw string) (limit, offset int) {
	limit = defaultPageSize
	if n, err := strconv.Atoi(limitRaw); err == nil && n > 0 {
		limit = min(n, maxPageSize)
	}
	if n, err := strconv.Atoi(offsetRaw); err == nil && n > 0 {
		offset = n
	}
	return limit, offset
}
