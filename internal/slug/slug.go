// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultAnchor is used when a heading produces an empty slug.
const DefaultAnchor = "section"

// nonAlphanumeric matches runs of anything that isn't an ASCII letter or digit.
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(s)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Anchor returns the slug for a section heading, falling back to
// DefaultAnchor when nothing survives slugging.
func Anchor(heading string) string {
	if s := Generate(heading); s != "" {
		return s
	}
	return DefaultAnchor
}

// Set hands out anchors that are unique within one document. The first
// "overview" stays "overview"; later ones become "overview-2", "overview-3".
// A Set is not safe for concurrent use.
type Set struct {
	seen map[string]bool
}

// NewSet returns an empty anchor set.
func NewSet() *Set {
	return &Set{seen: make(map[string]bool)}
}

// Unique returns the anchor for heading, suffixed if it was already taken.
func (s *Set) Unique(heading string) string {
	base := Anchor(heading)
	candidate := base
	for n := 2; s.seen[candidate]; n++ {
		candidate = base + "-" + strconv.Itoa(n)
	}
	s.seen[candidate] = true
	return candidate
}
