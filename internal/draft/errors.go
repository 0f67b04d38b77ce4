// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package draft

import (
	"fmt"
	"strings"
)

// ParseError is returned when no recovery attempt produced a JSON object.
// Reasons holds one entry per distinct failure, in attempt order.
type ParseError struct {
	Reasons []string
}

func (e *ParseError) Error() string {
	return "draft parse: " + strings.Join(e.Reasons, "; ")
}

// Violation is one failed schema rule.
type Violation struct {
	Path string `json:"path"`
	Rule string `json:"rule"`
}

func (v Violation) String() string {
	return v.Path + ": " + v.Rule
}

// ValidationError lists every schema violation found in a candidate draft.
type ValidationError struct {
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("draft validation: %d violation(s): %s", len(e.Violations), strings.Join(parts, "; "))
}
