// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package draft

import (
	"errors"
	"testing"
)

func TestValidate_ValidDraft(t *testing.T) {
	d, err := Validate(decodeMap(t, validDraftJSON))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(d.Sections) != 1 {
		t.Fatalf("sections: got %d", len(d.Sections))
	}
	s := d.Sections[0]
	if len(s.Stats) != 1 || s.Stats[0].SourceID != "source-1" {
		t.Errorf("stats: got %+v", s.Stats)
	}
	if s.CallToAction == "" || len(s.FocusKeywords) != 2 {
		t.Errorf("optional section fields lost: %+v", s)
	}
	if len(d.TLDR.BulletPoints) != 2 {
		t.Errorf("bullets: got %v", d.TLDR.BulletPoints)
	}
}

func TestValidate_MetaOptional(t *testing.T) {
	m := decodeMap(t, validDraftJSON)
	delete(m, "meta")
	d, err := Validate(m)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if d.Meta != nil {
		t.Errorf("meta: got %+v, want nil", d.Meta)
	}
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	m := decodeMap(t, validDraftJSON)
	m["title"] = "Too short"
	m["faqs"] = m["faqs"].([]any)[:2]
	section := m["sections"].([]any)[0].(map[string]any)
	section["paragraphs"] = []any{"Long enough paragraph text here.", "short"}
	section["stats"] = []any{map[string]any{"label": "ok label", "value": 12, "sourceId": "source-1"}}
	m["meta"].(map[string]any)["keywords"] = []any{"ab"}

	_, err := Validate(m)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}

	want := []Violation{
		{Path: "title", Rule: "min length 10"},
		{Path: "sections[0].paragraphs[1]", Rule: "min length 20"},
		{Path: "sections[0].stats[0].value", Rule: "expected string"},
		{Path: "faqs", Rule: "min items 3"},
		{Path: "meta.keywords", Rule: "min items 5"},
		{Path: "meta.keywords[0]", Rule: "min length 3"},
	}
	got := make(map[Violation]bool)
	for _, v := range verr.Violations {
		got[v] = true
	}
	for _, w := range want {
		if !got[w] {
			t.Errorf("missing violation %v; got %v", w, verr.Violations)
		}
	}
	if len(verr.Violations) != len(want) {
		t.Errorf("violations: got %d, want %d (%v)", len(verr.Violations), len(want), verr.Violations)
	}
}

func TestValidate_MissingAndMistypedFields(t *testing.T) {
	_, err := Validate(map[string]any{"title": 12, "tldr": "nope", "sections": map[string]any{}})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	want := map[Violation]bool{
		{Path: "title", Rule: "expected string"}:   true,
		{Path: "intro", Rule: "required"}:          true,
		{Path: "conclusion", Rule: "required"}:     true,
		{Path: "tldr", Rule: "expected object"}:    true,
		{Path: "sections", Rule: "expected array"}: true,
		{Path: "faqs", Rule: "required"}:           true,
	}
	for _, v := range verr.Violations {
		if !want[v] {
			t.Errorf("unexpected violation %v", v)
		}
		delete(want, v)
	}
	for v := range want {
		t.Errorf("missing violation %v", v)
	}
}

func TestValidate_RuneLengths(t *testing.T) {
	m := decodeMap(t, validDraftJSON)
	// Ten runes, more than ten bytes.
	m["title"] = "ÉÉÉÉÉÉÉÉÉÉ"
	if _, err := Validate(m); err != nil {
		t.Errorf("ten-rune title should pass: %v", err)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Violations: []Violation{{Path: "title", Rule: "min length 10"}}}
	want := "draft validation: 1 violation(s): title: min length 10"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
