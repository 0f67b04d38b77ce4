// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"blogsmith/internal/apierr"
	"blogsmith/internal/draft"
	"blogsmith/internal/models"
)

var testListicle = ListicleRequest{
	Topic: "CRM platforms",
	Prompts: []string{
		"Which CRM is best for startups?",
		"How do CRM prices compare?",
		"Which CRM has the best integrations?",
		"What CRM support options exist?",
		"Which CRM scales to enterprise?",
	},
	Platforms: []string{"Google", "LinkedIn"},
}

var testSuggestion = models.ListicleSuggestion{
	Title:                "Top 7 CRM Platforms for Growing Teams",
	Subtitle:             "Buyer's Guide",
	Summary:              "Ranks CRM vendors by price, integrations and support for growing teams.",
	PlatformFocus:        "Google and LinkedIn",
	KeyTakeaways:         []string{"Evaluation intent", "Demo booking CTA"},
	CompetitorHighlights: []string{"[1] HubSpot wins on free tier", "[2] Salesforce leads enterprise"},
}

func conceptsReply(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf(`{"title":"Top %d CRM Platforms Compared","subtitle":"Market Outlook",
			"summary":"Compares CRM vendors on pricing tiers, integrations and support quality.",
			"platformFocus":"LinkedIn","keyTakeaways":["Evaluation intent","Demo booking CTA"],
			"competitorHighlights":["[1] HubSpot wins on free tier","[2] Salesforce leads enterprise"]}`, i+5)
	}
	return "Here you go:\n{\"suggestions\":[" + strings.Join(parts, ",") + "],}"
}

func TestListicleRequestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ListicleRequest)
	}{
		{"short topic", func(r *ListicleRequest) { r.Topic = "CRM" }},
		{"four prompts", func(r *ListicleRequest) { r.Prompts = r.Prompts[:4] }},
		{"short prompt", func(r *ListicleRequest) {
			r.Prompts = append([]string{"too short"}, r.Prompts[1:]...)
		}},
		{"no platforms", func(r *ListicleRequest) { r.Platforms = nil }},
		{"short platform", func(r *ListicleRequest) { r.Platforms = []string{"X"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testListicle
			tt.mutate(&req)
			if _, err := req.Normalize(); apierr.Kind(err) != apierr.KindInvalidInput {
				t.Errorf("err = %v, want invalid input", err)
			}
		})
	}

	if _, err := testListicle.Normalize(); err != nil {
		t.Errorf("valid request: %v", err)
	}
}

func TestGenerateListicleConcepts(t *testing.T) {
	text := &fakeText{reply: conceptsReply(4)}
	searcher := &fakeSearcher{docs: testDocs(15)}
	g := New(text, searcher, nil, nil)

	concepts, err := g.GenerateListicleConcepts(context.Background(), testListicle)
	if err != nil {
		t.Fatalf("GenerateListicleConcepts: %v", err)
	}
	if len(concepts.Suggestions) != 4 {
		t.Errorf("suggestions = %d, want 4", len(concepts.Suggestions))
	}

	q := searcher.queries[0]
	if q.NumResults != 15 || !strings.HasPrefix(q.Text, "CRM platforms Which CRM is best") {
		t.Errorf("query = %+v", q)
	}

	p := text.prompts[0]
	if p.MaxTokens != 2048 || p.Temperature != 0.5 {
		t.Errorf("prompt settings = %d / %v", p.MaxTokens, p.Temperature)
	}
	if !strings.Contains(p.User, "[12] Report") || strings.Contains(p.User, "[13]") {
		t.Error("research notes should list exactly 12 sources")
	}
	if !strings.Contains(p.User, "Platforms to optimize for: Google, LinkedIn") {
		t.Error("platforms missing from prompt")
	}
}

func TestGenerateListicleConceptsRejectsTooFew(t *testing.T) {
	g := New(&fakeText{reply: conceptsReply(2)}, &fakeSearcher{docs: testDocs(3)}, nil, nil)

	_, err := g.GenerateListicleConcepts(context.Background(), testListicle)
	var vErr *draft.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestGenerateListicleConceptsNoResearch(t *testing.T) {
	text := &fakeText{}
	g := New(text, &fakeSearcher{}, nil, nil)

	_, err := g.GenerateListicleConcepts(context.Background(), testListicle)
	if !errors.Is(err, ErrNoResearch) || text.calls != 0 {
		t.Errorf("err = %v, calls = %d", err, text.calls)
	}
}

func TestRankTarget(t *testing.T) {
	tests := []struct {
		title string
		want  int
	}{
		{"Top 7 CRM Platforms", 7},
		{"The best 15 tools for 2026", 15},
		{"Best   3 Options", 3},
		{"CRM Platforms Compared", 10},
		{"Top 0 Picks", 10},
		{"Topical 5 notes", 10},
	}
	for _, tt := range tests {
		if got := RankTarget(tt.title); got != tt.want {
			t.Errorf("RankTarget(%q) = %d, want %d", tt.title, got, tt.want)
		}
	}
}

func TestListicleInput(t *testing.T) {
	in := ListicleInput(ListicleArticleRequest{
		ListicleRequest:    testListicle,
		Suggestion:         testSuggestion,
		EditorialDirection: "Lead with pricing tables.",
	}, 2026)

	if in.PrimaryKeyword != testSuggestion.Title || in.SecondaryKeyword != "CRM platforms" {
		t.Errorf("keywords = %q / %q", in.PrimaryKeyword, in.SecondaryKeyword)
	}
	wantPrompt := `Produce a 7-entry comparative listicle titled "Top 7 CRM Platforms for Growing Teams" that evaluates the leading CRM platforms for 2026 buyers.`
	if in.AnswerPrompt != wantPrompt {
		t.Errorf("answer prompt = %q", in.AnswerPrompt)
	}
	if in.Tone != "Analyst-grade, statistics-backed narrative optimized for Google, LinkedIn" {
		t.Errorf("tone = %q", in.Tone)
	}
	for _, want := range []string{
		"1. Which CRM is best for startups?",
		"numbered list from 1 to 7",
		"[2] Salesforce leads enterprise",
		"Angle summary from concept:",
		"Editorial direction: Lead with pricing tables.",
		"Structure requirements:",
	} {
		if !strings.Contains(in.Brief, want) {
			t.Errorf("brief missing %q", want)
		}
	}
	if _, err := in.Normalize(); err != nil {
		t.Errorf("built input should be valid: %v", err)
	}
}

func TestGenerateListicleArticle(t *testing.T) {
	text := &fakeText{reply: articleJSON}
	g := New(text, &fakeSearcher{docs: testDocs(5)}, nil, nil, WithClock(fixedClock))

	article, err := g.GenerateListicleArticle(context.Background(), ListicleArticleRequest{
		ListicleRequest: testListicle,
		Suggestion:      testSuggestion,
	})
	if err != nil {
		t.Fatalf("GenerateListicleArticle: %v", err)
	}
	if article.Title == "" {
		t.Error("empty article")
	}
	if !strings.Contains(text.prompts[0].User, "evaluates the leading CRM platforms for 2026 buyers") {
		t.Error("listicle answer prompt not used")
	}
}

func TestGenerateListicleArticleRejectsBadSuggestion(t *testing.T) {
	text := &fakeText{reply: articleJSON}
	g := New(text, &fakeSearcher{docs: testDocs(5)}, nil, nil)

	s := testSuggestion
	s.Summary = "too short"
	_, err := g.GenerateListicleArticle(context.Background(), ListicleArticleRequest{
		ListicleRequest: testListicle,
		Suggestion:      s,
	})
	if apierr.Kind(err) != apierr.KindInvalidInput || text.calls != 0 {
		t.Errorf("err = %v, calls = %d", err, text.calls)
	}
}
