// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package enrich

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"blogsmith/internal/models"
)

// fakeFinder returns an image per query unless the query contains "fail"
// or "none".
type fakeFinder struct {
	mu      sync.Mutex
	queries []string
	active  atomic.Int32
	peak    atomic.Int32
	delay   time.Duration
}

func (f *fakeFinder) Find(ctx context.Context, query string) (*models.Image, error) {
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	switch {
	case strings.Contains(query, "fail"):
		return nil, errors.New("unsplash http 503")
	case strings.Contains(query, "none"):
		return nil, nil
	}
	return &models.Image{ID: query, URL: "https://images.example.com/" + query}, nil
}

func sec(heading, prompt string) models.Section {
	return models.Section{
		Heading:     heading,
		Paragraphs:  []string{"First paragraph of body text.", "Second paragraph of body text."},
		ImagePrompt: prompt,
	}
}

func TestEnrich_OrderAnchorsAndIsolation(t *testing.T) {
	finder := &fakeFinder{}
	e := New(finder, WithConcurrency(3))

	in := []models.Section{
		sec("Overview", "city skyline"),
		sec("Costs & Fees", "fail here"),
		sec("Overview", "none found"),
		sec("???", "solar roof"),
	}
	out := e.Enrich(context.Background(), in, "solar panels", "Austin")

	if len(out) != len(in) {
		t.Fatalf("sections: got %d, want %d", len(out), len(in))
	}

	wantAnchors := []string{"overview", "costs-fees", "overview-2", "section"}
	for i, s := range out {
		if s.Anchor != wantAnchors[i] || s.ID != wantAnchors[i] {
			t.Errorf("section %d: anchor=%q id=%q, want %q", i, s.Anchor, s.ID, wantAnchors[i])
		}
		if s.Heading != in[i].Heading {
			t.Errorf("section %d: heading %q, want %q (order not preserved)", i, s.Heading, in[i].Heading)
		}
	}

	if out[0].Image == nil || out[0].Image.ID != "city skyline solar panels Austin" {
		t.Errorf("section 0 image: got %+v", out[0].Image)
	}
	if out[1].Image != nil {
		t.Errorf("failed lookup should leave image nil, got %+v", out[1].Image)
	}
	if out[2].Image != nil {
		t.Errorf("empty lookup should leave image nil, got %+v", out[2].Image)
	}
	if !out[3].HasImage() {
		t.Errorf("a failure elsewhere must not affect section 3")
	}
	if len(finder.queries) != 4 {
		t.Errorf("lookups: got %d, want 4", len(finder.queries))
	}
}

func TestEnrich_RespectsConcurrencyLimit(t *testing.T) {
	finder := &fakeFinder{delay: 20 * time.Millisecond}
	e := New(finder, WithConcurrency(2))

	in := make([]models.Section, 8)
	for i := range in {
		in[i] = sec("Heading", "prompt")
	}
	e.Enrich(context.Background(), in, "kw", "")

	if peak := finder.peak.Load(); peak > 2 {
		t.Errorf("peak concurrency: got %d, want <= 2", peak)
	}
}

// slowFinder blocks until its context ends.
type slowFinder struct{}

func (slowFinder) Find(ctx context.Context, _ string) (*models.Image, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestEnrich_LookupTimeoutLeavesSectionWithoutImage(t *testing.T) {
	e := New(slowFinder{}, WithLookupTimeout(20*time.Millisecond))

	done := make(chan []models.EnrichedSection, 1)
	go func() {
		done <- e.Enrich(context.Background(), []models.Section{sec("Overview", "x"), sec("Costs", "y")}, "kw", "")
	}()

	select {
	case out := <-done:
		if len(out) != 2 || out[0].Image != nil || out[1].Image != nil {
			t.Errorf("got %+v", out)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Enrich did not return after the lookup timeout")
	}
}

func TestEnrich_NilFinder(t *testing.T) {
	out := New(nil).Enrich(context.Background(), []models.Section{sec("Overview", "x")}, "kw", "")
	if len(out) != 1 || out[0].Image != nil {
		t.Errorf("got %+v", out)
	}
	if out[0].ImageQuery != "x kw" {
		t.Errorf("image query: got %q", out[0].ImageQuery)
	}
}

func TestEnrich_CanceledContextSkipsLookups(t *testing.T) {
	finder := &fakeFinder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := New(finder).Enrich(ctx, []models.Section{sec("Overview", "x")}, "kw", "")
	if len(out) != 1 || out[0].Image != nil {
		t.Errorf("got %+v", out)
	}
	if len(finder.queries) != 0 {
		t.Errorf("lookups after cancel: got %d", len(finder.queries))
	}
}

func TestImageQuery(t *testing.T) {
	tests := []struct {
		prompt, keyword, location, want string
	}{
		{"rooftop solar", "solar panels", "Austin", "rooftop solar solar panels Austin"},
		{"rooftop solar", "solar panels", "", "rooftop solar solar panels"},
		{"  ", "solar panels", " Austin ", "solar panels Austin"},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		if got := ImageQuery(tt.prompt, tt.keyword, tt.location); got != tt.want {
			t.Errorf("ImageQuery(%q, %q, %q) = %q, want %q", tt.prompt, tt.keyword, tt.location, got, tt.want)
		}
	}
}
