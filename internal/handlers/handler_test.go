// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides in-memory collaborators shared by the handler
// tests.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"blogsmith/internal/generator"
	"blogsmith/internal/models"
)

// fakeGen answers generation calls with canned results.
type fakeGen struct {
	article  *models.Article
	concepts *models.ListicleConcepts
	err      error

	gotInput    generator.Input
	gotListicle generator.ListicleArticleRequest
}

func (f *fakeGen) Generate(_ context.Context, in generator.Input) (*models.Article, error) {
	f.gotInput = in
	return f.article, f.err
}

func (f *fakeGen) GenerateListicleConcepts(_ context.Context, _ generator.ListicleRequest) (*models.ListicleConcepts, error) {
	return f.concepts, f.err
}

func (f *fakeGen) GenerateListicleArticle(_ context.Context, req generator.ListicleArticleRequest) (*models.Article, error) {
	f.gotListicle = req
	return f.article, f.err
}

// memArchive is an in-memory ArticleArchive.
type memArchive struct {
	mu       sync.Mutex
	articles map[uuid.UUID]*models.ArchivedArticle
	err      error
}

func newMemArchive() *memArchive {
	return &memArchive{articles: make(map[uuid.UUID]*models.ArchivedArticle)}
}

func (m *memArchive) Create(_ context.Context, keyword string, a *models.Article) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.articles[a.ID] = &models.ArchivedArticle{
		ID: a.ID, Keyword: keyword, Title: a.Title, Article: *a,
		CreatedAt: a.CreatedAt, UpdatedAt: a.CreatedAt,
	}
	return nil
}

func (m *memArchive) FindByID(_ context.Context, id uuid.UUID) (*models.ArchivedArticle, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.articles[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *memArchive) SaveHTML(_ context.Context, id uuid.UUID, html string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.articles[id]
	if !ok {
		return false, nil
	}
	rec.EditedHTML = &html
	rec.UpdatedAt = time.Now()
	return true, nil
}

func (m *memArchive) List(_ context.Context, limit, offset int) ([]models.ArticleSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ArticleSummary
	for _, rec := range m.articles {
		out = append(out, models.ArticleSummary{
			ID: rec.ID, Keyword: rec.Keyword, Title: rec.Title,
			Edited: rec.HasEdits(), CreatedAt: rec.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memArchive) Delete(_ context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.articles, id)
	return nil
}

// memPubs is an in-memory PublicationLog.
type memPubs struct {
	entries []models.Publication
}

func (m *memPubs) Log(_ context.Context, id uuid.UUID, key, url string) {
	m.entries = append(m.entries, models.Publication{
		ID: int64(len(m.entries) + 1), ArticleID: id, Key: key, URL: url, PublishedAt: time.Now(),
	})
}

func (m *memPubs) ListByArticle(_ context.Context, id uuid.UUID, limit int) ([]models.Publication, error) {
	var out []models.Publication
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if m.entries[i].ArticleID == id {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

// memDocs is an in-memory DocumentCache that counts hits.
type memDocs struct {
	docs map[string][]byte
	hits int
}

func newMemDocs() *memDocs { return &memDocs{docs: make(map[string][]byte)} }

func (m *memDocs) Get(_ context.Context, key string) ([]byte, bool) {
	b, ok := m.docs[key]
	if ok {
		m.hits++
	}
	return b, ok
}

func (m *memDocs) Set(_ context.Context, key string, body []byte) { m.docs[key] = body }

func (m *memDocs) Invalidate(_ context.Context, key string) { delete(m.docs, key) }

// fakePublisher records uploads and deletes.
type fakePublisher struct {
	uploads map[string][]byte
	deleted []string
	err     error
}

func (f *fakePublisher) Upload(_ context.Context, key, _ string, body []byte) error {
	if f.err != nil {
		return f.err
	}
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[key] = body
	return nil
}

func (f *fakePublisher) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.uploads, key)
	return nil
}

func (f *fakePublisher) FileURL(key string) string { return "https://cdn.example/" + key }

// fakeProviders is a ProviderSwitcher over a fixed name set.
type fakeProviders struct {
	active    string
	available []string
}

func (f *fakeProviders) ActiveName() string  { return f.active }
func (f *fakeProviders) Available() []string { return f.available }
func (f *fakeProviders) SetActive(name string) error {
	for _, n := range f.available {
		if n == name {
			f.active = name
			return nil
		}
	}
	return errors.New("ai: provider " + name + " is not available")
}

// testArticle returns a small render-ready article.
func testArticle() *models.Article {
	return &models.Article{
		ID:    uuid.New(),
		Title: "Solar Costs in Austin",
		Intro: "Prices fell <<source-1|12%>> last year.",
		TLDR:  models.TLDR{Summary: "Solar pays back.", BulletPoints: []string{"Fast payback", "Tax credit"}},
		Sections: []models.EnrichedSection{{
			ID: "costs", Anchor: "costs", Heading: "Costs",
			Paragraphs: []string{"Panels cost less.", "Labor is flat."},
		}},
		FAQs:       []models.FAQ{{Question: "Worth it?", Answer: "Usually."}},
		Conclusion: "Go solar.",
		Sources:    []models.ResearchSource{{ID: "source-1", Title: "Report", URL: "https://example.com/report"}},
		CreatedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
