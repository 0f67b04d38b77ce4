// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON/HTML endpoints of the blogsmith API:
// article generation, export rendering, the article archive and publishing.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"blogsmith/internal/ai"
	"blogsmith/internal/apierr"
	"blogsmith/internal/generator"
	"blogsmith/internal/middleware"
	"blogsmith/internal/models"
)

// ArticleGenerator runs the generation pipelines. *generator.Generator
// satisfies it.
type ArticleGenerator interface {
	Generate(ctx context.Context, in generator.Input) (*models.Article, error)
	GenerateListicleConcepts(ctx context.Context, req generator.ListicleRequest) (*models.ListicleConcepts, error)
	GenerateListicleArticle(ctx context.Context, req generator.ListicleArticleRequest) (*models.Article, error)
}

// ArticleArchive persists generated articles. *store.ArticleStore
// satisfies it.
type ArticleArchive interface {
	Create(ctx context.Context, keyword string, a *models.Article) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ArchivedArticle, error)
	SaveHTML(ctx context.Context, id uuid.UUID, html string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]models.ArticleSummary, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PublicationLog records uploads. *store.PublicationStore satisfies it.
type PublicationLog interface {
	Log(ctx context.Context, articleID uuid.UUID, key, url string)
	ListByArticle(ctx context.Context, articleID uuid.UUID, limit int) ([]models.Publication, error)
}

// DocumentCache caches rendered export documents. *cache.DocumentCache
// satisfies it.
type DocumentCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte)
	Invalidate(ctx context.Context, key string)
}

// Publisher uploads documents to object storage. *storage.Client
// satisfies it.
type Publisher interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
	Delete(ctx context.Context, key string) error
	FileURL(key string) string
}

// ProviderSwitcher exposes the text provider registry. *ai.Registry
// satisfies it.
type ProviderSwitcher interface {
	ActiveName() string
	Available() []string
	SetActive(name string) error
}

// API groups the HTTP handlers and their collaborators. Archive, cache,
// publisher and provider switcher are optional; endpoints that need a
// missing one answer 503.
type API struct {
	gen       ArticleGenerator
	archive   ArticleArchive
	pubs      PublicationLog
	docs      DocumentCache
	publisher Publisher
	providers ProviderSwitcher
}

// Option configures an API.
type Option func(*API)

// WithArchive enables the article archive endpoints.
func WithArchive(archive ArticleArchive, pubs PublicationLog) Option {
	return func(a *API) {
		a.archive = archive
		a.pubs = pubs
	}
}

// WithDocumentCache caches rendered article documents.
func WithDocumentCache(c DocumentCache) Option {
	return func(a *API) { a.docs = c }
}

// WithPublisher enables publishing to object storage.
func WithPublisher(p Publisher) Option {
	return func(a *API) { a.publisher = p }
}

// WithProviders enables the provider switch endpoints.
func WithProviders(p ProviderSwitcher) Option {
	return func(a *API) { a.providers = p }
}

// New creates the API handlers.
func New(gen ArticleGenerator, opts ...Option) *API {
	a := &API{gen: gen}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// errorResponse is the JSON error shape of every endpoint.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write json response", "error", err)
	}
}

// writeError maps err to a status code and JSON error body. Internal
// errors are logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apierr.Status(err)
	kind := apierr.Kind(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError && kind == apierr.KindInternal {
		slog.Error("request failed",
			"request_id", middleware.RequestIDFrom(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		msg = "Internal Server Error"
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: kind})
}

// decodeJSON reads a size-capped JSON body into v. Malformed bodies are
// reported as invalid input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apierr.Invalid("request body exceeds %d bytes", maxBodyBytes)
		}
		return apierr.Invalid("malformed JSON body: %v", err)
	}
	return nil
}

// articleID parses the {id} path value.
func articleID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apierr.Invalid("invalid article id %q", raw)
	}
	return id, nil
}

// requireArchive reports ErrUnavailable when no archive is configured.
func (a *API) requireArchive() error {
	if a.archive == nil {
		return fmt.Errorf("article archive: %w", apierr.ErrUnavailable)
	}
	return nil
}

// Health reports liveness and which optional backends are wired.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"archive":    a.archive != nil,
		"cache":      a.docs != nil,
		"publishing": a.publisher != nil,
	})
}

// Providers lists the configured text providers and the active one.
func (a *API) Providers(w http.ResponseWriter, r *http.Request) {
	if a.providers == nil {
		writeError(w, r, fmt.Errorf("providers: %w", apierr.ErrUnavailable))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"active":    a.providers.ActiveName(),
		"available": a.providers.Available(),
	})
}

// SetProvider switches the active text provider at runtime.
func (a *API) SetProvider(w http.ResponseWriter, r *http.Request) {
	if a.providers == nil {
		writeError(w, r, fmt.Errorf("providers: %w", apierr.ErrUnavailable))
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.providers.SetActive(strings.TrimSpace(req.Name)); err != nil {
		writeError(w, r, apierr.Invalid("%v", err))
		return
	}
	slog.Info("ai provider switched", "provider", req.Name)
	writeJSON(w, http.StatusOK, map[string]any{
		"active":    a.providers.ActiveName(),
		"available": a.providers.Available(),
	})
}

var _ ProviderSwitcher = (*ai.Registry)(nil)
