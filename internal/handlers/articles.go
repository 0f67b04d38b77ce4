// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogsmith/internal/apierr"
	"blogsmith/internal/cache"
	"blogsmith/internal/markdown"
	"blogsmith/internal/models"
	"blogsmith/internal/render"
	"blogsmith/internal/storage"
)

// publicationHistory caps the publications returned per article.
const publicationHistory = 50

// ListArticles returns archived articles, newest first.
func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	if err := a.requireArchive(); err != nil {
		writeError(w, r, err)
		return
	}
	limit, offset := parsePage(r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))

	items, err := a.archive.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []models.ArticleSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": items, "limit": limit, "offset": offset})
}

// GetArticle returns one archived article with its edit state.
func (a *API) GetArticle(w http.ResponseWriter, r *http.Request) {
	rec, err := a.findArticle(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// ArticleHTML serves the edited document when one was saved, otherwise
// the rendered export.
func (a *API) ArticleHTML(w http.ResponseWriter, r *http.Request) {
	rec, err := a.findArticle(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := a.documentHTML(r.Context(), rec)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeDocument(w, r, contentTypeHTML, render.Filename(rec.Title, "html"), doc)
}

// ArticleMarkdown serves the generated article as Markdown. Editor
// changes are HTML only and are not reflected.
func (a *API) ArticleMarkdown(w http.ResponseWriter, r *http.Request) {
	rec, err := a.findArticle(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	key := cache.DocumentKey(rec.ID.String(), "md")
	body, ok := a.cached(r.Context(), key)
	if !ok {
		body = []byte(markdown.FromArticle(&rec.Article))
		a.store(r.Context(), key, body)
	}
	writeDocument(w, r, contentTypeMarkdown, render.Filename(rec.Title, "md"), body)
}

// SaveArticleHTML stores the editor's document. The body is HTML, or
// Markdown when sent as text/markdown, or JSON {"html": "..."}. Fragments
// are wrapped into a full document.
func (a *API) SaveArticleHTML(w http.ResponseWriter, r *http.Request) {
	if err := a.requireArchive(); err != nil {
		writeError(w, r, err)
		return
	}
	id, err := articleID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	html, err := readEditedDocument(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if msg := validateEditedHTML(html); msg != "" {
		writeError(w, r, invalid(msg))
		return
	}
	html = render.WrapDocument(html)

	found, err := a.archive.SaveHTML(r.Context(), id, html)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !found {
		writeError(w, r, fmt.Errorf("article %s: %w", id, apierr.ErrNotFound))
		return
	}
	if a.docs != nil {
		a.docs.Invalidate(r.Context(), cache.DocumentKey(id.String(), "html"))
	}

	slog.Info("article html saved", "id", id, "bytes", len(html))
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "saved": true, "bytes": len(html)})
}

// readEditedDocument decodes a PUT body according to its content type.
func readEditedDocument(w http.ResponseWriter, r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "application/json" {
		var req struct {
			HTML string `json:"html"`
		}
		if err := decodeJSON(w, r, &req); err != nil {
			return "", err
		}
		return req.HTML, nil
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEditedHTMLLen+1))
	if err != nil {
		return "", apierr.Invalid("read body: %v", err)
	}
	if mediaType == "text/markdown" {
		html, err := markdown.ToHTML(string(raw))
		if err != nil {
			return "", err
		}
		return html, nil
	}
	return string(raw), nil
}

// PublishArticle uploads the current HTML document to object storage.
func (a *API) PublishArticle(w http.ResponseWriter, r *http.Request) {
	if a.publisher == nil {
		writeError(w, r, fmt.Errorf("publishing: %w", apierr.ErrUnavailable))
		return
	}
	rec, err := a.findArticle(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := a.documentHTML(r.Context(), rec)
	if err != nil {
		writeError(w, r, err)
		return
	}

	key := storage.DocumentKey(rec.ID, render.Filename(rec.Title, "html"))
	if err := a.publisher.Upload(r.Context(), key, contentTypeHTML, doc); err != nil {
		writeError(w, r, err)
		return
	}
	url := a.publisher.FileURL(key)
	if a.pubs != nil {
		a.pubs.Log(context.WithoutCancel(r.Context()), rec.ID, key, url)
	}

	slog.Info("article published", "id", rec.ID, "key", key)
	writeJSON(w, http.StatusOK, map[string]string{"url": url, "key": key})
}

// ListPublications returns the publication history of one article.
func (a *API) ListPublications(w http.ResponseWriter, r *http.Request) {
	rec, err := a.findArticle(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var entries []models.Publication
	if a.pubs != nil {
		entries, err = a.pubs.ListByArticle(r.Context(), rec.ID, publicationHistory)
		if err != nil {
			writeError(w, r, err)
			return
		}
	}
	if entries == nil {
		entries = []models.Publication{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"publications": entries})
}

// DeleteArticle removes an archived article with its cached documents.
// Published objects are removed best-effort; a failed object delete is
// logged and does not fail the request.
func (a *API) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	rec, err := a.findArticle(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Publication rows cascade with the article, so read them first.
	var published []models.Publication
	if a.pubs != nil && a.publisher != nil {
		published, err = a.pubs.ListByArticle(r.Context(), rec.ID, publicationHistory)
		if err != nil {
			writeError(w, r, err)
			return
		}
	}

	if err := a.archive.Delete(r.Context(), rec.ID); err != nil {
		writeError(w, r, err)
		return
	}
	if a.docs != nil {
		a.docs.Invalidate(r.Context(), cache.DocumentKey(rec.ID.String(), "html"))
		a.docs.Invalidate(r.Context(), cache.DocumentKey(rec.ID.String(), "md"))
	}

	ctx := context.WithoutCancel(r.Context())
	seen := make(map[string]bool, len(published))
	for _, p := range published {
		if seen[p.Key] {
			continue
		}
		seen[p.Key] = true
		if err := a.publisher.Delete(ctx, p.Key); err != nil {
			slog.Warn("delete published document", "id", rec.ID, "key", p.Key, "error", err)
		}
	}

	slog.Info("article deleted", "id", rec.ID, "published_objects", len(seen))
	w.WriteHeader(http.StatusNoContent)
}

// findArticle loads the archived article named by the {id} path value.
func (a *API) findArticle(r *http.Request) (*models.ArchivedArticle, error) {
	if err := a.requireArchive(); err != nil {
		return nil, err
	}
	id, err := articleID(chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	rec, err := a.archive.FindByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("article %s: %w", id, apierr.ErrNotFound)
	}
	return rec, nil
}

// documentHTML returns the edited document or the cached rendered export.
func (a *API) documentHTML(ctx context.Context, rec *models.ArchivedArticle) ([]byte, error) {
	if rec.HasEdits() {
		return []byte(*rec.EditedHTML), nil
	}

	key := cache.DocumentKey(rec.ID.String(), "html")
	if body, ok := a.cached(ctx, key); ok {
		return body, nil
	}
	doc, err := render.Document(&rec.Article)
	if err != nil {
		return nil, err
	}
	a.store(ctx, key, []byte(doc))
	return []byte(doc), nil
}

func (a *API) cached(ctx context.Context, key string) ([]byte, bool) {
	if a.docs == nil {
		return nil, false
	}
	return a.docs.Get(ctx, key)
}

func (a *API) store(ctx context.Context, key string, body []byte) {
	if a.docs != nil {
		a.docs.Set(ctx, key, body)
	}
}
