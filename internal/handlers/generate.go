// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"blogsmith/internal/generator"
	"blogsmith/internal/models"
)

// Generate runs the blog pipeline for a JSON generator.Input and responds
// with the article.
func (a *API) Generate(w http.ResponseWriter, r *http.Request) {
	var in generator.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	article, err := a.gen.Generate(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	a.archiveArticle(r.Context(), in.PrimaryKeyword, article)
	writeJSON(w, http.StatusOK, article)
}

// ListicleConcepts researches a topic and responds with listicle concepts.
func (a *API) ListicleConcepts(w http.ResponseWriter, r *http.Request) {
	var req generator.ListicleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	concepts, err := a.gen.GenerateListicleConcepts(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, concepts)
}

// ListicleArticle expands one chosen listicle concept into an article.
func (a *API) ListicleArticle(w http.ResponseWriter, r *http.Request) {
	var req generator.ListicleArticleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	article, err := a.gen.GenerateListicleArticle(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	a.archiveArticle(r.Context(), req.Suggestion.Title, article)
	writeJSON(w, http.StatusOK, article)
}

// archiveArticle stores a generated article when the archive is enabled.
// Failures are logged; the caller still gets the article.
func (a *API) archiveArticle(ctx context.Context, keyword string, article *models.Article) {
	if a.archive == nil {
		return
	}
	if err := a.archive.Create(context.WithoutCancel(ctx), strings.TrimSpace(keyword), article); err != nil {
		slog.Warn("archive article failed", "id", article.ID, "error", err)
	}
}
