// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"

	"blogsmith/internal/citation"
	"blogsmith/internal/markdown"
	"blogsmith/internal/models"
	"blogsmith/internal/render"
)

// Content types of the export formats.
const (
	contentTypeHTML     = "text/html; charset=utf-8"
	contentTypeMarkdown = "text/markdown; charset=utf-8"
)

// RenderHTML renders a posted article as a standalone HTML document.
// ?download=1 adds an attachment Content-Disposition.
func (a *API) RenderHTML(w http.ResponseWriter, r *http.Request) {
	var article models.Article
	if err := decodeJSON(w, r, &article); err != nil {
		writeError(w, r, err)
		return
	}
	if msg := validateArticle(&article); msg != "" {
		writeError(w, r, invalid(msg))
		return
	}

	doc, err := render.Document(&article)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeDocument(w, r, contentTypeHTML, render.Filename(article.Title, "html"), []byte(doc))
}

// RenderMarkdown renders a posted article as Markdown.
func (a *API) RenderMarkdown(w http.ResponseWriter, r *http.Request) {
	var article models.Article
	if err := decodeJSON(w, r, &article); err != nil {
		writeError(w, r, err)
		return
	}
	if msg := validateArticle(&article); msg != "" {
		writeError(w, r, invalid(msg))
		return
	}
	writeDocument(w, r, contentTypeMarkdown, render.Filename(article.Title, "md"), []byte(markdown.FromArticle(&article)))
}

// segmentsRequest is the body of POST /api/render/segments.
type segmentsRequest struct {
	Text    string                  `json:"text"`
	Sources []models.ResearchSource `json:"sources"`
}

// RenderSegments splits marker text into plain and link segments for rich
// text editors.
func (a *API) RenderSegments(w http.ResponseWriter, r *http.Request) {
	var req segmentsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if msg := validateSegments(req.Text, len(req.Sources)); msg != "" {
		writeError(w, r, invalid(msg))
		return
	}

	segments := citation.NewRenderer(req.Sources).Segments(req.Text)
	if segments == nil {
		segments = []citation.Segment{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"segments": segments})
}

// writeDocument writes an export document, as a download when requested.
func writeDocument(w http.ResponseWriter, r *http.Request, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	if r.URL.Query().Get("download") == "1" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
