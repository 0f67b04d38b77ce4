// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// blogsmith API. Generation routes sit behind the per-IP rate limiter;
// rendering and archive routes do not.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogsmith/internal/handlers"
	"blogsmith/internal/metrics"
	"blogsmith/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. A nil limiter disables rate limiting.
func New(api *handlers.API, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(methodNotAllowedHandler)

	r.Get("/health", api.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		// Generation calls paid upstream APIs.
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter.Middleware)
			}
			r.Post("/generate", api.Generate)
			r.Post("/generate/listicle", api.ListicleConcepts)
			r.Post("/generate/listicle/article", api.ListicleArticle)
		})

		r.Route("/render", func(r chi.Router) {
			r.Post("/html", api.RenderHTML)
			r.Post("/markdown", api.RenderMarkdown)
			r.Post("/segments", api.RenderSegments)
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", api.ListArticles)
			r.Get("/{id}", api.GetArticle)
			r.Delete("/{id}", api.DeleteArticle)
			r.Get("/{id}/html", api.ArticleHTML)
			r.Put("/{id}/html", api.SaveArticleHTML)
			r.Get("/{id}/markdown", api.ArticleMarkdown)
			r.Post("/{id}/publish", api.PublishArticle)
			r.Get("/{id}/publications", api.ListPublications)
		})

		r.Get("/providers", api.Providers)
		r.Put("/providers/active", api.SetProvider)
	})

	return r
}

// notFoundHandler answers unknown routes with a JSON error.
func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","code":"not_found"}`))
}

// methodNotAllowedHandler answers known routes hit with the wrong method.
func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	w.Write([]byte(`{"error":"Method Not Allowed","code":"method_not_allowed"}`))
}
