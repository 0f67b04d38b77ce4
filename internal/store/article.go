// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists generated articles in PostgreSQL. Articles are
// stored as JSONB documents next to the latest HTML saved from the editor.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"blogsmith/internal/models"
)

// ArticleStore handles archived article operations.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// Create archives a freshly generated article under its own ID.
func (s *ArticleStore) Create(ctx context.Context, keyword string, a *models.Article) error {
	body, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode article: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO articles (id, keyword, title, article, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`, a.ID, keyword, a.Title, body, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// FindByID retrieves an archived article. Returns nil if not found.
func (s *ArticleStore) FindByID(ctx context.Context, id uuid.UUID) (*models.ArchivedArticle, error) {
	var (
		rec  models.ArchivedArticle
		body []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, keyword, title, article, edited_html, created_at, updated_at
		FROM articles WHERE id = $1
	`, id).Scan(&rec.ID, &rec.Keyword, &rec.Title, &body, &rec.EditedHTML, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	if err := json.Unmarshal(body, &rec.Article); err != nil {
		return nil, fmt.Errorf("decode article %s: %w", id, err)
	}
	return &rec, nil
}

// SaveHTML stores the edited HTML document for an article. It reports
// false when no article has that ID.
func (s *ArticleStore) SaveHTML(ctx context.Context, id uuid.UUID, html string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE articles SET edited_html = $2, updated_at = NOW()
		WHERE id = $1
	`, id, html)
	if err != nil {
		return false, fmt.Errorf("save article html: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save article html: %w", err)
	}
	return n > 0, nil
}

// List returns the most recently created articles, newest first.
func (s *ArticleStore) List(ctx context.Context, limit, offset int) ([]models.ArticleSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, keyword, title, edited_html IS NOT NULL AND edited_html <> '',
		       created_at, updated_at
		FROM articles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var items []models.ArticleSummary
	for rows.Next() {
		var a models.ArticleSummary
		if err := rows.Scan(&a.ID, &a.Keyword, &a.Title, &a.Edited, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// Delete removes an archived article and its publication history.
func (s *ArticleStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}
