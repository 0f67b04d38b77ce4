// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// publication.go records uploads of article documents to object storage
// so editors can see where and when an article went live.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"blogsmith/internal/models"
)

// PublicationStore handles the publication log.
type PublicationStore struct {
	db *sql.DB
}

// NewPublicationStore creates a new PublicationStore.
func NewPublicationStore(db *sql.DB) *PublicationStore {
	return &PublicationStore{db: db}
}

// Log records a publication event. Failures are logged, not returned.
func (s *PublicationStore) Log(ctx context.Context, articleID uuid.UUID, key, url string) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO article_publications (article_id, object_key, url)
		VALUES ($1, $2, $3)
	`, articleID, key, url)
	if err != nil {
		slog.Warn("failed to log publication",
			"article_id", articleID,
			"key", key,
			"error", err,
		)
		return
	}
	slog.Debug("publication logged", "article_id", articleID, "key", key)
}

// ListByArticle returns the publications of one article, newest first.
func (s *PublicationStore) ListByArticle(ctx context.Context, articleID uuid.UUID, limit int) ([]models.Publication, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, article_id, object_key, url, published_at
		FROM article_publications
		WHERE article_id = $1
		ORDER BY published_at DESC, id DESC
		LIMIT $2
	`, articleID, limit)
	if err != nil {
		return nil, fmt.Errorf("query publications: %w", err)
	}
	defer rows.Close()

	var entries []models.Publication
	for rows.Next() {
		var p models.Publication
		if err := rows.Scan(&p.ID, &p.ArticleID, &p.Key, &p.URL, &p.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan publication: %w", err)
		}
		entries = append(entries, p)
	}
	return entries, rows.Err()
}
