// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ArchivedArticle is a generated article persisted in the archive together
// with the latest HTML saved from the editor.
type ArchivedArticle struct {
	ID         uuid.UUID `json:"id"`
	Keyword    string    `json:"keyword"`
	Title      string    `json:"title"`
	Article    Article   `json:"article"`
	EditedHTML *string   `json:"editedHtml,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// HasEdits reports whether an edited HTML document was saved.
func (a *ArchivedArticle) HasEdits() bool {
	return a.EditedHTML != nil && *a.EditedHTML != ""
}

// ArticleSummary is the list view of an archived article.
type ArticleSummary struct {
	ID        uuid.UUID `json:"id"`
	Keyword   string    `json:"keyword"`
	Title     string    `json:"title"`
	Edited    bool      `json:"edited"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Publication records one upload of an article document to object storage.
type Publication struct {
	ID          int64     `json:"id"`
	ArticleID   uuid.UUID `json:"articleId"`
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
}
