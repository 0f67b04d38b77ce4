// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"blogsmith/internal/database"
	"blogsmith/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "blogsmith")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "blogsmith")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanArticles removes test articles by ID. Publications cascade.
func cleanArticles(t *testing.T, db *sql.DB, ids ...uuid.UUID) {
	t.Helper()
	t.Cleanup(func() {
		for _, id := range ids {
			db.Exec("DELETE FROM articles WHERE id = $1", id)
		}
	})
}

// testArticle returns a minimal generated article.
func testArticle(title string) *models.Article {
	return &models.Article{
		ID:    uuid.New(),
		Title: title,
		Intro: "Prices fell <<source-1|12%>> last year.",
		TLDR:  models.TLDR{Summary: "Short summary.", BulletPoints: []string{"One", "Two"}},
		Sections: []models.EnrichedSection{{
			ID: "costs", Anchor: "costs", Heading: "Costs",
			Paragraphs: []string{"First.", "Second."},
			ImageQuery: "solar panels",
		}},
		FAQs:       []models.FAQ{{Question: "Why?", Answer: "Because."}},
		Conclusion: "Done.",
		Sources:    []models.ResearchSource{{ID: "source-1", Title: "Report", URL: "https://example.com/r"}},
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
}
