// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for blogsmith. The serve command runs
// the HTTP API; generate runs the pipeline once from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"blogsmith/internal/config"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// newRootCmd assembles the command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "blogsmith",
		Short: "Research-backed blog article generator",
		Long: `blogsmith researches a keyword, drafts a cited article with an LLM,
attaches stock photos and exports it as HTML or Markdown.

Examples:
  # Run the HTTP API
  blogsmith serve

  # Generate one article and print the HTML document
  blogsmith generate --keyword "solar panels" --question "Are solar panels worth it in Austin?" --html`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			return nil
		},
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newCacheCmd())

	return root
}

// setupLogger installs the default structured logger: JSON in
// production, text otherwise.
func setupLogger(w io.Writer, env string) {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if env == "production" {
		opts.Level = slog.LevelInfo
		h = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
}

// loadConfig loads configuration and installs the logger.
func loadConfig(logTo io.Writer) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	setupLogger(logTo, cfg.Env)
	return cfg, nil
}
