// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"blogsmith/internal/generator"
	"blogsmith/internal/markdown"
	"blogsmith/internal/models"
	"blogsmith/internal/render"
)

// generateOptions are the flags of the generate command.
type generateOptions struct {
	input    generator.Input
	html     bool
	markdown bool
	output   string
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one article and print it",
		Long: `Runs research, drafting and image enrichment once and prints the
article as JSON, or as an HTML/Markdown document with --html/--markdown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.html && opts.markdown {
				return fmt.Errorf("--html and --markdown are mutually exclusive")
			}
			return runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input.PrimaryKeyword, "keyword", "k", "", "primary keyword (required)")
	f.StringVar(&opts.input.SecondaryKeyword, "secondary", "", "secondary keyword")
	f.StringVarP(&opts.input.AnswerPrompt, "question", "q", "", "question the article answers (required)")
	f.StringVarP(&opts.input.Location, "location", "l", "", "target location, e.g. \"Austin, TX\"")
	f.StringVar(&opts.input.CountryCode, "country", "", "two-letter country code for research")
	f.StringVar(&opts.input.Audience, "audience", "", "target audience")
	f.StringVar(&opts.input.Tone, "tone", "", "writing tone (default \""+generator.DefaultTone+"\")")
	f.IntVar(&opts.input.WordCountGoal, "words", 0, "approximate word count goal")
	f.StringVar(&opts.input.Language, "language", "", "output language (default \""+generator.DefaultLanguage+"\")")
	f.BoolVar(&opts.html, "html", false, "print the HTML document instead of JSON")
	f.BoolVar(&opts.markdown, "markdown", false, "print the Markdown document instead of JSON")
	f.StringVarP(&opts.output, "output", "o", "", "write to this file instead of stdout")
	cmd.MarkFlagRequired("keyword")
	cmd.MarkFlagRequired("question")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	// Logs go to stderr so stdout carries only the article.
	cfg, err := loadConfig(os.Stderr)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()

	article, err := a.generator.Generate(cmd.Context(), opts.input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	return writeArticle(out, article, opts)
}

// writeArticle prints article in the selected format.
func writeArticle(w io.Writer, article *models.Article, opts generateOptions) error {
	switch {
	case opts.html:
		return render.Write(w, article, render.Options{})
	case opts.markdown:
		_, err := io.WriteString(w, markdown.FromArticle(article))
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(article)
	}
}
