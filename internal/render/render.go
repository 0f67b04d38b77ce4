// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render exports articles as standalone HTML documents. Every prose
// field passes through the citation renderer, so markers become links and
// plain text is escaped exactly once.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"blogsmith/internal/citation"
	"blogsmith/internal/models"
	"blogsmith/internal/slug"
)

//go:embed templates/*.html
var templateFS embed.FS

var articleTmpl = template.Must(template.ParseFS(templateFS, "templates/article.html"))

// creditParams are appended to photographer profile links, as Unsplash
// attribution guidelines require.
const creditParams = "utm_source=blogsmith&utm_medium=referral"

// documentView is the template data for one article. Prose fields are
// pre-rendered by the citation renderer.
type documentView struct {
	Lang        string
	PageTitle   string
	Description string
	Keywords    string
	Title       template.HTML
	Intro       template.HTML
	TLDRSummary template.HTML
	Bullets     []template.HTML
	Sections    []sectionView
	Conclusion  template.HTML
	FAQs        []faqView
	Sources     []models.ResearchSource
	Words       int
	Minutes     int
}

type sectionView struct {
	Anchor       string
	TOCHeading   string // marker-free; TOC entries are already links
	Heading      template.HTML
	Paragraphs   []template.HTML
	Stats        []statView
	CallToAction template.HTML
	Image        *imageView
}

type statView struct {
	Label       template.HTML
	Value       template.HTML
	SourceURL   string
	SourceTitle string
}

type imageView struct {
	models.Image
	Credit string
}

type faqView struct {
	Question template.HTML
	Answer   template.HTML
}

// Options tunes the exported document.
type Options struct {
	Lang string // html lang attribute, default "en"
}

// Document renders a as a complete HTML document.
func Document(a *models.Article) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, a, Options{}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Write renders a as a complete HTML document into w.
func Write(w io.Writer, a *models.Article, opts Options) error {
	if a == nil {
		return fmt.Errorf("render: nil article")
	}
	if err := articleTmpl.Execute(w, newDocumentView(a, opts)); err != nil {
		return fmt.Errorf("render article: %w", err)
	}
	return nil
}

func newDocumentView(a *models.Article, opts Options) documentView {
	cite := citation.NewRenderer(a.Sources)
	html := func(s string) template.HTML { return template.HTML(cite.HTML(s)) }

	v := documentView{
		Lang:        opts.Lang,
		PageTitle:   citation.Strip(a.Title),
		Title:       html(a.Title),
		Intro:       html(a.Intro),
		TLDRSummary: html(a.TLDR.Summary),
		Conclusion:  html(a.Conclusion),
		Sources:     a.Sources,
	}
	if v.Lang == "" {
		v.Lang = "en"
	}
	v.Words, v.Minutes = ReadingStats(a)
	if a.Meta != nil {
		if a.Meta.SEOTitle != "" {
			v.PageTitle = citation.Strip(a.Meta.SEOTitle)
		}
		v.Description = citation.Strip(a.Meta.SEODescription)
		v.Keywords = strings.Join(a.Meta.Keywords, ", ")
	}

	for _, b := range a.TLDR.BulletPoints {
		v.Bullets = append(v.Bullets, html(b))
	}

	for _, s := range a.Sections {
		sv := sectionView{
			Anchor:       s.Anchor,
			TOCHeading:   citation.Strip(s.Heading),
			Heading:      html(s.Heading),
			CallToAction: html(s.CallToAction),
		}
		for _, p := range s.Paragraphs {
			sv.Paragraphs = append(sv.Paragraphs, html(p))
		}
		for _, st := range s.Stats {
			stv := statView{Label: html(st.Label), Value: html(st.Value)}
			if src, ok := a.SourceByID(st.SourceID); ok {
				stv.SourceURL = src.URL
				stv.SourceTitle = src.Title
			}
			sv.Stats = append(sv.Stats, stv)
		}
		if s.HasImage() {
			sv.Image = &imageView{Image: *s.Image, Credit: creditURL(s.Image.PhotographerProfile)}
		}
		v.Sections = append(v.Sections, sv)
	}

	for _, f := range a.FAQs {
		v.FAQs = append(v.FAQs, faqView{Question: html(f.Question), Answer: html(f.Answer)})
	}
	return v
}

func creditURL(profile string) string {
	if profile == "" {
		return "https://unsplash.com/?" + creditParams
	}
	u, err := url.Parse(profile)
	if err != nil {
		return profile
	}
	if u.RawQuery == "" {
		u.RawQuery = creditParams
	} else {
		u.RawQuery += "&" + creditParams
	}
	return u.String()
}

// WrapDocument returns html unchanged when it already starts with a
// doctype, otherwise it wraps the fragment in a minimal document.
func WrapDocument(html string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimLeft(html, " \t\r\n")), "<!doctype") {
		return html
	}
	return "<!DOCTYPE html><html><body>" + html + "</body></html>"
}

// Filename returns a download name such as "solar-costs.html" for title.
func Filename(title, ext string) string {
	name := slug.Generate(citation.Strip(title))
	if name == "" {
		name = "blog-post"
	}
	return name + "." + ext
}

// wordsPerMinute is the reading speed used for reading-time estimates.
const wordsPerMinute = 200

// ReadingStats counts the words of an article's visible prose and
// estimates its reading time in minutes (at least 1 for non-empty text).
func ReadingStats(a *models.Article) (words, minutes int) {
	count := func(s string) { words += len(strings.Fields(citation.Strip(s))) }

	count(a.Title)
	count(a.Intro)
	count(a.TLDR.Summary)
	for _, b := range a.TLDR.BulletPoints {
		count(b)
	}
	for _, s := range a.Sections {
		count(s.Heading)
		for _, p := range s.Paragraphs {
			count(p)
		}
		count(s.CallToAction)
	}
	for _, f := range a.FAQs {
		count(f.Question)
		count(f.Answer)
	}
	count(a.Conclusion)

	if words == 0 {
		return 0, 0
	}
	return words, (words + wordsPerMinute - 1) / wordsPerMinute
}
