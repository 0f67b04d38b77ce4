// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package draft

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	"blogsmith/internal/models"
)

// Schema minimums, counted in runes.
const (
	minTitle          = 10
	minIntro          = 40
	minConclusion     = 40
	minSummary        = 20
	minBulletPoints   = 1
	minBullet         = 10
	minHeading        = 6
	minParagraphs     = 2
	minParagraph      = 20
	minImagePrompt    = 5
	minKeyword        = 3
	minStatLabel      = 3
	minQuestion       = 5
	minAnswer         = 20
	minSEOTitle       = 10
	minSEODescription = 40
	minMetaKeywords   = 5
)

// checker accumulates violations while walking a candidate.
type checker struct {
	violations []Violation
}

func (c *checker) fail(path, rule string) {
	c.violations = append(c.violations, Violation{Path: path, Rule: rule})
}

// str checks that v is a string of at least minLen runes.
func (c *checker) str(path string, v any, minLen int) {
	s, ok := v.(string)
	if !ok {
		if v == nil {
			c.fail(path, "required")
		} else {
			c.fail(path, "expected string")
		}
		return
	}
	if utf8.RuneCountInString(s) < minLen {
		c.fail(path, "min length "+strconv.Itoa(minLen))
	}
}

// optStr checks an optional string field.
func (c *checker) optStr(path string, v any) {
	if v == nil {
		return
	}
	if _, ok := v.(string); !ok {
		c.fail(path, "expected string")
	}
}

// strings checks an array of strings with a minimum item count and a
// minimum length per item.
func (c *checker) strings(path string, v any, minItems, minLen int) {
	list, ok := c.array(path, v)
	if !ok {
		return
	}
	if len(list) < minItems {
		c.fail(path, "min items "+strconv.Itoa(minItems))
	}
	for i, item := range list {
		c.str(index(path, i), item, minLen)
	}
}

func (c *checker) array(path string, v any) ([]any, bool) {
	list, ok := v.([]any)
	if !ok {
		if v == nil {
			c.fail(path, "required")
		} else {
			c.fail(path, "expected array")
		}
		return nil, false
	}
	return list, true
}

func (c *checker) object(path string, v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		if v == nil {
			c.fail(path, "required")
		} else {
			c.fail(path, "expected object")
		}
		return nil, false
	}
	return obj, true
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// Validate checks a sanitized candidate against the draft schema and
// converts it to a models.Draft. Every violation is reported, not just the
// first.
func Validate(candidate map[string]any) (*models.Draft, error) {
	c := &checker{}

	c.str("title", candidate["title"], minTitle)
	c.str("intro", candidate["intro"], minIntro)
	c.str("conclusion", candidate["conclusion"], minConclusion)

	if tldr, ok := c.object("tldr", candidate["tldr"]); ok {
		c.str("tldr.summary", tldr["summary"], minSummary)
		c.strings("tldr.bulletPoints", tldr["bulletPoints"], minBulletPoints, minBullet)
	}

	if sections, ok := c.array("sections", candidate["sections"]); ok {
		for i, entry := range sections {
			c.section(index("sections", i), entry)
		}
	}

	if faqs, ok := c.array("faqs", candidate["faqs"]); ok {
		if len(faqs) < minFAQs {
			c.fail("faqs", "min items "+strconv.Itoa(minFAQs))
		}
		for i, entry := range faqs {
			path := index("faqs", i)
			if faq, ok := c.object(path, entry); ok {
				c.str(path+".question", faq["question"], minQuestion)
				c.str(path+".answer", faq["answer"], minAnswer)
			}
		}
	}

	if meta, present := candidate["meta"]; present && meta != nil {
		if m, ok := c.object("meta", meta); ok {
			c.str("meta.seoTitle", m["seoTitle"], minSEOTitle)
			c.str("meta.seoDescription", m["seoDescription"], minSEODescription)
			c.strings("meta.keywords", m["keywords"], minMetaKeywords, minKeyword)
		}
	}

	if len(c.violations) > 0 {
		return nil, &ValidationError{Violations: c.violations}
	}

	// The candidate is structurally sound; a JSON round trip maps it onto
	// the typed draft and drops unknown keys.
	data, err := json.Marshal(candidate)
	if err != nil {
		return nil, fmt.Errorf("draft encode: %w", err)
	}
	var d models.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("draft decode: %w", err)
	}
	return &d, nil
}

func (c *checker) section(path string, entry any) {
	section, ok := c.object(path, entry)
	if !ok {
		return
	}
	c.str(path+".heading", section["heading"], minHeading)
	c.strings(path+".paragraphs", section["paragraphs"], minParagraphs, minParagraph)
	c.str(path+".imagePrompt", section["imagePrompt"], minImagePrompt)
	c.optStr(path+".callToAction", section["callToAction"])

	if kw, present := section["focusKeywords"]; present && kw != nil {
		c.strings(path+".focusKeywords", kw, 0, minKeyword)
	}

	if raw, present := section["stats"]; present && raw != nil {
		stats, ok := c.array(path+".stats", raw)
		if !ok {
			return
		}
		for i, s := range stats {
			statPath := index(path+".stats", i)
			if stat, ok := c.object(statPath, s); ok {
				c.str(statPath+".label", stat["label"], minStatLabel)
				c.str(statPath+".value", stat["value"], 1)
				c.str(statPath+".sourceId", stat["sourceId"], 1)
			}
		}
	}
}
