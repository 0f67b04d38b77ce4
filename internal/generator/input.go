// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"strings"
	"unicode/utf8"

	"blogsmith/internal/apierr"
)

// Input limits.
const (
	minPrimaryKeyword = 3
	minAnswerPrompt   = 10
	maxWordCountGoal  = 8000
)

// Input describes one article request.
type Input struct {
	PrimaryKeyword   string `json:"primaryKeyword"`
	SecondaryKeyword string `json:"secondaryKeyword,omitempty"`
	AnswerPrompt     string `json:"answerPrompt"`
	Location         string `json:"location,omitempty"`
	CountryCode      string `json:"countryCode,omitempty"`
	Audience         string `json:"audience,omitempty"`
	Tone             string `json:"tone,omitempty"`
	WordCountGoal    int    `json:"wordCountGoal,omitempty"`
	Language         string `json:"language,omitempty"`
	Brief            string `json:"brief,omitempty"`
}

// Normalize trims every field, upper-cases the country code and checks the
// request limits. It returns the cleaned copy.
func (in Input) Normalize() (Input, error) {
	in.PrimaryKeyword = strings.TrimSpace(in.PrimaryKeyword)
	in.SecondaryKeyword = strings.TrimSpace(in.SecondaryKeyword)
	in.AnswerPrompt = strings.TrimSpace(in.AnswerPrompt)
	in.Location = strings.TrimSpace(in.Location)
	in.CountryCode = strings.ToUpper(strings.TrimSpace(in.CountryCode))
	in.Audience = strings.TrimSpace(in.Audience)
	in.Tone = strings.TrimSpace(in.Tone)
	in.Language = strings.TrimSpace(in.Language)
	in.Brief = strings.TrimSpace(in.Brief)

	switch {
	case utf8.RuneCountInString(in.PrimaryKeyword) < minPrimaryKeyword:
		return in, apierr.Invalid("primaryKeyword must be at least %d characters", minPrimaryKeyword)
	case utf8.RuneCountInString(in.AnswerPrompt) < minAnswerPrompt:
		return in, apierr.Invalid("answerPrompt must be at least %d characters", minAnswerPrompt)
	case in.CountryCode != "" && !isCountryCode(in.CountryCode):
		return in, apierr.Invalid("countryCode must be a two-letter ISO code")
	case in.WordCountGoal < 0 || in.WordCountGoal > maxWordCountGoal:
		return in, apierr.Invalid("wordCountGoal must be between 1 and %d", maxWordCountGoal)
	}
	return in, nil
}

func isCountryCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// ResearchQuery joins the non-blank request terms with the fixed
// "statistics" and "market data" suffixes.
func (in Input) ResearchQuery() string {
	return joinNonBlank(" ",
		in.PrimaryKeyword, in.SecondaryKeyword, in.AnswerPrompt, in.Location,
		"statistics", "market data")
}

func joinNonBlank(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
