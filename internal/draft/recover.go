// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package draft

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var (
	leadingFence  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	trailingFence = regexp.MustCompile("```$")
)

// lineNoise removes carriage returns and Unicode line/paragraph separators
// and turns non-breaking spaces into plain spaces.
var lineNoise = strings.NewReplacer(
	"\r", "",
	"\u00a0", " ",
	"\u2028", "",
	"\u2029", "",
)

var errNotObject = errors.New("top-level JSON value is not an object")

// StripFence trims the text and removes a leading ```json (or bare ```)
// fence and a trailing ``` fence.
func StripFence(raw string) string {
	s := strings.TrimSpace(raw)
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Normalize removes characters that commonly break JSON parsing of LLM
// output.
func Normalize(s string) string {
	return lineNoise.Replace(s)
}

// ExtractObject returns the text between the first '{' and the last '}'
// inclusive. The input is returned unchanged when either brace is missing
// or the braces are out of order.
func ExtractObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return s
	}
	return s[start : end+1]
}

// Recover turns raw generator output into a JSON object. It tries, in
// order: a strict parse of the extracted object, a syntax repair of the
// extracted object, and a syntax repair of the whole normalized text. The
// first attempt that yields an object wins.
func Recover(raw string) (map[string]any, error) {
	normalized := Normalize(StripFence(raw))
	extracted := ExtractObject(normalized)

	var reasons []string
	seen := make(map[string]bool)
	fail := func(step string, err error) {
		if seen[err.Error()] {
			return
		}
		seen[err.Error()] = true
		reasons = append(reasons, step+": "+err.Error())
	}

	obj, err := parseObject(extracted)
	if err == nil {
		return obj, nil
	}
	fail("parse", err)

	obj, err = repairObject(extracted)
	if err == nil {
		return obj, nil
	}
	fail("repair", err)

	obj, err = repairObject(normalized)
	if err == nil {
		return obj, nil
	}
	fail("normalized repair", err)

	return nil, &ParseError{Reasons: reasons}
}

func repairObject(s string) (map[string]any, error) {
	repaired, err := jsonrepair.JSONRepair(s)
	if err != nil {
		return nil, err
	}
	return parseObject(repaired)
}

func parseObject(s string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}
