// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"os"
	"testing"
	"time"
)

// TestClaudeLive tests the Claude provider against the real API.
// Skipped if CLAUDE_API_KEY is not set.
func TestClaudeLive(t *testing.T) {
	key := os.Getenv("CLAUDE_API_KEY")
	if key == "" {
		t.Skip("CLAUDE_API_KEY not set")
	}

	reg := NewRegistry("claude", map[string]ProviderConfig{
		"claude": {APIKey: key, Model: os.Getenv("CLAUDE_MODEL")},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := reg.Generate(ctx, Prompt{System: "Reply in exactly one short sentence.", User: "What is 2+2?", MaxTokens: 64})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result == "" {
		t.Fatal("Generate returned empty string")
	}
	t.Logf("Claude response: %s", result)
}

// TestOpenAILive tests the OpenAI provider against the real API.
// Skipped if OPENAI_API_KEY is not set.
func TestOpenAILive(t *testing.T) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		t.Skip("OPENAI_API_KEY not set")
	}

	reg := NewRegistry("openai", map[string]ProviderConfig{
		"openai": {APIKey: key, Model: os.Getenv("OPENAI_MODEL")},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := reg.Generate(ctx, Prompt{System: "Reply in exactly one short sentence.", User: "What is 2+2?", MaxTokens: 64})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result == "" {
		t.Fatal("Generate returned empty string")
	}
	t.Logf("OpenAI response: %s", result)
}
