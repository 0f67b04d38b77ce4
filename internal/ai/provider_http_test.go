// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogsmith/internal/apierr"
)

// ---------- Helpers ----------

// newTestServer creates an httptest.Server that responds with the given status
// code and body bytes. The caller must call Close on the returned server.
func newTestServer(t *testing.T, statusCode int, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write(body)
	}))
}

// claudeSuccessBody builds a JSON body matching the Anthropic Messages
// response format with a single text content block.
func claudeSuccessBody(text string) []byte {
	resp := claudeResponse{
		Content: []claudeContentBlock{
			{Type: "text", Text: text},
		},
	}
	b, _ := json.Marshal(resp)
	return b
}

// openAISuccessBody builds a chat completion response with one choice.
func openAISuccessBody(text string) []byte {
	resp := map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1760000000,
		"model":   "gpt-4o",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": text},
		}},
	}
	b, _ := json.Marshal(resp)
	return b
}

// =====================================================================
// Claude Provider Tests
// =====================================================================

func TestClaudeGenerate_Success(t *testing.T) {
	want := "Hello from Claude"
	srv := newTestServer(t, http.StatusOK, claudeSuccessBody(want))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "test-key", BaseURL: srv.URL})

	got, err := p.Generate(context.Background(), Prompt{System: "You are helpful.", User: "Say hello"})
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("Generate: got %q, want %q", got, want)
	}
}

func TestClaudeGenerate_VerifiesRequest(t *testing.T) {
	var capturedHeaders http.Header
	var capturedBody []byte
	var capturedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedHeaders = r.Header.Clone()
		capturedPath = r.URL.Path
		capturedBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(claudeSuccessBody("ok"))
	}))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "sk-ant-test-key", BaseURL: srv.URL})

	_, err := p.Generate(context.Background(), Prompt{
		System:      "system prompt",
		User:        "user prompt",
		MaxTokens:   2048,
		Temperature: 0.5,
	})
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}

	if capturedPath != "/v1/messages" {
		t.Errorf("path: got %q, want /v1/messages", capturedPath)
	}
	if got := capturedHeaders.Get("x-api-key"); got != "sk-ant-test-key" {
		t.Errorf("x-api-key header: got %q, want %q", got, "sk-ant-test-key")
	}
	if got := capturedHeaders.Get("anthropic-version"); got != "2023-06-01" {
		t.Errorf("anthropic-version: got %q, want %q", got, "2023-06-01")
	}
	if got := capturedHeaders.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", got, "application/json")
	}

	var reqBody claudeRequest
	if err := json.Unmarshal(capturedBody, &reqBody); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if reqBody.Model != DefaultClaudeModel {
		t.Errorf("request model: got %q, want %q", reqBody.Model, DefaultClaudeModel)
	}
	if reqBody.MaxTokens != 2048 {
		t.Errorf("max_tokens: got %d, want %d", reqBody.MaxTokens, 2048)
	}
	if reqBody.Temperature == nil || *reqBody.Temperature != 0.5 {
		t.Errorf("temperature: got %v, want 0.5", reqBody.Temperature)
	}
	if reqBody.System != "system prompt" {
		t.Errorf("system: got %q, want %q", reqBody.System, "system prompt")
	}
	if len(reqBody.Messages) != 1 {
		t.Fatalf("messages count: got %d, want 1", len(reqBody.Messages))
	}
	msg := reqBody.Messages[0]
	if msg.Role != "user" || len(msg.Content) != 1 || msg.Content[0].Text != "user prompt" {
		t.Errorf("user message: got %+v", msg)
	}
}

func TestClaudeGenerate_DefaultsApplied(t *testing.T) {
	var reqBody claudeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&reqBody)
		w.Write(claudeSuccessBody("ok"))
	}))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "k", Model: "claude-custom", BaseURL: srv.URL})
	if _, err := p.Generate(context.Background(), Prompt{User: "u"}); err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if reqBody.MaxTokens != DefaultMaxTokens {
		t.Errorf("max_tokens: got %d, want %d", reqBody.MaxTokens, DefaultMaxTokens)
	}
	if reqBody.Temperature == nil || *reqBody.Temperature != DefaultTemperature {
		t.Errorf("temperature: got %v, want %v", reqBody.Temperature, DefaultTemperature)
	}
	if reqBody.Model != "claude-custom" {
		t.Errorf("model: got %q", reqBody.Model)
	}
}

func TestClaudeGenerate_HTTPError(t *testing.T) {
	srv := newTestServer(t, http.StatusTooManyRequests, []byte(`{"type":"error","error":{"type":"rate_limit_error","message":"rate limited"}}`))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := p.Generate(context.Background(), Prompt{User: "u"})

	var upstream *apierr.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *apierr.UpstreamError, got %T: %v", err, err)
	}
	if upstream.Service != "claude" || upstream.Status != http.StatusTooManyRequests {
		t.Errorf("upstream: got %+v", upstream)
	}
	if upstream.Reason != "rate_limit_error: rate limited" {
		t.Errorf("reason: got %q", upstream.Reason)
	}
}

func TestClaudeGenerate_ErrorBodyIncluded(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, []byte(`upstream exploded`))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := p.Generate(context.Background(), Prompt{User: "u"})
	if err == nil || !strings.Contains(err.Error(), "upstream exploded") {
		t.Errorf("error should include body, got %v", err)
	}
}

func TestClaudeGenerate_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{not json`))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	if _, err := p.Generate(context.Background(), Prompt{User: "u"}); err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}

func TestClaudeGenerate_FirstBlockMustBeText(t *testing.T) {
	body := []byte(`{"content":[{"type":"tool_use"},{"type":"text","text":"late"}]}`)
	srv := newTestServer(t, http.StatusOK, body)
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	if _, err := p.Generate(context.Background(), Prompt{User: "u"}); err == nil {
		t.Fatal("expected error when the first block is not text, got nil")
	}
}

func TestClaudeGenerate_EmptyContentBlocks(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{"content":[]}`))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	if _, err := p.Generate(context.Background(), Prompt{User: "u"}); err == nil {
		t.Fatal("expected error for empty content, got nil")
	}
}

func TestClaudeGenerate_CancelledContext(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, claudeSuccessBody("ok"))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newClaude(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	if _, err := p.Generate(ctx, Prompt{User: "u"}); err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}

func TestClaudeGenerate_ConnectionRefused(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, nil)
	url := srv.URL
	srv.Close()

	p := newClaude(ProviderConfig{APIKey: "k", BaseURL: url})
	_, err := p.Generate(context.Background(), Prompt{User: "u"})

	var upstream *apierr.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *apierr.UpstreamError, got %T: %v", err, err)
	}
	if upstream.Status != 0 {
		t.Errorf("transport failures carry no status, got %d", upstream.Status)
	}
}

func TestClaudeDefaults(t *testing.T) {
	p := newClaude(ProviderConfig{APIKey: "k"})
	if p.config.BaseURL != "https://api.anthropic.com" {
		t.Errorf("BaseURL: got %q", p.config.BaseURL)
	}
	if p.config.Model != DefaultClaudeModel {
		t.Errorf("Model: got %q", p.config.Model)
	}
	if p.Name() != "claude" {
		t.Errorf("Name: got %q", p.Name())
	}
}

// =====================================================================
// OpenAI Provider Tests
// =====================================================================

func TestOpenAIGenerate_Success(t *testing.T) {
	var capturedPath, capturedAuth string
	var reqBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&reqBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write(openAISuccessBody("Hello from OpenAI"))
	}))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "test-key", Model: "gpt-4o", BaseURL: srv.URL})

	got, err := p.Generate(context.Background(), Prompt{System: "sys", User: "usr", MaxTokens: 2048, Temperature: 0.5})
	if err != nil {
		t.Fatalf("Generate: unexpected error: %v", err)
	}
	if got != "Hello from OpenAI" {
		t.Errorf("Generate: got %q", got)
	}
	if capturedPath != "/chat/completions" {
		t.Errorf("path: got %q, want /chat/completions", capturedPath)
	}
	if capturedAuth != "Bearer test-key" {
		t.Errorf("Authorization: got %q", capturedAuth)
	}
	if reqBody["model"] != "gpt-4o" {
		t.Errorf("model: got %v", reqBody["model"])
	}
	if reqBody["max_tokens"] != float64(2048) {
		t.Errorf("max_tokens: got %v", reqBody["max_tokens"])
	}
	if reqBody["temperature"] != 0.5 {
		t.Errorf("temperature: got %v", reqBody["temperature"])
	}
	msgs, _ := reqBody["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("messages: got %d, want 2", len(msgs))
	}
}

func TestOpenAIGenerate_HTTPError(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized, []byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := p.Generate(context.Background(), Prompt{User: "u"})

	var upstream *apierr.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *apierr.UpstreamError, got %T: %v", err, err)
	}
	if upstream.Service != "openai" || upstream.Status != http.StatusUnauthorized {
		t.Errorf("upstream: got %+v", upstream)
	}
}

func TestOpenAIGenerate_EmptyChoices(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{"id":"x","object":"chat.completion","created":1,"model":"gpt-4o","choices":[]}`))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "k", BaseURL: srv.URL})
	if _, err := p.Generate(context.Background(), Prompt{User: "u"}); err == nil {
		t.Fatal("expected error for empty choices, got nil")
	}
}

func TestOpenAIName(t *testing.T) {
	p := newOpenAI(ProviderConfig{APIKey: "k"})
	if p.Name() != "openai" {
		t.Errorf("Name: got %q", p.Name())
	}
	if p.config.Model != DefaultOpenAIModel {
		t.Errorf("Model: got %q", p.config.Model)
	}
}

// =====================================================================
// Moderation
// =====================================================================

func TestOpenAIModerator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openAIModRequest
		json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(req.Input, "attack") {
			w.Write([]byte(`{"results":[{"flagged":true,"categories":{"violence":true,"hate/threatening":true,"sexual":false}}]}`))
			return
		}
		w.Write([]byte(`{"results":[{"flagged":false,"categories":{}}]}`))
	}))
	defer srv.Close()

	m := newOpenAIModerator("k", srv.URL)

	res, err := m.CheckSafety(context.Background(), "how much do solar panels cost")
	if err != nil || !res.Safe {
		t.Fatalf("safe prompt: got %+v, %v", res, err)
	}

	res, err = m.CheckSafety(context.Background(), "plan an attack")
	if err != nil {
		t.Fatalf("CheckSafety: unexpected error: %v", err)
	}
	if res.Safe {
		t.Fatal("expected flagged prompt")
	}
	want := []string{"hate (threatening)", "violence"}
	if len(res.Categories) != 2 || res.Categories[0] != want[0] || res.Categories[1] != want[1] {
		t.Errorf("categories: got %v, want %v", res.Categories, want)
	}
}

func TestOpenAIModerator_HTTPError(t *testing.T) {
	srv := newTestServer(t, http.StatusForbidden, []byte(`forbidden`))
	defer srv.Close()

	_, err := newOpenAIModerator("k", srv.URL).CheckSafety(context.Background(), "x")
	var upstream *apierr.UpstreamError
	if !errors.As(err, &upstream) || upstream.Status != http.StatusForbidden {
		t.Fatalf("expected 403 upstream error, got %v", err)
	}
}
