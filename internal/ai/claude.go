// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"net/http"
)

const (
	claudeAPIVersion = "2023-06-01"
	claudeMaxTokens  = 4096
)

// Anthropic Messages API shapes, trimmed to what Generate consumes.
type (
	claudeMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	claudeRequest struct {
		Model     string          `json:"model"`
		MaxTokens int             `json:"max_tokens"`
		System    string          `json:"system,omitempty"`
		Messages  []claudeMessage `json:"messages"`
	}

	claudeResponse struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
)

// claudeProvider talks to the Anthropic Messages API (POST /v1/messages).
type claudeProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func newClaude(cfg ProviderConfig) *claudeProvider {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.anthropic.com"
	}
	return &claudeProvider{
		apiKey:  cfg.APIKey,
		baseURL: base,
		model:   cfg.Model,
		client:  newHTTPClient(),
	}
}

func (p *claudeProvider) Name() string { return "claude" }

func (p *claudeProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := claudeRequest{
		Model:     p.model,
		MaxTokens: claudeMaxTokens,
		System:    systemPrompt,
		Messages:  []claudeMessage{{Role: "user", Content: userPrompt}},
	}

	var resp claudeResponse
	err := postJSON(ctx, p.client, "claude", p.baseURL+"/v1/messages", map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": claudeAPIVersion,
	}, req, &resp)
	if err != nil {
		return "", err
	}

	// The first text block carries the answer; other block types
	// (tool use, thinking) are not requested.
	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", errors.New("claude: no text content in response")
}
