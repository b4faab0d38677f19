// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"net/http"
	"strings"
	"sync"
)

// ModerationResult is the outcome of a prompt safety check.
type ModerationResult struct {
	Safe       bool     // true if the prompt passes moderation
	Categories []string // flagged category names, empty when safe
}

// Moderator screens visitor prompts before they reach a generation
// endpoint. When unsafe, Categories names the reasons.
type Moderator interface {
	CheckSafety(ctx context.Context, text string) (*ModerationResult, error)
}

// Both providers accept the same request shape.
type moderationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// openAIModerator calls the OpenAI Moderation API (POST /v1/moderations),
// free for all OpenAI API key holders.
type openAIModerator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newOpenAIModerator(apiKey, baseURL string) *openAIModerator {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &openAIModerator{apiKey: apiKey, baseURL: baseURL, client: newModerationClient()}
}

func (m *openAIModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	var resp struct {
		Results []struct {
			Flagged    bool            `json:"flagged"`
			Categories map[string]bool `json:"categories"`
		} `json:"results"`
	}

	req := moderationRequest{Model: "omni-moderation-latest", Input: text}
	err := postJSON(ctx, m.client, "moderation", m.baseURL+"/moderations", map[string]string{
		"Authorization": "Bearer " + m.apiKey,
	}, req, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 || !resp.Results[0].Flagged {
		return &ModerationResult{Safe: true}, nil
	}

	var flagged []string
	for cat, hit := range resp.Results[0].Categories {
		if hit {
			flagged = append(flagged, displayCategory(cat))
		}
	}
	return &ModerationResult{Safe: false, Categories: flagged}, nil
}

// displayCategory turns an API category identifier into readable text:
// "hate/threatening" becomes "hate (threatening)", underscores become
// spaces.
func displayCategory(cat string) string {
	display := strings.ReplaceAll(cat, "/", " (")
	if strings.Contains(cat, "/") {
		display += ")"
	}
	return strings.ReplaceAll(display, "_", " ")
}

// mistralModerator calls the Mistral Moderation API. Unlike OpenAI there
// is no top-level flagged bit, only per-category booleans.
type mistralModerator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newMistralModerator(apiKey, baseURL string) *mistralModerator {
	if baseURL == "" {
		baseURL = "https://api.mistral.ai"
	}
	return &mistralModerator{apiKey: apiKey, baseURL: baseURL, client: newModerationClient()}
}

func (m *mistralModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	var resp struct {
		Results []struct {
			Categories map[string]bool `json:"categories"`
		} `json:"results"`
	}

	req := moderationRequest{Model: "mistral-moderation-latest", Input: text}
	err := postJSON(ctx, m.client, "mistral moderation", m.baseURL+"/v1/moderations", map[string]string{
		"Authorization": "Bearer " + m.apiKey,
	}, req, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return &ModerationResult{Safe: true}, nil
	}

	var flagged []string
	for cat, hit := range resp.Results[0].Categories {
		if hit {
			flagged = append(flagged, strings.ReplaceAll(cat, "_", " "))
		}
	}
	return &ModerationResult{Safe: len(flagged) == 0, Categories: flagged}, nil
}

// fallbackModerator tries a primary moderator and switches to a backup
// when the primary's API key is rejected. Project-scoped OpenAI keys
// can pass chat completions but fail the moderation endpoint, so the
// demotion is sticky: once the primary returns an auth error it is not
// retried.
type fallbackModerator struct {
	mu      sync.Mutex
	primary Moderator
	backup  Moderator
	demoted bool
}

func newFallbackModerator(primary, backup Moderator) *fallbackModerator {
	return &fallbackModerator{primary: primary, backup: backup}
}

func (m *fallbackModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	m.mu.Lock()
	demoted := m.demoted
	m.mu.Unlock()

	if !demoted {
		result, err := m.primary.CheckSafety(ctx, text)
		if err == nil {
			return result, nil
		}
		if !isAuthError(err) {
			return nil, err
		}
		m.mu.Lock()
		m.demoted = true
		m.mu.Unlock()
	}

	return m.backup.CheckSafety(ctx, text)
}
