// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Request and response shapes for the Gemini generateContent endpoint.
// Only the fields the recommender needs are mapped.
type (
	geminiPart struct {
		Text string `json:"text"`
	}

	geminiContent struct {
		Parts []geminiPart `json:"parts"`
	}

	geminiRequest struct {
		SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
		Contents          []geminiContent `json:"contents"`
	}

	geminiResponse struct {
		Candidates []struct {
			Content geminiContent `json:"content"`
		} `json:"candidates"`
	}
)

// geminiProvider talks to the Google Gemini REST API
// (POST /v1beta/models/{model}:generateContent).
type geminiProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func newGemini(cfg ProviderConfig) *geminiProvider {
	base := cfg.BaseURL
	if base == "" {
		base = "https://generativelanguage.googleapis.com"
	}
	return &geminiProvider{
		apiKey:  cfg.APIKey,
		baseURL: base,
		model:   cfg.Model,
		client:  newHTTPClient(),
	}
}

func (p *geminiProvider) Name() string { return "gemini" }

func (p *geminiProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents:          []geminiContent{{Parts: []geminiPart{{Text: userPrompt}}}},
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.baseURL, p.model)

	var resp geminiResponse
	err := postJSON(ctx, p.client, "gemini", url, map[string]string{
		"x-goog-api-key": p.apiKey,
	}, req, &resp)
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("gemini: no candidates returned")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text, nil
		}
	}
	return "", errors.New("gemini: no text in response")
}
