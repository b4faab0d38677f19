package ai

import (
	"context"
	"fmt"
	"net/http"
)

// Chat-completions shapes shared by the OpenAI and Mistral providers.
type (
	openAIMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	openAIRequest struct {
		Model    string          `json:"model"`
		Messages []openAIMessage `json:"messages"`
	}

	openAIResponse struct {
		Choices []struct {
			Message openAIMessage `json:"message"`
		} `json:"choices"`
	}
)

// openAIProvider speaks the chat completions protocol
// (POST {base}/chat/completions). Mistral reuses it under its own label
// since its API is OpenAI-compatible.
type openAIProvider struct {
	label   string
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// newChatProvider builds a provider for any OpenAI-compatible endpoint.
func newChatProvider(label, defaultBase string, cfg ProviderConfig) *openAIProvider {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBase
	}
	return &openAIProvider{
		label:   label,
		apiKey:  cfg.APIKey,
		baseURL: base,
		model:   cfg.Model,
		client:  newHTTPClient(),
	}
}

func newOpenAI(cfg ProviderConfig) *openAIProvider {
	return newChatProvider("openai", "https://api.openai.com/v1", cfg)
}

func (p *openAIProvider) Name() string { return p.label }

func (p *openAIProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := openAIRequest{
		Model: p.model,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	var resp openAIResponse
	err := postJSON(ctx, p.client, p.label, p.baseURL+"/chat/completions", map[string]string{
		"Authorization": "Bearer " + p.apiKey,
	}, req, &resp)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices returned", p.label)
	}
	return resp.Choices[0].Message.Content, nil
}
