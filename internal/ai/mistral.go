// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

// newMistral builds a Mistral provider. Mistral's chat completions API
// is OpenAI-compatible, so only the label and default endpoint differ.
func newMistral(cfg ProviderConfig) *openAIProvider {
	return newChatProvider("mistral", "https://api.mistral.ai/v1", cfg)
}
