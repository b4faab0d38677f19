// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai holds the LLM boundary of the directory: a provider
// registry over OpenAI, Gemini, Claude and Mistral, a moderation
// pre-check, and the stack recommender that turns a project description
// into tool picks.
package ai

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Provider is a single LLM backend. Implementations own their wire
// format and parsing; callers only ever see prompt in, text out.
type Provider interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Name() string
}

// ProviderConfig carries the per-provider credentials from the
// environment. An empty APIKey means the provider stays unconfigured.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// factories maps config names to provider constructors.
var factories = map[string]func(ProviderConfig) Provider{
	"openai":  func(c ProviderConfig) Provider { return newOpenAI(c) },
	"gemini":  func(c ProviderConfig) Provider { return newGemini(c) },
	"claude":  func(c ProviderConfig) Provider { return newClaude(c) },
	"mistral": func(c ProviderConfig) Provider { return newMistral(c) },
}

// Registry holds the configured providers and the name of the active
// one, switchable at runtime from the admin console. Safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	active    string
	moderator Moderator // nil when no moderation key is configured
}

// NewRegistry builds providers for every config with an API key and
// wires up prompt moderation from the same keys: OpenAI's moderation
// endpoint first (it is free), Mistral's as the standby, and when both
// keys exist a fallback moderator that demotes OpenAI permanently after
// an auth rejection (project-scoped keys lack the moderation scope).
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		active:    active,
	}
	for name, cfg := range configs {
		if cfg.APIKey == "" {
			continue
		}
		if build, ok := factories[name]; ok {
			r.providers[name] = build(cfg)
		}
	}
	r.moderator = moderatorFromConfigs(configs)
	return r
}

func moderatorFromConfigs(configs map[string]ProviderConfig) Moderator {
	openaiCfg := configs["openai"]
	mistralCfg := configs["mistral"]
	switch {
	case openaiCfg.APIKey != "" && mistralCfg.APIKey != "":
		return newFallbackModerator(
			newOpenAIModerator(openaiCfg.APIKey, openaiCfg.BaseURL),
			newMistralModerator(mistralCfg.APIKey, mistralCfg.BaseURL),
		)
	case openaiCfg.APIKey != "":
		return newOpenAIModerator(openaiCfg.APIKey, openaiCfg.BaseURL)
	case mistralCfg.APIKey != "":
		return newMistralModerator(mistralCfg.APIKey, mistralCfg.BaseURL)
	}
	return nil
}

// Generate runs the prompt through the active provider.
func (r *Registry) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	p, err := r.Active()
	if err != nil {
		return "", err
	}
	return p.Generate(ctx, systemPrompt, userPrompt)
}

// Active returns the current provider, or an error when the active name
// has no configured provider behind it.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("ai: no provider configured for %q", r.active)
	}
	return p, nil
}

// SetActive switches providers at runtime. A name without a configured
// provider is rejected and the previous active stays in place.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("ai: provider %q is not available (no API key?)", name)
	}
	r.active = name
	return nil
}

// ActiveName returns the active provider's name.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Available lists the configured provider names, sorted for a stable
// admin UI.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds or replaces a provider. Tests inject mocks through it.
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// HasProvider reports whether a named provider is configured.
func (r *Registry) HasProvider(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.providers[name]
	return ok
}

// CheckPrompt runs the prompt through moderation before generation.
// Without a configured moderator every prompt passes; the providers
// still apply their own built-in safety filters.
func (r *Registry) CheckPrompt(ctx context.Context, prompt string) (*ModerationResult, error) {
	if r.moderator == nil {
		return &ModerationResult{Safe: true}, nil
	}
	return r.moderator.CheckSafety(ctx, prompt)
}
