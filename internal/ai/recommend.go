// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"devdirectory/internal/models"
)

// Recommendation is a generated tech stack proposal, enriched with
// directory entries where the model's picks match catalogued tools.
type Recommendation struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Sections    []RecommendationSection `json:"sections"`
}

// RecommendationSection groups recommended tools for one layer of the
// stack (frontend, backend, hosting, and so on).
type RecommendationSection struct {
	Title  string            `json:"title"`
	Reason string            `json:"reason"`
	Tools  []RecommendedTool `json:"tools"`
}

// RecommendedTool is one pick. ID and Category are set only when the pick
// resolves to a directory entry; Logo and URL always have a usable value.
type RecommendedTool struct {
	Name     string `json:"name"`
	Logo     string `json:"logo"`
	URL      string `json:"url"`
	ID       string `json:"id,omitempty"`
	Category string `json:"category,omitempty"`
}

// UnsafePromptError is returned when moderation rejects the project
// description before any generation happens.
type UnsafePromptError struct {
	Categories []string
}

func (e *UnsafePromptError) Error() string {
	if len(e.Categories) == 0 {
		return "prompt rejected by moderation"
	}
	return "prompt rejected by moderation: " + strings.Join(e.Categories, ", ")
}

// Recommender turns a free-text project description into a structured
// stack recommendation using the registry's active provider.
type Recommender struct {
	registry *Registry
}

// NewRecommender creates a recommender backed by the given registry.
func NewRecommender(reg *Registry) *Recommender {
	return &Recommender{registry: reg}
}

const recommendSystemPrompt = `You are a pragmatic software architect helping a developer choose a tech stack.
You answer ONLY with a single JSON object, no prose, no markdown fences, matching exactly:
{"title": string, "description": string, "sections": [{"title": string, "reason": string, "toolNames": [string]}]}
Rules:
- 3 to 6 sections, each covering one layer of the stack (frontend, backend, database, hosting, etc.).
- 1 to 4 toolNames per section, real product names only.
- Prefer tools from the provided directory when they fit; otherwise name the best real alternative.
- "reason" is one or two sentences explaining the pick for this specific project.`

// Recommend moderates the description, asks the active provider for a
// stack, parses the strict-JSON reply and enriches the picks against the
// given catalogue. Returns *UnsafePromptError when moderation flags the
// description.
func (r *Recommender) Recommend(ctx context.Context, description string, tools []models.Tool) (*Recommendation, error) {
	mod, err := r.registry.CheckPrompt(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("recommend moderation: %w", err)
	}
	if !mod.Safe {
		return nil, &UnsafePromptError{Categories: mod.Categories}
	}

	raw, err := r.registry.Generate(ctx, recommendSystemPrompt, buildRecommendPrompt(description, tools))
	if err != nil {
		return nil, fmt.Errorf("recommend generate: %w", err)
	}

	var reply recommendReply
	if err := json.Unmarshal([]byte(stripFences(raw)), &reply); err != nil {
		return nil, fmt.Errorf("recommend parse: %w", err)
	}
	if len(reply.Sections) == 0 {
		return nil, fmt.Errorf("recommend: empty response")
	}

	rec := &Recommendation{
		Title:       reply.Title,
		Description: reply.Description,
	}
	for _, s := range reply.Sections {
		section := RecommendationSection{Title: s.Title, Reason: s.Reason}
		for _, name := range s.ToolNames {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			section.Tools = append(section.Tools, enrichTool(name, tools))
		}
		rec.Sections = append(rec.Sections, section)
	}
	return rec, nil
}

// buildRecommendPrompt combines the project description with a digest of
// the directory so the model prefers catalogued tools.
func buildRecommendPrompt(description string, tools []models.Tool) string {
	var b strings.Builder
	b.WriteString("Project description:\n")
	b.WriteString(description)
	b.WriteString("\n\nDirectory of known tools (name — category):\n")
	for _, t := range tools {
		b.WriteString(t.Name)
		b.WriteString(" — ")
		b.WriteString(t.Category)
		b.WriteString("\n")
	}
	return b.String()
}

// stripFences removes a surrounding markdown code fence if the model
// wrapped its JSON in one despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// enrichTool resolves a model-provided name against the catalogue. Exact
// name matches win over substring matches; both comparisons ignore case.
// Unresolved picks get a generated avatar logo and a search link so the
// client always has something to render.
func enrichTool(name string, tools []models.Tool) RecommendedTool {
	lower := strings.ToLower(name)

	var partial *models.Tool
	for i := range tools {
		known := strings.ToLower(tools[i].Name)
		if known == lower {
			return resolvedTool(name, &tools[i])
		}
		if partial == nil && (strings.Contains(known, lower) || strings.Contains(lower, known)) {
			partial = &tools[i]
		}
	}
	if partial != nil {
		return resolvedTool(name, partial)
	}

	return RecommendedTool{
		Name: name,
		Logo: "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random",
		URL:  "https://www.google.com/search?q=" + url.QueryEscape(name),
	}
}

func resolvedTool(name string, t *models.Tool) RecommendedTool {
	rt := RecommendedTool{
		Name:     t.Name,
		Logo:     t.Logo,
		URL:      t.WebsiteURL,
		ID:       t.ID,
		Category: t.Category,
	}
	if rt.Logo == "" {
		rt.Logo = "https://ui-avatars.com/api/?name=" + url.QueryEscape(t.Name) + "&background=random"
	}
	if rt.URL == "" {
		rt.URL = "https://www.google.com/search?q=" + url.QueryEscape(name)
	}
	return rt
}

// recommendReply mirrors the JSON schema the system prompt demands.
type recommendReply struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Sections    []struct {
		Title     string   `json:"title"`
		Reason    string   `json:"reason"`
		ToolNames []string `json:"toolNames"`
	} `json:"sections"`
}
