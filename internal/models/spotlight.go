// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SpotlightKind names one of the homepage spotlight collections.
type SpotlightKind string

const (
	SpotlightAITool     SpotlightKind = "ai_tool"
	SpotlightAIAgent    SpotlightKind = "ai_agent"
	SpotlightGithubRepo SpotlightKind = "github_repo"
	SpotlightCloud      SpotlightKind = "cloud_provider"
	SpotlightSelfHosted SpotlightKind = "self_hosted"
)

// SpotlightKinds lists every valid spotlight collection.
var SpotlightKinds = []SpotlightKind{
	SpotlightAITool, SpotlightAIAgent, SpotlightGithubRepo,
	SpotlightCloud, SpotlightSelfHosted,
}

// Valid reports whether k is a known spotlight kind.
func (k SpotlightKind) Valid() bool {
	for _, kind := range SpotlightKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// SpotlightItem is one entry of a homepage spotlight collection. The
// collections have different shapes (a trending repo carries a language
// and star string, a cloud provider carries a tier and feature list), so
// the payload is stored as raw JSON and decoded into the typed structs
// below by callers that need the fields.
type SpotlightItem struct {
	ID        uuid.UUID       `json:"id"`
	Kind      SpotlightKind   `json:"kind"`
	SortOrder int             `json:"-"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

// ValidatePayload decodes Data into the typed payload for the item's
// kind and rejects entries missing the fields the front-end cannot
// render without. Unknown kinds are the caller's problem; check Valid
// first.
func (s *SpotlightItem) ValidatePayload() error {
	if len(s.Data) == 0 {
		return errors.New("spotlight data is required")
	}

	decode := func(v any) error {
		if err := json.Unmarshal(s.Data, v); err != nil {
			return fmt.Errorf("%s spotlight payload: %w", s.Kind, err)
		}
		return nil
	}

	switch s.Kind {
	case SpotlightAITool:
		var p AIToolSpotlight
		if err := decode(&p); err != nil {
			return err
		}
		if p.Name == "" || p.Description == "" || p.Category == "" {
			return errors.New("ai_tool spotlight needs name, description and category")
		}
	case SpotlightAIAgent:
		var p AIAgentSpotlight
		if err := decode(&p); err != nil {
			return err
		}
		if p.Name == "" || p.Description == "" {
			return errors.New("ai_agent spotlight needs name and description")
		}
	case SpotlightGithubRepo:
		var p GithubRepoSpotlight
		if err := decode(&p); err != nil {
			return err
		}
		if p.Name == "" || p.URL == "" {
			return errors.New("github_repo spotlight needs name and url")
		}
		if p.Stars == "" || p.Language == "" {
			return errors.New("github_repo spotlight needs stars and language")
		}
	case SpotlightCloud:
		var p CloudProviderSpotlight
		if err := decode(&p); err != nil {
			return err
		}
		if p.Name == "" || p.Type == "" || p.Tier == "" {
			return errors.New("cloud_provider spotlight needs name, type and tier")
		}
	case SpotlightSelfHosted:
		var p SelfHostedSpotlight
		if err := decode(&p); err != nil {
			return err
		}
		if p.Name == "" || p.AlternativeTo == "" {
			return errors.New("self_hosted spotlight needs name and alternativeTo")
		}
	}
	return nil
}

// AIToolSpotlight is the payload shape for the ai_tool collection.
type AIToolSpotlight struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Logo        string   `json:"logo,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// AIAgentSpotlight is the payload shape for the ai_agent collection.
type AIAgentSpotlight struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Logo        string   `json:"logo,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// GithubRepoSpotlight is the payload shape for the github_repo collection.
// Stars is a display string ("54.2k"), not a number.
type GithubRepoSpotlight struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       string `json:"stars"`
	Language    string `json:"language"`
	URL         string `json:"url"`
}

// CloudProviderSpotlight is the payload shape for the cloud_provider collection.
type CloudProviderSpotlight struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Tier     string   `json:"tier"`
	Logo     string   `json:"logo,omitempty"`
	URL      string   `json:"url,omitempty"`
	Features []string `json:"features,omitempty"`
}

// SelfHostedSpotlight is the payload shape for the self_hosted collection.
type SelfHostedSpotlight struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	AlternativeTo string `json:"alternativeTo"`
	Logo          string `json:"logo,omitempty"`
	URL           string `json:"url,omitempty"`
	License       string `json:"license,omitempty"`
}
