// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the domain types shared by the stores, the
// catalog engine, and the HTTP handlers.
package models

import "time"

// Pricing classifies how a tool is monetised.
type Pricing string

const (
	PricingFree       Pricing = "Free"
	PricingPaid       Pricing = "Paid"
	PricingFreemium   Pricing = "Freemium"
	PricingOpenSource Pricing = "Open Source"
)

// PricingOptions lists every valid pricing tier in display order.
var PricingOptions = []Pricing{PricingFree, PricingOpenSource, PricingFreemium, PricingPaid}

// Valid reports whether p is one of the known pricing tiers.
func (p Pricing) Valid() bool {
	for _, opt := range PricingOptions {
		if p == opt {
			return true
		}
	}
	return false
}

// Tool is a single catalog entry. The ID is a stable string chosen at
// creation time and never reused. Category and Group hold display names;
// the taxonomy join happens by slugified name, not by foreign key (see
// catalog.Catalog.ByCategorySlug).
type Tool struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	Category         string   `json:"category"`
	Group            string   `json:"group"`
	Tags             []string `json:"tags"`
	WebsiteURL       string   `json:"websiteUrl"`
	GithubURL        string   `json:"githubUrl,omitempty"`
	Pricing          Pricing  `json:"pricing"`
	Stars            int      `json:"stars,omitempty"`
	StarsWeekly      int      `json:"starsWeekly,omitempty"`
	Featured         bool     `json:"featured,omitempty"`
	Logo             string   `json:"logo,omitempty"`
	AlternativeTo    string   `json:"alternativeTo,omitempty"`
	Deal             string   `json:"deal,omitempty"`
	DealURL          string   `json:"dealUrl,omitempty"`
	License          string   `json:"license,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasTag reports whether the tool carries the given tag (exact match).
func (t *Tool) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}
