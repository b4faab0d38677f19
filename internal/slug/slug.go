// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives URL-safe identifiers from display names. Category
// and group slugs are the sole lookup keys in browse navigation, and the
// tool→category join relies on slugifying the category display name, so
// Generate must stay deterministic across the whole codebase.
package slug

import (
	"regexp"
	"strings"
)

var (
	// stripped matches characters that never appear in a slug.
	stripped = regexp.MustCompile(`[^a-z0-9\s-]`)
	// hyphenRuns collapses consecutive hyphens into one.
	hyphenRuns = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from a display name.
// Example: "Frontend Frameworks" → "frontend-frameworks",
// "CI/CD Tools" → "cicd-tools".
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = stripped.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = hyphenRuns.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
