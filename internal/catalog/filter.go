// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"strings"

	"devdirectory/internal/models"
)

// All is the sentinel slug meaning "no constraint" for the group,
// category, and pricing predicates.
const All = "all"

// Predicates is the active filter state for a listing view. The zero
// value is NOT a valid no-op state — use NoopPredicates, which fills in
// the "all" sentinels.
//
// Group and Category are not independent: selecting a category implies
// its parent group, and selecting the "all" group clears the category.
// ParsePredicates enforces the coupling; code constructing Predicates by
// hand must keep it too.
type Predicates struct {
	Search   string   `json:"q"`
	Group    string   `json:"group"`
	Category string   `json:"cat"`
	Pricing  string   `json:"pricing"`
	MinStars int      `json:"stars"`
	Tags     []string `json:"tags"`
}

// NoopPredicates returns the predicate state that matches every tool.
func NoopPredicates() Predicates {
	return Predicates{Group: All, Category: All, Pricing: All}
}

// IsNoop reports whether the predicate set constrains nothing.
func (p Predicates) IsNoop() bool {
	return p.Search == "" &&
		(p.Group == All || p.Group == "") &&
		(p.Category == All || p.Category == "") &&
		(p.Pricing == All || p.Pricing == "") &&
		p.MinStars <= 0 &&
		len(p.Tags) == 0
}

// Apply filters the catalog through the predicate set and returns the
// matching tools in catalog order. It is a pure function: no re-sorting,
// no mutation of the snapshot, deterministic for a given input triple.
//
// Each predicate narrows the working set independently, so application
// order does not change the result; cheap tests run first only as an
// optimisation.
func Apply(c *Catalog, tax *Taxonomy, p Predicates) []models.Tool {
	result := c.All()

	if term := strings.ToLower(strings.TrimSpace(p.Search)); term != "" {
		result = keep(result, func(t *models.Tool) bool {
			return matchesSearch(t, term)
		})
	}

	// A selected group only filters on its own when no category narrows
	// further; a selected category subsumes the group constraint.
	if p.Group != "" && p.Group != All && (p.Category == "" || p.Category == All) {
		if group := tax.GroupBySlug(p.Group); group != nil {
			names := group.CategoryNames()
			result = keep(result, func(t *models.Tool) bool {
				return containsString(names, t.Category)
			})
		}
	}

	if p.Category != "" && p.Category != All {
		// Exact, case-sensitive name equality. Search and slug matching
		// are case-insensitive but this comparison intentionally is not:
		// it mirrors the long-standing browse behaviour and is locked in by
		// TestApplyCategoryCaseSensitive. An unknown slug disables the
		// predicate rather than emptying the result.
		if cat := tax.CategoryBySlug(p.Category); cat != nil {
			result = keep(result, func(t *models.Tool) bool {
				return t.Category == cat.Name
			})
		}
	}

	if p.Pricing != "" && p.Pricing != All {
		result = keep(result, func(t *models.Tool) bool {
			return string(t.Pricing) == p.Pricing
		})
	}

	if p.MinStars > 0 {
		result = keep(result, func(t *models.Tool) bool {
			return t.Stars >= p.MinStars
		})
	}

	if len(p.Tags) > 0 {
		// Union semantics: one shared tag is enough.
		result = keep(result, func(t *models.Tool) bool {
			for _, tag := range p.Tags {
				if t.HasTag(tag) {
					return true
				}
			}
			return false
		})
	}

	return result
}

// matchesSearch reports whether the lowercased term is a substring of the
// tool's lowercased name, long description, or any lowercased tag.
func matchesSearch(t *models.Tool, term string) bool {
	if strings.Contains(strings.ToLower(t.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), term) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// keep returns the tools for which pred is true, preserving order.
func keep(tools []models.Tool, pred func(*models.Tool) bool) []models.Tool {
	out := make([]models.Tool, 0, len(tools))
	for i := range tools {
		if pred(&tools[i]) {
			out = append(out, tools[i])
		}
	}
	return out
}

// containsString reports whether list contains s (exact match).
func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
