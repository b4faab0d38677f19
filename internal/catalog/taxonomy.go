// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog implements the listing engine behind every browse view:
// an in-memory snapshot of the tool catalog and category taxonomy, a
// multi-predicate filter, a pagination engine with an ellipsis page strip,
// and the query-string binding that makes filter state shareable through
// the address bar.
package catalog

import (
	"devdirectory/internal/models"
)

// Taxonomy is a read-only snapshot of the group/category tree. Group order
// is browse-page display order and each group's category slice preserves
// its display order. Snapshots are immutable; the Service swaps in a whole
// new Taxonomy on reload rather than mutating one in place.
type Taxonomy struct {
	groups []models.Group
}

// NewTaxonomy wraps an ordered group list in a snapshot.
func NewTaxonomy(groups []models.Group) *Taxonomy {
	return &Taxonomy{groups: groups}
}

// Groups returns the ordered group list. Callers must not mutate it.
func (t *Taxonomy) Groups() []models.Group {
	return t.groups
}

// GroupBySlug returns the group with the given slug, or nil.
func (t *Taxonomy) GroupBySlug(slug string) *models.Group {
	for i := range t.groups {
		if t.groups[i].Slug == slug {
			return &t.groups[i]
		}
	}
	return nil
}

// CategoryBySlug returns the category with the given slug, or nil.
// Category slugs are globally unique across the taxonomy; if duplicates
// sneak in anyway, the first one in display order wins.
func (t *Taxonomy) CategoryBySlug(slug string) *models.Category {
	for gi := range t.groups {
		cats := t.groups[gi].Categories
		for ci := range cats {
			if cats[ci].Slug == slug {
				return &cats[ci]
			}
		}
	}
	return nil
}

// ParentGroup returns the group containing the category with the given
// slug, or nil if no group has it. Like CategoryBySlug, duplicate slugs
// resolve to the first match in display order rather than an error.
func (t *Taxonomy) ParentGroup(categorySlug string) *models.Group {
	for gi := range t.groups {
		for ci := range t.groups[gi].Categories {
			if t.groups[gi].Categories[ci].Slug == categorySlug {
				return &t.groups[gi]
			}
		}
	}
	return nil
}

// CategoryCount returns the number of categories across all groups.
func (t *Taxonomy) CategoryCount() int {
	n := 0
	for i := range t.groups {
		n += len(t.groups[i].Categories)
	}
	return n
}
