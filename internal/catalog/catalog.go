// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"devdirectory/internal/models"
	"devdirectory/internal/slug"
)

// Catalog is a read-only snapshot of the tool list in storage order. The
// filter engine depends on this order being stable: filtering narrows the
// slice without re-sorting, so two renders of the same state always show
// tools in the same sequence.
type Catalog struct {
	tools []models.Tool
	byID  map[string]int
}

// NewCatalog builds a snapshot from an ordered tool list.
func NewCatalog(tools []models.Tool) *Catalog {
	byID := make(map[string]int, len(tools))
	for i := range tools {
		byID[tools[i].ID] = i
	}
	return &Catalog{tools: tools, byID: byID}
}

// All returns every tool in storage order. Callers must not mutate it.
func (c *Catalog) All() []models.Tool {
	return c.tools
}

// Len returns the number of tools in the snapshot.
func (c *Catalog) Len() int {
	return len(c.tools)
}

// ByID returns the tool with the given ID, or nil.
func (c *Catalog) ByID(id string) *models.Tool {
	if i, ok := c.byID[id]; ok {
		return &c.tools[i]
	}
	return nil
}

// ByIDs resolves a list of tool IDs, preserving the order of the input
// list rather than catalog order — curated stack sections list tools in a
// deliberate sequence. Unknown IDs are skipped.
func (c *Catalog) ByIDs(ids []string) []models.Tool {
	out := make([]models.Tool, 0, len(ids))
	for _, id := range ids {
		if i, ok := c.byID[id]; ok {
			out = append(out, c.tools[i])
		}
	}
	return out
}

// ByCategorySlug returns tools whose category display name slugifies to
// the given slug. This is an implicit join: tools store the category name,
// not its ID, so renaming a category without migrating tool rows silently
// orphans them. The admin rename path migrates tool rows for exactly this
// reason (see store.ToolStore.RenameCategory).
func (c *Catalog) ByCategorySlug(s string) []models.Tool {
	var out []models.Tool
	for i := range c.tools {
		if slug.Generate(c.tools[i].Category) == s {
			out = append(out, c.tools[i])
		}
	}
	return out
}

// CountByCategoryName returns the number of tools whose category name
// equals the given display name exactly. This is the live count used in
// browse headers and the taxonomy endpoint, with the category's cached
// ToolCount as fallback when it comes up zero.
func (c *Catalog) CountByCategoryName(name string) int {
	n := 0
	for i := range c.tools {
		if c.tools[i].Category == name {
			n++
		}
	}
	return n
}
