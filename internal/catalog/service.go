// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"log/slog"
	"sync"

	"devdirectory/internal/models"
)

// ToolSource supplies the ordered tool list, typically from PostgreSQL.
type ToolSource interface {
	ListTools(ctx context.Context) ([]models.Tool, error)
}

// TaxonomySource supplies the ordered group/category tree.
type TaxonomySource interface {
	ListGroups(ctx context.Context) ([]models.Group, error)
}

// Service owns the live catalog and taxonomy snapshots that every listing
// view reads. It is an explicit, injected dependency — there is no
// package-level singleton — and admin handlers call Reload after each
// confirmed write so the next browse request sees the change. Filtering
// and pagination always operate on a snapshot pair taken together, so a
// reload mid-request never mixes old tools with a new taxonomy.
type Service struct {
	mu       sync.RWMutex
	catalog  *Catalog
	taxonomy *Taxonomy

	tools  ToolSource
	groups TaxonomySource
}

// NewService creates a service over the given sources. The snapshot
// starts on the bundled baseline so the directory can serve traffic
// before (or without) a successful load.
func NewService(tools ToolSource, groups TaxonomySource) *Service {
	s := &Service{tools: tools, groups: groups}

	baseGroups, baseTools, err := Baseline()
	if err != nil {
		// The baseline is embedded at compile time; a parse failure is a
		// build defect, but an empty snapshot still keeps the API total.
		slog.Error("baseline dataset unavailable", "error", err)
		baseGroups, baseTools = nil, nil
	}
	s.catalog = NewCatalog(baseTools)
	s.taxonomy = NewTaxonomy(baseGroups)
	return s
}

// Load fetches both snapshots from the sources. On failure the current
// snapshot (baseline at startup) is kept and the error is logged — the
// listing renders an empty or baseline state rather than an error page.
func (s *Service) Load(ctx context.Context) error {
	groups, err := s.groups.ListGroups(ctx)
	if err != nil {
		slog.Error("taxonomy load failed, keeping current snapshot", "error", err)
		return err
	}
	tools, err := s.tools.ListTools(ctx)
	if err != nil {
		slog.Error("catalog load failed, keeping current snapshot", "error", err)
		return err
	}

	s.mu.Lock()
	s.catalog = NewCatalog(tools)
	s.taxonomy = NewTaxonomy(groups)
	s.mu.Unlock()

	slog.Info("catalog snapshot loaded", "tools", len(tools), "groups", len(groups))
	return nil
}

// Reload is the refresh entry point invoked by admin handlers after every
// successful write. Listing views never watch the database for changes.
func (s *Service) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// Snapshot returns the current catalog and taxonomy as a consistent pair.
func (s *Service) Snapshot() (*Catalog, *Taxonomy) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog, s.taxonomy
}

// CategoryToolCount resolves the displayed tool count for a category:
// the live count from the current catalog, then the advisory cached
// count, then zero.
func CategoryToolCount(c *Catalog, cat *models.Category) int {
	if n := c.CountByCategoryName(cat.Name); n > 0 {
		return n
	}
	return cat.ToolCount
}

// GroupToolCount resolves the displayed tool count for a whole group:
// the live count of tools in any of its categories, falling back to the
// sum of the categories' advisory counts.
func GroupToolCount(c *Catalog, g *models.Group) int {
	names := g.CategoryNames()
	live := 0
	for _, t := range c.All() {
		if containsString(names, t.Category) {
			live++
		}
	}
	if live > 0 {
		return live
	}
	cached := 0
	for i := range g.Categories {
		cached += g.Categories[i].ToolCount
	}
	return cached
}
