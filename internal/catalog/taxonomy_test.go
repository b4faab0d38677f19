// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"testing"

	"github.com/google/uuid"

	"devdirectory/internal/models"
)

func TestTaxonomyLookups(t *testing.T) {
	tax := testTaxonomy()

	if got := tax.GroupBySlug("tech-development"); got == nil || got.Name != "Tech & Development" {
		t.Errorf("GroupBySlug(tech-development) = %v", got)
	}
	if got := tax.GroupBySlug("no-such-group"); got != nil {
		t.Errorf("GroupBySlug(no-such-group) = %v, want nil", got)
	}

	if got := tax.CategoryBySlug("vector-databases"); got == nil || got.Name != "Vector Databases" {
		t.Errorf("CategoryBySlug(vector-databases) = %v", got)
	}
	if got := tax.CategoryBySlug("no-such-category"); got != nil {
		t.Errorf("CategoryBySlug(no-such-category) = %v, want nil", got)
	}

	if got := tax.ParentGroup("backend-frameworks"); got == nil || got.Slug != "tech-development" {
		t.Errorf("ParentGroup(backend-frameworks) = %v", got)
	}
	if got := tax.ParentGroup("no-such-category"); got != nil {
		t.Errorf("ParentGroup(no-such-category) = %v, want nil", got)
	}

	if got := tax.CategoryCount(); got != 3 {
		t.Errorf("CategoryCount() = %d, want 3", got)
	}
}

// TestTaxonomyDuplicateSlug locks in first-match-wins resolution when the
// same category slug appears in two groups.
func TestTaxonomyDuplicateSlug(t *testing.T) {
	first := models.Group{ID: uuid.New(), Name: "First", Slug: "first"}
	first.Categories = []models.Category{
		{ID: uuid.New(), GroupID: first.ID, Name: "Monitoring", Slug: "monitoring"},
	}
	second := models.Group{ID: uuid.New(), Name: "Second", Slug: "second"}
	second.Categories = []models.Category{
		{ID: uuid.New(), GroupID: second.ID, Name: "Monitoring Again", Slug: "monitoring"},
	}
	tax := NewTaxonomy([]models.Group{first, second})

	if got := tax.CategoryBySlug("monitoring"); got == nil || got.Name != "Monitoring" {
		t.Errorf("CategoryBySlug(monitoring) = %v, want first group's category", got)
	}
	if got := tax.ParentGroup("monitoring"); got == nil || got.Slug != "first" {
		t.Errorf("ParentGroup(monitoring) = %v, want first group", got)
	}
}

func TestTaxonomyGroupOrder(t *testing.T) {
	tax := testTaxonomy()
	groups := tax.Groups()
	if len(groups) != 2 || groups[0].Slug != "tech-development" || groups[1].Slug != "ai-ml" {
		t.Errorf("Groups() order = %v", groups)
	}
}
