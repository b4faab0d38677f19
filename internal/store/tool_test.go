package store

import (
	"context"
	"testing"

	"devdirectory/internal/models"
)

func TestToolCRUD(t *testing.T) {
	db := testDB(t)
	s := NewToolStore(db)
	t.Cleanup(func() { cleanTools(t, db, "test-hugo", "test-zola") })

	created, err := s.Create(&models.Tool{
		ID:          "test-hugo",
		Name:        "Hugo",
		Description: "The fastest static site generator",
		Category:    "Static Site Generators",
		Group:       "Tech & Development",
		Tags:        []string{"Go", "SSG"},
		WebsiteURL:  "https://gohugo.io",
		Pricing:     models.PricingOpenSource,
		Stars:       74000,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "test-hugo" {
		t.Errorf("created ID = %q", created.ID)
	}
	if len(created.Tags) != 2 || created.Tags[0] != "Go" {
		t.Errorf("created tags = %v", created.Tags)
	}

	found, err := s.FindByID("test-hugo")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.Name != "Hugo" {
		t.Fatalf("FindByID returned %v", found)
	}

	found.Stars = 75000
	found.Tags = append(found.Tags, "Static")
	if err := s.Update(found); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, _ := s.FindByID("test-hugo")
	if updated.Stars != 75000 || len(updated.Tags) != 3 {
		t.Errorf("update not persisted: stars=%d tags=%v", updated.Stars, updated.Tags)
	}

	if err := s.Delete("test-hugo"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, err := s.FindByID("test-hugo")
	if err != nil {
		t.Fatalf("FindByID after delete: %v", err)
	}
	if gone != nil {
		t.Error("tool still present after delete")
	}
}

// TestToolCreateDerivesID checks that an empty ID is slugified from the name.
func TestToolCreateDerivesID(t *testing.T) {
	db := testDB(t)
	s := NewToolStore(db)
	t.Cleanup(func() { cleanTools(t, db, "zola-test-tool") })

	created, err := s.Create(&models.Tool{
		Name:     "Zola Test Tool",
		Category: "Static Site Generators",
		Pricing:  models.PricingOpenSource,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "zola-test-tool" {
		t.Errorf("derived ID = %q, want zola-test-tool", created.ID)
	}
}

// TestListToolsOrder verifies that ListTools preserves insertion order —
// the catalog engine treats this order as canonical.
func TestListToolsOrder(t *testing.T) {
	db := testDB(t)
	s := NewToolStore(db)
	t.Cleanup(func() { cleanTools(t, db, "test-order-b", "test-order-a") })

	// Insert in an order that alphabetical sorting would flip.
	for _, id := range []string{"test-order-b", "test-order-a"} {
		if _, err := s.Create(&models.Tool{ID: id, Name: id, Category: "Test", Pricing: models.PricingFree}); err != nil {
			t.Fatalf("Create %s: %v", id, err)
		}
	}

	tools, err := s.ListTools(context.Background())
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}

	posA, posB := -1, -1
	for i, tool := range tools {
		switch tool.ID {
		case "test-order-a":
			posA = i
		case "test-order-b":
			posB = i
		}
	}
	if posA < 0 || posB < 0 {
		t.Fatal("inserted tools missing from list")
	}
	if posB > posA {
		t.Errorf("insertion order not preserved: b at %d, a at %d", posB, posA)
	}
}

func TestRenameCategoryMigratesTools(t *testing.T) {
	db := testDB(t)
	s := NewToolStore(db)
	t.Cleanup(func() { cleanTools(t, db, "test-rename-tool") })

	if _, err := s.Create(&models.Tool{
		ID: "test-rename-tool", Name: "Rename Me",
		Category: "Old Category Name", Pricing: models.PricingFree,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, err := s.RenameCategory("Old Category Name", "New Category Name")
	if err != nil {
		t.Fatalf("RenameCategory: %v", err)
	}
	if n < 1 {
		t.Errorf("RenameCategory touched %d rows, want at least 1", n)
	}

	tool, _ := s.FindByID("test-rename-tool")
	if tool.Category != "New Category Name" {
		t.Errorf("tool category = %q after rename", tool.Category)
	}
}
