package catalog

import "testing"

func TestCatalogByID(t *testing.T) {
	c := testCatalog()

	if got := c.ByID("django"); got == nil || got.Name != "Django" {
		t.Errorf("ByID(django) = %v", got)
	}
	if got := c.ByID("no-such-tool"); got != nil {
		t.Errorf("ByID(no-such-tool) = %v, want nil", got)
	}
}

// TestCatalogByIDs checks that resolution follows the input order, not
// catalog order, and silently drops unknown IDs.
func TestCatalogByIDs(t *testing.T) {
	c := testCatalog()

	got := c.ByIDs([]string{"tailwindui", "no-such-tool", "react"})
	if !equalIDs(ids(got), []string{"tailwindui", "react"}) {
		t.Errorf("ByIDs order = %v", ids(got))
	}

	if got := c.ByIDs(nil); len(got) != 0 {
		t.Errorf("ByIDs(nil) = %v, want empty", ids(got))
	}
}

func TestCatalogByCategorySlug(t *testing.T) {
	c := testCatalog()

	got := c.ByCategorySlug("frontend-frameworks")
	if !equalIDs(ids(got), []string{"react", "vue"}) {
		t.Errorf("ByCategorySlug(frontend-frameworks) = %v", ids(got))
	}
	if got := c.ByCategorySlug("no-such-category"); len(got) != 0 {
		t.Errorf("unknown slug matched %v", ids(got))
	}
}

func TestCountByCategoryName(t *testing.T) {
	c := testCatalog()

	if got := c.CountByCategoryName("Frontend Frameworks"); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
	// The count is an exact name match; a case variant is a different
	// category as far as the data model is concerned.
	if got := c.CountByCategoryName("frontend frameworks"); got != 0 {
		t.Errorf("case variant counted %d tools", got)
	}
}
