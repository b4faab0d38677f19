// catalog_test.go provides shared fixtures for the engine tests: a small
// two-group taxonomy and a tool list with known categories, tags, pricing
// tiers, and star counts.
package catalog

import (
	"github.com/google/uuid"

	"devdirectory/internal/models"
)

// testTaxonomy builds a fixed two-group taxonomy:
//
//	Tech & Development: Frontend Frameworks, Backend Frameworks
//	AI & ML:            Vector Databases
func testTaxonomy() *Taxonomy {
	tech := models.Group{ID: uuid.New(), Name: "Tech & Development", Slug: "tech-development"}
	tech.Categories = []models.Category{
		{ID: uuid.New(), GroupID: tech.ID, Name: "Frontend Frameworks", Slug: "frontend-frameworks", ToolCount: 3},
		{ID: uuid.New(), GroupID: tech.ID, Name: "Backend Frameworks", Slug: "backend-frameworks", ToolCount: 2},
	}
	ai := models.Group{ID: uuid.New(), Name: "AI & ML", Slug: "ai-ml"}
	ai.Categories = []models.Category{
		{ID: uuid.New(), GroupID: ai.ID, Name: "Vector Databases", Slug: "vector-databases", ToolCount: 9},
	}
	return NewTaxonomy([]models.Group{tech, ai})
}

// testTools returns the fixture tool list in storage order.
func testTools() []models.Tool {
	return []models.Tool{
		{
			ID: "react", Name: "React", Description: "A library for building user interfaces",
			Category: "Frontend Frameworks", Group: "Tech & Development",
			Tags: []string{"React", "JavaScript"}, Pricing: models.PricingOpenSource, Stars: 220000,
		},
		{
			ID: "vue", Name: "Vue", Description: "The progressive JavaScript framework",
			Category: "Frontend Frameworks", Group: "Tech & Development",
			Tags: []string{"Vue", "JavaScript"}, Pricing: models.PricingOpenSource, Stars: 46000,
		},
		{
			ID: "django", Name: "Django", Description: "The web framework for perfectionists with deadlines",
			Category: "Backend Frameworks", Group: "Tech & Development",
			Tags: []string{"Python"}, Pricing: models.PricingOpenSource, Stars: 77000,
		},
		{
			ID: "pinecone", Name: "Pinecone", Description: "Managed vector database for semantic search",
			Category: "Vector Databases", Group: "AI & ML",
			Tags: []string{"AI", "Database"}, Pricing: models.PricingFreemium,
		},
		{
			ID: "tailwindui", Name: "Tailwind UI", Description: "Beautiful UI components by the makers of Tailwind CSS",
			Category: "UI Kits", Group: "Design & Frontend",
			Tags: []string{"CSS", "React"}, Pricing: models.PricingPaid, Stars: 500,
		},
	}
}

func testCatalog() *Catalog {
	return NewCatalog(testTools())
}

// ids extracts tool IDs for order-sensitive assertions.
func ids(tools []models.Tool) []string {
	out := make([]string, len(tools))
	for i, t := range tools {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
