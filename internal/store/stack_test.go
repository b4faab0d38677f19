package store

import (
	"testing"

	"devdirectory/internal/models"
)

func TestStackCRUD(t *testing.T) {
	db := testDB(t)
	s := NewStackStore(db)
	t.Cleanup(func() { cleanStacks(t, db, "test-mern") })

	created, err := s.Create(&models.Stack{
		Slug:        "test-mern",
		Name:        "MERN",
		Description: "MongoDB, Express, React, Node",
		Sections: []models.StackSection{
			{Title: "Frontend", ToolIDs: []string{"react"}},
			{Title: "Backend", Description: "API layer", ToolIDs: []string{"express", "nodejs"}},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created.Sections) != 2 {
		t.Fatalf("created sections = %d", len(created.Sections))
	}
	// Section and tool order is meaningful — it must survive the round trip.
	if created.Sections[1].ToolIDs[0] != "express" {
		t.Errorf("section tool order = %v", created.Sections[1].ToolIDs)
	}

	found, err := s.FindBySlug("test-mern")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found == nil || found.Name != "MERN" {
		t.Fatalf("FindBySlug returned %v", found)
	}

	found.Sections = append(found.Sections, models.StackSection{Title: "Database", ToolIDs: []string{"mongodb"}})
	if err := s.Update(found); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, _ := s.FindBySlug("test-mern")
	if len(updated.Sections) != 3 {
		t.Errorf("updated sections = %d, want 3", len(updated.Sections))
	}

	if err := s.Delete(found.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, _ := s.FindBySlug("test-mern")
	if gone != nil {
		t.Error("stack still present after delete")
	}
}

func TestSubmissionLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewSubmissionStore(db)
	t.Cleanup(func() { cleanSubmissions(t, db, "Test Submitted Tool") })

	sub, err := s.Create(&models.Submission{
		Name:        "Test Submitted Tool",
		Website:     "https://example.com",
		Description: "A tool someone suggested",
		Category:    "Frontend Frameworks",
		Pricing:     models.PricingFree,
		Email:       "visitor@example.com",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sub.Status != models.SubmissionPending {
		t.Errorf("new submission status = %q, want pending", sub.Status)
	}

	pending, err := s.List(models.SubmissionPending)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	foundInList := false
	for _, p := range pending {
		if p.ID == sub.ID {
			foundInList = true
		}
	}
	if !foundInList {
		t.Error("created submission missing from pending list")
	}

	if err := s.SetStatus(sub.ID, models.SubmissionApproved); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	approved, _ := s.FindByID(sub.ID)
	if approved.Status != models.SubmissionApproved {
		t.Errorf("status = %q after approval", approved.Status)
	}
}
