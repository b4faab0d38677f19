// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"testing"
)

func TestToolCreateInvalidatesListing(t *testing.T) {
	app := newTestApp(t, "")
	app.loginAdmin()

	// Prime the listing cache with the empty catalog.
	status, body := app.get("/api/browse")
	if status != 200 {
		t.Fatalf("browse: status = %d", status)
	}
	if n := body["page"].(map[string]any)["totalItems"].(float64); n != 0 {
		t.Fatalf("totalItems = %v, want 0 before create", n)
	}

	status, body = app.send("POST", "/admin/api/tools", map[string]any{
		"name":        "Fresh Tool",
		"description": "Just created through the console.",
		"category":    "Frontend Frameworks",
		"websiteUrl":  "https://fresh.example.com",
		"pricing":     "Free",
	})
	if status != 201 {
		t.Fatalf("create: status = %d body = %v", status, body)
	}
	if body["id"] != "fresh-tool" {
		t.Errorf("derived id = %v, want fresh-tool", body["id"])
	}
	// The parent group is derived from the category.
	if body["group"] != "Tech & Development" {
		t.Errorf("derived group = %v, want Tech & Development", body["group"])
	}

	// The cached listing must not survive the write.
	status, body = app.get("/api/browse")
	if status != 200 {
		t.Fatalf("browse after create: status = %d", status)
	}
	if n := body["page"].(map[string]any)["totalItems"].(float64); n != 1 {
		t.Errorf("totalItems = %v, want 1 after create", n)
	}

	status, body = app.send("POST", "/admin/api/tools", map[string]any{
		"name":     "Broken Tool",
		"category": "Frontend Frameworks",
		"pricing":  "Free",
	})
	if status != 422 {
		t.Errorf("missing website: status = %d, want 422 (body %v)", status, body)
	}
}

func TestToolUpdateAndDelete(t *testing.T) {
	app := newTestApp(t, "")
	app.loginAdmin()
	app.seedTools("Frontend Frameworks", "Tech & Development", 1)

	status, body := app.send("PUT", "/admin/api/tools/frontend-frameworks-tool-000", map[string]any{
		"name":        "Renamed Tool",
		"description": "Updated.",
		"category":    "Frontend Frameworks",
		"websiteUrl":  "https://renamed.example.com",
		"pricing":     "Paid",
	})
	if status != 200 {
		t.Fatalf("update: status = %d body = %v", status, body)
	}

	status, body = app.get("/api/tools/frontend-frameworks-tool-000")
	if status != 200 {
		t.Fatalf("detail: status = %d", status)
	}
	tool := body["tool"].(map[string]any)
	if tool["name"] != "Renamed Tool" || tool["pricing"] != "Paid" {
		t.Errorf("updated tool = %v", tool)
	}

	if status, _ = app.send("PUT", "/admin/api/tools/no-such-tool", map[string]any{
		"name":       "Ghost",
		"category":   "Frontend Frameworks",
		"websiteUrl": "https://ghost.example.com",
		"pricing":    "Free",
	}); status != 404 {
		t.Errorf("update unknown: status = %d, want 404", status)
	}

	if status, _ = app.send("DELETE", "/admin/api/tools/frontend-frameworks-tool-000", nil); status != 200 {
		t.Fatalf("delete: status = %d", status)
	}
	if status, _ = app.get("/api/tools/frontend-frameworks-tool-000"); status != 404 {
		t.Errorf("detail after delete: status = %d, want 404", status)
	}
}

func TestCategoryRenameMigratesTools(t *testing.T) {
	app := newTestApp(t, "")
	app.loginAdmin()
	app.seedTools("Frontend Frameworks", "Tech & Development", 2)

	// The taxonomy endpoint carries the category IDs the console edits by.
	status, body := app.get("/api/taxonomy")
	if status != 200 {
		t.Fatalf("taxonomy: status = %d", status)
	}
	var categoryID string
	for _, raw := range body["groups"].([]any) {
		for _, rawCat := range raw.(map[string]any)["categories"].([]any) {
			c := rawCat.(map[string]any)
			if c["name"] == "Frontend Frameworks" {
				categoryID = c["id"].(string)
			}
		}
	}
	if categoryID == "" {
		t.Fatal("category Frontend Frameworks not found")
	}

	status, body = app.send("PUT", "/admin/api/categories/"+categoryID, map[string]any{
		"name": "UI Frameworks",
	})
	if status != 200 {
		t.Fatalf("rename: status = %d body = %v", status, body)
	}

	// Tools follow the rename: the old slug goes empty, the new one carries
	// the migrated tools.
	status, body = app.get("/api/browse?cat=ui-frameworks")
	if status != 200 {
		t.Fatalf("browse renamed: status = %d", status)
	}
	if n := len(body["items"].([]any)); n != 2 {
		t.Errorf("renamed category items = %d, want 2", n)
	}

	status, body = app.get("/api/tools/frontend-frameworks-tool-000")
	if status != 200 {
		t.Fatalf("detail: status = %d", status)
	}
	if cat := body["tool"].(map[string]any)["category"]; cat != "UI Frameworks" {
		t.Errorf("tool category = %v, want UI Frameworks", cat)
	}
}

func TestSubmissionReviewFlow(t *testing.T) {
	app := newTestApp(t, "")

	status, body := app.send("POST", "/api/submissions", map[string]any{
		"name":        "Community Tool",
		"website":     "https://community.example.com",
		"description": "Suggested by a visitor.",
		"category":    "Frontend Frameworks",
		"pricing":     "Open Source",
	})
	if status != 201 {
		t.Fatalf("submit: status = %d body = %v", status, body)
	}
	subID := body["id"].(string)

	app.loginAdmin()

	status, body = app.get("/admin/api/submissions")
	if status != 200 {
		t.Fatalf("pending list: status = %d", status)
	}
	if n := len(body["submissions"].([]any)); n != 1 {
		t.Fatalf("pending = %d, want 1", n)
	}

	status, body = app.send("POST", "/admin/api/submissions/"+subID+"/approve", nil)
	if status != 201 {
		t.Fatalf("approve: status = %d body = %v", status, body)
	}
	toolID := body["id"].(string)
	if body["group"] != "Tech & Development" {
		t.Errorf("approved tool group = %v, want derived parent group", body["group"])
	}

	// The approved tool is live.
	if status, _ = app.get("/api/tools/" + toolID); status != 200 {
		t.Errorf("approved tool detail: status = %d, want 200", status)
	}

	// A submission is reviewed exactly once.
	if status, _ = app.send("POST", "/admin/api/submissions/"+subID+"/approve", nil); status != 409 {
		t.Errorf("second approve: status = %d, want 409", status)
	}

	status, body = app.get("/admin/api/submissions?status=approved")
	if status != 200 {
		t.Fatalf("approved list: status = %d", status)
	}
	if n := len(body["submissions"].([]any)); n != 1 {
		t.Errorf("approved = %d, want 1", n)
	}
}

func TestAIProviderManagement(t *testing.T) {
	app := newTestApp(t, "")
	app.loginAdmin()

	status, body := app.get("/admin/api/ai/status")
	if status != 200 {
		t.Fatalf("status: %d", status)
	}
	if body["active"] != "mock" {
		t.Errorf("active = %v, want mock", body["active"])
	}

	status, body = app.send("POST", "/admin/api/ai/provider", map[string]any{"provider": "gemini"})
	if status != 422 {
		t.Errorf("unconfigured provider: status = %d, want 422 (body %v)", status, body)
	}

	status, body = app.send("POST", "/admin/api/ai/provider", map[string]any{"provider": "mock"})
	if status != 200 || body["active"] != "mock" {
		t.Errorf("set provider: status = %d body = %v", status, body)
	}
}

func TestSpotlightCreateValidatesPayload(t *testing.T) {
	app := newTestApp(t, "")
	app.loginAdmin()

	status, body := app.send("POST", "/admin/api/spotlights", map[string]any{
		"kind": "github_repo",
		"data": map[string]any{
			"name":     "ollama",
			"url":      "https://github.com/ollama/ollama",
			"language": "Go",
		},
	})
	if status != 422 {
		t.Errorf("repo without stars: status = %d, want 422 (body %v)", status, body)
	}

	status, body = app.send("POST", "/admin/api/spotlights", map[string]any{
		"kind": "github_repo",
		"data": map[string]any{
			"name":     "ollama",
			"url":      "https://github.com/ollama/ollama",
			"stars":    "54.2k",
			"language": "Go",
		},
	})
	if status != 201 {
		t.Fatalf("create: status = %d body = %v", status, body)
	}

	status, body = app.send("POST", "/admin/api/spotlights", map[string]any{
		"kind": "not_a_collection",
		"data": map[string]any{"name": "x"},
	})
	if status != 422 {
		t.Errorf("unknown kind: status = %d, want 422 (body %v)", status, body)
	}
}

func TestCatalogExportWithoutStorage(t *testing.T) {
	app := newTestApp(t, "")
	app.loginAdmin()

	status, body := app.send("POST", "/admin/api/export", nil)
	if status != 503 {
		t.Errorf("export without object storage: status = %d, want 503 (body %v)", status, body)
	}
}

const licenseCheckReply = `{
	"detectedLicense": "MIT",
	"correctedLicense": "AGPL-3.0",
	"confidence": 85,
	"reason": "the upstream project relicensed to AGPLv3"
}`

func TestAILicenseCheck(t *testing.T) {
	app := newTestApp(t, licenseCheckReply)
	app.loginAdmin()

	status, body := app.send("POST", "/admin/api/ai/license-check", map[string]any{
		"name":        "MinIO",
		"license":     "MIT",
		"description": "S3-compatible object storage.",
	})
	if status != 200 {
		t.Fatalf("status = %d, want 200 (body %v)", status, body)
	}
	if body["needsCorrection"] != true {
		t.Errorf("needsCorrection = %v, want true", body["needsCorrection"])
	}
	if body["correctedLicense"] != "AGPL-3.0" {
		t.Errorf("correctedLicense = %v, want AGPL-3.0", body["correctedLicense"])
	}

	status, body = app.send("POST", "/admin/api/ai/license-check", map[string]any{
		"license": "MIT",
	})
	if status != 422 {
		t.Errorf("missing name: status = %d, want 422 (body %v)", status, body)
	}
}
