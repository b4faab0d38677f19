// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"devdirectory/internal/ai"
	"devdirectory/internal/cache"
	"devdirectory/internal/catalog"
	"devdirectory/internal/middleware"
	"devdirectory/internal/models"
	"devdirectory/internal/slug"
	"devdirectory/internal/storage"
	"devdirectory/internal/store"
)

// maxLogoBytes caps logo uploads at 2 MiB.
const maxLogoBytes = 2 << 20

// Admin groups all admin console HTTP handlers and their dependencies.
type Admin struct {
	svc             *catalog.Service
	listing         *cache.ListingCache
	toolStore       *store.ToolStore
	groupStore      *store.GroupStore
	categoryStore   *store.CategoryStore
	stackStore      *store.StackStore
	guideStore      *store.GuideStore
	spotlightStore  *store.SpotlightStore
	submissionStore *store.SubmissionStore
	userStore       *store.UserStore
	storageClient   *storage.Client
	aiRegistry      *ai.Registry
}

// NewAdmin creates a new Admin handler group with the given dependencies.
// storageClient may be nil if S3 is not configured.
func NewAdmin(svc *catalog.Service, listing *cache.ListingCache, toolStore *store.ToolStore, groupStore *store.GroupStore, categoryStore *store.CategoryStore, stackStore *store.StackStore, guideStore *store.GuideStore, spotlightStore *store.SpotlightStore, submissionStore *store.SubmissionStore, userStore *store.UserStore, storageClient *storage.Client, aiRegistry *ai.Registry) *Admin {
	return &Admin{
		svc:             svc,
		listing:         listing,
		toolStore:       toolStore,
		groupStore:      groupStore,
		categoryStore:   categoryStore,
		stackStore:      stackStore,
		guideStore:      guideStore,
		spotlightStore:  spotlightStore,
		submissionStore: submissionStore,
		userStore:       userStore,
		storageClient:   storageClient,
		aiRegistry:      aiRegistry,
	}
}

// refresh reloads the in-memory catalog from the database and clears the
// listing cache. Every successful admin write ends here: the snapshot is
// never patched optimistically, the database is the source of truth.
func (a *Admin) refresh(ctx context.Context) {
	if err := a.svc.Reload(ctx); err != nil {
		slog.Error("catalog reload failed", "error", err)
	}
	a.listing.InvalidateAll(ctx)
}

// Reload is the manual refresh endpoint.
func (a *Admin) Reload(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.Reload(r.Context()); err != nil {
		slog.Error("catalog reload failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Reload failed.")
		return
	}
	a.listing.InvalidateAll(r.Context())
	cat, _ := a.svc.Snapshot()
	respond(w, http.StatusOK, map[string]any{"status": "reloaded", "tools": cat.Len()})
}

// --- Tools CRUD ---

// ToolsList serves every tool straight from the database, bypassing the
// snapshot, so admins see rows the catalog has not reloaded yet.
func (a *Admin) ToolsList(w http.ResponseWriter, r *http.Request) {
	tools, err := a.toolStore.ListTools(r.Context())
	if err != nil {
		slog.Error("list tools failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	respond(w, http.StatusOK, map[string]any{"items": tools})
}

// ToolCreate inserts a new tool. An empty ID is derived from the name;
// an empty group is derived from the category's parent group.
func (a *Admin) ToolCreate(w http.ResponseWriter, r *http.Request) {
	var tool models.Tool
	if err := decodeJSON(r, &tool); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if msg := validateTool(&tool); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if tool.Group == "" {
		tool.Group = a.groupNameForCategory(tool.Category)
	}

	created, err := a.toolStore.Create(&tool)
	if err != nil {
		slog.Error("tool create failed", "error", err)
		respondError(w, http.StatusConflict, "A tool with this ID already exists.")
		return
	}

	a.refresh(r.Context())
	respond(w, http.StatusCreated, created)
}

// ToolUpdate replaces a tool's fields.
func (a *Admin) ToolUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := a.toolStore.FindByID(id)
	if err != nil {
		slog.Error("tool lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Tool not found.")
		return
	}

	var tool models.Tool
	if err := decodeJSON(r, &tool); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	tool.ID = id
	if msg := validateTool(&tool); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if tool.Group == "" {
		tool.Group = a.groupNameForCategory(tool.Category)
	}

	if err := a.toolStore.Update(&tool); err != nil {
		slog.Error("tool update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}

	a.refresh(r.Context())
	respond(w, http.StatusOK, tool)
}

// ToolDelete removes a tool along with its hosted logo object, if any.
func (a *Admin) ToolDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tool, err := a.toolStore.FindByID(id)
	if err != nil {
		slog.Error("tool lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}

	if err := a.toolStore.Delete(id); err != nil {
		slog.Error("tool delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	if tool != nil {
		a.deleteLogoObject(r.Context(), tool.Logo)
	}

	a.refresh(r.Context())
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// deleteLogoObject removes a logo from the public bucket when the URL
// points at our storage. Foreign URLs (a tool's own CDN) and missing
// storage configuration are silent no-ops; a failed delete only leaks
// an orphan object, so it is logged rather than surfaced.
func (a *Admin) deleteLogoObject(ctx context.Context, logoURL string) {
	if a.storageClient == nil || logoURL == "" {
		return
	}
	key, ok := a.storageClient.ExtractKey(logoURL)
	if !ok {
		return
	}
	if err := a.storageClient.Delete(ctx, a.storageClient.PublicBucket(), key); err != nil {
		slog.Warn("logo object delete failed", "error", err, "key", key)
	}
}

// LogoUpload stores a logo image for a tool in S3 and points the tool's
// Logo field at the uploaded file.
func (a *Admin) LogoUpload(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		respondError(w, http.StatusServiceUnavailable, "Object storage is not configured.")
		return
	}

	id := chi.URLParam(r, "id")
	tool, err := a.toolStore.FindByID(id)
	if err != nil {
		slog.Error("tool lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	if tool == nil {
		respondError(w, http.StatusNotFound, "Tool not found.")
		return
	}

	if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Upload too large or malformed (max 2 MiB).")
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing logo file field.")
		return
	}
	defer file.Close()

	logoURL, err := a.storageClient.UploadLogo(r.Context(), tool.ID, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		slog.Error("logo upload failed", "error", err, "tool", tool.ID)
		respondError(w, http.StatusBadRequest, "Upload failed. Logos must be PNG, JPEG, SVG or WebP.")
		return
	}

	// A re-upload with a different content type gets a new extension
	// and therefore a new key; drop the superseded object.
	prevLogo := tool.Logo
	tool.Logo = logoURL
	if err := a.toolStore.Update(tool); err != nil {
		slog.Error("tool logo update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	if prevLogo != logoURL {
		a.deleteLogoObject(r.Context(), prevLogo)
	}

	a.refresh(r.Context())
	respond(w, http.StatusOK, map[string]string{"logo": logoURL})
}

// groupNameForCategory finds the display name of the group owning the
// named category. Unknown categories yield an empty group, which the
// catalog treats as uncategorised at the group tier.
func (a *Admin) groupNameForCategory(categoryName string) string {
	_, tax := a.svc.Snapshot()
	for _, g := range tax.Groups() {
		for _, c := range g.Categories {
			if c.Name == categoryName {
				return g.Name
			}
		}
	}
	return ""
}

// --- Groups CRUD ---

func (a *Admin) GroupCreate(w http.ResponseWriter, r *http.Request) {
	var g models.Group
	if err := decodeJSON(r, &g); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if strings.TrimSpace(g.Name) == "" {
		respondError(w, http.StatusUnprocessableEntity, "Name is required.")
		return
	}
	if g.Slug == "" {
		g.Slug = slug.Generate(g.Name)
	}

	created, err := a.groupStore.Create(&g)
	if err != nil {
		slog.Error("group create failed", "error", err)
		respondError(w, http.StatusConflict, "A group with this slug already exists.")
		return
	}

	a.refresh(r.Context())
	respond(w, http.StatusCreated, created)
}

func (a *Admin) GroupUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Group not found.")
		return
	}

	var g models.Group
	if err := decodeJSON(r, &g); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	g.ID = id
	if strings.TrimSpace(g.Name) == "" {
		respondError(w, http.StatusUnprocessableEntity, "Name is required.")
		return
	}
	if g.Slug == "" {
		g.Slug = slug.Generate(g.Name)
	}

	if err := a.groupStore.Update(&g); err != nil {
		slog.Error("group update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}

	a.refresh(r.Context())
	respond(w, http.StatusOK, g)
}

func (a *Admin) GroupDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Group not found.")
		return
	}
	if err := a.groupStore.Delete(id); err != nil {
		slog.Error("group delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	a.refresh(r.Context())
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- Categories CRUD ---

func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var c models.Category
	if err := decodeJSON(r, &c); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if strings.TrimSpace(c.Name) == "" {
		respondError(w, http.StatusUnprocessableEntity, "Name is required.")
		return
	}
	if c.GroupID == uuid.Nil {
		respondError(w, http.StatusUnprocessableEntity, "Parent group is required.")
		return
	}
	if c.Slug == "" {
		c.Slug = slug.Generate(c.Name)
	}

	created, err := a.categoryStore.Create(&c)
	if err != nil {
		slog.Error("category create failed", "error", err)
		respondError(w, http.StatusConflict, "A category with this slug already exists.")
		return
	}

	a.refresh(r.Context())
	respond(w, http.StatusCreated, created)
}

// CategoryUpdate modifies a category. A rename also migrates every tool
// row carrying the old category name, since tools reference categories by
// display name.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Category not found.")
		return
	}
	existing, err := a.categoryStore.FindByID(id)
	if err != nil {
		slog.Error("category lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Category not found.")
		return
	}

	var c models.Category
	if err := decodeJSON(r, &c); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	c.ID = id
	if strings.TrimSpace(c.Name) == "" {
		respondError(w, http.StatusUnprocessableEntity, "Name is required.")
		return
	}
	if c.GroupID == uuid.Nil {
		c.GroupID = existing.GroupID
	}
	if c.Slug == "" {
		c.Slug = slug.Generate(c.Name)
	}

	if err := a.categoryStore.Update(&c); err != nil {
		slog.Error("category update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}

	if existing.Name != c.Name {
		migrated, err := a.toolStore.RenameCategory(existing.Name, c.Name)
		if err != nil {
			slog.Error("category rename migration failed", "error", err, "category", c.ID)
			respondError(w, http.StatusInternalServerError, "Category saved but tool migration failed. Run a manual reload.")
			return
		}
		slog.Info("category renamed", "from", existing.Name, "to", c.Name, "toolsMigrated", migrated)
	}

	a.refresh(r.Context())
	respond(w, http.StatusOK, c)
}

func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Category not found.")
		return
	}
	if err := a.categoryStore.Delete(id); err != nil {
		slog.Error("category delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	a.refresh(r.Context())
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- Stacks CRUD ---

func (a *Admin) StackCreate(w http.ResponseWriter, r *http.Request) {
	var st models.Stack
	if err := decodeJSON(r, &st); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if strings.TrimSpace(st.Name) == "" {
		respondError(w, http.StatusUnprocessableEntity, "Name is required.")
		return
	}
	if st.Slug == "" {
		st.Slug = slug.Generate(st.Name)
	}

	created, err := a.stackStore.Create(&st)
	if err != nil {
		slog.Error("stack create failed", "error", err)
		respondError(w, http.StatusConflict, "A stack with this slug already exists.")
		return
	}
	respond(w, http.StatusCreated, created)
}

func (a *Admin) StackUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Stack not found.")
		return
	}

	var st models.Stack
	if err := decodeJSON(r, &st); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	st.ID = id
	if strings.TrimSpace(st.Name) == "" {
		respondError(w, http.StatusUnprocessableEntity, "Name is required.")
		return
	}
	if st.Slug == "" {
		st.Slug = slug.Generate(st.Name)
	}

	if err := a.stackStore.Update(&st); err != nil {
		slog.Error("stack update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	respond(w, http.StatusOK, st)
}

func (a *Admin) StackDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Stack not found.")
		return
	}
	if err := a.stackStore.Delete(id); err != nil {
		slog.Error("stack delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- Guides CRUD ---

func (a *Admin) GuideCreate(w http.ResponseWriter, r *http.Request) {
	var g models.Guide
	if err := decodeJSON(r, &g); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if strings.TrimSpace(g.Title) == "" {
		respondError(w, http.StatusUnprocessableEntity, "Title is required.")
		return
	}

	created, err := a.guideStore.Create(&g)
	if err != nil {
		slog.Error("guide create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	respond(w, http.StatusCreated, created)
}

func (a *Admin) GuideUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Guide not found.")
		return
	}

	var g models.Guide
	if err := decodeJSON(r, &g); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	g.ID = id
	if strings.TrimSpace(g.Title) == "" {
		respondError(w, http.StatusUnprocessableEntity, "Title is required.")
		return
	}

	if err := a.guideStore.Update(&g); err != nil {
		slog.Error("guide update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	respond(w, http.StatusOK, g)
}

func (a *Admin) GuideDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Guide not found.")
		return
	}
	if err := a.guideStore.Delete(id); err != nil {
		slog.Error("guide delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- Spotlights CRUD ---

func (a *Admin) SpotlightCreate(w http.ResponseWriter, r *http.Request) {
	var item models.SpotlightItem
	if err := decodeJSON(r, &item); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if !item.Kind.Valid() {
		respondError(w, http.StatusUnprocessableEntity, "Unknown spotlight collection.")
		return
	}
	if err := item.ValidatePayload(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := a.spotlightStore.Create(&item)
	if err != nil {
		slog.Error("spotlight create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	respond(w, http.StatusCreated, created)
}

func (a *Admin) SpotlightUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Spotlight item not found.")
		return
	}

	var item models.SpotlightItem
	if err := decodeJSON(r, &item); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	item.ID = id
	if !item.Kind.Valid() {
		respondError(w, http.StatusUnprocessableEntity, "Unknown spotlight collection.")
		return
	}
	if err := item.ValidatePayload(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := a.spotlightStore.Update(&item); err != nil {
		slog.Error("spotlight update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	respond(w, http.StatusOK, item)
}

func (a *Admin) SpotlightDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Spotlight item not found.")
		return
	}
	if err := a.spotlightStore.Delete(id); err != nil {
		slog.Error("spotlight delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- Submissions review ---

// SubmissionsList serves submissions filtered by status (pending by default).
func (a *Admin) SubmissionsList(w http.ResponseWriter, r *http.Request) {
	status := models.SubmissionStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = models.SubmissionPending
	}

	subs, err := a.submissionStore.List(status)
	if err != nil {
		slog.Error("list submissions failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	respond(w, http.StatusOK, map[string]any{"submissions": subs})
}

// SubmissionApprove turns a pending submission into a catalog tool and
// marks the submission approved. The submission row stays as audit trail.
func (a *Admin) SubmissionApprove(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Submission not found.")
		return
	}
	sub, err := a.submissionStore.FindByID(id)
	if err != nil {
		slog.Error("submission lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	if sub == nil {
		respondError(w, http.StatusNotFound, "Submission not found.")
		return
	}
	if sub.Status != models.SubmissionPending {
		respondError(w, http.StatusConflict, "Submission was already reviewed.")
		return
	}

	tool := &models.Tool{
		Name:        sub.Name,
		Description: sub.Description,
		Category:    sub.Category,
		Group:       a.groupNameForCategory(sub.Category),
		WebsiteURL:  sub.Website,
		Pricing:     sub.Pricing,
	}
	created, err := a.toolStore.Create(tool)
	if err != nil {
		slog.Error("submission approve failed", "error", err, "submission", sub.ID)
		respondError(w, http.StatusConflict, "A tool with this name already exists.")
		return
	}

	if err := a.submissionStore.SetStatus(sub.ID, models.SubmissionApproved); err != nil {
		slog.Error("submission status update failed", "error", err, "submission", sub.ID)
	}

	a.refresh(r.Context())
	respond(w, http.StatusCreated, created)
}

// SubmissionReject marks a pending submission rejected.
func (a *Admin) SubmissionReject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Submission not found.")
		return
	}
	if err := a.submissionStore.SetStatus(id, models.SubmissionRejected); err != nil {
		slog.Error("submission reject failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "rejected"})
}

// --- Users ---

func (a *Admin) UsersList(w http.ResponseWriter, r *http.Request) {
	users, err := a.userStore.List()
	if err != nil {
		slog.Error("list users failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	respond(w, http.StatusOK, map[string]any{"users": users})
}

type userCreateRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

func (a *Admin) UserCreate(w http.ResponseWriter, r *http.Request) {
	var req userCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if strings.TrimSpace(req.Email) == "" || len(req.Password) < 12 {
		respondError(w, http.StatusUnprocessableEntity, "Email and a password of at least 12 characters are required.")
		return
	}
	role := models.Role(req.Role)
	if role != models.RoleAdmin && role != models.RoleEditor {
		respondError(w, http.StatusUnprocessableEntity, "Role must be admin or editor.")
		return
	}

	user, err := a.userStore.Create(req.Email, req.Password, req.DisplayName, role)
	if err != nil {
		slog.Error("user create failed", "error", err)
		respondError(w, http.StatusConflict, "A user with this email already exists.")
		return
	}
	respond(w, http.StatusCreated, user)
}

// UserResetTwoFA clears a user's TOTP enrolment so they go through setup
// again on next login. For lost authenticator devices.
func (a *Admin) UserResetTwoFA(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found.")
		return
	}
	if err := a.userStore.ResetTOTP(id); err != nil {
		slog.Error("totp reset failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "2fa reset"})
}

func (a *Admin) UserDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found.")
		return
	}
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.UserID == id {
		respondError(w, http.StatusConflict, "You cannot delete your own account.")
		return
	}
	if err := a.userStore.Delete(id); err != nil {
		slog.Error("user delete failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- AI provider management ---

// AIStatus reports which providers are configured and which is active.
func (a *Admin) AIStatus(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]any{
		"active":    a.aiRegistry.ActiveName(),
		"available": a.aiRegistry.Available(),
	})
}

type aiSetProviderRequest struct {
	Provider string `json:"provider"`
}

// AISetProvider switches the active recommendation provider at runtime.
func (a *Admin) AISetProvider(w http.ResponseWriter, r *http.Request) {
	var req aiSetProviderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if err := a.aiRegistry.SetActive(req.Provider); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "That provider has no API key configured.")
		return
	}
	respond(w, http.StatusOK, map[string]string{"active": req.Provider})
}

type licenseCheckRequest struct {
	Name        string `json:"name"`
	License     string `json:"license"`
	Description string `json:"description"`
}

// AILicenseCheck verifies a declared license for the tool editor. The
// result is advisory: the editor shows it next to the license field and
// the admin decides whether to apply the correction.
func (a *Admin) AILicenseCheck(w http.ResponseWriter, r *http.Request) {
	var req licenseCheckRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusUnprocessableEntity, "Tool name is required.")
		return
	}

	checker := ai.NewLicenseChecker(a.aiRegistry)
	respond(w, http.StatusOK, checker.Check(r.Context(), req.Name, req.License, req.Description))
}

// exportLinkTTL bounds how long a catalogue export download link works.
const exportLinkTTL = time.Hour

// CatalogExport writes a JSON snapshot of the catalogue into the
// private bucket and returns a presigned download link.
func (a *Admin) CatalogExport(w http.ResponseWriter, r *http.Request) {
	if a.storageClient == nil {
		respondError(w, http.StatusServiceUnavailable, "Object storage is not configured.")
		return
	}

	cat, tax := a.svc.Snapshot()
	payload, err := json.Marshal(map[string]any{
		"exportedAt": time.Now().UTC(),
		"groups":     tax.Groups(),
		"tools":      cat.All(),
	})
	if err != nil {
		slog.Error("export marshal failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}

	bucket := a.storageClient.PrivateBucket()
	key := "exports/catalogue-" + time.Now().UTC().Format("20060102-150405") + ".json"
	if err := a.storageClient.Upload(r.Context(), bucket, key, "application/json", bytes.NewReader(payload), int64(len(payload))); err != nil {
		slog.Error("export upload failed", "error", err, "key", key)
		respondError(w, http.StatusInternalServerError, "Export upload failed.")
		return
	}

	url, err := a.storageClient.PresignedURL(r.Context(), bucket, key, exportLinkTTL)
	if err != nil {
		slog.Error("export presign failed", "error", err, "key", key)
		respondError(w, http.StatusInternalServerError, "Export link generation failed.")
		return
	}

	respond(w, http.StatusOK, map[string]string{"key": key, "url": url})
}
