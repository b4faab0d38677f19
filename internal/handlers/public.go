// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"devdirectory/internal/ai"
	"devdirectory/internal/cache"
	"devdirectory/internal/catalog"
	"devdirectory/internal/markdown"
	"devdirectory/internal/models"
	"devdirectory/internal/session"
	"devdirectory/internal/store"
)

// Public groups the anonymous-facing API handlers.
type Public struct {
	svc         *catalog.Service
	listing     *cache.ListingCache
	visitors    *session.Visitors
	stacks      *store.StackStore
	guides      *store.GuideStore
	spotlights  *store.SpotlightStore
	submissions *store.SubmissionStore
	recommender *ai.Recommender
}

// NewPublic creates the public handler group.
func NewPublic(svc *catalog.Service, listing *cache.ListingCache, visitors *session.Visitors, stacks *store.StackStore, guides *store.GuideStore, spotlights *store.SpotlightStore, submissions *store.SubmissionStore, recommender *ai.Recommender) *Public {
	return &Public{
		svc:         svc,
		listing:     listing,
		visitors:    visitors,
		stacks:      stacks,
		guides:      guides,
		spotlights:  spotlights,
		submissions: submissions,
		recommender: recommender,
	}
}

// browseResponse is the full payload of one listing page: the items, an
// echo of the effective filter state, the page position and the compact
// page-number strip. A filter change always lands on page 1 because the
// binding layer omits the page parameter when filters change.
type browseResponse struct {
	Items   []models.Tool      `json:"items"`
	Filters catalog.Predicates `json:"filters"`
	Page    catalog.PageState  `json:"page"`
	Pages   []catalog.PageRef  `json:"pages"`
}

// listingKey canonicalises the effective view state so equivalent query
// strings share one cache entry.
func listingKey(p catalog.Predicates, page, size int) string {
	v := p.Values()
	v.Set(catalog.ParamPage, strconv.Itoa(page))
	v.Set(catalog.ParamSize, strconv.Itoa(size))
	return v.Encode()
}

// Browse serves the filtered, paginated tool listing.
func (p *Public) Browse(w http.ResponseWriter, r *http.Request) {
	cat, tax := p.svc.Snapshot()
	preds := catalog.ParsePredicates(r.URL.Query(), tax)
	page, size := catalog.ParsePage(r.URL.Query())

	key := listingKey(preds, page, size)
	if body, ok := p.listing.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	filtered := catalog.Apply(cat, tax, preds)
	items, state := catalog.Paginate(filtered, size, page)

	resp := browseResponse{
		Items:   items,
		Filters: preds,
		Page:    state,
		Pages:   catalog.PageNumbers(state.CurrentPage, state.TotalPages),
	}

	body, err := json.Marshal(resp)
	if err != nil {
		slog.Error("browse marshal failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	p.listing.Set(r.Context(), key, body)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// ToolDetail serves one tool plus the visitor's bookmark status for it.
func (p *Public) ToolDetail(w http.ResponseWriter, r *http.Request) {
	cat, _ := p.svc.Snapshot()
	tool := cat.ByID(chi.URLParam(r, "id"))
	if tool == nil {
		respondError(w, http.StatusNotFound, "Tool not found.")
		return
	}

	// Bookmark status only matters for returning visitors; a detail view
	// must not mint a visitor cookie.
	bookmarked := false
	if c, err := r.Cookie(session.VisitorCookieName); err == nil {
		bookmarked, _ = p.visitors.IsBookmarked(r.Context(), c.Value, tool.ID)
	}

	respond(w, http.StatusOK, map[string]any{
		"tool":       tool,
		"bookmarked": bookmarked,
	})
}

// ToolsByIDs serves a batch lookup for curated lists. Input order is
// preserved; unknown IDs are dropped rather than erroring, so a stale
// curated list still renders its surviving tools.
func (p *Public) ToolsByIDs(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ids")
	if strings.TrimSpace(raw) == "" {
		respondError(w, http.StatusBadRequest, "The ids parameter is required.")
		return
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	cat, _ := p.svc.Snapshot()
	respond(w, http.StatusOK, map[string]any{"items": cat.ByIDs(ids)})
}

// taxonomyGroup decorates a Group with its live aggregate tool count.
type taxonomyGroup struct {
	models.Group
	ToolCount int `json:"toolCount"`
}

// Taxonomy serves the sidebar data: every group with its categories and
// two-tier tool counts, live counts winning over cached ones.
func (p *Public) Taxonomy(w http.ResponseWriter, r *http.Request) {
	cat, tax := p.svc.Snapshot()

	groups := tax.Groups()
	out := make([]taxonomyGroup, 0, len(groups))
	for _, g := range groups {
		entry := taxonomyGroup{Group: g}
		entry.Categories = make([]models.Category, len(g.Categories))
		for i, c := range g.Categories {
			c.ToolCount = catalog.CategoryToolCount(cat, &c)
			entry.Categories[i] = c
		}
		entry.ToolCount = catalog.GroupToolCount(cat, &g)
		out = append(out, entry)
	}

	respond(w, http.StatusOK, map[string]any{
		"groups":     out,
		"totalTools": cat.Len(),
	})
}

// StacksList serves the curated stack index without resolving tools.
func (p *Public) StacksList(w http.ResponseWriter, r *http.Request) {
	stacks, err := p.stacks.List()
	if err != nil {
		slog.Error("list stacks failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	respond(w, http.StatusOK, map[string]any{"stacks": stacks})
}

// resolvedSection is a stack section with its tool IDs resolved against
// the catalog, preserving the curated order.
type resolvedSection struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Tools       []models.Tool `json:"tools"`
}

// StackDetail serves one curated stack with every section's tools resolved.
func (p *Public) StackDetail(w http.ResponseWriter, r *http.Request) {
	stack, err := p.stacks.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		slog.Error("stack lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	if stack == nil {
		respondError(w, http.StatusNotFound, "Stack not found.")
		return
	}

	cat, _ := p.svc.Snapshot()
	sections := make([]resolvedSection, len(stack.Sections))
	for i, s := range stack.Sections {
		sections[i] = resolvedSection{
			Title:       s.Title,
			Description: s.Description,
			Tools:       cat.ByIDs(s.ToolIDs),
		}
	}

	respond(w, http.StatusOK, map[string]any{
		"stack":    stack,
		"sections": sections,
	})
}

// GuidesList serves the learning guide index (bodies omitted).
func (p *Public) GuidesList(w http.ResponseWriter, r *http.Request) {
	guides, err := p.guides.List()
	if err != nil {
		slog.Error("list guides failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	for i := range guides {
		guides[i].Body = ""
	}
	respond(w, http.StatusOK, map[string]any{"guides": guides})
}

// GuideDetail serves one guide with its Markdown body rendered to HTML.
func (p *Public) GuideDetail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Guide not found.")
		return
	}
	guide, err := p.guides.FindByID(id)
	if err != nil {
		slog.Error("guide lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	if guide == nil {
		respondError(w, http.StatusNotFound, "Guide not found.")
		return
	}

	html, err := markdown.ToHTML(guide.Body)
	if err != nil {
		slog.Error("guide render failed", "error", err, "guide", guide.ID)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"guide": guide,
		"html":  html,
	})
}

// Spotlights serves every homepage spotlight collection keyed by kind.
func (p *Public) Spotlights(w http.ResponseWriter, r *http.Request) {
	all, err := p.spotlights.ListAll()
	if err != nil {
		slog.Error("list spotlights failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	respond(w, http.StatusOK, map[string]any{"collections": all})
}

// submissionRequest is the public submit-a-tool payload.
type submissionRequest struct {
	Name        string `json:"name"`
	Website     string `json:"website"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Pricing     string `json:"pricing"`
	Email       string `json:"email"`
}

// SubmissionCreate accepts a public tool suggestion for admin review.
func (p *Public) SubmissionCreate(w http.ResponseWriter, r *http.Request) {
	var req submissionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	sub := &models.Submission{
		Name:        strings.TrimSpace(req.Name),
		Website:     strings.TrimSpace(req.Website),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
		Pricing:     models.Pricing(req.Pricing),
		Email:       strings.TrimSpace(req.Email),
	}
	if msg := validateSubmission(sub); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	created, err := p.submissions.Create(sub)
	if err != nil {
		slog.Error("submission create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}

	respond(w, http.StatusCreated, map[string]any{
		"id":     created.ID,
		"status": created.Status,
	})
}

// BookmarksList serves the visitor's bookmarked tools. IDs whose tool has
// since left the catalog are dropped silently.
func (p *Public) BookmarksList(w http.ResponseWriter, r *http.Request) {
	// A pure read never mints the visitor cookie; only bookmark writes
	// do. First-time visitors simply have nothing bookmarked yet.
	c, err := r.Cookie(session.VisitorCookieName)
	if err != nil || c.Value == "" {
		respond(w, http.StatusOK, map[string]any{"items": []models.Tool{}})
		return
	}

	ids, err := p.visitors.Bookmarks(r.Context(), c.Value)
	if err != nil {
		slog.Error("bookmarks read failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}

	cat, _ := p.svc.Snapshot()
	respond(w, http.StatusOK, map[string]any{"items": cat.ByIDs(ids)})
}

// BookmarkAdd marks a tool as bookmarked for the visitor.
func (p *Public) BookmarkAdd(w http.ResponseWriter, r *http.Request) {
	toolID := chi.URLParam(r, "id")
	cat, _ := p.svc.Snapshot()
	if cat.ByID(toolID) == nil {
		respondError(w, http.StatusNotFound, "Tool not found.")
		return
	}

	visitorID, err := p.visitors.Identify(w, r)
	if err != nil {
		slog.Error("visitor identify failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	if err := p.visitors.AddBookmark(r.Context(), visitorID, toolID); err != nil {
		slog.Error("bookmark add failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}

	respond(w, http.StatusOK, map[string]any{"id": toolID, "bookmarked": true})
}

// BookmarkRemove removes a tool from the visitor's bookmarks.
func (p *Public) BookmarkRemove(w http.ResponseWriter, r *http.Request) {
	toolID := chi.URLParam(r, "id")
	visitorID, err := p.visitors.Identify(w, r)
	if err != nil {
		slog.Error("visitor identify failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	if err := p.visitors.RemoveBookmark(r.Context(), visitorID, toolID); err != nil {
		slog.Error("bookmark remove failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal error.")
		return
	}

	respond(w, http.StatusOK, map[string]any{"id": toolID, "bookmarked": false})
}

// recommendRequest is the stack recommender input.
type recommendRequest struct {
	Description string `json:"description"`
}

// Recommend runs the AI stack recommendation flow: moderation, provider
// call, parse, catalog enrichment. Failures always produce a visible
// error payload so the client can tell the user what happened. A request
// superseded by a newer one is cancelled through its own context when
// the client drops the connection.
func (p *Public) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if msg := validateProjectDescription(req.Description); msg != "" {
		respondError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	cat, _ := p.svc.Snapshot()
	rec, err := p.recommender.Recommend(r.Context(), strings.TrimSpace(req.Description), cat.All())
	if err != nil {
		var unsafeErr *ai.UnsafePromptError
		if errors.As(err, &unsafeErr) {
			respond(w, http.StatusUnprocessableEntity, map[string]any{
				"error":      "Your description was flagged by content moderation.",
				"categories": unsafeErr.Categories,
			})
			return
		}
		slog.Error("recommendation failed", "error", err)
		respondError(w, http.StatusBadGateway, "The recommendation service is unavailable right now. Please try again.")
		return
	}

	respond(w, http.StatusOK, rec)
}
