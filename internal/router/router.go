// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// directory API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"devdirectory/internal/handlers"
	"devdirectory/internal/middleware"
	"devdirectory/internal/session"
)

// Rate limits for the abuse-prone public write endpoints. Submissions
// are cheap to spam; recommendations cost provider tokens.
const (
	submissionLimit = 5
	recommendLimit  = 10
	limitWindow     = time.Hour
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The returned limiters must be stopped on
// shutdown.
func New(sessionStore *session.Store, public *handlers.Public, auth *handlers.Auth, admin *handlers.Admin) (chi.Router, []*middleware.RateLimiter) {
	r := chi.NewRouter()

	submitLimiter := middleware.NewRateLimiter(submissionLimit, limitWindow)
	recommendLimiter := middleware.NewRateLimiter(recommendLimit, limitWindow)

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", handlers.Health)

	// Public API.
	r.Route("/api", func(r chi.Router) {
		r.Get("/browse", public.Browse)
		r.Get("/tools", public.ToolsByIDs)
		r.Get("/tools/{id}", public.ToolDetail)
		r.Get("/taxonomy", public.Taxonomy)
		r.Get("/stacks", public.StacksList)
		r.Get("/stacks/{slug}", public.StackDetail)
		r.Get("/guides", public.GuidesList)
		r.Get("/guides/{id}", public.GuideDetail)
		r.Get("/spotlights", public.Spotlights)

		r.With(submitLimiter.Middleware).Post("/submissions", public.SubmissionCreate)
		r.With(recommendLimiter.Middleware).Post("/recommendations", public.Recommend)

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", public.BookmarksList)
			r.Put("/{id}", public.BookmarkAdd)
			r.Delete("/{id}", public.BookmarkRemove)
		})
	})

	// Admin API — session + CSRF; 2FA for everything past the login flow.
	r.Route("/admin/api", func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Login flow — accessible without a session.
		r.Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)
		r.Get("/me", auth.Me)

		// 2FA — requires auth but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/2fa/setup", auth.TwoFASetup)
			r.Post("/2fa/verify", auth.TwoFAVerify)
		})

		// Authenticated + 2FA-verified admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Post("/reload", admin.Reload)
			r.Post("/export", admin.CatalogExport)

			r.Route("/tools", func(r chi.Router) {
				r.Get("/", admin.ToolsList)
				r.Post("/", admin.ToolCreate)
				r.Put("/{id}", admin.ToolUpdate)
				r.Delete("/{id}", admin.ToolDelete)
				r.Post("/{id}/logo", admin.LogoUpload)
			})

			r.Route("/groups", func(r chi.Router) {
				r.Post("/", admin.GroupCreate)
				r.Put("/{id}", admin.GroupUpdate)
				r.Delete("/{id}", admin.GroupDelete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", admin.CategoryCreate)
				r.Put("/{id}", admin.CategoryUpdate)
				r.Delete("/{id}", admin.CategoryDelete)
			})

			r.Route("/stacks", func(r chi.Router) {
				r.Post("/", admin.StackCreate)
				r.Put("/{id}", admin.StackUpdate)
				r.Delete("/{id}", admin.StackDelete)
			})

			r.Route("/guides", func(r chi.Router) {
				r.Post("/", admin.GuideCreate)
				r.Put("/{id}", admin.GuideUpdate)
				r.Delete("/{id}", admin.GuideDelete)
			})

			r.Route("/spotlights", func(r chi.Router) {
				r.Post("/", admin.SpotlightCreate)
				r.Put("/{id}", admin.SpotlightUpdate)
				r.Delete("/{id}", admin.SpotlightDelete)
			})

			r.Route("/submissions", func(r chi.Router) {
				r.Get("/", admin.SubmissionsList)
				r.Post("/{id}/approve", admin.SubmissionApprove)
				r.Post("/{id}/reject", admin.SubmissionReject)
			})

			// User management — admin only.
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", admin.UsersList)
				r.Post("/", admin.UserCreate)
				r.Post("/{id}/reset-2fa", admin.UserResetTwoFA)
				r.Delete("/{id}", admin.UserDelete)
			})

			r.Route("/ai", func(r chi.Router) {
				r.Get("/status", admin.AIStatus)
				r.Post("/provider", admin.AISetProvider)
				r.Post("/license-check", admin.AILicenseCheck)
			})
		})
	})

	return r, []*middleware.RateLimiter{submitLimiter, recommendLimiter}
}
