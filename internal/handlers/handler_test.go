// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable. The route tree mirrors the production router; the router
// package itself cannot be imported here without a cycle.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"devdirectory/internal/ai"
	"devdirectory/internal/cache"
	"devdirectory/internal/catalog"
	"devdirectory/internal/database"
	"devdirectory/internal/middleware"
	"devdirectory/internal/models"
	"devdirectory/internal/session"
	"devdirectory/internal/slug"
	"devdirectory/internal/store"
)

// mockAIProvider implements ai.Provider for handler tests.
type mockAIProvider struct {
	name     string
	response string
	err      error
}

func (m *mockAIProvider) Name() string { return m.name }
func (m *mockAIProvider) Generate(_ context.Context, _, _ string) (string, error) {
	return m.response, m.err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "devdirectory")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "devdirectory")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkey returns a Valkey client for handler tests on DB 15.
func testValkey(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	client := redis.NewClient(&redis.Options{
		Addr: host + ":" + port,
		DB:   15,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: valkey not reachable: %v", err)
	}

	t.Cleanup(func() { client.Close() })
	return client
}

// testApp wires the full application against real Postgres and Valkey,
// with the AI registry backed by a mock provider.
type testApp struct {
	t          *testing.T
	db         *sql.DB
	valkey     *redis.Client
	server     *httptest.Server
	client     *http.Client
	svc        *catalog.Service
	listing    *cache.ListingCache
	toolStore  *store.ToolStore
	guideStore *store.GuideStore
	stackStore *store.StackStore
	registry   *ai.Registry
}

// newTestApp builds the app. Each call starts from clean tables, the
// seeded admin account and the baseline taxonomy. aiReply is what the
// mock provider answers with.
func newTestApp(t *testing.T, aiReply string) *testApp {
	t.Helper()

	db := testDB(t)
	valkey := testValkey(t)

	ctx := context.Background()
	// Groups cascade to categories; users and tools hold no FKs between them.
	for _, table := range []string{"tools", "submissions", "stacks", "guides", "spotlight_items", "users", "groups"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("clean %s: %v", table, err)
		}
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := valkey.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush valkey: %v", err)
	}

	userStore := store.NewUserStore(db)
	toolStore := store.NewToolStore(db)
	groupStore := store.NewGroupStore(db)
	categoryStore := store.NewCategoryStore(db)
	stackStore := store.NewStackStore(db)
	guideStore := store.NewGuideStore(db)
	spotlightStore := store.NewSpotlightStore(db)
	submissionStore := store.NewSubmissionStore(db)

	svc := catalog.NewService(toolStore, groupStore)
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("catalog load: %v", err)
	}

	registry := ai.NewRegistry("mock", nil)
	registry.Register("mock", &mockAIProvider{name: "mock", response: aiReply})
	recommender := ai.NewRecommender(registry)

	sessions := session.NewStore(valkey, false)
	visitors := session.NewVisitors(valkey, false)
	listing := cache.NewListingCache(valkey, time.Minute)

	public := NewPublic(svc, listing, visitors, stackStore, guideStore, spotlightStore, submissionStore, recommender)
	auth := NewAuth(sessions, userStore)
	admin := NewAdmin(svc, listing, toolStore, groupStore, categoryStore, stackStore, guideStore, spotlightStore, submissionStore, userStore, nil, registry)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.LoadSession(sessions))
	r.Get("/health", Health)
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
		r.Post("/submissions", public.SubmissionCreate)
		r.Post("/recommendations", public.Recommend)
		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", public.BookmarksList)
			r.Put("/{id}", public.BookmarkAdd)
			r.Delete("/{id}", public.BookmarkRemove)
		})
	})
	r.Route("/admin/api", func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)
		r.Get("/me", auth.Me)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/2fa/setup", auth.TwoFASetup)
			r.Post("/2fa/verify", auth.TwoFAVerify)
		})
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
			})
			r.Route("/categories", func(r chi.Router) {
				r.Post("/", admin.CategoryCreate)
				r.Put("/{id}", admin.CategoryUpdate)
				r.Delete("/{id}", admin.CategoryDelete)
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
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", admin.UsersList)
				r.Post("/", admin.UserCreate)
			})
			r.Route("/ai", func(r chi.Router) {
				r.Get("/status", admin.AIStatus)
				r.Post("/provider", admin.AISetProvider)
				r.Post("/license-check", admin.AILicenseCheck)
			})
		})
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}

	return &testApp{
		t:          t,
		db:         db,
		valkey:     valkey,
		server:     server,
		client:     &http.Client{Jar: jar},
		svc:        svc,
		listing:    listing,
		toolStore:  toolStore,
		guideStore: guideStore,
		stackStore: stackStore,
		registry:   registry,
	}
}

// get performs a GET and decodes the JSON body into a generic map.
func (app *testApp) get(path string) (int, map[string]any) {
	app.t.Helper()
	resp, err := app.client.Get(app.server.URL + path)
	if err != nil {
		app.t.Fatalf("GET %s: %v", path, err)
	}
	return app.decode(resp)
}

// send performs a JSON request with the CSRF header attached.
func (app *testApp) send(method, path string, payload any) (int, map[string]any) {
	app.t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			app.t.Fatalf("encode payload: %v", err)
		}
	}
	req, err := http.NewRequest(method, app.server.URL+path, &body)
	if err != nil {
		app.t.Fatalf("%s %s: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := app.csrfToken(); token != "" {
		req.Header.Set("X-CSRF-Token", token)
	}

	resp, err := app.client.Do(req)
	if err != nil {
		app.t.Fatalf("%s %s: %v", method, path, err)
	}
	return app.decode(resp)
}

func (app *testApp) decode(resp *http.Response) (int, map[string]any) {
	app.t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		app.t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, body
}

// csrfToken returns the double-submit token, visiting an admin endpoint
// first if the cookie has not been minted yet.
func (app *testApp) csrfToken() string {
	app.t.Helper()

	u, _ := url.Parse(app.server.URL)
	find := func() string {
		for _, c := range app.client.Jar.Cookies(u) {
			if c.Name == middleware.CSRFCookieName {
				return c.Value
			}
		}
		return ""
	}
	if token := find(); token != "" {
		return token
	}
	resp, err := app.client.Get(app.server.URL + "/admin/api/me")
	if err != nil {
		app.t.Fatalf("mint csrf cookie: %v", err)
	}
	resp.Body.Close()
	return find()
}

// seedTools inserts n tools into the named category and reloads the
// catalog snapshot.
func (app *testApp) seedTools(category, group string, n int) {
	app.t.Helper()
	prefix := slug.Generate(category)
	for i := 0; i < n; i++ {
		_, err := app.toolStore.Create(&models.Tool{
			ID:          fmt.Sprintf("%s-tool-%03d", prefix, i),
			Name:        fmt.Sprintf("%s Tool %03d", category, i),
			Description: "A test fixture.",
			Category:    category,
			Group:       group,
			WebsiteURL:  "https://example.com",
			Pricing:     models.PricingFree,
		})
		if err != nil {
			app.t.Fatalf("seed tool: %v", err)
		}
	}
	if err := app.svc.Reload(context.Background()); err != nil {
		app.t.Fatalf("reload: %v", err)
	}
}
