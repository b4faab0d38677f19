// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the developer tools directory server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"devdirectory/internal/ai"
	"devdirectory/internal/cache"
	"devdirectory/internal/catalog"
	"devdirectory/internal/config"
	"devdirectory/internal/database"
	"devdirectory/internal/handlers"
	"devdirectory/internal/router"
	"devdirectory/internal/session"
	"devdirectory/internal/storage"
	"devdirectory/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load a local .env if present; real deployments set the environment
	// directly and have no .env file.
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the admin account and baseline taxonomy (no-op once data exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, cookies are Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)
	visitors := session.NewVisitors(valkeyClient, secureCookies)
	listingCache := cache.NewListingCache(valkeyClient, cache.DefaultListingTTL)

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	toolStore := store.NewToolStore(db)
	groupStore := store.NewGroupStore(db)
	categoryStore := store.NewCategoryStore(db)
	stackStore := store.NewStackStore(db)
	guideStore := store.NewGuideStore(db)
	spotlightStore := store.NewSpotlightStore(db)
	submissionStore := store.NewSubmissionStore(db)

	// Load the browsable catalog into memory. A failed load falls back to
	// the embedded baseline so the site comes up regardless.
	catalogSvc := catalog.NewService(toolStore, groupStore)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := catalogSvc.Load(loadCtx); err != nil {
		slog.Warn("catalog load failed, serving baseline taxonomy", "error", err)
	}
	cancelLoad()
	cat, tax := catalogSvc.Snapshot()
	slog.Info("catalog loaded", "tools", cat.Len(), "categories", tax.CategoryCount())

	// Connect to S3-compatible object storage (optional — app works without it).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3BucketPublic, cfg.S3BucketPrivate, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		if storageClient != nil {
			slog.Info("s3 storage connected",
				"endpoint", cfg.S3Endpoint,
				"public_bucket", cfg.S3BucketPublic,
				"private_bucket", cfg.S3BucketPrivate,
			)
		}
	} else {
		slog.Warn("s3 storage not configured — logo uploads disabled")
	}

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"gemini":  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	})
	recommender := ai.NewRecommender(aiRegistry)

	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	// Create handler groups with their dependencies.
	publicHandlers := handlers.NewPublic(catalogSvc, listingCache, visitors, stackStore, guideStore, spotlightStore, submissionStore, recommender)
	authHandlers := handlers.NewAuth(sessionStore, userStore)
	adminHandlers := handlers.NewAdmin(catalogSvc, listingCache, toolStore, groupStore, categoryStore, stackStore, guideStore, spotlightStore, submissionStore, userStore, storageClient, aiRegistry)

	// Set up the Chi router with all middleware and routes.
	r, limiters := router.New(sessionStore, publicHandlers, authHandlers, adminHandlers)
	defer func() {
		for _, l := range limiters {
			l.Stop()
		}
	}()

	// WriteTimeout must accommodate the recommendation endpoint, which
	// waits on LLM responses (typically 10-30s, up to 60s).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
