// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// visitor.go tracks anonymous visitors for the bookmark feature. Public
// directory users never log in; a long-lived random cookie identifies
// them and their bookmarked tool IDs live in a Valkey set.
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// VisitorCookieName identifies an anonymous visitor across requests.
	VisitorCookieName = "dd_visitor"

	// visitorTTL keeps a visitor's bookmarks for a year, refreshed on use.
	visitorTTL = 365 * 24 * time.Hour

	bookmarkPrefix = "bookmarks:"
)

// Visitors manages anonymous visitor identity and their bookmark sets.
type Visitors struct {
	client *redis.Client
	secure bool
}

// NewVisitors creates a visitor store backed by the given Valkey client.
func NewVisitors(client *redis.Client, secure bool) *Visitors {
	return &Visitors{client: client, secure: secure}
}

// Identify returns the visitor ID from the request cookie, minting a new
// one (and setting the cookie) for first-time visitors.
func (v *Visitors) Identify(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(VisitorCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	id, err := newID()
	if err != nil {
		return "", fmt.Errorf("visitor id: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   v.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(visitorTTL.Seconds()),
	})
	return id, nil
}

// AddBookmark records a tool in the visitor's bookmark set and refreshes
// the set's TTL.
func (v *Visitors) AddBookmark(ctx context.Context, visitorID, toolID string) error {
	key := bookmarkPrefix + visitorID
	if err := v.client.SAdd(ctx, key, toolID).Err(); err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	v.client.Expire(ctx, key, visitorTTL)
	return nil
}

// RemoveBookmark drops a tool from the visitor's bookmark set.
func (v *Visitors) RemoveBookmark(ctx context.Context, visitorID, toolID string) error {
	if err := v.client.SRem(ctx, bookmarkPrefix+visitorID, toolID).Err(); err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	return nil
}

// Bookmarks returns the visitor's bookmarked tool IDs. The set is
// unordered; callers resolve IDs against the catalog, which drops any
// that no longer exist.
func (v *Visitors) Bookmarks(ctx context.Context, visitorID string) ([]string, error) {
	ids, err := v.client.SMembers(ctx, bookmarkPrefix+visitorID).Result()
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return ids, nil
}

// IsBookmarked reports whether the visitor has bookmarked the tool.
func (v *Visitors) IsBookmarked(ctx context.Context, visitorID, toolID string) (bool, error) {
	ok, err := v.client.SIsMember(ctx, bookmarkPrefix+visitorID, toolID).Result()
	if err != nil {
		return false, fmt.Errorf("check bookmark: %w", err)
	}
	return ok, nil
}
