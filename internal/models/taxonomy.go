// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a leaf taxonomy node that tools are classified under.
// The slug is globally unique across the whole taxonomy because it is
// the sole lookup key in navigation; the name is only unique within its
// group. ToolCount is an advisory cached value — render paths recompute
// the live count from the catalog and fall back to this field when the
// live count is unavailable or zero.
type Category struct {
	ID          uuid.UUID `json:"id"`
	GroupID     uuid.UUID `json:"groupId"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	ToolCount   int       `json:"toolCount"`
	SortOrder   int       `json:"-"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Group is a top-level taxonomy bucket (e.g. "Tech & Development").
// Categories preserve their insertion/display order; the group order in
// the taxonomy list is the browse-page display order.
type Group struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Slug       string     `json:"slug"`
	SortOrder  int        `json:"-"`
	Categories []Category `json:"categories"`
	CreatedAt  time.Time  `json:"-"`
	UpdatedAt  time.Time  `json:"-"`
}

// CategoryNames returns the display names of the group's categories in order.
func (g *Group) CategoryNames() []string {
	names := make([]string, len(g.Categories))
	for i, c := range g.Categories {
		names[i] = c.Name
	}
	return names
}
