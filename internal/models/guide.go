// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Guide is a learning path shown in the Learning section. The body is
// Markdown, rendered to HTML on the detail endpoint.
type Guide struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	CountLabel string    `json:"count"`
	Color      string    `json:"color"`
	Icon       string    `json:"icon"`
	Body       string    `json:"markdown,omitempty"`
	SortOrder  int       `json:"-"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}
