// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// StackSection is one ordered block of a curated stack page. ToolIDs
// reference catalog tools; their order is meaningful and preserved all
// the way to the rendered stack detail.
type StackSection struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	ToolIDs     []string `json:"toolIds"`
}

// Stack is a curated combination of tools (e.g. "MERN", "Modern Jamstack")
// maintained by admins and browsed by slug.
type Stack struct {
	ID          uuid.UUID      `json:"id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Sections    []StackSection `json:"sections"`
	UpdatedAt   time.Time      `json:"lastUpdated"`
	CreatedAt   time.Time      `json:"-"`
}
