// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all directory
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"devdirectory/internal/models"
	"devdirectory/internal/slug"
)

// ToolStore handles all tool-related database operations.
type ToolStore struct {
	db *sql.DB
}

// NewToolStore creates a new ToolStore with the given database connection.
func NewToolStore(db *sql.DB) *ToolStore {
	return &ToolStore{db: db}
}

const toolColumns = `id, name, description, short_description, category, group_name, tags,
	website_url, github_url, pricing, stars, stars_weekly, featured, logo,
	alternative_to, deal, deal_url, license, created_at, updated_at`

// scanTool scans a row into a Tool struct. Tags are stored as a JSONB
// array and decoded here.
func scanTool(scanner interface{ Scan(...any) error }) (*models.Tool, error) {
	var t models.Tool
	var tags []byte
	err := scanner.Scan(
		&t.ID, &t.Name, &t.Description, &t.ShortDescription, &t.Category, &t.Group, &tags,
		&t.WebsiteURL, &t.GithubURL, &t.Pricing, &t.Stars, &t.StarsWeekly, &t.Featured, &t.Logo,
		&t.AlternativeTo, &t.Deal, &t.DealURL, &t.License, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &t.Tags); err != nil {
			return nil, fmt.Errorf("decode tags for %s: %w", t.ID, err)
		}
	}
	return &t, nil
}

// ListTools returns every tool in storage order. This is the order the
// catalog snapshot preserves through filtering and pagination, so it is
// deliberately stable: insertion sequence, never alphabetical.
func (s *ToolStore) ListTools(ctx context.Context) ([]models.Tool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+toolColumns+` FROM tools ORDER BY sort_order ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	defer rows.Close()

	var tools []models.Tool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tool: %w", err)
		}
		tools = append(tools, *t)
	}
	return tools, rows.Err()
}

// FindByID retrieves a tool by ID. Returns nil if not found.
func (s *ToolStore) FindByID(id string) (*models.Tool, error) {
	row := s.db.QueryRow(`SELECT `+toolColumns+` FROM tools WHERE id = $1`, id)
	t, err := scanTool(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tool by id: %w", err)
	}
	return t, nil
}

// Create inserts a new tool and returns it. An empty ID is derived from
// the name; IDs are permanent once assigned, so a duplicate is an error
// rather than an overwrite.
func (s *ToolStore) Create(t *models.Tool) (*models.Tool, error) {
	if t.ID == "" {
		t.ID = slug.Generate(t.Name)
	}
	tags, err := json.Marshal(tagsOrEmpty(t.Tags))
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO tools (id, name, description, short_description, category, group_name, tags,
			website_url, github_url, pricing, stars, stars_weekly, featured, logo,
			alternative_to, deal, deal_url, license)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING `+toolColumns,
		t.ID, t.Name, t.Description, t.ShortDescription, t.Category, t.Group, tags,
		t.WebsiteURL, t.GithubURL, t.Pricing, t.Stars, t.StarsWeekly, t.Featured, t.Logo,
		t.AlternativeTo, t.Deal, t.DealURL, t.License,
	)
	result, err := scanTool(row)
	if err != nil {
		return nil, fmt.Errorf("create tool: %w", err)
	}
	return result, nil
}

// Update modifies an existing tool. The ID never changes.
func (s *ToolStore) Update(t *models.Tool) error {
	tags, err := json.Marshal(tagsOrEmpty(t.Tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE tools SET
			name = $1, description = $2, short_description = $3, category = $4,
			group_name = $5, tags = $6, website_url = $7, github_url = $8,
			pricing = $9, stars = $10, stars_weekly = $11, featured = $12,
			logo = $13, alternative_to = $14, deal = $15, deal_url = $16,
			license = $17, updated_at = NOW()
		WHERE id = $18
	`, t.Name, t.Description, t.ShortDescription, t.Category,
		t.Group, tags, t.WebsiteURL, t.GithubURL,
		t.Pricing, t.Stars, t.StarsWeekly, t.Featured,
		t.Logo, t.AlternativeTo, t.Deal, t.DealURL,
		t.License, t.ID)
	if err != nil {
		return fmt.Errorf("update tool: %w", err)
	}
	return nil
}

// Delete removes a tool by ID.
func (s *ToolStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM tools WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tool: %w", err)
	}
	return nil
}

// RenameCategory migrates tool rows from one category display name to
// another. Tools reference categories by name, not ID, so the admin
// rename path must run this in the same transaction mindset as the
// category row update or the renamed category silently loses its tools.
func (s *ToolStore) RenameCategory(oldName, newName string) (int64, error) {
	res, err := s.db.Exec(`
		UPDATE tools SET category = $1, updated_at = NOW() WHERE category = $2
	`, newName, oldName)
	if err != nil {
		return 0, fmt.Errorf("rename category on tools: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// tagsOrEmpty keeps a nil tag slice from encoding as JSON null.
func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
