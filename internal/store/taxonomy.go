// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"devdirectory/internal/models"
)

// GroupStore manages taxonomy groups and their nested categories.
type GroupStore struct {
	db *sql.DB
}

// NewGroupStore returns a new GroupStore.
func NewGroupStore(db *sql.DB) *GroupStore {
	return &GroupStore{db: db}
}

// ListGroups returns the full taxonomy tree in display order: groups by
// sort_order, each with its categories by sort_order.
func (s *GroupStore) ListGroups(ctx context.Context) ([]models.Group, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, slug, sort_order, created_at, updated_at
		FROM groups ORDER BY sort_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.SortOrder, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		index[g.ID] = len(groups)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	catRows, err := s.db.QueryContext(ctx, `
		SELECT id, group_id, name, slug, description, icon, tool_count, sort_order, created_at, updated_at
		FROM categories ORDER BY sort_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer catRows.Close()

	for catRows.Next() {
		var c models.Category
		err := catRows.Scan(
			&c.ID, &c.GroupID, &c.Name, &c.Slug, &c.Description,
			&c.Icon, &c.ToolCount, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		if i, ok := index[c.GroupID]; ok {
			groups[i].Categories = append(groups[i].Categories, c)
		}
	}
	return groups, catRows.Err()
}

// Create inserts a new group.
func (s *GroupStore) Create(g *models.Group) (*models.Group, error) {
	row := s.db.QueryRow(`
		INSERT INTO groups (name, slug, sort_order)
		VALUES ($1, $2, $3)
		RETURNING id, name, slug, sort_order, created_at, updated_at
	`, g.Name, g.Slug, g.SortOrder)

	var out models.Group
	if err := row.Scan(&out.ID, &out.Name, &out.Slug, &out.SortOrder, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return &out, nil
}

// Update modifies a group's name, slug, and position.
func (s *GroupStore) Update(g *models.Group) error {
	_, err := s.db.Exec(`
		UPDATE groups SET name = $1, slug = $2, sort_order = $3, updated_at = NOW()
		WHERE id = $4
	`, g.Name, g.Slug, g.SortOrder, g.ID)
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	return nil
}

// Delete removes a group. Its categories cascade.
func (s *GroupStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}

// CategoryStore manages taxonomy categories.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, group_id, name, slug, description, icon, tool_count, sort_order, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.GroupID, &c.Name, &c.Slug, &c.Description,
		&c.Icon, &c.ToolCount, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(slug string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	row := s.db.QueryRow(`
		INSERT INTO categories (group_id, name, slug, description, icon, tool_count, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+categoryColumns,
		c.GroupID, c.Name, c.Slug, c.Description, c.Icon, c.ToolCount, c.SortOrder,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies an existing category. Renames must also migrate tool
// rows via ToolStore.RenameCategory — the join is by display name.
func (s *CategoryStore) Update(c *models.Category) error {
	_, err := s.db.Exec(`
		UPDATE categories SET
			group_id = $1, name = $2, slug = $3, description = $4,
			icon = $5, tool_count = $6, sort_order = $7, updated_at = NOW()
		WHERE id = $8
	`, c.GroupID, c.Name, c.Slug, c.Description, c.Icon, c.ToolCount, c.SortOrder, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category by ID. Tools referencing it keep their
// category name and become unreachable through navigation until they
// are re-categorised.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
