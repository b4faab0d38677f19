// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"devdirectory/internal/models"
)

// StackStore manages curated stack pages. Sections are stored as a JSONB
// document because their shape (ordered sections of ordered tool IDs) is
// only ever read and written whole.
type StackStore struct {
	db *sql.DB
}

// NewStackStore returns a new StackStore.
func NewStackStore(db *sql.DB) *StackStore {
	return &StackStore{db: db}
}

const stackColumns = `id, slug, name, description, sections, created_at, updated_at`

func scanStack(scanner interface{ Scan(...any) error }) (*models.Stack, error) {
	var st models.Stack
	var sections []byte
	err := scanner.Scan(&st.ID, &st.Slug, &st.Name, &st.Description, &sections, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &st.Sections); err != nil {
			return nil, fmt.Errorf("decode stack sections for %s: %w", st.Slug, err)
		}
	}
	return &st, nil
}

// List returns all stacks ordered by name.
func (s *StackStore) List() ([]models.Stack, error) {
	rows, err := s.db.Query(`SELECT ` + stackColumns + ` FROM stacks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list stacks: %w", err)
	}
	defer rows.Close()

	var items []models.Stack
	for rows.Next() {
		st, err := scanStack(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stack: %w", err)
		}
		items = append(items, *st)
	}
	return items, rows.Err()
}

// FindBySlug retrieves a stack by its slug. Returns nil if not found.
func (s *StackStore) FindBySlug(slug string) (*models.Stack, error) {
	row := s.db.QueryRow(`SELECT `+stackColumns+` FROM stacks WHERE slug = $1`, slug)
	st, err := scanStack(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find stack by slug: %w", err)
	}
	return st, nil
}

// Create inserts a new stack and returns it.
func (s *StackStore) Create(st *models.Stack) (*models.Stack, error) {
	sections, err := encodeSections(st.Sections)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRow(`
		INSERT INTO stacks (slug, name, description, sections)
		VALUES ($1, $2, $3, $4)
		RETURNING `+stackColumns,
		st.Slug, st.Name, st.Description, sections,
	)
	result, err := scanStack(row)
	if err != nil {
		return nil, fmt.Errorf("create stack: %w", err)
	}
	return result, nil
}

// Update replaces a stack's content, sections included.
func (s *StackStore) Update(st *models.Stack) error {
	sections, err := encodeSections(st.Sections)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		UPDATE stacks SET slug = $1, name = $2, description = $3, sections = $4, updated_at = NOW()
		WHERE id = $5
	`, st.Slug, st.Name, st.Description, sections, st.ID)
	if err != nil {
		return fmt.Errorf("update stack: %w", err)
	}
	return nil
}

// Delete removes a stack by ID.
func (s *StackStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM stacks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stack: %w", err)
	}
	return nil
}

func encodeSections(sections []models.StackSection) ([]byte, error) {
	if sections == nil {
		sections = []models.StackSection{}
	}
	out, err := json.Marshal(sections)
	if err != nil {
		return nil, fmt.Errorf("encode stack sections: %w", err)
	}
	return out, nil
}
