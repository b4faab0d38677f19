// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"devdirectory/internal/models"
)

// GuideStore manages learning guides.
type GuideStore struct {
	db *sql.DB
}

// NewGuideStore returns a new GuideStore.
func NewGuideStore(db *sql.DB) *GuideStore {
	return &GuideStore{db: db}
}

const guideColumns = `id, title, count_label, color, icon, body, sort_order, created_at, updated_at`

func scanGuide(scanner interface{ Scan(...any) error }) (*models.Guide, error) {
	var g models.Guide
	err := scanner.Scan(
		&g.ID, &g.Title, &g.CountLabel, &g.Color, &g.Icon,
		&g.Body, &g.SortOrder, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns all guides in display order.
func (s *GuideStore) List() ([]models.Guide, error) {
	rows, err := s.db.Query(`SELECT ` + guideColumns + ` FROM guides ORDER BY sort_order, title`)
	if err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}
	defer rows.Close()

	var items []models.Guide
	for rows.Next() {
		g, err := scanGuide(rows)
		if err != nil {
			return nil, fmt.Errorf("scan guide: %w", err)
		}
		items = append(items, *g)
	}
	return items, rows.Err()
}

// FindByID retrieves a guide by ID. Returns nil if not found.
func (s *GuideStore) FindByID(id uuid.UUID) (*models.Guide, error) {
	row := s.db.QueryRow(`SELECT `+guideColumns+` FROM guides WHERE id = $1`, id)
	g, err := scanGuide(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find guide by id: %w", err)
	}
	return g, nil
}

// Create inserts a new guide and returns it.
func (s *GuideStore) Create(g *models.Guide) (*models.Guide, error) {
	row := s.db.QueryRow(`
		INSERT INTO guides (title, count_label, color, icon, body, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+guideColumns,
		g.Title, g.CountLabel, g.Color, g.Icon, g.Body, g.SortOrder,
	)
	result, err := scanGuide(row)
	if err != nil {
		return nil, fmt.Errorf("create guide: %w", err)
	}
	return result, nil
}

// Update modifies an existing guide.
func (s *GuideStore) Update(g *models.Guide) error {
	_, err := s.db.Exec(`
		UPDATE guides SET title = $1, count_label = $2, color = $3, icon = $4,
			body = $5, sort_order = $6, updated_at = NOW()
		WHERE id = $7
	`, g.Title, g.CountLabel, g.Color, g.Icon, g.Body, g.SortOrder, g.ID)
	if err != nil {
		return fmt.Errorf("update guide: %w", err)
	}
	return nil
}

// Delete removes a guide by ID.
func (s *GuideStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM guides WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete guide: %w", err)
	}
	return nil
}
