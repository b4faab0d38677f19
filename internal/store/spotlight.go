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

// SpotlightStore manages homepage spotlight collections. Each item's
// payload is stored as raw JSONB; the kinds have different shapes and
// the store never looks inside them.
type SpotlightStore struct {
	db *sql.DB
}

// NewSpotlightStore returns a new SpotlightStore.
func NewSpotlightStore(db *sql.DB) *SpotlightStore {
	return &SpotlightStore{db: db}
}

const spotlightColumns = `id, kind, sort_order, data, created_at, updated_at`

func scanSpotlight(scanner interface{ Scan(...any) error }) (*models.SpotlightItem, error) {
	var item models.SpotlightItem
	err := scanner.Scan(&item.ID, &item.Kind, &item.SortOrder, &item.Data, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByKind returns one collection's items in display order.
func (s *SpotlightStore) ListByKind(kind models.SpotlightKind) ([]models.SpotlightItem, error) {
	rows, err := s.db.Query(`
		SELECT `+spotlightColumns+` FROM spotlight_items
		WHERE kind = $1 ORDER BY sort_order
	`, kind)
	if err != nil {
		return nil, fmt.Errorf("list spotlight %s: %w", kind, err)
	}
	defer rows.Close()

	var items []models.SpotlightItem
	for rows.Next() {
		item, err := scanSpotlight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan spotlight item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// ListAll returns every spotlight item grouped by kind in display order.
func (s *SpotlightStore) ListAll() (map[models.SpotlightKind][]models.SpotlightItem, error) {
	rows, err := s.db.Query(`SELECT ` + spotlightColumns + ` FROM spotlight_items ORDER BY kind, sort_order`)
	if err != nil {
		return nil, fmt.Errorf("list spotlight items: %w", err)
	}
	defer rows.Close()

	out := make(map[models.SpotlightKind][]models.SpotlightItem)
	for rows.Next() {
		item, err := scanSpotlight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan spotlight item: %w", err)
		}
		out[item.Kind] = append(out[item.Kind], *item)
	}
	return out, rows.Err()
}

// Create inserts a new spotlight item and returns it.
func (s *SpotlightStore) Create(item *models.SpotlightItem) (*models.SpotlightItem, error) {
	row := s.db.QueryRow(`
		INSERT INTO spotlight_items (kind, sort_order, data)
		VALUES ($1, $2, $3)
		RETURNING `+spotlightColumns,
		item.Kind, item.SortOrder, []byte(item.Data),
	)
	result, err := scanSpotlight(row)
	if err != nil {
		return nil, fmt.Errorf("create spotlight item: %w", err)
	}
	return result, nil
}

// Update replaces an item's payload and position.
func (s *SpotlightStore) Update(item *models.SpotlightItem) error {
	_, err := s.db.Exec(`
		UPDATE spotlight_items SET kind = $1, sort_order = $2, data = $3, updated_at = NOW()
		WHERE id = $4
	`, item.Kind, item.SortOrder, []byte(item.Data), item.ID)
	if err != nil {
		return fmt.Errorf("update spotlight item: %w", err)
	}
	return nil
}

// Delete removes a spotlight item by ID.
func (s *SpotlightStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM spotlight_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete spotlight item: %w", err)
	}
	return nil
}
