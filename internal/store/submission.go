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

// SubmissionStore manages public tool submissions awaiting review.
type SubmissionStore struct {
	db *sql.DB
}

// NewSubmissionStore returns a new SubmissionStore.
func NewSubmissionStore(db *sql.DB) *SubmissionStore {
	return &SubmissionStore{db: db}
}

const submissionColumns = `id, name, website, description, category, pricing, email, status, created_at`

func scanSubmission(scanner interface{ Scan(...any) error }) (*models.Submission, error) {
	var sub models.Submission
	err := scanner.Scan(
		&sub.ID, &sub.Name, &sub.Website, &sub.Description,
		&sub.Category, &sub.Pricing, &sub.Email, &sub.Status, &sub.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Create records a new pending submission from the public form.
func (s *SubmissionStore) Create(sub *models.Submission) (*models.Submission, error) {
	row := s.db.QueryRow(`
		INSERT INTO submissions (name, website, description, category, pricing, email, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING `+submissionColumns,
		sub.Name, sub.Website, sub.Description, sub.Category, sub.Pricing, sub.Email,
	)
	result, err := scanSubmission(row)
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return result, nil
}

// List returns submissions newest first, optionally filtered by status.
// An empty status returns everything.
func (s *SubmissionStore) List(status models.SubmissionStatus) ([]models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var items []models.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		items = append(items, *sub)
	}
	return items, rows.Err()
}

// FindByID retrieves a submission by ID. Returns nil if not found.
func (s *SubmissionStore) FindByID(id uuid.UUID) (*models.Submission, error) {
	row := s.db.QueryRow(`SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id)
	sub, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find submission by id: %w", err)
	}
	return sub, nil
}

// SetStatus moves a submission through review. The row is kept after
// approval or rejection for the audit trail.
func (s *SubmissionStore) SetStatus(id uuid.UUID, status models.SubmissionStatus) error {
	_, err := s.db.Exec(`UPDATE submissions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("set submission status: %w", err)
	}
	return nil
}
