// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus tracks where a public tool submission sits in review.
type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// Submission is a tool suggested by an anonymous visitor through the
// public submit form. Approving one creates a catalog Tool; the
// submission row is kept for the audit trail.
type Submission struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Website     string           `json:"website"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Pricing     Pricing          `json:"pricing"`
	Email       string           `json:"email"`
	Status      SubmissionStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
}
