// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Role scopes what an account may do in the admin console. Editors
// manage catalogue content; only admins manage accounts.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// User is an admin-console account. Visitors of the public directory
// are anonymous and never get a User row.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	Role         Role      `json:"role"`
	TOTPSecret   *string   `json:"-"`
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Needs2FASetup reports whether the account still has to enrol an
// authenticator before it can use the admin surface.
func (u *User) Needs2FASetup() bool {
	return !u.TOTPEnabled || u.TOTPSecret == nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
