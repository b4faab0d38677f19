// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"devdirectory/internal/models"
)

const userColumns = `id, email, password_hash, display_name, role, totp_secret, totp_enabled, created_at, updated_at`

// UserStore manages admin-console accounts: credentials, roles and the
// per-user TOTP state.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := scanner.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Role,
		&u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// findOne runs a single-row user query; a miss is (nil, nil), not an error.
func (s *UserStore) findOne(what, query string, arg any) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(query, arg))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("find user by %s: %w", what, err)
	}
	return u, nil
}

// FindByEmail looks an account up by email. Returns nil when absent.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	return s.findOne("email", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// FindByID looks an account up by UUID. Returns nil when absent.
func (s *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	return s.findOne("id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// List returns every account, oldest first.
func (s *UserStore) List() ([]models.User, error) {
	rows, err := s.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Create inserts an account, bcrypt-hashing the password. TOTP starts
// disabled; the first login walks the user through setup.
func (s *UserStore) Create(email, password, displayName string, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	row := s.db.QueryRow(
		`INSERT INTO users (email, password_hash, display_name, role) VALUES ($1, $2, $3, $4) RETURNING `+userColumns,
		email, string(hash), displayName, role,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *UserStore) exec(what, query string, args ...any) error {
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

// SetTOTPSecret stores the secret minted during 2FA setup. The account
// stays unenrolled until a code verifies.
func (s *UserStore) SetTOTPSecret(userID uuid.UUID, secret string) error {
	return s.exec("set totp secret",
		`UPDATE users SET totp_secret = $1, updated_at = NOW() WHERE id = $2`, secret, userID)
}

// EnableTOTP marks the account as enrolled after a code verified.
func (s *UserStore) EnableTOTP(userID uuid.UUID) error {
	return s.exec("enable totp",
		`UPDATE users SET totp_enabled = TRUE, updated_at = NOW() WHERE id = $1`, userID)
}

// ResetTOTP wipes the secret and disables enrollment, forcing a fresh
// setup on the next login. Used when a user loses their authenticator.
func (s *UserStore) ResetTOTP(userID uuid.UUID) error {
	return s.exec("reset totp",
		`UPDATE users SET totp_secret = NULL, totp_enabled = FALSE, updated_at = NOW() WHERE id = $1`, userID)
}

// Delete removes an account.
func (s *UserStore) Delete(userID uuid.UUID) error {
	return s.exec("delete user", `DELETE FROM users WHERE id = $1`, userID)
}

// CheckPassword reports whether the plaintext matches the stored hash.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
