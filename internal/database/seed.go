package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"devdirectory/internal/catalog"
)

// Seed populates the database with initial development data: a default
// admin user if none exists, and the baseline taxonomy if the groups
// table is empty. The admin will be prompted to set up 2FA on first
// login (totp_enabled = false).
func Seed(db *sql.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	return seedTaxonomy(db)
}

func seedAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("users already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Insert default admin user. 2FA is not enabled — they must set it up
	// on first login.
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@devdirectory.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@devdirectory.local",
		"password", "admin",
	)
	return nil
}

// seedTaxonomy loads the bundled group/category tree into an empty
// database so a fresh install browses the same sections the embedded
// baseline serves.
func seedTaxonomy(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM groups").Scan(&count); err != nil {
		return fmt.Errorf("seed check groups: %w", err)
	}
	if count > 0 {
		slog.Info("taxonomy already seeded, skipping")
		return nil
	}

	groups, _, err := catalog.Baseline()
	if err != nil {
		return fmt.Errorf("seed baseline: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, g := range groups {
		_, err := tx.Exec(`
			INSERT INTO groups (id, name, slug, sort_order)
			VALUES ($1, $2, $3, $4)
		`, g.ID, g.Name, g.Slug, g.SortOrder)
		if err != nil {
			return fmt.Errorf("seed insert group %s: %w", g.Slug, err)
		}
		for _, c := range g.Categories {
			_, err := tx.Exec(`
				INSERT INTO categories (id, group_id, name, slug, description, icon, tool_count, sort_order)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`, c.ID, c.GroupID, c.Name, c.Slug, c.Description, c.Icon, c.ToolCount, c.SortOrder)
			if err != nil {
				return fmt.Errorf("seed insert category %s: %w", c.Slug, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with baseline taxonomy", "groups", len(groups))
	return nil
}
