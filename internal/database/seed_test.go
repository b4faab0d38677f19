// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import "testing"

func TestSeedIdempotent(t *testing.T) {
	db := openTestDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	if err := Seed(db); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	// Second run must not duplicate anything.
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var admins int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE role = 'admin'`).Scan(&admins); err != nil {
		t.Fatalf("count admins: %v", err)
	}
	if admins < 1 {
		t.Error("no admin user after seed")
	}

	var groups int
	if err := db.QueryRow(`SELECT COUNT(*) FROM groups`).Scan(&groups); err != nil {
		t.Fatalf("count groups: %v", err)
	}
	if groups == 0 {
		t.Error("no taxonomy groups after seed")
	}
}
