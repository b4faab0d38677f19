// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"devdirectory/internal/database"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens the test database and brings the schema up to date,
// skipping the test when PostgreSQL is unreachable. Defaults match
// docker-compose.yml.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		envOr("POSTGRES_USER", "devdirectory"),
		envOr("POSTGRES_PASSWORD", "changeme"),
		envOr("POSTGRES_HOST", "localhost"),
		envOr("POSTGRES_PORT", "5432"),
		envOr("POSTGRES_DB", "devdirectory"),
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanRows deletes test fixtures matching column values. Call in
// t.Cleanup() with the IDs, slugs or emails a test inserted.
func cleanRows(t *testing.T, db *sql.DB, table, column string, values ...string) {
	t.Helper()
	for _, v := range values {
		db.Exec("DELETE FROM "+table+" WHERE "+column+" = $1", v)
	}
}

func cleanTools(t *testing.T, db *sql.DB, ids ...string) {
	cleanRows(t, db, "tools", "id", ids...)
}

func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	cleanRows(t, db, "users", "email", emails...)
}

func cleanStacks(t *testing.T, db *sql.DB, slugs ...string) {
	cleanRows(t, db, "stacks", "slug", slugs...)
}

func cleanSubmissions(t *testing.T, db *sql.DB, names ...string) {
	cleanRows(t, db, "submissions", "name", names...)
}
