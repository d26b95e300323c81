package storagetesting

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
)

// Open opens connection to DB. The test is skipped when DATABASE_URL is not set.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("no database URL provided via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

// CleanupData removes all price truth records and their sources.
func CleanupData(t *testing.T, db *sql.DB) {
	t.Helper()

	for _, statement := range []string{
		`DELETE FROM price_source`,
		`DELETE FROM price_truth`,
	} {
		if _, err := db.ExecContext(context.Background(), statement); err != nil {
			t.Fatalf("can't cleanup data: %s", err)
		}
	}
}
