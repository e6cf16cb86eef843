// Package testutil opens migrated test databases for the postgres contract
// suites. Tests skip unless TEST_DATABASE_URL points at a disposable
// database the suite may freely truncate.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petorang/superpet-api/internal/adapters/postgres"
	"github.com/petorang/superpet-api/internal/adapters/postgres/migrations"
)

// OpenMigratedPool connects to TEST_DATABASE_URL, applies all migrations,
// and truncates the domain tables so each package starts clean. The pool is
// closed via t.Cleanup.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres contract tests")
	}

	ctx := context.Background()
	if err := migrations.Up(ctx, url); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, url, postgres.PoolOptions{})
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	for _, table := range []string{"room_keys", "rooms", "game_saves", "gem_transactions", "members"} {
		if _, err := pool.Exec(ctx, "TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE"); err != nil {
			t.Fatalf("truncate %s: %v", table, err)
		}
	}
	return pool
}
