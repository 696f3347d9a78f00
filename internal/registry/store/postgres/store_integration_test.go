//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"

	"smp/internal/registry/backend"
	"smp/internal/registry/store/postgres"
	"smp/internal/registry/store/storetest"
	"smp/pkg/testutil/containers"
)

var migrateOnce sync.Once

// TestContract runs the manager contract against a real Postgres server.
// Each test gets a pool of its own because the provider closes it.
func TestContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	migrateOnce.Do(func() {
		require.NoError(t, postgres.Migrate(pg.DSN))
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	storetest.Run(t, func(t *testing.T) backend.Provider {
		require.NoError(t, pg.TruncateTables(context.Background(), postgres.Tables...))
		db, err := sql.Open("pgx", pg.DSN)
		require.NoError(t, err)
		return postgres.NewProvider(db, logger)
	})
}

// TestMigrate_Idempotent verifies a second run against an up-to-date schema
// is not an error.
func TestMigrate_Idempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	require.NoError(t, postgres.Migrate(pg.DSN))
	require.NoError(t, postgres.Migrate(pg.DSN))
}
