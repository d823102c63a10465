package startups

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"seedround/pkg/testhelpers"
)

func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL_FOR_TEST")
	if dsn == "" {
		t.Skip("DATABASE_URL_FOR_TEST not set; skipping repository tests")
	}

	ctx := context.Background()
	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))

	t.Cleanup(pool.Close)
	return pool
}

func TestPostgresStartupRepository_CreateStartup(t *testing.T) {
	pool := setupTestPool(t)

	repo := NewPostgresStartupRepository(pool)
	ctx := context.Background()
	founderID := testhelpers.CreateTestProfile(t, pool, "founder")

	created, err := repo.CreateStartup(ctx, Startup{
		FounderID:   founderID,
		Name:        "Acme",
		Description: "Acme desc",
		Status:      StatusActive,
	})

	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "Acme", created.Name)
	require.Equal(t, founderID, created.FounderID)
}

func TestPostgresStartupRepository_CreateStartup_MissingFounder(t *testing.T) {
	pool := setupTestPool(t)

	repo := NewPostgresStartupRepository(pool)
	ctx := context.Background()

	_, err := repo.CreateStartup(ctx, Startup{
		FounderID: 999999999,
		Name:      "NoFounder",
		Status:    StatusActive,
	})

	require.ErrorIs(t, err, ErrFounderNotFound)
}

func TestPostgresStartupRepository_DeleteStartup(t *testing.T) {
	pool := setupTestPool(t)

	repo := NewPostgresStartupRepository(pool)
	ctx := context.Background()
	founderID := testhelpers.CreateTestProfile(t, pool, "founder")
	startupID := testhelpers.CreateTestStartup(t, pool, founderID)

	require.NoError(t, repo.DeleteStartup(ctx, startupID))

	_, err := repo.GetStartupByID(ctx, startupID)
	require.ErrorIs(t, err, ErrStartupNotFound)

	// Soft delete: deleting again reports not found.
	require.ErrorIs(t, repo.DeleteStartup(ctx, startupID), ErrStartupNotFound)
}

func TestPostgresStartupRepository_ListStartupsByFounder(t *testing.T) {
	pool := setupTestPool(t)

	repo := NewPostgresStartupRepository(pool)
	ctx := context.Background()
	founderID := testhelpers.CreateTestProfile(t, pool, "founder")

	testhelpers.CreateTestStartup(t, pool, founderID)
	testhelpers.CreateTestStartup(t, pool, founderID)

	list, err := repo.ListStartupsByFounder(ctx, founderID)

	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, s := range list {
		require.Equal(t, founderID, s.FounderID)
	}
}
