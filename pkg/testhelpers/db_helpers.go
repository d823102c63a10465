package testhelpers

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var uniqueCounter int64

func nextSuffix() int64 {
	return atomic.AddInt64(&uniqueCounter, 1)
}

// CreateTestProfile inserts a minimal valid profile row and returns its ID.
func CreateTestProfile(t *testing.T, db *pgxpool.Pool, profileType string) int64 {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	name := fmt.Sprintf("test-profile-%d", suffix)
	email := fmt.Sprintf("%s@example.com", name)

	var id int64
	err := db.QueryRow(ctx,
		"INSERT INTO profiles (uuid, name, email, profile_type, password_hash) VALUES ($1, $2, $3, $4, 'hash') RETURNING id",
		uuid.NewString(), name, email, profileType).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTestStartup inserts an active startup for the given founder and returns its ID.
func CreateTestStartup(t *testing.T, db *pgxpool.Pool, founderID int64) int64 {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	name := fmt.Sprintf("test-startup-%d", suffix)

	var id int64
	err := db.QueryRow(ctx,
		"INSERT INTO startups (founder_id, name, status) VALUES ($1, $2, 'active') RETURNING id",
		founderID, name).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTestMember inserts a member row for the given startup and profile.
func CreateTestMember(t *testing.T, db *pgxpool.Pool, startupID, profileID int64, role string) int64 {
	t.Helper()

	ctx := context.Background()
	var id int64
	err := db.QueryRow(ctx,
		"INSERT INTO members (startup_id, profile_id, role) VALUES ($1, $2, $3) RETURNING id",
		startupID, profileID, role).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTestFundPool inserts an open fund pool for the given startup and returns its ID.
func CreateTestFundPool(t *testing.T, db *pgxpool.Pool, startupID int64, fundGoal decimal.Decimal) int64 {
	t.Helper()

	ctx := context.Background()
	var id int64
	err := db.QueryRow(ctx,
		"INSERT INTO fund_pools (startup_id, fund_goal, status) VALUES ($1, $2, 'open') RETURNING id",
		startupID, fundGoal).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTestInvestment inserts a pending investment and returns its ID.
func CreateTestInvestment(t *testing.T, db *pgxpool.Pool, poolID, startupID, profileID int64, amount decimal.Decimal) int64 {
	t.Helper()

	ctx := context.Background()
	var id int64
	err := db.QueryRow(ctx,
		"INSERT INTO investments (fund_pool_id, startup_id, profile_id, amount, status) VALUES ($1, $2, $3, $4, 'pending') RETURNING id",
		poolID, startupID, profileID, amount).Scan(&id)
	require.NoError(t, err)
	return id
}
