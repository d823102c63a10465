package fundpools

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFundPoolRepository struct {
	mock.Mock
}

func (m *mockFundPoolRepository) CreateFundPool(ctx context.Context, input FundPool) (FundPool, error) {
	args := m.Called(ctx, input)
	p, _ := args.Get(0).(FundPool)
	return p, args.Error(1)
}

func (m *mockFundPoolRepository) GetFundPoolByID(ctx context.Context, q Querier, id int64) (FundPool, error) {
	args := m.Called(ctx, q, id)
	p, _ := args.Get(0).(FundPool)
	return p, args.Error(1)
}

func (m *mockFundPoolRepository) GetFundPoolByStartup(ctx context.Context, startupID int64) (FundPool, error) {
	args := m.Called(ctx, startupID)
	p, _ := args.Get(0).(FundPool)
	return p, args.Error(1)
}

func (m *mockFundPoolRepository) ListFundPools(ctx context.Context, limit, offset int) ([]FundPool, int64, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]FundPool)
	return list, args.Get(1).(int64), args.Error(2)
}

// fakeQuerier scripts the RowsAffected of each Exec, in order.
type fakeQuerier struct {
	rows  []int64
	calls int
}

func (f *fakeQuerier) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	n := f.rows[f.calls]
	f.calls++
	return pgconn.NewCommandTag(fmt.Sprintf("UPDATE %d", n)), nil
}

func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func TestPoolAggregator_Reserve_Success(t *testing.T) {
	repo := new(mockFundPoolRepository)
	agg := NewPoolAggregator(repo)
	q := &fakeQuerier{rows: []int64{1}}

	err := agg.Reserve(context.Background(), q, 1, decimal.NewFromInt(500))

	require.NoError(t, err)
	repo.AssertNotCalled(t, "GetFundPoolByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestPoolAggregator_Reserve_CapacityExceeded(t *testing.T) {
	repo := new(mockFundPoolRepository)
	agg := NewPoolAggregator(repo)
	q := &fakeQuerier{rows: []int64{0}}

	repo.On("GetFundPoolByID", mock.Anything, q, int64(1)).Return(FundPool{
		ID:            1,
		FundGoal:      decimal.NewFromInt(1000),
		AcceptedTotal: decimal.NewFromInt(600),
		Status:        StatusOpen,
	}, nil)

	err := agg.Reserve(context.Background(), q, 1, decimal.NewFromInt(500))

	require.ErrorIs(t, err, ErrCapacityExceeded)
	repo.AssertExpectations(t)
}

func TestPoolAggregator_Reserve_PoolNotOpen(t *testing.T) {
	repo := new(mockFundPoolRepository)
	agg := NewPoolAggregator(repo)
	q := &fakeQuerier{rows: []int64{0}}

	repo.On("GetFundPoolByID", mock.Anything, q, int64(1)).Return(FundPool{
		ID:       1,
		FundGoal: decimal.NewFromInt(1000),
		Status:   StatusCompleted,
	}, nil)

	err := agg.Reserve(context.Background(), q, 1, decimal.NewFromInt(100))

	require.ErrorIs(t, err, ErrPoolNotOpen)
	repo.AssertExpectations(t)
}

func TestPoolAggregator_Reserve_MissingPool(t *testing.T) {
	repo := new(mockFundPoolRepository)
	agg := NewPoolAggregator(repo)
	q := &fakeQuerier{rows: []int64{0}}

	repo.On("GetFundPoolByID", mock.Anything, q, int64(99)).Return(FundPool{}, ErrPoolNotFound)

	err := agg.Reserve(context.Background(), q, 99, decimal.NewFromInt(100))

	require.ErrorIs(t, err, ErrPoolNotFound)
	repo.AssertExpectations(t)
}

func TestPoolAggregator_Commit_Success(t *testing.T) {
	repo := new(mockFundPoolRepository)
	agg := NewPoolAggregator(repo)
	q := &fakeQuerier{rows: []int64{1}}

	err := agg.Commit(context.Background(), q, 1, decimal.NewFromInt(500))

	require.NoError(t, err)
}

func TestPoolAggregator_Commit_NoReservation(t *testing.T) {
	repo := new(mockFundPoolRepository)
	agg := NewPoolAggregator(repo)
	q := &fakeQuerier{rows: []int64{0}}

	err := agg.Commit(context.Background(), q, 1, decimal.NewFromInt(500))

	require.ErrorIs(t, err, ErrNoReservation)
}

func TestPoolAggregator_Release_NoReservation(t *testing.T) {
	repo := new(mockFundPoolRepository)
	agg := NewPoolAggregator(repo)
	q := &fakeQuerier{rows: []int64{0}}

	err := agg.Release(context.Background(), q, 1, decimal.NewFromInt(500))

	require.ErrorIs(t, err, ErrNoReservation)
}
