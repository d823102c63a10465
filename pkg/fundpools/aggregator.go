package fundpools

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrPoolNotOpen      = errors.New("fund pool is not open")
	ErrCapacityExceeded = errors.New("fund pool capacity exceeded")
	ErrNoReservation    = errors.New("no matching reservation on fund pool")
)

// PoolAggregator owns the accepted/reserved totals of a fund pool and the
// open -> completed transition. Reserve, Commit and Release are each a single
// conditional UPDATE whose WHERE clause carries the capacity invariant, so the
// totals can never overshoot fund_goal regardless of interleaving. Callers run
// the reserve-through-commit window inside one transaction; rolling that
// transaction back is the implicit release.
type PoolAggregator interface {
	Reserve(ctx context.Context, q Querier, poolID int64, amount decimal.Decimal) error
	Commit(ctx context.Context, q Querier, poolID int64, amount decimal.Decimal) error
	Release(ctx context.Context, q Querier, poolID int64, amount decimal.Decimal) error
}

type poolAggregator struct {
	repo FundPoolRepository
}

func NewPoolAggregator(repo FundPoolRepository) PoolAggregator {
	return &poolAggregator{repo: repo}
}

func (a *poolAggregator) Reserve(ctx context.Context, q Querier, poolID int64, amount decimal.Decimal) error {
	query := `UPDATE fund_pools
              SET reserved_total = reserved_total + $2, updated_at = NOW()
              WHERE id = $1
                AND status = 'open'
                AND accepted_total + reserved_total + $2 <= fund_goal`
	cmd, err := q.Exec(ctx, query, poolID, amount)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}

	// The conditional update missed; read the pool to report why.
	p, err := a.repo.GetFundPoolByID(ctx, q, poolID)
	if err != nil {
		return err
	}
	if p.Status != StatusOpen {
		return ErrPoolNotOpen
	}
	return ErrCapacityExceeded
}

func (a *poolAggregator) Commit(ctx context.Context, q Querier, poolID int64, amount decimal.Decimal) error {
	// Flipping to completed happens in the same statement as the total move,
	// so there is no window where the pool is fully funded yet still open.
	query := `UPDATE fund_pools
              SET accepted_total = accepted_total + $2,
                  reserved_total = reserved_total - $2,
                  status = CASE WHEN accepted_total + $2 >= fund_goal THEN 'completed' ELSE status END,
                  updated_at = NOW()
              WHERE id = $1
                AND status = 'open'
                AND reserved_total >= $2`
	cmd, err := q.Exec(ctx, query, poolID, amount)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNoReservation
	}
	return nil
}

func (a *poolAggregator) Release(ctx context.Context, q Querier, poolID int64, amount decimal.Decimal) error {
	query := `UPDATE fund_pools
              SET reserved_total = reserved_total - $2, updated_at = NOW()
              WHERE id = $1 AND reserved_total >= $2`
	cmd, err := q.Exec(ctx, query, poolID, amount)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNoReservation
	}
	return nil
}
