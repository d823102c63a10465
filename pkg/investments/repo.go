package investments

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"seedround/pkg/fundpools"
)

var (
	ErrInvestmentNotFound = errors.New("investment not found")
	ErrIllegalTransition  = errors.New("illegal investment status transition")
	ErrProfileNotFound    = errors.New("investor profile not found")
)

type InvestmentRepository interface {
	CreateInvestment(ctx context.Context, input Investment) (Investment, error)
	// Decide transitions a pending investment to accepted or declined. For
	// accepts it runs reserve -> status update -> commit inside one
	// transaction; the pool row lock taken by the reserve serializes
	// concurrent accepts against the same pool. Returns the investment and
	// the pool status after the decision.
	Decide(ctx context.Context, id int64, target string) (Investment, string, error)
	Withdraw(ctx context.Context, id int64) (Investment, error)
	GetInvestmentByID(ctx context.Context, id int64) (Investment, error)
	ListByPool(ctx context.Context, poolID int64) ([]Investment, error)
	ListByProfile(ctx context.Context, profileID int64) ([]Investment, error)
}

type postgresInvestmentRepository struct {
	pool *pgxpool.Pool
	agg  fundpools.PoolAggregator
}

func NewPostgresInvestmentRepository(pool *pgxpool.Pool, agg fundpools.PoolAggregator) InvestmentRepository {
	return &postgresInvestmentRepository{pool: pool, agg: agg}
}

const investmentColumns = "id, fund_pool_id, startup_id, profile_id, amount, status, created_at, updated_at"

func scanInvestment(row pgx.Row) (Investment, error) {
	var inv Investment
	err := row.Scan(&inv.ID, &inv.FundPoolID, &inv.StartupID, &inv.ProfileID, &inv.Amount, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	return inv, err
}

func (r *postgresInvestmentRepository) CreateInvestment(ctx context.Context, input Investment) (Investment, error) {
	// The openness check lives in the INSERT itself, so a pool completing
	// concurrently can never gain a new pending investment.
	query := `INSERT INTO investments (fund_pool_id, startup_id, profile_id, amount, status, created_at, updated_at)
              SELECT p.id, p.startup_id, $2, $3, 'pending', NOW(), NOW()
              FROM fund_pools p
              WHERE p.id = $1 AND p.status = 'open'
              RETURNING ` + investmentColumns

	row := r.pool.QueryRow(ctx, query, input.FundPoolID, input.ProfileID, input.Amount)
	created, err := scanInvestment(row)
	if err == nil {
		return created, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return Investment{}, ErrProfileNotFound
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Investment{}, err
	}

	// No row inserted: pool missing or already completed.
	var status string
	row = r.pool.QueryRow(ctx, "SELECT status FROM fund_pools WHERE id = $1", input.FundPoolID)
	if err := row.Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Investment{}, fundpools.ErrPoolNotFound
		}
		return Investment{}, err
	}
	return Investment{}, fundpools.ErrPoolNotOpen
}

func (r *postgresInvestmentRepository) Decide(ctx context.Context, id int64, target string) (Investment, string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Investment{}, "", err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, "SELECT "+investmentColumns+" FROM investments WHERE id = $1 FOR UPDATE", id)
	inv, err := scanInvestment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Investment{}, "", ErrInvestmentNotFound
		}
		return Investment{}, "", err
	}

	if !CanTransition(inv.Status, target) {
		return Investment{}, "", ErrIllegalTransition
	}

	if target == StatusAccepted {
		if err := r.agg.Reserve(ctx, tx, inv.FundPoolID, inv.Amount); err != nil {
			return Investment{}, "", err
		}
	}

	row = tx.QueryRow(ctx, `UPDATE investments SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING `+investmentColumns, target, id)
	updated, err := scanInvestment(row)
	if err != nil {
		if target == StatusAccepted {
			// Compensate the reservation before the rollback surfaces.
			_ = r.agg.Release(ctx, tx, inv.FundPoolID, inv.Amount)
		}
		return Investment{}, "", err
	}

	if target == StatusAccepted {
		if err := r.agg.Commit(ctx, tx, inv.FundPoolID, inv.Amount); err != nil {
			return Investment{}, "", err
		}
	}

	var poolStatus string
	row = tx.QueryRow(ctx, "SELECT status FROM fund_pools WHERE id = $1", inv.FundPoolID)
	if err := row.Scan(&poolStatus); err != nil {
		return Investment{}, "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return Investment{}, "", err
	}
	return updated, poolStatus, nil
}

func (r *postgresInvestmentRepository) Withdraw(ctx context.Context, id int64) (Investment, error) {
	query := `UPDATE investments SET status = 'withdrawn', updated_at = NOW()
              WHERE id = $1 AND status = 'pending'
              RETURNING ` + investmentColumns
	row := r.pool.QueryRow(ctx, query, id)
	inv, err := scanInvestment(row)
	if err == nil {
		return inv, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Investment{}, err
	}

	// Distinguish a missing investment from a terminal one.
	var status string
	row = r.pool.QueryRow(ctx, "SELECT status FROM investments WHERE id = $1", id)
	if err := row.Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Investment{}, ErrInvestmentNotFound
		}
		return Investment{}, err
	}
	return Investment{}, ErrIllegalTransition
}

func (r *postgresInvestmentRepository) GetInvestmentByID(ctx context.Context, id int64) (Investment, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+investmentColumns+" FROM investments WHERE id = $1", id)
	inv, err := scanInvestment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Investment{}, ErrInvestmentNotFound
		}
		return Investment{}, err
	}
	return inv, nil
}

func (r *postgresInvestmentRepository) ListByPool(ctx context.Context, poolID int64) ([]Investment, error) {
	return r.list(ctx, "fund_pool_id", poolID)
}

func (r *postgresInvestmentRepository) ListByProfile(ctx context.Context, profileID int64) ([]Investment, error) {
	return r.list(ctx, "profile_id", profileID)
}

func (r *postgresInvestmentRepository) list(ctx context.Context, column string, id int64) ([]Investment, error) {
	query := "SELECT " + investmentColumns + " FROM investments WHERE " + column + " = $1 ORDER BY id"
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]Investment, 0)
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
