package fundpools

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrPoolNotFound = errors.New("fund pool not found")
	ErrPoolExists   = errors.New("startup already has a fund pool")
)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx, so repository reads
// can run standalone or inside a caller-owned transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type FundPoolRepository interface {
	CreateFundPool(ctx context.Context, input FundPool) (FundPool, error)
	GetFundPoolByID(ctx context.Context, q Querier, id int64) (FundPool, error)
	GetFundPoolByStartup(ctx context.Context, startupID int64) (FundPool, error)
	ListFundPools(ctx context.Context, limit, offset int) ([]FundPool, int64, error)
}

type postgresFundPoolRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresFundPoolRepository(pool *pgxpool.Pool) FundPoolRepository {
	return &postgresFundPoolRepository{pool: pool}
}

const poolColumns = "id, startup_id, fund_goal, accepted_total, reserved_total, status, created_at, updated_at"

func scanPool(row pgx.Row) (FundPool, error) {
	var p FundPool
	err := row.Scan(&p.ID, &p.StartupID, &p.FundGoal, &p.AcceptedTotal, &p.ReservedTotal, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *postgresFundPoolRepository) CreateFundPool(ctx context.Context, input FundPool) (FundPool, error) {
	// INSERT..SELECT guards against pools for deleted startups; FK covers the rest.
	query := `INSERT INTO fund_pools (startup_id, fund_goal, status, created_at, updated_at)
              SELECT s.id, $2, 'open', NOW(), NOW()
              FROM startups s
              WHERE s.id = $1 AND s.is_deleted = false
              RETURNING ` + poolColumns

	row := r.pool.QueryRow(ctx, query, input.StartupID, input.FundGoal)
	created, err := scanPool(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FundPool{}, ErrPoolNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return FundPool{}, ErrPoolExists
		}
		return FundPool{}, err
	}
	return created, nil
}

func (r *postgresFundPoolRepository) GetFundPoolByID(ctx context.Context, q Querier, id int64) (FundPool, error) {
	if q == nil {
		q = r.pool
	}
	row := q.QueryRow(ctx, "SELECT "+poolColumns+" FROM fund_pools WHERE id = $1", id)
	p, err := scanPool(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FundPool{}, ErrPoolNotFound
		}
		return FundPool{}, err
	}
	return p, nil
}

func (r *postgresFundPoolRepository) GetFundPoolByStartup(ctx context.Context, startupID int64) (FundPool, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+poolColumns+" FROM fund_pools WHERE startup_id = $1", startupID)
	p, err := scanPool(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FundPool{}, ErrPoolNotFound
		}
		return FundPool{}, err
	}
	return p, nil
}

func (r *postgresFundPoolRepository) ListFundPools(ctx context.Context, limit, offset int) ([]FundPool, int64, error) {
	query := `SELECT ` + poolColumns + `
              FROM fund_pools
              ORDER BY id
              LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]FundPool, 0)
	for rows.Next() {
		p, err := scanPool(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	countRow := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM fund_pools")
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}
