package startups

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrStartupNotFound = errors.New("startup not found")
	ErrFounderNotFound = errors.New("founder profile not found")
)

type StartupRepository interface {
	CreateStartup(ctx context.Context, input Startup) (Startup, error)
	GetStartupByID(ctx context.Context, id int64) (Startup, error)
	ListStartups(ctx context.Context, limit, offset int) ([]Startup, int64, error)
	ListStartupsByFounder(ctx context.Context, founderID int64) ([]Startup, error)
	DeleteStartup(ctx context.Context, id int64) error
}

type postgresStartupRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresStartupRepository(pool *pgxpool.Pool) StartupRepository {
	return &postgresStartupRepository{pool: pool}
}

func (r *postgresStartupRepository) CreateStartup(ctx context.Context, input Startup) (Startup, error) {
	query := `INSERT INTO startups (founder_id, name, description, status, created_at)
              VALUES ($1, $2, $3, $4, NOW())
              RETURNING id, founder_id, name, description, status, created_at`

	row := r.pool.QueryRow(ctx, query, input.FounderID, input.Name, input.Description, input.Status)

	var created Startup
	if err := row.Scan(&created.ID, &created.FounderID, &created.Name, &created.Description, &created.Status, &created.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return Startup{}, ErrFounderNotFound
		}
		return Startup{}, err
	}

	return created, nil
}

func (r *postgresStartupRepository) GetStartupByID(ctx context.Context, id int64) (Startup, error) {
	query := `SELECT id, founder_id, name, description, status, created_at
              FROM startups
              WHERE id = $1 AND is_deleted = false`

	row := r.pool.QueryRow(ctx, query, id)

	var s Startup
	if err := row.Scan(&s.ID, &s.FounderID, &s.Name, &s.Description, &s.Status, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Startup{}, ErrStartupNotFound
		}
		return Startup{}, err
	}

	return s, nil
}

func (r *postgresStartupRepository) ListStartups(ctx context.Context, limit, offset int) ([]Startup, int64, error) {
	query := `SELECT id, founder_id, name, description, status, created_at
              FROM startups
              WHERE is_deleted = false
              ORDER BY id
              LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]Startup, 0)
	for rows.Next() {
		var s Startup
		if err := rows.Scan(&s.ID, &s.FounderID, &s.Name, &s.Description, &s.Status, &s.CreatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	countRow := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM startups WHERE is_deleted = false")
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *postgresStartupRepository) ListStartupsByFounder(ctx context.Context, founderID int64) ([]Startup, error) {
	query := `SELECT id, founder_id, name, description, status, created_at
              FROM startups
              WHERE founder_id = $1 AND is_deleted = false
              ORDER BY id`

	rows, err := r.pool.Query(ctx, query, founderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]Startup, 0)
	for rows.Next() {
		var s Startup
		if err := rows.Scan(&s.ID, &s.FounderID, &s.Name, &s.Description, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *postgresStartupRepository) DeleteStartup(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "UPDATE startups SET is_deleted = true WHERE id = $1 AND is_deleted = false", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrStartupNotFound
	}
	return nil
}
