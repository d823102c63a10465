package profiles

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	CreateProfile(ctx context.Context, name, email, profileType, passwordHash, uuid string) (Profile, error)
	GetProfileByID(ctx context.Context, id int64) (Profile, error)
	GetProfileByUUID(ctx context.Context, uuid string) (Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (Profile, error)
	ListProfiles(ctx context.Context, limit, offset int) ([]Profile, int64, error)
	DeactivateProfile(ctx context.Context, id int64) error
}

type postgresProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &postgresProfileRepository{pool: pool}
}

func (r *postgresProfileRepository) CreateProfile(ctx context.Context, name, email, profileType, passwordHash, uuid string) (Profile, error) {
	query := `INSERT INTO profiles (name, email, profile_type, password_hash, uuid, created_at)
              VALUES ($1, $2, $3, $4, $5, NOW())
              RETURNING id, uuid, name, email, profile_type, is_active, created_at`
	row := r.pool.QueryRow(ctx, query, name, email, profileType, passwordHash, uuid)

	var p Profile
	if err := row.Scan(&p.ID, &p.UUID, &p.Name, &p.Email, &p.Type, &p.IsActive, &p.CreatedAt); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (r *postgresProfileRepository) GetProfileByID(ctx context.Context, id int64) (Profile, error) {
	query := `SELECT id, uuid, name, email, profile_type, is_active, created_at
              FROM profiles
              WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)

	var p Profile
	if err := row.Scan(&p.ID, &p.UUID, &p.Name, &p.Email, &p.Type, &p.IsActive, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (r *postgresProfileRepository) GetProfileByUUID(ctx context.Context, uuid string) (Profile, error) {
	query := `SELECT id, uuid, name, email, profile_type, is_active, created_at
              FROM profiles
              WHERE uuid = $1`
	row := r.pool.QueryRow(ctx, query, uuid)

	var p Profile
	if err := row.Scan(&p.ID, &p.UUID, &p.Name, &p.Email, &p.Type, &p.IsActive, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (r *postgresProfileRepository) GetProfileByEmail(ctx context.Context, email string) (Profile, error) {
	query := `SELECT id, uuid, name, email, profile_type, is_active, created_at
              FROM profiles
              WHERE email = $1`
	row := r.pool.QueryRow(ctx, query, email)

	var p Profile
	if err := row.Scan(&p.ID, &p.UUID, &p.Name, &p.Email, &p.Type, &p.IsActive, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (r *postgresProfileRepository) ListProfiles(ctx context.Context, limit, offset int) ([]Profile, int64, error) {
	query := `SELECT id, uuid, name, email, profile_type, is_active, created_at
              FROM profiles
              WHERE is_active = true
              ORDER BY id
              LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]Profile, 0)
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.UUID, &p.Name, &p.Email, &p.Type, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	countRow := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM profiles WHERE is_active = true")
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *postgresProfileRepository) DeactivateProfile(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "UPDATE profiles SET is_active = false WHERE id = $1 AND is_active = true", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}
