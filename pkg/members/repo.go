package members

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrMemberExists    = errors.New("member already exists")
	ErrStartupNotFound = errors.New("startup not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrLastAdmin       = errors.New("startup must keep at least one admin")
)

type MemberRepository interface {
	AddMember(ctx context.Context, startupID, profileID int64, role string) (Member, error)
	RemoveMember(ctx context.Context, startupID, profileID int64) error
	ChangeRole(ctx context.Context, startupID, profileID int64, newRole string) (Member, error)
	ListMembers(ctx context.Context, startupID int64) ([]Member, error)
	ListAdmins(ctx context.Context, startupID int64) ([]Member, error)
}

type postgresMemberRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &postgresMemberRepository{pool: pool}
}

// lockStartup serializes membership writes per startup. Admin-count checks
// are only valid while this lock is held.
func lockStartup(ctx context.Context, tx pgx.Tx, startupID int64) error {
	var id int64
	row := tx.QueryRow(ctx, "SELECT id FROM startups WHERE id = $1 AND is_deleted = false FOR UPDATE", startupID)
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrStartupNotFound
		}
		return err
	}
	return nil
}

func (r *postgresMemberRepository) AddMember(ctx context.Context, startupID, profileID int64, role string) (Member, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Member{}, err
	}
	defer tx.Rollback(ctx)

	if err := lockStartup(ctx, tx, startupID); err != nil {
		return Member{}, err
	}

	query := `INSERT INTO members (startup_id, profile_id, role, created_at)
              VALUES ($1, $2, $3, NOW())
              RETURNING id, startup_id, profile_id, role, created_at`
	row := tx.QueryRow(ctx, query, startupID, profileID, role)

	var m Member
	if err := row.Scan(&m.ID, &m.StartupID, &m.ProfileID, &m.Role, &m.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return Member{}, ErrMemberExists
			case "23503":
				return Member{}, ErrProfileNotFound
			}
		}
		return Member{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Member{}, err
	}
	return m, nil
}

func (r *postgresMemberRepository) RemoveMember(ctx context.Context, startupID, profileID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockStartup(ctx, tx, startupID); err != nil {
		return err
	}

	var role string
	row := tx.QueryRow(ctx, "SELECT role FROM members WHERE startup_id = $1 AND profile_id = $2", startupID, profileID)
	if err := row.Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMemberNotFound
		}
		return err
	}

	if role == "admin" {
		var adminCount int64
		row := tx.QueryRow(ctx, "SELECT COUNT(*) FROM members WHERE startup_id = $1 AND role = 'admin'", startupID)
		if err := row.Scan(&adminCount); err != nil {
			return err
		}
		if adminCount <= 1 {
			return ErrLastAdmin
		}
	}

	if _, err := tx.Exec(ctx, "DELETE FROM members WHERE startup_id = $1 AND profile_id = $2", startupID, profileID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresMemberRepository) ChangeRole(ctx context.Context, startupID, profileID int64, newRole string) (Member, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Member{}, err
	}
	defer tx.Rollback(ctx)

	if err := lockStartup(ctx, tx, startupID); err != nil {
		return Member{}, err
	}

	var currentRole string
	row := tx.QueryRow(ctx, "SELECT role FROM members WHERE startup_id = $1 AND profile_id = $2", startupID, profileID)
	if err := row.Scan(&currentRole); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Member{}, ErrMemberNotFound
		}
		return Member{}, err
	}

	if currentRole == "admin" && newRole != "admin" {
		var adminCount int64
		row := tx.QueryRow(ctx, "SELECT COUNT(*) FROM members WHERE startup_id = $1 AND role = 'admin'", startupID)
		if err := row.Scan(&adminCount); err != nil {
			return Member{}, err
		}
		if adminCount <= 1 {
			return Member{}, ErrLastAdmin
		}
	}

	query := `UPDATE members SET role = $1
              WHERE startup_id = $2 AND profile_id = $3
              RETURNING id, startup_id, profile_id, role, created_at`
	row = tx.QueryRow(ctx, query, newRole, startupID, profileID)

	var m Member
	if err := row.Scan(&m.ID, &m.StartupID, &m.ProfileID, &m.Role, &m.CreatedAt); err != nil {
		return Member{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Member{}, err
	}
	return m, nil
}

func (r *postgresMemberRepository) ListMembers(ctx context.Context, startupID int64) ([]Member, error) {
	return r.listByRole(ctx, startupID, "")
}

func (r *postgresMemberRepository) ListAdmins(ctx context.Context, startupID int64) ([]Member, error) {
	return r.listByRole(ctx, startupID, "admin")
}

func (r *postgresMemberRepository) listByRole(ctx context.Context, startupID int64, role string) ([]Member, error) {
	query := `SELECT id, startup_id, profile_id, role, created_at
              FROM members
              WHERE startup_id = $1 AND ($2 = '' OR role = $2)
              ORDER BY id`
	rows, err := r.pool.Query(ctx, query, startupID, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]Member, 0)
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.StartupID, &m.ProfileID, &m.Role, &m.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
