package profiles

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"seedround/pkg/apperr"
)

const (
	TypeFounder  = "founder"
	TypeInvestor = "investor"
)

type ProfileService interface {
	CreateProfile(ctx context.Context, name, email, profileType, password string) (Profile, error)
	GetProfileByID(ctx context.Context, id int64) (Profile, error)
	GetProfileByUUID(ctx context.Context, uuid string) (Profile, error)
	ListProfiles(ctx context.Context, page, limit int) ([]Profile, int64, error)
	DeactivateProfile(ctx context.Context, id int64) error
}

type profileService struct {
	repo ProfileRepository
}

func NewProfileService(repo ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) CreateProfile(ctx context.Context, name, email, profileType, password string) (Profile, error) {
	if profileType != TypeFounder && profileType != TypeInvestor {
		return Profile{}, apperr.New(apperr.KindInvalidInput, "invalid profile type")
	}
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Profile{}, apperr.Wrap(apperr.KindInternal, "hash password", err)
	}

	p, err := s.repo.CreateProfile(ctx, name, email, profileType, string(hashBytes), uuid.NewString())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Profile{}, apperr.New(apperr.KindConflict, "profile exists with that email")
		}
		return Profile{}, apperr.Wrap(apperr.KindInternal, "create profile", err)
	}
	return p, nil
}

func (s *profileService) GetProfileByID(ctx context.Context, id int64) (Profile, error) {
	p, err := s.repo.GetProfileByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return Profile{}, apperr.New(apperr.KindNotFound, "profile not found")
		}
		return Profile{}, apperr.Wrap(apperr.KindInternal, "get profile", err)
	}
	return p, nil
}

func (s *profileService) GetProfileByUUID(ctx context.Context, id string) (Profile, error) {
	p, err := s.repo.GetProfileByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return Profile{}, apperr.New(apperr.KindNotFound, "profile not found")
		}
		return Profile{}, apperr.Wrap(apperr.KindInternal, "get profile", err)
	}
	return p, nil
}

func (s *profileService) ListProfiles(ctx context.Context, page, limit int) ([]Profile, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.ListProfiles(ctx, limit, offset)
}

func (s *profileService) DeactivateProfile(ctx context.Context, id int64) error {
	if err := s.repo.DeactivateProfile(ctx, id); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return apperr.New(apperr.KindNotFound, "profile not found")
		}
		return apperr.Wrap(apperr.KindInternal, "deactivate profile", err)
	}
	return nil
}
