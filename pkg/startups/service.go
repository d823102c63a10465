package startups

import (
	"context"
	"errors"
	"log"

	"seedround/pkg/apperr"
	"seedround/pkg/members"
	"seedround/pkg/profiles"
)

const StatusActive = "active"

type StartupService interface {
	CreateStartup(ctx context.Context, founderID int64, name, description string) (Startup, error)
	GetStartupByID(ctx context.Context, id int64) (Startup, error)
	ListStartups(ctx context.Context, page, limit int) ([]Startup, int64, error)
	ListStartupsByFounder(ctx context.Context, founderID int64) ([]Startup, error)
	DeleteStartup(ctx context.Context, id int64) error
}

type startupService struct {
	repo        StartupRepository
	profileRepo profiles.ProfileRepository
	memberRepo  members.MemberRepository
}

func NewStartupService(repo StartupRepository, profileRepo profiles.ProfileRepository, memberRepo members.MemberRepository) StartupService {
	return &startupService{repo: repo, profileRepo: profileRepo, memberRepo: memberRepo}
}

func (s *startupService) CreateStartup(ctx context.Context, founderID int64, name, description string) (Startup, error) {
	founder, err := s.profileRepo.GetProfileByID(ctx, founderID)
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			return Startup{}, apperr.New(apperr.KindNotFound, "founder profile not found")
		}
		return Startup{}, apperr.Wrap(apperr.KindInternal, "get founder profile", err)
	}
	if founder.Type != profiles.TypeFounder {
		return Startup{}, apperr.New(apperr.KindInvalidInput, "profile is not a founder")
	}

	created, err := s.repo.CreateStartup(ctx, Startup{
		FounderID:   founderID,
		Name:        name,
		Description: description,
		Status:      StatusActive,
	})
	if err != nil {
		if errors.Is(err, ErrFounderNotFound) {
			return Startup{}, apperr.New(apperr.KindNotFound, "founder profile not found")
		}
		return Startup{}, apperr.Wrap(apperr.KindInternal, "create startup", err)
	}

	// The founder is the startup's first admin; the admin-presence invariant
	// holds from creation on. A startup must never exist without an admin, so
	// if seeding fails the startup is rolled back and the whole create fails.
	if _, err := s.memberRepo.AddMember(ctx, created.ID, founderID, members.RoleAdmin); err != nil {
		if delErr := s.repo.DeleteStartup(ctx, created.ID); delErr != nil {
			log.Printf("rolling back startup %d after failed admin seed: %v", created.ID, delErr)
		}
		return Startup{}, apperr.Wrap(apperr.KindInternal, "seed founder admin", err)
	}

	return created, nil
}

func (s *startupService) GetStartupByID(ctx context.Context, id int64) (Startup, error) {
	st, err := s.repo.GetStartupByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrStartupNotFound) {
			return Startup{}, apperr.New(apperr.KindNotFound, "startup not found")
		}
		return Startup{}, apperr.Wrap(apperr.KindInternal, "get startup", err)
	}
	return st, nil
}

func (s *startupService) ListStartups(ctx context.Context, page, limit int) ([]Startup, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.ListStartups(ctx, limit, offset)
}

func (s *startupService) ListStartupsByFounder(ctx context.Context, founderID int64) ([]Startup, error) {
	return s.repo.ListStartupsByFounder(ctx, founderID)
}

func (s *startupService) DeleteStartup(ctx context.Context, id int64) error {
	if err := s.repo.DeleteStartup(ctx, id); err != nil {
		if errors.Is(err, ErrStartupNotFound) {
			return apperr.New(apperr.KindNotFound, "startup not found")
		}
		return apperr.Wrap(apperr.KindInternal, "delete startup", err)
	}
	return nil
}
