package members

import (
	"context"
	"errors"
	"time"

	"seedround/pkg/apperr"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"

	// Bound on membership mutations; they lock the startup row, so a wait
	// on a contended startup surfaces as a timeout instead of blocking.
	opTimeout = 5 * time.Second
)

type MemberService interface {
	AddMember(ctx context.Context, startupID, profileID int64, role string) (Member, error)
	RemoveMember(ctx context.Context, startupID, profileID int64) error
	ChangeRole(ctx context.Context, startupID, profileID int64, newRole string) (Member, error)
	ListMembers(ctx context.Context, startupID int64) ([]Member, error)
}

type memberService struct {
	repo MemberRepository
}

func NewMemberService(repo MemberRepository) MemberService {
	return &memberService{repo: repo}
}

func isValidRole(role string) bool {
	return role == RoleAdmin || role == RoleMember
}

func (s *memberService) AddMember(ctx context.Context, startupID, profileID int64, role string) (Member, error) {
	if !isValidRole(role) {
		return Member{}, apperr.New(apperr.KindInvalidInput, "invalid member role")
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	m, err := s.repo.AddMember(ctx, startupID, profileID, role)
	if err != nil {
		return Member{}, mapMemberError(err, "add member")
	}
	return m, nil
}

func (s *memberService) RemoveMember(ctx context.Context, startupID, profileID int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.repo.RemoveMember(ctx, startupID, profileID); err != nil {
		return mapMemberError(err, "remove member")
	}
	return nil
}

func (s *memberService) ChangeRole(ctx context.Context, startupID, profileID int64, newRole string) (Member, error) {
	if !isValidRole(newRole) {
		return Member{}, apperr.New(apperr.KindInvalidInput, "invalid member role")
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	m, err := s.repo.ChangeRole(ctx, startupID, profileID, newRole)
	if err != nil {
		return Member{}, mapMemberError(err, "change role")
	}
	return m, nil
}

func (s *memberService) ListMembers(ctx context.Context, startupID int64) ([]Member, error) {
	list, err := s.repo.ListMembers(ctx, startupID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list members", err)
	}
	return list, nil
}

func mapMemberError(err error, op string) error {
	switch {
	case errors.Is(err, ErrStartupNotFound):
		return apperr.New(apperr.KindNotFound, "startup not found")
	case errors.Is(err, ErrProfileNotFound):
		return apperr.New(apperr.KindNotFound, "profile not found")
	case errors.Is(err, ErrMemberNotFound):
		return apperr.New(apperr.KindNotFound, "member not found")
	case errors.Is(err, ErrMemberExists):
		return apperr.New(apperr.KindConflict, "profile is already a member of this startup")
	case errors.Is(err, ErrLastAdmin):
		return apperr.New(apperr.KindInvalidState, "startup must keep at least one admin")
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Wrap(apperr.KindTimeout, "membership operation timed out", err)
	default:
		return apperr.Wrap(apperr.KindInternal, op, err)
	}
}
