package investments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"seedround/pkg/apperr"
	"seedround/pkg/fundpools"
	"seedround/pkg/members"
	"seedround/pkg/notifications"
)

const (
	DecisionAccept  = "accept"
	DecisionDecline = "decline"

	// Bound on the reserve-through-commit window; a lock that cannot be
	// acquired within this deadline surfaces as a timeout the caller retries.
	opTimeout = 5 * time.Second
)

type InvestmentService interface {
	CreateInvestment(ctx context.Context, fundPoolID, profileID int64, amount decimal.Decimal) (Investment, error)
	DecideInvestment(ctx context.Context, id int64, decision string) (Investment, error)
	WithdrawInvestment(ctx context.Context, id int64) (Investment, error)
	GetInvestmentByID(ctx context.Context, id int64) (Investment, error)
	ListByPool(ctx context.Context, poolID int64) ([]Investment, error)
	ListByProfile(ctx context.Context, profileID int64) ([]Investment, error)
}

type investmentService struct {
	repo       InvestmentRepository
	memberRepo members.MemberRepository
	notifier   notifications.Notifier
}

func NewInvestmentService(repo InvestmentRepository, memberRepo members.MemberRepository, notifier notifications.Notifier) InvestmentService {
	return &investmentService{repo: repo, memberRepo: memberRepo, notifier: notifier}
}

func (s *investmentService) CreateInvestment(ctx context.Context, fundPoolID, profileID int64, amount decimal.Decimal) (Investment, error) {
	if !amount.IsPositive() {
		return Investment{}, apperr.New(apperr.KindInvalidInput, "investment amount must be positive")
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	inv, err := s.repo.CreateInvestment(ctx, Investment{FundPoolID: fundPoolID, ProfileID: profileID, Amount: amount})
	if err != nil {
		return Investment{}, mapInvestmentError(err, "create investment")
	}

	s.notifyAdmins(inv.StartupID, notifications.TypeInvestmentReceived,
		fmt.Sprintf("New investment of %s committed to your fund pool", inv.Amount.StringFixed(2)))

	return inv, nil
}

func (s *investmentService) DecideInvestment(ctx context.Context, id int64, decision string) (Investment, error) {
	var target string
	switch decision {
	case DecisionAccept:
		target = StatusAccepted
	case DecisionDecline:
		target = StatusDeclined
	default:
		return Investment{}, apperr.New(apperr.KindInvalidInput, "decision must be accept or decline")
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	inv, poolStatus, err := s.repo.Decide(ctx, id, target)
	if err != nil {
		return Investment{}, mapInvestmentError(err, "decide investment")
	}

	notifType := notifications.TypeInvestmentAccepted
	verb := "accepted"
	if target == StatusDeclined {
		notifType = notifications.TypeInvestmentDeclined
		verb = "declined"
	}
	s.notify(inv.ProfileID, notifType,
		fmt.Sprintf("Your investment of %s was %s", inv.Amount.StringFixed(2), verb))

	if poolStatus == fundpools.StatusCompleted {
		s.notifyAdmins(inv.StartupID, notifications.TypePoolCompleted, "Your fund pool reached its goal and is now completed")
	}

	return inv, nil
}

func (s *investmentService) WithdrawInvestment(ctx context.Context, id int64) (Investment, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	inv, err := s.repo.Withdraw(ctx, id)
	if err != nil {
		return Investment{}, mapInvestmentError(err, "withdraw investment")
	}
	return inv, nil
}

func (s *investmentService) GetInvestmentByID(ctx context.Context, id int64) (Investment, error) {
	inv, err := s.repo.GetInvestmentByID(ctx, id)
	if err != nil {
		return Investment{}, mapInvestmentError(err, "get investment")
	}
	return inv, nil
}

func (s *investmentService) ListByPool(ctx context.Context, poolID int64) ([]Investment, error) {
	list, err := s.repo.ListByPool(ctx, poolID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list investments", err)
	}
	return list, nil
}

func (s *investmentService) ListByProfile(ctx context.Context, profileID int64) ([]Investment, error) {
	list, err := s.repo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "list investments", err)
	}
	return list, nil
}

// notify emits a single notification; delivery problems are logged, never
// propagated, because the domain transition has already committed.
func (s *investmentService) notify(recipientID int64, notifType, message string) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.Notify(context.Background(), recipientID, notifType, message); err != nil {
		log.Printf("notification %s for profile %d failed: %v", notifType, recipientID, err)
	}
}

func (s *investmentService) notifyAdmins(startupID int64, notifType, message string) {
	if s.notifier == nil || s.memberRepo == nil {
		return
	}
	admins, err := s.memberRepo.ListAdmins(context.Background(), startupID)
	if err != nil {
		log.Printf("listing admins of startup %d failed: %v", startupID, err)
		return
	}
	for _, admin := range admins {
		s.notify(admin.ProfileID, notifType, message)
	}
}

func mapInvestmentError(err error, op string) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, ErrInvestmentNotFound):
		return apperr.New(apperr.KindNotFound, "investment not found")
	case errors.Is(err, ErrProfileNotFound):
		return apperr.New(apperr.KindNotFound, "investor profile not found")
	case errors.Is(err, fundpools.ErrPoolNotFound):
		return apperr.New(apperr.KindNotFound, "fund pool not found")
	case errors.Is(err, fundpools.ErrPoolNotOpen):
		return apperr.New(apperr.KindInvalidState, "fund pool is not open")
	case errors.Is(err, fundpools.ErrCapacityExceeded):
		return apperr.New(apperr.KindCapacityExceeded, "investment would exceed the fund goal")
	case errors.Is(err, fundpools.ErrNoReservation):
		return apperr.Wrap(apperr.KindInternal, "fund pool reservation lost", err)
	case errors.Is(err, ErrIllegalTransition):
		return apperr.New(apperr.KindInvalidState, "investment is not pending")
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Wrap(apperr.KindTimeout, "operation timed out, retry", err)
	case errors.As(err, &pgErr) && pgErr.Code == "55P03": // lock_not_available
		return apperr.Wrap(apperr.KindTimeout, "fund pool is busy, retry", err)
	case errors.As(err, &pgErr) && pgErr.Code == "40001": // serialization_failure
		return apperr.Wrap(apperr.KindConflict, "concurrent update conflict, retry", err)
	default:
		return apperr.Wrap(apperr.KindInternal, op, err)
	}
}
