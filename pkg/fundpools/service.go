package fundpools

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"seedround/pkg/apperr"
)

type FundPoolService interface {
	CreateFundPool(ctx context.Context, startupID int64, fundGoal decimal.Decimal) (FundPool, error)
	GetFundPoolByID(ctx context.Context, id int64) (FundPool, error)
	GetFundPoolByStartup(ctx context.Context, startupID int64) (FundPool, error)
	ListFundPools(ctx context.Context, page, limit int) ([]FundPool, int64, error)
}

type fundPoolService struct {
	repo FundPoolRepository
}

func NewFundPoolService(repo FundPoolRepository) FundPoolService {
	return &fundPoolService{repo: repo}
}

func (s *fundPoolService) CreateFundPool(ctx context.Context, startupID int64, fundGoal decimal.Decimal) (FundPool, error) {
	if !fundGoal.IsPositive() {
		return FundPool{}, apperr.New(apperr.KindInvalidInput, "fund goal must be positive")
	}

	p, err := s.repo.CreateFundPool(ctx, FundPool{StartupID: startupID, FundGoal: fundGoal})
	if err != nil {
		switch {
		case errors.Is(err, ErrPoolNotFound):
			return FundPool{}, apperr.New(apperr.KindNotFound, "startup not found")
		case errors.Is(err, ErrPoolExists):
			return FundPool{}, apperr.New(apperr.KindConflict, "startup already has a fund pool")
		default:
			return FundPool{}, apperr.Wrap(apperr.KindInternal, "create fund pool", err)
		}
	}
	return p, nil
}

func (s *fundPoolService) GetFundPoolByID(ctx context.Context, id int64) (FundPool, error) {
	p, err := s.repo.GetFundPoolByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, ErrPoolNotFound) {
			return FundPool{}, apperr.New(apperr.KindNotFound, "fund pool not found")
		}
		return FundPool{}, apperr.Wrap(apperr.KindInternal, "get fund pool", err)
	}
	return p, nil
}

func (s *fundPoolService) GetFundPoolByStartup(ctx context.Context, startupID int64) (FundPool, error) {
	p, err := s.repo.GetFundPoolByStartup(ctx, startupID)
	if err != nil {
		if errors.Is(err, ErrPoolNotFound) {
			return FundPool{}, apperr.New(apperr.KindNotFound, "fund pool not found")
		}
		return FundPool{}, apperr.Wrap(apperr.KindInternal, "get fund pool", err)
	}
	return p, nil
}

func (s *fundPoolService) ListFundPools(ctx context.Context, page, limit int) ([]FundPool, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.ListFundPools(ctx, limit, offset)
}
