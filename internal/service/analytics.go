package service

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	"github.com/cbo-rewards/loyalty/internal/domain/branch"
	"github.com/cbo-rewards/loyalty/internal/domain/points"
	"github.com/cbo-rewards/loyalty/internal/domain/user"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
)

// recentActivityLimit is the number of transactions on the dashboard
const recentActivityLimit = 10

type AnalyticsService interface {
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type analyticsService struct {
	ServiceParams
}

func NewAnalyticsService(params ServiceParams) AnalyticsService {
	return &analyticsService{ServiceParams: params}
}

func (s *analyticsService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	resp := &dto.DashboardResponse{}

	customerFilter := types.NewNoLimitUserFilter()
	customerFilter.Role = lo.ToPtr(types.UserRoleCustomer)

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		total, err := s.UserRepo.Count(ctx, customerFilter)
		resp.Metrics.TotalCustomers = total
		return err
	})
	p.Go(func(ctx context.Context) error {
		issued, err := s.PointsRepo.SumTransactionPoints(ctx, &types.TransactionFilter{
			Type: lo.ToPtr(types.TransactionTypeEarn),
		})
		resp.Metrics.TotalPointsIssued = issued
		return err
	})
	p.Go(func(ctx context.Context) error {
		redeemed, err := s.PointsRepo.SumTransactionPoints(ctx, &types.TransactionFilter{
			Type: lo.ToPtr(types.TransactionTypeRedeem),
		})
		resp.Metrics.TotalPointsRedeemed = redeemed
		return err
	})
	p.Go(func(ctx context.Context) error {
		active, err := NewCampaignService(s.ServiceParams).ListActiveCampaigns(ctx)
		if err != nil {
			return err
		}
		resp.Metrics.ActiveCampaigns = len(active.Campaigns)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		metrics, err := s.branchMetrics(ctx)
		resp.BranchMetrics = metrics
		return err
	})
	p.Go(func(ctx context.Context) error {
		recent, err := s.PointsRepo.ListTransactions(ctx, &types.TransactionFilter{
			QueryFilter: &types.QueryFilter{
				Limit:  lo.ToPtr(recentActivityLimit),
				Offset: lo.ToPtr(0),
			},
		})
		resp.RecentActivity = lo.Map(recent, func(t *points.Transaction, _ int) *dto.TransactionResponse {
			return dto.NewTransactionResponse(t)
		})
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return resp, nil
}

// branchMetrics counts customers per home branch and the points they
// earned. Customers without a branch are not attributed.
func (s *analyticsService) branchMetrics(ctx context.Context) ([]*dto.BranchMetric, error) {
	branches, err := s.BranchRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	metrics := make([]*dto.BranchMetric, len(branches))
	p := pool.New().WithMaxGoroutines(enrichConcurrency).WithContext(ctx)
	for i, b := range branches {
		i, b := i, b
		p.Go(func(ctx context.Context) error {
			m, err := s.branchMetric(ctx, b)
			metrics[i] = m
			return err
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return metrics, nil
}

func (s *analyticsService) branchMetric(ctx context.Context, b *branch.Branch) (*dto.BranchMetric, error) {
	filter := types.NewNoLimitUserFilter()
	filter.Role = lo.ToPtr(types.UserRoleCustomer)
	filter.BranchID = lo.ToPtr(b.ID)

	customers, err := s.UserRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	m := &dto.BranchMetric{
		BranchID:   b.ID,
		BranchName: b.Name,
		Customers:  len(customers),
	}
	if len(customers) == 0 {
		return m, nil
	}

	issued, err := s.PointsRepo.SumTransactionPoints(ctx, &types.TransactionFilter{
		CustomerIDs: lo.Map(customers, func(u *user.User, _ int) string { return u.ID }),
		Type:        lo.ToPtr(types.TransactionTypeEarn),
	})
	if err != nil {
		return nil, err
	}
	m.PointsIssued = issued
	return m, nil
}
