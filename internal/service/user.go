package service

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	"github.com/cbo-rewards/loyalty/internal/domain/points"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
)

// defaultTierName is shown for customers that were never assigned a tier
const defaultTierName = "Silver"

// enrichConcurrency bounds the lookups run per customer listing
const enrichConcurrency = 8

type UserService interface {
	// RegisterCustomer creates the customer and their zeroed balance
	RegisterCustomer(ctx context.Context, req *dto.RegisterCustomerRequest) (*dto.RegisterCustomerResponse, error)
	CreateStaff(ctx context.Context, req *dto.CreateStaffRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	GetUserInfo(ctx context.Context) (*dto.UserResponse, error)
	ListCustomers(ctx context.Context, filter *types.UserFilter) (*dto.ListCustomersResponse, error)

	CheckBalance(ctx context.Context, customerID string) (*dto.BalanceResponse, error)
	// GetHistory lists the customer's transactions newest first
	GetHistory(ctx context.Context, customerID string, filter *types.TransactionFilter) (*dto.ListTransactionsResponse, error)
}

type userService struct {
	ServiceParams
}

func NewUserService(params ServiceParams) UserService {
	return &userService{ServiceParams: params}
}

func (s *userService) RegisterCustomer(ctx context.Context, req *dto.RegisterCustomerRequest) (*dto.RegisterCustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u := req.ToUser()
	if u.BranchID != nil {
		if _, err := s.BranchRepo.Get(ctx, *u.BranchID); err != nil {
			return nil, err
		}
	}

	balance := points.NewPoints(u.ID)
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.UserRepo.Create(ctx, u); err != nil {
			return err
		}
		return s.PointsRepo.CreatePoints(ctx, balance)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("registered customer", "customer_id", u.ID, "username", u.Username)
	s.publishEvent(ctx, types.EventCustomerRegistered, u.ID, map[string]any{
		"username":  u.Username,
		"branch_id": lo.FromPtr(u.BranchID),
	})

	return &dto.RegisterCustomerResponse{
		User:   dto.NewUserResponse(u),
		Points: dto.NewPointsResponse(balance),
	}, nil
}

func (s *userService) CreateStaff(ctx context.Context, req *dto.CreateStaffRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u := req.ToUser()
	if u.BranchID != nil {
		if _, err := s.BranchRepo.Get(ctx, *u.BranchID); err != nil {
			return nil, err
		}
	}
	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.Logger.Infow("created staff user", "user_id", u.ID, "role", u.Role)
	return dto.NewUserResponse(u), nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := s.UserRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(u), nil
}

func (s *userService) GetUserInfo(ctx context.Context) (*dto.UserResponse, error) {
	userID := types.GetUserID(ctx)
	if userID == "" {
		return nil, ierr.NewError("no user in context").
			WithHint("Authentication required").
			Mark(ierr.ErrUnauthenticated)
	}
	return s.GetUser(ctx, userID)
}

func (s *userService) ListCustomers(ctx context.Context, filter *types.UserFilter) (*dto.ListCustomersResponse, error) {
	if filter == nil {
		filter = types.NewUserFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	filter.Role = lo.ToPtr(types.UserRoleCustomer)
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	customers, err := s.UserRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.UserRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CustomerResponse, len(customers))
	tierService := NewTierService(s.ServiceParams)

	p := pool.New().WithMaxGoroutines(enrichConcurrency).WithContext(ctx)
	for i, c := range customers {
		i, c := i, c
		p.Go(func(ctx context.Context) error {
			balance, err := s.PointsRepo.GetPoints(ctx, c.ID)
			if err != nil && !ierr.IsNotFound(err) {
				return err
			}

			tierName := defaultTierName
			current, err := tierService.CurrentTier(ctx, c.ID)
			if err != nil {
				return err
			}
			if current != nil {
				tierName = current.Name
			}

			items[i] = dto.NewCustomerResponse(c, balance, tierName)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	list := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &list, nil
}

func (s *userService) CheckBalance(ctx context.Context, customerID string) (*dto.BalanceResponse, error) {
	if customerID == "" {
		return nil, ierr.NewError("customer_id is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}

	balance, err := s.PointsRepo.GetPoints(ctx, customerID)
	if err != nil {
		return nil, err
	}

	tierSvc := &tierService{ServiceParams: s.ServiceParams}
	current, err := tierSvc.CurrentTier(ctx, customerID)
	if err != nil {
		return nil, err
	}
	tiers, err := tierSvc.listTiers(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewBalanceResponse(balance, current, activeTiers(tiers)), nil
}

func (s *userService) GetHistory(ctx context.Context, customerID string, filter *types.TransactionFilter) (*dto.ListTransactionsResponse, error) {
	if customerID == "" {
		return nil, ierr.NewError("customer_id is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}
	if filter == nil {
		filter = types.NewTransactionFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if filter.Limit == nil {
		filter.Limit = lo.ToPtr(s.Config.Ledger.DefaultHistoryLimit)
	}
	filter.CustomerID = customerID
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.PointsRepo.GetPoints(ctx, customerID); err != nil {
		return nil, err
	}

	txs, err := s.PointsRepo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(txs, func(t *points.Transaction, _ int) *dto.TransactionResponse {
		return dto.NewTransactionResponse(t)
	})
	if items == nil {
		items = []*dto.TransactionResponse{}
	}
	list := types.NewListResponse(items, len(items), filter.GetLimit(), filter.GetOffset())
	return &list, nil
}
