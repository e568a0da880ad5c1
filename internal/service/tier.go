package service

import (
	"context"
	"time"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	"github.com/cbo-rewards/loyalty/internal/cache"
	"github.com/cbo-rewards/loyalty/internal/domain/tier"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/samber/lo"
)

type TierService interface {
	CreateTier(ctx context.Context, req *dto.CreateTierRequest) (*dto.TierResponse, error)
	GetTier(ctx context.Context, id string) (*dto.TierResponse, error)
	ListTiers(ctx context.Context, activeOnly bool) (*dto.ListTiersResponse, error)
	UpdateTier(ctx context.Context, id string, req *dto.UpdateTierRequest) (*dto.TierResponse, error)
	DeleteTier(ctx context.Context, id string) error

	// CurrentTier resolves the customer's assigned tier. A customer
	// without an assignment has no tier and gets (nil, nil).
	CurrentTier(ctx context.Context, customerID string) (*tier.Tier, error)

	// UpdateCustomerTier replaces the customer's assignment
	UpdateCustomerTier(ctx context.Context, customerID string, req *dto.UpdateCustomerTierRequest) (*dto.TierAssignmentResponse, error)

	// PromoteCustomer assigns the highest active tier whose threshold the
	// customer's total points reach
	PromoteCustomer(ctx context.Context, customerID string) (*dto.TierAssignmentResponse, error)
}

type tierService struct {
	ServiceParams
}

func NewTierService(params ServiceParams) TierService {
	return &tierService{ServiceParams: params}
}

func (s *tierService) CreateTier(ctx context.Context, req *dto.CreateTierRequest) (*dto.TierResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t := req.ToTier()
	if err := s.ensureUniqueThreshold(ctx, t); err != nil {
		return nil, err
	}
	if err := s.TierRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.invalidateTiers(ctx)

	s.Logger.Infow("created tier", "tier_id", t.ID, "name", t.Name, "minimum_points", t.MinimumPoints)
	return dto.NewTierResponse(t), nil
}

func (s *tierService) GetTier(ctx context.Context, id string) (*dto.TierResponse, error) {
	t, err := s.getTier(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewTierResponse(t), nil
}

func (s *tierService) ListTiers(ctx context.Context, activeOnly bool) (*dto.ListTiersResponse, error) {
	tiers, err := s.listTiers(ctx)
	if err != nil {
		return nil, err
	}
	if activeOnly {
		tiers = activeTiers(tiers)
	}
	return dto.NewListTiersResponse(tiers), nil
}

func (s *tierService) UpdateTier(ctx context.Context, id string, req *dto.UpdateTierRequest) (*dto.TierResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.TierRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(t)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueThreshold(ctx, t); err != nil {
		return nil, err
	}

	if err := s.TierRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	s.invalidateTiers(ctx)
	return dto.NewTierResponse(t), nil
}

// DeleteTier refuses to orphan assignments
func (s *tierService) DeleteTier(ctx context.Context, id string) error {
	count, err := s.TierRepo.CountAssignmentsByTier(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ierr.NewError("tier still has customers").
			WithHint("Move customers to another tier before deleting this one").
			WithReportableDetails(map[string]any{
				"tier_id":   id,
				"customers": count,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if err := s.TierRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateTiers(ctx)
	return nil
}

func (s *tierService) CurrentTier(ctx context.Context, customerID string) (*tier.Tier, error) {
	if customerID == "" {
		return nil, ierr.NewError("customer_id is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}

	assignment, err := s.getAssignment(ctx, customerID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return s.getTier(ctx, assignment.TierID)
}

func (s *tierService) UpdateCustomerTier(ctx context.Context, customerID string, req *dto.UpdateCustomerTierRequest) (*dto.TierAssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.UserRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	t, err := s.getTier(ctx, req.TierID)
	if err != nil {
		return nil, err
	}
	return s.assign(ctx, customerID, t)
}

func (s *tierService) PromoteCustomer(ctx context.Context, customerID string) (*dto.TierAssignmentResponse, error) {
	balance, err := s.PointsRepo.GetPoints(ctx, customerID)
	if err != nil {
		return nil, err
	}

	tiers, err := s.listTiers(ctx)
	if err != nil {
		return nil, err
	}

	// tiers are ordered by threshold so the last reachable one wins
	reachable := lo.Filter(tiers, func(t *tier.Tier, _ int) bool {
		return t.IsActive && t.MinimumPoints <= balance.TotalPoints
	})
	if len(reachable) == 0 {
		return nil, ierr.NewError("no tier reachable").
			WithHint("The customer does not qualify for any tier").
			WithReportableDetails(map[string]any{
				"total_points": balance.TotalPoints,
			}).
			Mark(ierr.ErrNotFound)
	}
	target := reachable[len(reachable)-1]

	current, err := s.CurrentTier(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if current != nil && current.ID == target.ID {
		assignment, err := s.getAssignment(ctx, customerID)
		if err != nil {
			return nil, err
		}
		return &dto.TierAssignmentResponse{Assignment: assignment, Tier: dto.NewTierResponse(current)}, nil
	}

	return s.assign(ctx, customerID, target)
}

func (s *tierService) assign(ctx context.Context, customerID string, t *tier.Tier) (*dto.TierAssignmentResponse, error) {
	previous, err := s.CurrentTier(ctx, customerID)
	if err != nil {
		return nil, err
	}

	assignment := &tier.Assignment{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TIER_ASSIGNMENT),
		CustomerID: customerID,
		TierID:     t.ID,
		AchievedAt: time.Now().UTC(),
	}
	if err := s.TierRepo.UpsertAssignment(ctx, assignment); err != nil {
		return nil, err
	}
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixTierAssignment, customerID))

	previousID := ""
	if previous != nil {
		previousID = previous.ID
	}
	s.Logger.Infow("customer tier changed",
		"customer_id", customerID,
		"tier_id", t.ID,
		"previous_tier_id", previousID,
	)
	s.publishEvent(ctx, types.EventCustomerTierChanged, customerID, map[string]any{
		"tier_id":          t.ID,
		"tier_name":        t.Name,
		"previous_tier_id": previousID,
	})

	return &dto.TierAssignmentResponse{Assignment: assignment, Tier: dto.NewTierResponse(t)}, nil
}

func (s *tierService) getTier(ctx context.Context, id string) (*tier.Tier, error) {
	key := cache.GenerateKey(cache.PrefixTier, id)

	var cached tier.Tier
	if s.Cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	t, err := s.TierRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, key, t, 0)
	return t, nil
}

func (s *tierService) listTiers(ctx context.Context) ([]*tier.Tier, error) {
	key := cache.GenerateKey(cache.PrefixTierList, "all")

	var cached []*tier.Tier
	if s.Cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	tiers, err := s.TierRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, key, tiers, 0)
	return tiers, nil
}

func (s *tierService) getAssignment(ctx context.Context, customerID string) (*tier.Assignment, error) {
	key := cache.GenerateKey(cache.PrefixTierAssignment, customerID)

	var cached tier.Assignment
	if s.Cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	a, err := s.TierRepo.GetAssignment(ctx, customerID)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, key, a, 0)
	return a, nil
}

func (s *tierService) ensureUniqueThreshold(ctx context.Context, t *tier.Tier) error {
	tiers, err := s.TierRepo.List(ctx)
	if err != nil {
		return err
	}
	clash, ok := lo.Find(tiers, func(e *tier.Tier) bool {
		return e.ID != t.ID && e.MinimumPoints == t.MinimumPoints
	})
	if ok {
		return ierr.NewError("tier threshold already used").
			WithHint("Another tier already starts at this number of points").
			WithReportableDetails(map[string]any{
				"minimum_points": t.MinimumPoints,
				"tier_id":        clash.ID,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (s *tierService) invalidateTiers(ctx context.Context) {
	s.Cache.DeleteByPrefix(ctx, cache.PrefixTier)
	s.Cache.DeleteByPrefix(ctx, cache.PrefixTierList)
}

func activeTiers(tiers []*tier.Tier) []*tier.Tier {
	return lo.Filter(tiers, func(t *tier.Tier, _ int) bool { return t.IsActive })
}
