package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/cbo-rewards/loyalty/internal/domain/points"
	"github.com/cbo-rewards/loyalty/internal/domain/reward"
	"github.com/cbo-rewards/loyalty/internal/domain/rule"
	"github.com/cbo-rewards/loyalty/internal/domain/tier"
	"github.com/cbo-rewards/loyalty/internal/domain/user"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/shopspring/decimal"
)

// CreateCustomer stores a customer whose balance holds available points,
// all of them earned
func (s *BaseServiceTestSuite) CreateCustomer(username string, available int64) (*user.User, *points.Points) {
	now := s.GetNow()
	u := &user.User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Username:  username,
		Email:     fmt.Sprintf("%s@example.com", username),
		FirstName: "Test",
		LastName:  username,
		Role:      types.UserRoleCustomer,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.stores.UserRepo.Create(s.ctx, u))

	p := points.NewPoints(u.ID)
	p.TotalPoints = available
	p.AvailablePoints = available
	p.LifetimeEarned = available
	s.Require().NoError(s.stores.PointsRepo.CreatePoints(s.ctx, p))
	return u, p
}

func (s *BaseServiceTestSuite) CreateTier(name string, minimum int64, multiplier string) *tier.Tier {
	t := &tier.Tier{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TIER),
		Name:          name,
		MinimumPoints: minimum,
		Multiplier:    decimal.RequireFromString(multiplier),
		Benefits:      types.StringList{},
		IsActive:      true,
		CreatedAt:     s.GetNow(),
	}
	s.Require().NoError(s.stores.TierRepo.Create(s.ctx, t))
	return t
}

func (s *BaseServiceTestSuite) AssignTier(customerID, tierID string) {
	s.Require().NoError(s.stores.TierRepo.UpsertAssignment(s.ctx, &tier.Assignment{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TIER_ASSIGNMENT),
		CustomerID: customerID,
		TierID:     tierID,
		AchievedAt: s.GetNow(),
	}))
}

// CreateAmountRule stores an active rule paying pointsPerUnit for every
// unitValue of amount
func (s *BaseServiceTestSuite) CreateAmountRule(category, serviceType string, pointsPerUnit int64, unitValue string, maximum *int64) *rule.Rule {
	r := NewRule(category, serviceType, types.RuleUnitAmount, pointsPerUnit, unitValue, maximum)
	s.Require().NoError(s.stores.RuleRepo.Create(s.ctx, r))
	return r
}

func (s *BaseServiceTestSuite) CreateActionRule(category, serviceType string, pointsPerUnit int64, maximum *int64) *rule.Rule {
	r := NewRule(category, serviceType, types.RuleUnitAction, pointsPerUnit, "1", maximum)
	s.Require().NoError(s.stores.RuleRepo.Create(s.ctx, r))
	return r
}

// NewRule builds an active rule without storing it
func NewRule(category, serviceType string, unit types.RuleUnit, pointsPerUnit int64, unitValue string, maximum *int64) *rule.Rule {
	now := time.Now().UTC()
	return &rule.Rule{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RULE),
		Name:          fmt.Sprintf("%s %s", category, serviceType),
		Category:      category,
		ServiceType:   serviceType,
		PointsPerUnit: pointsPerUnit,
		Unit:          unit,
		UnitValue:     decimal.RequireFromString(unitValue),
		MaximumPoints: maximum,
		Multiplier:    decimal.NewFromInt(1),
		Conditions:    types.JSONMap{},
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (s *BaseServiceTestSuite) CreateReward(name string, rewardType types.RewardType, cost, stock int64, active bool) *reward.Reward {
	rw := &reward.Reward{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REWARD),
		Name:      name,
		Type:      rewardType,
		Category:  "lifestyle",
		Cost:      cost,
		Value:     decimal.NewFromInt(100),
		Stock:     stock,
		IsActive:  active,
		CreatedAt: s.GetNow(),
	}
	s.Require().NoError(s.stores.RewardRepo.Create(s.ctx, rw))
	return rw
}

// AdminContext returns a context carrying the system admin and a request ID
func AdminContext() context.Context {
	return CallerContext(types.DefaultUserID, types.UserRoleAdmin)
}

// CallerContext returns a context for the given caller, as the auth
// middleware would build it
func CallerContext(userID string, role types.UserRole) context.Context {
	ctx := types.SetUserID(context.Background(), userID)
	ctx = types.SetRole(ctx, role)
	return context.WithValue(ctx, types.CtxRequestID, types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REQUEST))
}
