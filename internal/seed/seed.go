package seed

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	"github.com/cbo-rewards/loyalty/internal/domain/points"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/idempotency"
	"github.com/cbo-rewards/loyalty/internal/service"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	adminUsername    = "admin"
	demoUsername     = "johndoe"
	demoTierName     = "Gold"
	openingEarned    = int64(45780)
	openingRedeemed  = int64(33330)
	openingCategory  = "opening_balance"
	mainBranchCode   = "AA-MAIN"
	mainBranchRegion = "Addis Ababa"
)

// Seeder loads the demo programme: one branch, an admin, three tiers, the
// default earning rules, two rewards and a demo customer with history.
type Seeder struct {
	params   service.ServiceParams
	idempGen *idempotency.Generator
}

func NewSeeder(params service.ServiceParams) *Seeder {
	return &Seeder{
		params:   params,
		idempGen: idempotency.NewGenerator(),
	}
}

// Run is a no-op when the admin user already exists
func (s *Seeder) Run(ctx context.Context) error {
	log := s.params.Logger
	if !s.params.Config.Seed.Enabled {
		return nil
	}

	if _, err := s.params.UserRepo.GetByUsername(ctx, adminUsername); err == nil {
		log.Infow("seed data already present, skipping", "username", adminUsername)
		return nil
	} else if !ierr.IsNotFound(err) {
		return err
	}

	ctx = types.SetUserID(ctx, types.DefaultUserID)
	ctx = types.SetRole(ctx, types.UserRoleAdmin)

	branch, err := service.NewBranchService(s.params).CreateBranch(ctx, &dto.CreateBranchRequest{
		Name:    "Addis Ababa Main Branch",
		Code:    mainBranchCode,
		City:    "Addis Ababa",
		Region:  mainBranchRegion,
		Manager: lo.ToPtr("Alemayehu Tadesse"),
	})
	if err != nil {
		return err
	}

	users := service.NewUserService(s.params)
	if _, err := users.CreateStaff(ctx, &dto.CreateStaffRequest{
		Username:  adminUsername,
		Email:     "admin@cbo.et",
		FirstName: "System",
		LastName:  "Administrator",
		Role:      types.UserRoleAdmin,
		BranchID:  lo.ToPtr(branch.ID),
	}); err != nil {
		return err
	}

	tierIDs, err := s.seedTiers(ctx)
	if err != nil {
		return err
	}
	if err := s.seedRules(ctx); err != nil {
		return err
	}
	if err := s.seedRewards(ctx); err != nil {
		return err
	}

	customer, err := users.RegisterCustomer(ctx, &dto.RegisterCustomerRequest{
		Username:    demoUsername,
		Email:       "john@example.com",
		FirstName:   "John",
		LastName:    "Doe",
		PhoneNumber: lo.ToPtr("+251911123456"),
		BankingID:   lo.ToPtr("CBO-CUST-001"),
		BranchID:    lo.ToPtr(branch.ID),
	})
	if err != nil {
		return err
	}
	if err := s.openingBalance(ctx, customer.User.ID); err != nil {
		return err
	}
	if _, err := service.NewTierService(s.params).UpdateCustomerTier(ctx, customer.User.ID, &dto.UpdateCustomerTierRequest{
		TierID: tierIDs[demoTierName],
	}); err != nil {
		return err
	}

	log.Infow("seeded demo data",
		"branch_id", branch.ID,
		"customer_id", customer.User.ID,
		"tiers", len(tierIDs),
	)
	return nil
}

func (s *Seeder) seedTiers(ctx context.Context) (map[string]string, error) {
	tiers := []dto.CreateTierRequest{
		{
			Name:          "Silver",
			MinimumPoints: 0,
			Multiplier:    decimal.RequireFromString("1.0"),
			Benefits:      []string{"Basic support", "Standard processing"},
			Color:         "#C0C0C0",
		},
		{
			Name:          "Gold",
			MinimumPoints: 5000,
			Multiplier:    decimal.RequireFromString("1.5"),
			Benefits:      []string{"Priority support", "1.5x points", "Birthday bonus", "Exclusive offers"},
			Color:         "#FFD700",
		},
		{
			Name:          "Platinum",
			MinimumPoints: 15000,
			Multiplier:    decimal.RequireFromString("2.0"),
			Benefits:      []string{"VIP support", "2x points", "Premium rewards", "Concierge service"},
			Color:         "#E5E4E2",
		},
	}

	svc := service.NewTierService(s.params)
	ids := make(map[string]string, len(tiers))
	for i := range tiers {
		resp, err := svc.CreateTier(ctx, &tiers[i])
		if err != nil {
			return nil, err
		}
		ids[resp.Name] = resp.ID
	}
	return ids, nil
}

func (s *Seeder) seedRules(ctx context.Context) error {
	rules := []dto.CreateRuleRequest{
		{
			Name:          "Account Transfers",
			Category:      "banking",
			ServiceType:   "transfer",
			PointsPerUnit: 10,
			Unit:          types.RuleUnitAmount,
			UnitValue:     decimal.NewFromInt(1000),
			MinimumAmount: lo.ToPtr(decimal.NewFromInt(100)),
			MaximumPoints: lo.ToPtr(int64(1000)),
		},
		{
			Name:          "Bill Payments",
			Category:      "banking",
			ServiceType:   "bill_payment",
			PointsPerUnit: 5,
			Unit:          types.RuleUnitAmount,
			UnitValue:     decimal.NewFromInt(500),
			MinimumAmount: lo.ToPtr(decimal.NewFromInt(50)),
			MaximumPoints: lo.ToPtr(int64(500)),
			Conditions:    types.JSONMap{"autopay_bonus": 2},
		},
		{
			Name:          "Daily Login",
			Category:      "mobile_app",
			ServiceType:   "login",
			PointsPerUnit: 5,
			Unit:          types.RuleUnitAction,
			UnitValue:     decimal.NewFromInt(1),
			MaximumPoints: lo.ToPtr(int64(5)),
			Conditions:    types.JSONMap{"streak_bonus": 50},
		},
	}

	svc := service.NewRuleService(s.params)
	for i := range rules {
		if _, err := svc.CreateRule(ctx, &rules[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedRewards(ctx context.Context) error {
	rewards := []dto.CreateRewardRequest{
		{
			Name:        "Cashback",
			Description: "Direct cash transfer to your account",
			Type:        types.RewardTypeCashback,
			Category:    "cash",
			Provider:    lo.ToPtr("CBO"),
			Terms:       lo.ToPtr("Cashback will be processed within 24 hours"),
			Cost:        1000,
			Value:       decimal.NewFromInt(100),
			Stock:       lo.ToPtr(types.UnlimitedStock),
		},
		{
			Name:        "Shopping Voucher",
			Description: "Use at partner stores",
			Type:        types.RewardTypeVoucher,
			Category:    "shopping",
			Provider:    lo.ToPtr("Partner Stores"),
			Terms:       lo.ToPtr("Valid for 6 months from redemption date"),
			Cost:        800,
			Value:       decimal.NewFromInt(100),
			Stock:       lo.ToPtr(int64(100)),
		},
	}

	svc := service.NewRewardService(s.params)
	for i := range rewards {
		if _, err := svc.CreateReward(ctx, &rewards[i]); err != nil {
			return err
		}
	}
	return nil
}

// openingBalance replays the demo customer's history as one earn and one
// redeem so the ledger invariant holds from the first request
func (s *Seeder) openingBalance(ctx context.Context, customerID string) error {
	ledger := service.NewLedgerService(s.params)

	entries := []struct {
		txType types.TransactionType
		points int64
		desc   string
	}{
		{types.TransactionTypeEarn, openingEarned, "Opening balance: lifetime earned"},
		{types.TransactionTypeRedeem, openingRedeemed, "Opening balance: lifetime redeemed"},
	}

	for _, e := range entries {
		key := s.idempGen.GenerateKey(idempotency.ScopeSeed, map[string]interface{}{
			"customer_id": customerID,
			"type":        e.txType,
		})
		_, err := ledger.ApplyTransaction(ctx, &points.Transaction{
			CustomerID:     customerID,
			Type:           e.txType,
			Points:         e.points,
			Description:    e.desc,
			Category:       openingCategory,
			IdempotencyKey: &key,
			Metadata:       types.Metadata{},
		})
		if err != nil && !ierr.IsAlreadyExists(err) {
			return err
		}
	}
	return nil
}
