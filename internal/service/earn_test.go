package service

import (
	"testing"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/testutil"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type EarnServiceSuite struct {
	testutil.BaseServiceTestSuite
	service EarnService
}

func TestEarnService(t *testing.T) {
	suite.Run(t, new(EarnServiceSuite))
}

func (s *EarnServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.GetConfig().Tier.AutoPromote = false
	s.service = NewEarnService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *EarnServiceSuite) TestEarnWithTierMultiplier() {
	customer, _ := s.CreateCustomer("meron", 0)
	gold := s.CreateTier("Gold", 5000, "1.5")
	s.AssignTier(customer.ID, gold.ID)
	s.CreateAmountRule("banking", "transfer", 1, "100", nil)

	resp, err := s.service.EarnPoints(s.GetContext(), &dto.EarnPointsRequest{
		CustomerID:  customer.ID,
		Category:    "banking",
		ServiceType: "transfer",
		Amount:      lo.ToPtr(decimal.NewFromInt(2000)),
	})
	s.Require().NoError(err)
	s.Equal(int64(30), resp.PointsEarned)
	s.Equal(int64(30), resp.Balance.AvailablePoints)
	s.False(resp.Duplicate)

	tx := resp.Transaction
	s.Equal(types.TransactionTypeEarn, tx.Type)
	s.Equal("Points earned from banking transfer", tx.Description)
	s.Equal("transfer", tx.Metadata[types.MetadataKeyServiceType])
	s.Equal(types.DefaultCurrency, tx.Currency)
	s.NotNil(tx.RuleID)

	published := s.GetPublisher().Events(types.EventPointsEarned)
	s.Require().Len(published, 1)
	s.Equal(customer.ID, published[0].CustomerID)
}

func (s *EarnServiceSuite) TestActionRuleHasNoCurrency() {
	customer, _ := s.CreateCustomer("selam", 0)
	s.CreateActionRule("digital", "app_login", 5, nil)

	resp, err := s.service.EarnPoints(s.GetContext(), &dto.EarnPointsRequest{
		CustomerID:  customer.ID,
		Category:    "digital",
		ServiceType: "app_login",
	})
	s.Require().NoError(err)
	s.Equal(int64(5), resp.PointsEarned)
	s.Empty(resp.Transaction.Currency)
	s.Nil(resp.Transaction.Amount)
}

func (s *EarnServiceSuite) TestIdempotentReplay() {
	customer, _ := s.CreateCustomer("yonas", 0)
	s.CreateAmountRule("banking", "transfer", 1, "100", nil)

	req := &dto.EarnPointsRequest{
		CustomerID:     customer.ID,
		Category:       "banking",
		ServiceType:    "transfer",
		Amount:         lo.ToPtr(decimal.NewFromInt(1000)),
		IdempotencyKey: lo.ToPtr("core-banking-771"),
	}

	first, err := s.service.EarnPoints(s.GetContext(), req)
	s.Require().NoError(err)
	s.False(first.Duplicate)

	second, err := s.service.EarnPoints(s.GetContext(), req)
	s.Require().NoError(err)
	s.True(second.Duplicate)
	s.Equal(first.Transaction.ID, second.Transaction.ID)
	s.Equal(int64(10), second.Balance.AvailablePoints)

	txs, err := s.GetStores().PointsRepo.ListTransactions(s.GetContext(), &types.TransactionFilter{CustomerID: customer.ID})
	s.Require().NoError(err)
	s.Len(txs, 1)
	s.Len(s.GetPublisher().Events(types.EventPointsEarned), 1)
}

func (s *EarnServiceSuite) TestErrors() {
	customer, _ := s.CreateCustomer("lidya", 0)
	s.CreateAmountRule("banking", "transfer", 1, "100", nil)

	testCases := []struct {
		name  string
		req   *dto.EarnPointsRequest
		check func(error) bool
	}{
		{
			name: "unknown customer",
			req: &dto.EarnPointsRequest{
				CustomerID:  "usr_missing",
				Category:    "banking",
				ServiceType: "transfer",
				Amount:      lo.ToPtr(decimal.NewFromInt(100)),
			},
			check: ierr.IsNotFound,
		},
		{
			name: "no matching rule",
			req: &dto.EarnPointsRequest{
				CustomerID:  customer.ID,
				Category:    "banking",
				ServiceType: "loan_payment",
				Amount:      lo.ToPtr(decimal.NewFromInt(100)),
			},
			check: ierr.IsRuleNotFound,
		},
		{
			name: "amount missing for amount rule",
			req: &dto.EarnPointsRequest{
				CustomerID:  customer.ID,
				Category:    "banking",
				ServiceType: "transfer",
			},
			check: ierr.IsValidation,
		},
		{
			name: "negative amount",
			req: &dto.EarnPointsRequest{
				CustomerID:  customer.ID,
				Category:    "banking",
				ServiceType: "transfer",
				Amount:      lo.ToPtr(decimal.NewFromInt(-1)),
			},
			check: ierr.IsValidation,
		},
		{
			name:  "missing fields",
			req:   &dto.EarnPointsRequest{CustomerID: customer.ID},
			check: ierr.IsValidation,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.EarnPoints(s.GetContext(), tc.req)
			s.Require().Error(err)
			s.True(tc.check(err), "unexpected error: %v", err)
		})
	}

	balance, err := s.GetStores().PointsRepo.GetPoints(s.GetContext(), customer.ID)
	s.Require().NoError(err)
	s.Zero(balance.AvailablePoints)
}

func (s *EarnServiceSuite) TestAutoPromote() {
	s.GetConfig().Tier.AutoPromote = true
	defer func() { s.GetConfig().Tier.AutoPromote = false }()

	customer, _ := s.CreateCustomer("saron", 4990)
	s.CreateTier("Silver", 0, "1")
	gold := s.CreateTier("Gold", 5000, "1.5")
	s.CreateActionRule("digital", "bill_payment", 20, nil)

	_, err := s.service.EarnPoints(s.GetContext(), &dto.EarnPointsRequest{
		CustomerID:  customer.ID,
		Category:    "digital",
		ServiceType: "bill_payment",
	})
	s.Require().NoError(err)

	assignment, err := s.GetStores().TierRepo.GetAssignment(s.GetContext(), customer.ID)
	s.Require().NoError(err)
	s.Equal(gold.ID, assignment.TierID)
	s.Len(s.GetPublisher().Events(types.EventCustomerTierChanged), 1)
}
