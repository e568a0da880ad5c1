package service

import (
	"strings"
	"testing"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/testutil"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/suite"
)

type RedemptionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service RedemptionService
}

func TestRedemptionService(t *testing.T) {
	suite.Run(t, new(RedemptionServiceSuite))
}

func (s *RedemptionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewRedemptionService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *RedemptionServiceSuite) TestRedeemVoucher() {
	customer, _ := s.CreateCustomer("bethlehem", 1500)
	rw := s.CreateReward("Coffee voucher", types.RewardTypeVoucher, 1000, 5, true)

	result, err := s.service.Redeem(s.GetContext(), customer.ID, rw.ID)
	s.Require().NoError(err)

	s.Equal(int64(500), result.Balance.AvailablePoints)
	s.Equal(int64(1000), result.Balance.LifetimeRedeemed)
	s.Equal(int64(4), result.Reward.Stock)

	r := result.Redemption
	s.Equal(types.RedemptionStatusCompleted, r.Status)
	s.Equal(int64(1000), r.PointsUsed)
	s.Require().NotNil(r.Code)
	s.True(strings.HasPrefix(*r.Code, s.GetConfig().Redemption.VoucherPrefix))
	s.Require().NotNil(r.ExpiresAt)
	s.True(r.RedeemedAt.AddDate(0, 6, 0).Equal(*r.ExpiresAt))

	tx := result.Transaction
	s.Equal(types.TransactionTypeRedeem, tx.Type)
	s.Equal("Redeemed Coffee voucher", tx.Description)
	s.Equal(rw.Category, tx.Category)
	s.Equal(r.ID, tx.Metadata[types.MetadataKeyRedemptionID])
	s.Require().NotNil(tx.IdempotencyKey)

	stored, err := s.GetStores().RewardRepo.Get(s.GetContext(), rw.ID)
	s.Require().NoError(err)
	s.Equal(int64(4), stored.Stock)

	s.Len(s.GetPublisher().Events(types.EventPointsRedeemed), 1)
}

func (s *RedemptionServiceSuite) TestNonVoucherHasNoCode() {
	customer, _ := s.CreateCustomer("eden", 500)
	rw := s.CreateReward("Fee waiver", types.RewardTypeService, 200, types.UnlimitedStock, true)

	result, err := s.service.Redeem(s.GetContext(), customer.ID, rw.ID)
	s.Require().NoError(err)
	s.Nil(result.Redemption.Code)
	s.Nil(result.Redemption.ExpiresAt)

	_, err = s.service.GetVoucherQRCode(s.GetContext(), result.Redemption.ID, 256)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *RedemptionServiceSuite) TestUnlimitedStockIsNeverDecremented() {
	customer, _ := s.CreateCustomer("henok", 1000)
	rw := s.CreateReward("Cashback", types.RewardTypeCashback, 100, types.UnlimitedStock, true)

	for i := 0; i < 3; i++ {
		_, err := s.service.Redeem(s.GetContext(), customer.ID, rw.ID)
		s.Require().NoError(err)
	}

	stored, err := s.GetStores().RewardRepo.Get(s.GetContext(), rw.ID)
	s.Require().NoError(err)
	s.Equal(types.UnlimitedStock, stored.Stock)
}

func (s *RedemptionServiceSuite) TestCheckOrder() {
	rich, _ := s.CreateCustomer("rich", 10000)
	poor, _ := s.CreateCustomer("poor", 100)

	inactiveEmpty := s.CreateReward("Retired", types.RewardTypeVoucher, 5000, 0, false)
	expensiveEmpty := s.CreateReward("Flight", types.RewardTypeVoucher, 5000, 0, true)
	cheapEmpty := s.CreateReward("Mug", types.RewardTypeVoucher, 50, 0, true)

	testCases := []struct {
		name       string
		customerID string
		rewardID   string
		check      func(error) bool
	}{
		{
			name:       "unknown reward wins over unknown customer",
			customerID: "usr_missing",
			rewardID:   "rwd_missing",
			check:      ierr.IsNotFound,
		},
		{
			name:       "unknown customer",
			customerID: "usr_missing",
			rewardID:   cheapEmpty.ID,
			check:      ierr.IsNotFound,
		},
		{
			name:       "inactive before insufficient",
			customerID: poor.ID,
			rewardID:   inactiveEmpty.ID,
			check:      ierr.IsRewardUnavailable,
		},
		{
			name:       "insufficient before out of stock",
			customerID: poor.ID,
			rewardID:   expensiveEmpty.ID,
			check:      ierr.IsInsufficientPoints,
		},
		{
			name:       "out of stock",
			customerID: rich.ID,
			rewardID:   cheapEmpty.ID,
			check:      ierr.IsOutOfStock,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.Redeem(s.GetContext(), tc.customerID, tc.rewardID)
			s.Require().Error(err)
			s.True(tc.check(err), "unexpected error: %v", err)
		})
	}

	redemptions, err := s.GetStores().RedemptionRepo.List(s.GetContext(), &types.RedemptionFilter{})
	s.Require().NoError(err)
	s.Empty(redemptions)

	balance, err := s.GetStores().PointsRepo.GetPoints(s.GetContext(), rich.ID)
	s.Require().NoError(err)
	s.Equal(int64(10000), balance.AvailablePoints)
}

func (s *RedemptionServiceSuite) TestShortfallDetail() {
	customer, _ := s.CreateCustomer("ruth", 850)
	rw := s.CreateReward("Lounge pass", types.RewardTypeService, 1000, 10, true)

	_, err := s.service.Redeem(s.GetContext(), customer.ID, rw.ID)
	s.Require().Error(err)
	s.True(ierr.IsInsufficientPoints(err))

	details := ierr.ReportableDetails(err)
	s.EqualValues(850, details["available"])
	s.EqualValues(1000, details["required"])
	s.EqualValues(150, details["shortfall"])
}

func (s *RedemptionServiceSuite) TestLastUnitGoesToOneCustomer() {
	rw := s.CreateReward("Last ticket", types.RewardTypeVoucher, 100, 1, true)

	customers := make([]string, 8)
	for i := range customers {
		u, _ := s.CreateCustomer("racer"+string(rune('a'+i)), 1000)
		customers[i] = u.ID
	}

	var wg conc.WaitGroup
	results := make([]error, len(customers))
	for i, id := range customers {
		wg.Go(func() {
			_, results[i] = s.service.Redeem(s.GetContext(), id, rw.ID)
		})
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		s.True(ierr.IsOutOfStock(err), "unexpected error: %v", err)
	}
	s.Equal(1, succeeded)

	stored, err := s.GetStores().RewardRepo.Get(s.GetContext(), rw.ID)
	s.Require().NoError(err)
	s.Zero(stored.Stock)
}

func (s *RedemptionServiceSuite) TestRedeemPointsAndLookups() {
	customer, _ := s.CreateCustomer("nardos", 3000)
	rw := s.CreateReward("Cinema voucher", types.RewardTypeVoucher, 700, 3, true)

	resp, err := s.service.RedeemPoints(s.GetContext(), &dto.RedeemPointsRequest{
		CustomerID: customer.ID,
		RewardID:   rw.ID,
	})
	s.Require().NoError(err)
	s.Equal(int64(2300), resp.Balance.AvailablePoints)
	s.Require().NotNil(resp.Redemption.Reward)
	s.Equal(rw.Name, resp.Redemption.Reward.Name)

	got, err := s.service.GetRedemption(s.GetContext(), resp.Redemption.ID)
	s.Require().NoError(err)
	s.Equal(resp.Redemption.Code, got.Code)

	filter := types.NewRedemptionFilter()
	filter.CustomerID = customer.ID
	list, err := s.service.ListRedemptions(s.GetContext(), filter)
	s.Require().NoError(err)
	s.Len(list.Items, 1)

	png, err := s.service.GetVoucherQRCode(s.GetContext(), resp.Redemption.ID, 256)
	s.Require().NoError(err)
	s.NotEmpty(png)

	_, err = s.service.RedeemPoints(s.GetContext(), &dto.RedeemPointsRequest{CustomerID: customer.ID})
	s.True(ierr.IsValidation(err))
}
