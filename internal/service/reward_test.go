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

type RewardServiceSuite struct {
	testutil.BaseServiceTestSuite
	service RewardService
}

func TestRewardService(t *testing.T) {
	suite.Run(t, new(RewardServiceSuite))
}

func (s *RewardServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewRewardService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *RewardServiceSuite) TestCreateRewardDefaults() {
	resp, err := s.service.CreateReward(s.GetContext(), &dto.CreateRewardRequest{
		Name:     "Airtime 50 ETB",
		Type:     types.RewardTypeVoucher,
		Category: "telecom",
		Cost:     500,
		Value:    decimal.NewFromInt(50),
	})
	s.Require().NoError(err)
	s.True(resp.IsActive)
	s.True(resp.Unlimited)
	s.Equal(types.UnlimitedStock, resp.Stock)

	got, err := s.service.GetReward(s.GetContext(), resp.ID)
	s.Require().NoError(err)
	s.Equal("Airtime 50 ETB", got.Name)
}

func (s *RewardServiceSuite) TestCreateRewardValidation() {
	testCases := []struct {
		name string
		req  *dto.CreateRewardRequest
	}{
		{
			name: "zero cost",
			req:  &dto.CreateRewardRequest{Name: "Mug", Type: types.RewardTypeService, Category: "merch"},
		},
		{
			name: "unknown type",
			req:  &dto.CreateRewardRequest{Name: "Mug", Type: "gift", Category: "merch", Cost: 10},
		},
		{
			name: "stock below unlimited",
			req: &dto.CreateRewardRequest{
				Name: "Mug", Type: types.RewardTypeService, Category: "merch", Cost: 10, Stock: lo.ToPtr(int64(-2)),
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.CreateReward(s.GetContext(), tc.req)
			s.Require().Error(err)
			s.True(ierr.IsValidation(err), "unexpected error: %v", err)
		})
	}
}

func (s *RewardServiceSuite) TestListActiveOnly() {
	s.CreateReward("Cashback", types.RewardTypeCashback, 100, types.UnlimitedStock, true)
	s.CreateReward("Retired", types.RewardTypeVoucher, 50, 0, false)

	all, err := s.service.ListRewards(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Len(all.Rewards, 2)

	active, err := s.service.ListRewards(s.GetContext(), &types.RewardFilter{ActiveOnly: true})
	s.Require().NoError(err)
	s.Require().Len(active.Rewards, 1)
	s.Equal("Cashback", active.Rewards[0].Name)
}

func (s *RewardServiceSuite) TestUpdateReward() {
	rw := s.CreateReward("Lounge pass", types.RewardTypeService, 1000, 2, true)

	resp, err := s.service.UpdateReward(s.GetContext(), rw.ID, &dto.UpdateRewardRequest{
		Stock:    lo.ToPtr(int64(10)),
		IsActive: lo.ToPtr(false),
	})
	s.Require().NoError(err)
	s.Equal(int64(10), resp.Stock)
	s.False(resp.IsActive)

	_, err = s.service.UpdateReward(s.GetContext(), rw.ID, &dto.UpdateRewardRequest{Stock: lo.ToPtr(int64(-5))})
	s.True(ierr.IsValidation(err))

	stored, err := s.GetStores().RewardRepo.Get(s.GetContext(), rw.ID)
	s.Require().NoError(err)
	s.Equal(int64(10), stored.Stock)

	_, err = s.service.UpdateReward(s.GetContext(), "rwd_missing", &dto.UpdateRewardRequest{Stock: lo.ToPtr(int64(1))})
	s.True(ierr.IsNotFound(err))
}

func (s *RewardServiceSuite) TestDeleteReward() {
	rw := s.CreateReward("Mug", types.RewardTypeService, 50, 5, true)

	s.Require().NoError(s.service.DeleteReward(s.GetContext(), rw.ID))
	_, err := s.service.GetReward(s.GetContext(), rw.ID)
	s.True(ierr.IsNotFound(err))
	s.True(ierr.IsNotFound(s.service.DeleteReward(s.GetContext(), rw.ID)))
}
