package seed

import (
	"testing"

	"github.com/cbo-rewards/loyalty/internal/service"
	"github.com/cbo-rewards/loyalty/internal/testutil"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/stretchr/testify/suite"
)

type SeederSuite struct {
	testutil.BaseServiceTestSuite
	params service.ServiceParams
}

func TestSeeder(t *testing.T) {
	suite.Run(t, new(SeederSuite))
}

func (s *SeederSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	s.params = service.NewServiceParams(
		s.GetLogger(),
		s.GetConfig(),
		s.GetDB(),
		s.GetCache(),
		s.GetLocker(),
		stores.UserRepo,
		stores.PointsRepo,
		stores.RuleRepo,
		stores.TierRepo,
		stores.CampaignRepo,
		stores.RewardRepo,
		stores.RedemptionRepo,
		stores.BranchRepo,
		s.GetPublisher(),
	)
}

func (s *SeederSuite) TestSeedDemoCustomer() {
	s.Require().NoError(NewSeeder(s.params).Run(s.GetContext()))

	customer, err := s.GetStores().UserRepo.GetByUsername(s.GetContext(), demoUsername)
	s.Require().NoError(err)

	balance, err := service.NewUserService(s.params).CheckBalance(s.GetContext(), customer.ID)
	s.Require().NoError(err)
	s.Equal(int64(12450), balance.Points.AvailablePoints)
	s.Equal(int64(12450), balance.Points.TotalPoints)
	s.Equal(openingEarned, balance.Points.LifetimeEarned)
	s.Equal(openingRedeemed, balance.Points.LifetimeRedeemed)
	s.Require().NotNil(balance.Tier)
	s.Equal(demoTierName, balance.Tier.Name)

	rule, err := service.NewRuleService(s.params).FindRule(s.GetContext(), "banking", "transfer")
	s.Require().NoError(err)
	s.Equal(int64(10), rule.PointsPerUnit)

	rewards, err := s.GetStores().RewardRepo.List(s.GetContext(), &types.RewardFilter{ActiveOnly: true})
	s.Require().NoError(err)
	s.Len(rewards, 2)
}

func (s *SeederSuite) TestSecondRunIsNoop() {
	seeder := NewSeeder(s.params)
	s.Require().NoError(seeder.Run(s.GetContext()))
	s.Require().NoError(seeder.Run(s.GetContext()))

	tiers, err := s.GetStores().TierRepo.List(s.GetContext())
	s.Require().NoError(err)
	s.Len(tiers, 3)

	txs, err := s.GetStores().PointsRepo.ListTransactions(s.GetContext(), &types.TransactionFilter{})
	s.Require().NoError(err)
	s.Len(txs, 2)
}

func (s *SeederSuite) TestDisabled() {
	s.GetConfig().Seed.Enabled = false
	defer func() { s.GetConfig().Seed.Enabled = true }()

	s.Require().NoError(NewSeeder(s.params).Run(s.GetContext()))
	_, err := s.GetStores().UserRepo.GetByUsername(s.GetContext(), adminUsername)
	s.Error(err)
}
