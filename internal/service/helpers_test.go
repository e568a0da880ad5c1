package service

import (
	"github.com/cbo-rewards/loyalty/internal/testutil"
)

func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return NewServiceParams(
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
