package scheduler

import (
	"testing"
	"time"

	"github.com/cbo-rewards/loyalty/internal/domain/campaign"
	"github.com/cbo-rewards/loyalty/internal/service"
	"github.com/cbo-rewards/loyalty/internal/testutil"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/stretchr/testify/suite"
)

type SchedulerSuite struct {
	testutil.BaseServiceTestSuite
	scheduler *Scheduler
}

func TestScheduler(t *testing.T) {
	suite.Run(t, new(SchedulerSuite))
}

func (s *SchedulerSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	stores := s.GetStores()
	params := service.NewServiceParams(
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

	var err error
	s.scheduler, err = New(s.GetConfig(), s.GetLogger(), params)
	s.Require().NoError(err)
}

func (s *SchedulerSuite) TearDownTest() {
	s.NoError(s.scheduler.Stop())
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *SchedulerSuite) TestSweepEndsExpiredCampaigns() {
	now := s.GetNow()
	expired := &campaign.Campaign{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CAMPAIGN),
		Name:      "Old promo",
		Type:      "bonus",
		StartDate: now.Add(-48 * time.Hour),
		EndDate:   now.Add(-time.Hour),
		Status:    types.CampaignStatusActive,
		CreatedBy: types.DefaultUserID,
		CreatedAt: now.Add(-48 * time.Hour),
	}
	s.Require().NoError(s.GetStores().CampaignRepo.Create(s.GetContext(), expired))

	s.scheduler.SyncCampaignStatuses()

	got, err := s.GetStores().CampaignRepo.Get(s.GetContext(), expired.ID)
	s.Require().NoError(err)
	s.Equal(types.CampaignStatusEnded, got.Status)
}

func (s *SchedulerSuite) TestDisabledSchedulerDoesNotStart() {
	s.GetConfig().Scheduler.Enabled = false
	defer func() { s.GetConfig().Scheduler.Enabled = true }()

	s.Require().NoError(s.scheduler.Start())
	s.Empty(s.scheduler.cron.Jobs())
}
