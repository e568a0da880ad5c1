package testutil

import (
	"context"
	"time"

	"github.com/cbo-rewards/loyalty/internal/cache"
	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/locker"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/postgres"
	"github.com/cbo-rewards/loyalty/internal/repository/memory"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/cbo-rewards/loyalty/internal/validator"
	"github.com/stretchr/testify/suite"
)

type Stores struct {
	UserRepo       *memory.UserStore
	PointsRepo     *memory.PointsStore
	RuleRepo       *memory.RuleStore
	TierRepo       *memory.TierStore
	CampaignRepo   *memory.CampaignStore
	RewardRepo     *memory.RewardStore
	RedemptionRepo *memory.RedemptionStore
	BranchRepo     *memory.BranchStore
}

// BaseServiceTestSuite wires the in-memory stores, a pass-through unit of
// work and a recording publisher. Every test starts from empty stores.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	stores    Stores
	publisher *InMemoryPublisher
	db        postgres.IClient
	cache     cache.Cache
	locker    *locker.KeyedMutex
	logger    *logger.Logger
	config    *config.Configuration
	now       time.Time
}

func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()
	s.config.Logging.Level = types.LogLevelInfo
	s.logger = logger.NewNoopLogger()
}

func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = AdminContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		UserRepo:       memory.NewUserStore(),
		PointsRepo:     memory.NewPointsStore(),
		RuleRepo:       memory.NewRuleStore(),
		TierRepo:       memory.NewTierStore(),
		CampaignRepo:   memory.NewCampaignStore(),
		RewardRepo:     memory.NewRewardStore(),
		RedemptionRepo: memory.NewRedemptionStore(),
		BranchRepo:     memory.NewBranchStore(),
	}

	s.db = memory.NewClient()
	s.cache = cache.NewInMemoryCache(s.config, s.logger)
	s.locker = locker.New()
	s.publisher = NewInMemoryPublisher()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.UserRepo.Clear()
	s.stores.PointsRepo.Clear()
	s.stores.RuleRepo.Clear()
	s.stores.TierRepo.Clear()
	s.stores.CampaignRepo.Clear()
	s.stores.RewardRepo.Clear()
	s.stores.RedemptionRepo.Clear()
	s.stores.BranchRepo.Clear()
	s.cache.Flush(s.ctx)
	s.publisher.Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetPublisher() *InMemoryPublisher {
	return s.publisher
}

func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetLocker() *locker.KeyedMutex {
	return s.locker
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
