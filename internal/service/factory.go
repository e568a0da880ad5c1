package service

import (
	"github.com/cbo-rewards/loyalty/internal/cache"
	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/domain/branch"
	"github.com/cbo-rewards/loyalty/internal/domain/campaign"
	"github.com/cbo-rewards/loyalty/internal/domain/points"
	"github.com/cbo-rewards/loyalty/internal/domain/redemption"
	"github.com/cbo-rewards/loyalty/internal/domain/reward"
	"github.com/cbo-rewards/loyalty/internal/domain/rule"
	"github.com/cbo-rewards/loyalty/internal/domain/tier"
	"github.com/cbo-rewards/loyalty/internal/domain/user"
	"github.com/cbo-rewards/loyalty/internal/locker"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/postgres"
	"github.com/cbo-rewards/loyalty/internal/publisher"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Cache  cache.Cache
	// Locker serialises balance mutations per customer and stock changes
	// per reward
	Locker *locker.KeyedMutex

	// Repositories
	UserRepo       user.Repository
	PointsRepo     points.Repository
	RuleRepo       rule.Repository
	TierRepo       tier.Repository
	CampaignRepo   campaign.Repository
	RewardRepo     reward.Repository
	RedemptionRepo redemption.Repository
	BranchRepo     branch.Repository

	// Publishers
	EventPublisher publisher.EventPublisher
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	cache cache.Cache,
	locker *locker.KeyedMutex,
	userRepo user.Repository,
	pointsRepo points.Repository,
	ruleRepo rule.Repository,
	tierRepo tier.Repository,
	campaignRepo campaign.Repository,
	rewardRepo reward.Repository,
	redemptionRepo redemption.Repository,
	branchRepo branch.Repository,
	eventPublisher publisher.EventPublisher,
) ServiceParams {
	return ServiceParams{
		Logger:         logger,
		Config:         config,
		DB:             db,
		Cache:          cache,
		Locker:         locker,
		UserRepo:       userRepo,
		PointsRepo:     pointsRepo,
		RuleRepo:       ruleRepo,
		TierRepo:       tierRepo,
		CampaignRepo:   campaignRepo,
		RewardRepo:     rewardRepo,
		RedemptionRepo: redemptionRepo,
		BranchRepo:     branchRepo,
		EventPublisher: eventPublisher,
	}
}
