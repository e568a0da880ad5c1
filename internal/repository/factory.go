package repository

import (
	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/domain/branch"
	"github.com/cbo-rewards/loyalty/internal/domain/campaign"
	"github.com/cbo-rewards/loyalty/internal/domain/points"
	"github.com/cbo-rewards/loyalty/internal/domain/redemption"
	"github.com/cbo-rewards/loyalty/internal/domain/reward"
	"github.com/cbo-rewards/loyalty/internal/domain/rule"
	"github.com/cbo-rewards/loyalty/internal/domain/tier"
	"github.com/cbo-rewards/loyalty/internal/domain/user"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/postgres"
	"github.com/cbo-rewards/loyalty/internal/repository/memory"
	postgresRepo "github.com/cbo-rewards/loyalty/internal/repository/postgres"
	"github.com/cbo-rewards/loyalty/internal/sentry"
	"github.com/cbo-rewards/loyalty/internal/types"
	"go.uber.org/fx"
)

// RepositoryParams carries what every repository constructor may need. DB
// is nil when storage.provider is memory.
type RepositoryParams struct {
	fx.In

	Config *config.Configuration
	Logger *logger.Logger
	DB     *postgres.DB `optional:"true"`
}

func usePostgres(p RepositoryParams) bool {
	return p.Config.Storage.Provider == types.StoragePostgres
}

// NewDB connects to postgres only when it backs the repositories
func NewDB(cfg *config.Configuration, logger *logger.Logger) (*postgres.DB, error) {
	if cfg.Storage.Provider != types.StoragePostgres {
		return nil, nil
	}
	return postgres.NewDB(cfg, logger)
}

// NewClient returns the unit-of-work client matching the storage provider
func NewClient(p RepositoryParams, sentry *sentry.Service) postgres.IClient {
	if usePostgres(p) {
		return postgres.NewSentryClient(p.DB, sentry, p.Logger)
	}
	return memory.NewClient()
}

func NewUserRepository(p RepositoryParams) user.Repository {
	if usePostgres(p) {
		return postgresRepo.NewUserRepository(p.DB, p.Logger)
	}
	return memory.NewUserStore()
}

func NewPointsRepository(p RepositoryParams) points.Repository {
	if usePostgres(p) {
		return postgresRepo.NewPointsRepository(p.DB, p.Logger)
	}
	return memory.NewPointsStore()
}

func NewRuleRepository(p RepositoryParams) rule.Repository {
	if usePostgres(p) {
		return postgresRepo.NewRuleRepository(p.DB, p.Logger)
	}
	return memory.NewRuleStore()
}

func NewTierRepository(p RepositoryParams) tier.Repository {
	if usePostgres(p) {
		return postgresRepo.NewTierRepository(p.DB, p.Logger)
	}
	return memory.NewTierStore()
}

func NewCampaignRepository(p RepositoryParams) campaign.Repository {
	if usePostgres(p) {
		return postgresRepo.NewCampaignRepository(p.DB, p.Logger)
	}
	return memory.NewCampaignStore()
}

func NewRewardRepository(p RepositoryParams) reward.Repository {
	if usePostgres(p) {
		return postgresRepo.NewRewardRepository(p.DB, p.Logger)
	}
	return memory.NewRewardStore()
}

func NewRedemptionRepository(p RepositoryParams) redemption.Repository {
	if usePostgres(p) {
		return postgresRepo.NewRedemptionRepository(p.DB, p.Logger)
	}
	return memory.NewRedemptionStore()
}

func NewBranchRepository(p RepositoryParams) branch.Repository {
	if usePostgres(p) {
		return postgresRepo.NewBranchRepository(p.DB, p.Logger)
	}
	return memory.NewBranchStore()
}
