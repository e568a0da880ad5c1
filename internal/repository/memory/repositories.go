package memory

import (
	"github.com/cbo-rewards/loyalty/internal/domain/branch"
	"github.com/cbo-rewards/loyalty/internal/domain/campaign"
	"github.com/cbo-rewards/loyalty/internal/domain/points"
	"github.com/cbo-rewards/loyalty/internal/domain/redemption"
	"github.com/cbo-rewards/loyalty/internal/domain/reward"
	"github.com/cbo-rewards/loyalty/internal/domain/rule"
	"github.com/cbo-rewards/loyalty/internal/domain/tier"
	"github.com/cbo-rewards/loyalty/internal/domain/user"
)

var (
	_ user.Repository       = (*UserStore)(nil)
	_ points.Repository     = (*PointsStore)(nil)
	_ rule.Repository       = (*RuleStore)(nil)
	_ tier.Repository       = (*TierStore)(nil)
	_ campaign.Repository   = (*CampaignStore)(nil)
	_ reward.Repository     = (*RewardStore)(nil)
	_ redemption.Repository = (*RedemptionStore)(nil)
	_ branch.Repository     = (*BranchStore)(nil)
)
