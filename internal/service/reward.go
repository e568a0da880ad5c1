package service

import (
	"context"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	"github.com/cbo-rewards/loyalty/internal/types"
)

type RewardService interface {
	CreateReward(ctx context.Context, req *dto.CreateRewardRequest) (*dto.RewardResponse, error)
	GetReward(ctx context.Context, id string) (*dto.RewardResponse, error)
	ListRewards(ctx context.Context, filter *types.RewardFilter) (*dto.ListRewardsResponse, error)
	UpdateReward(ctx context.Context, id string, req *dto.UpdateRewardRequest) (*dto.RewardResponse, error)
	DeleteReward(ctx context.Context, id string) error
}

type rewardService struct {
	ServiceParams
}

func NewRewardService(params ServiceParams) RewardService {
	return &rewardService{ServiceParams: params}
}

func (s *rewardService) CreateReward(ctx context.Context, req *dto.CreateRewardRequest) (*dto.RewardResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rw := req.ToReward()
	if err := s.RewardRepo.Create(ctx, rw); err != nil {
		return nil, err
	}

	s.Logger.Infow("created reward",
		"reward_id", rw.ID,
		"name", rw.Name,
		"cost", rw.Cost,
		"stock", rw.Stock,
	)
	return dto.NewRewardResponse(rw), nil
}

func (s *rewardService) GetReward(ctx context.Context, id string) (*dto.RewardResponse, error) {
	rw, err := s.RewardRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewRewardResponse(rw), nil
}

func (s *rewardService) ListRewards(ctx context.Context, filter *types.RewardFilter) (*dto.ListRewardsResponse, error) {
	if filter == nil {
		filter = &types.RewardFilter{}
	}
	rewards, err := s.RewardRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewListRewardsResponse(rewards), nil
}

// UpdateReward takes the reward lock so an admin stock change cannot race
// a redemption of the same reward
func (s *rewardService) UpdateReward(ctx context.Context, id string, req *dto.UpdateRewardRequest) (*dto.RewardResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	unlock := s.Locker.Lock(rewardLockKey(id))
	defer unlock()

	rw, err := s.RewardRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(rw)
	if err := rw.Validate(); err != nil {
		return nil, err
	}

	if err := s.RewardRepo.Update(ctx, rw); err != nil {
		return nil, err
	}
	s.Logger.Infow("updated reward", "reward_id", rw.ID, "stock", rw.Stock, "is_active", rw.IsActive)
	return dto.NewRewardResponse(rw), nil
}

func (s *rewardService) DeleteReward(ctx context.Context, id string) error {
	unlock := s.Locker.Lock(rewardLockKey(id))
	defer unlock()

	if err := s.RewardRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.Infow("deleted reward", "reward_id", id)
	return nil
}
