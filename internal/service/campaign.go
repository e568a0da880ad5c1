package service

import (
	"context"
	"time"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	"github.com/cbo-rewards/loyalty/internal/domain/campaign"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/samber/lo"
)

type CampaignService interface {
	CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest) (*dto.CampaignResponse, error)
	GetCampaign(ctx context.Context, id string) (*dto.CampaignResponse, error)
	ListCampaigns(ctx context.Context, filter *types.CampaignFilter) (*dto.ListCampaignsResponse, error)
	UpdateCampaign(ctx context.Context, id string, req *dto.UpdateCampaignRequest) (*dto.CampaignResponse, error)
	DeleteCampaign(ctx context.Context, id string) error

	// ListActiveCampaigns returns campaigns marked active whose window
	// contains now
	ListActiveCampaigns(ctx context.Context) (*dto.ListCampaignsResponse, error)

	// SyncStatuses moves every campaign to the status its window implies at
	// now and returns how many changed
	SyncStatuses(ctx context.Context, now time.Time) (int, error)
}

type campaignService struct {
	ServiceParams
}

func NewCampaignService(params ServiceParams) CampaignService {
	return &campaignService{ServiceParams: params}
}

func (s *campaignService) CreateCampaign(ctx context.Context, req *dto.CreateCampaignRequest) (*dto.CampaignResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	createdBy := types.GetUserID(ctx)
	if createdBy == "" {
		createdBy = types.DefaultUserID
	}
	c := req.ToCampaign(createdBy)
	if err := s.CampaignRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("created campaign",
		"campaign_id", c.ID,
		"status", c.Status,
		"start_date", c.StartDate,
		"end_date", c.EndDate,
	)
	return &dto.CampaignResponse{Campaign: c}, nil
}

func (s *campaignService) GetCampaign(ctx context.Context, id string) (*dto.CampaignResponse, error) {
	c, err := s.CampaignRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CampaignResponse{Campaign: c}, nil
}

func (s *campaignService) ListCampaigns(ctx context.Context, filter *types.CampaignFilter) (*dto.ListCampaignsResponse, error) {
	if filter == nil {
		filter = &types.CampaignFilter{}
	}
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return nil, err
		}
	}
	campaigns, err := s.CampaignRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewListCampaignsResponse(campaigns), nil
}

func (s *campaignService) UpdateCampaign(ctx context.Context, id string, req *dto.UpdateCampaignRequest) (*dto.CampaignResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.CampaignRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.CampaignRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CampaignResponse{Campaign: c}, nil
}

func (s *campaignService) DeleteCampaign(ctx context.Context, id string) error {
	return s.CampaignRepo.Delete(ctx, id)
}

func (s *campaignService) ListActiveCampaigns(ctx context.Context) (*dto.ListCampaignsResponse, error) {
	campaigns, err := s.CampaignRepo.List(ctx, &types.CampaignFilter{
		Status: lo.ToPtr(types.CampaignStatusActive),
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	running := lo.Filter(campaigns, func(c *campaign.Campaign, _ int) bool {
		return c.IsRunning(now)
	})
	return dto.NewListCampaignsResponse(running), nil
}

func (s *campaignService) SyncStatuses(ctx context.Context, now time.Time) (int, error) {
	campaigns, err := s.CampaignRepo.List(ctx, &types.CampaignFilter{})
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, c := range campaigns {
		want := types.CampaignStatusAt(c.StartDate, c.EndDate, now)
		if c.Status == want {
			continue
		}

		previous := c.Status
		c.Status = want
		c.UpdatedAt = now
		if err := s.CampaignRepo.Update(ctx, c); err != nil {
			return changed, err
		}
		changed++

		s.Logger.Infow("campaign status changed",
			"campaign_id", c.ID,
			"from", previous,
			"to", want,
		)
	}
	return changed, nil
}
