package types

import (
	"time"

	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/samber/lo"
)

type CampaignStatus string

const (
	CampaignStatusScheduled CampaignStatus = "scheduled"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusEnded     CampaignStatus = "ended"
)

func (s CampaignStatus) Validate() error {
	allowed := []CampaignStatus{CampaignStatusScheduled, CampaignStatusActive, CampaignStatusEnded}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid campaign status").
			WithHintf("Campaign status must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CampaignStatusAt derives the status a campaign window implies at t
func CampaignStatusAt(start, end, t time.Time) CampaignStatus {
	switch {
	case t.Before(start):
		return CampaignStatusScheduled
	case t.After(end):
		return CampaignStatusEnded
	default:
		return CampaignStatusActive
	}
}
