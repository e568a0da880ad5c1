package scheduler

import (
	"context"
	"time"

	"github.com/cbo-rewards/loyalty/internal/config"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/service"
	"github.com/go-co-op/gocron/v2"
)

// sweepTimeout bounds a single campaign status sweep
const sweepTimeout = time.Minute

// Scheduler runs the periodic maintenance jobs of the service. Today that
// is only the campaign status sweep.
type Scheduler struct {
	cron      gocron.Scheduler
	campaigns service.CampaignService
	config    *config.Configuration
	logger    *logger.Logger
}

func New(cfg *config.Configuration, log *logger.Logger, params service.ServiceParams) (*Scheduler, error) {
	cron, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create scheduler").
			Mark(ierr.ErrSystem)
	}

	return &Scheduler{
		cron:      cron,
		campaigns: service.NewCampaignService(params),
		config:    cfg,
		logger:    log,
	}, nil
}

// Start registers the jobs and starts the scheduler. It is a no-op when
// the scheduler is disabled in config.
func (s *Scheduler) Start() error {
	if !s.config.Scheduler.Enabled {
		s.logger.Info("scheduler disabled, skipping")
		return nil
	}

	interval := s.config.Scheduler.CampaignStatusInterval
	_, err := s.cron.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.SyncCampaignStatuses),
		gocron.WithName("campaign_status_sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to register campaign status job").
			Mark(ierr.ErrSystem)
	}

	s.cron.Start()
	s.logger.Infow("scheduler started", "campaign_status_interval", interval)
	return nil
}

func (s *Scheduler) Stop() error {
	return s.cron.Shutdown()
}

// SyncCampaignStatuses moves campaigns whose window opened or closed since
// the last run
func (s *Scheduler) SyncCampaignStatuses() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	changed, err := s.campaigns.SyncStatuses(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Errorw("campaign status sweep failed", "error", err, "changed", changed)
		return
	}
	if changed > 0 {
		s.logger.Infow("campaign status sweep finished", "changed", changed)
	}
}
