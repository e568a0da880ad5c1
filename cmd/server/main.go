package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cbo-rewards/loyalty/internal/api"
	v1 "github.com/cbo-rewards/loyalty/internal/api/v1"
	"github.com/cbo-rewards/loyalty/internal/audit"
	"github.com/cbo-rewards/loyalty/internal/auth"
	"github.com/cbo-rewards/loyalty/internal/cache"
	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/locker"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/postgres"
	"github.com/cbo-rewards/loyalty/internal/publisher"
	"github.com/cbo-rewards/loyalty/internal/pubsub"
	kafkaPubSub "github.com/cbo-rewards/loyalty/internal/pubsub/kafka"
	memoryPubSub "github.com/cbo-rewards/loyalty/internal/pubsub/memory"
	pubsubRouter "github.com/cbo-rewards/loyalty/internal/pubsub/router"
	"github.com/cbo-rewards/loyalty/internal/pyroscope"
	"github.com/cbo-rewards/loyalty/internal/repository"
	"github.com/cbo-rewards/loyalty/internal/scheduler"
	"github.com/cbo-rewards/loyalty/internal/seed"
	"github.com/cbo-rewards/loyalty/internal/sentry"
	"github.com/cbo-rewards/loyalty/internal/service"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/cbo-rewards/loyalty/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewCache,

			// Locks
			locker.New,

			// Storage
			repository.NewDB,
			repository.NewClient,

			// Repositories
			repository.NewUserRepository,
			repository.NewPointsRepository,
			repository.NewRuleRepository,
			repository.NewTierRepository,
			repository.NewCampaignRepository,
			repository.NewRewardRepository,
			repository.NewRedemptionRepository,
			repository.NewBranchRepository,

			// PubSub
			providePubSub,
			publisher.NewEventPublisher,
			pubsubRouter.NewRouter,
			audit.NewConsumer,

			// Auth
			auth.NewProvider,
		),
		sentry.Module(),
		pyroscope.Module(),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewLedgerService,
			service.NewRuleService,
			service.NewTierService,
			service.NewEarnService,
			service.NewRewardService,
			service.NewRedemptionService,
			service.NewCampaignService,
			service.NewBranchService,
			service.NewUserService,
			service.NewAnalyticsService,

			seed.NewSeeder,
			provideScheduler,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(
			runSeed,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

// providePubSub picks the event transport named by event.pubsub
func providePubSub(cfg *config.Configuration, log *logger.Logger) (pubsub.PubSub, error) {
	if cfg.Event.PubSub == types.KafkaPubSub {
		return kafkaPubSub.NewPubSub(cfg, log)
	}
	return memoryPubSub.NewPubSub(cfg, log), nil
}

func provideScheduler(cfg *config.Configuration, log *logger.Logger, params service.ServiceParams) (*scheduler.Scheduler, error) {
	return scheduler.New(cfg, log, params)
}

func provideHandlers(
	cfg *config.Configuration,
	db *postgres.DB,
	log *logger.Logger,
	userService service.UserService,
	earnService service.EarnService,
	redemptionService service.RedemptionService,
	rewardService service.RewardService,
	ruleService service.RuleService,
	tierService service.TierService,
	campaignService service.CampaignService,
	branchService service.BranchService,
	analyticsService service.AnalyticsService,
) api.Handlers {
	return api.Handlers{
		Health:     v1.NewHealthHandler(cfg, db, log),
		Points:     v1.NewPointsHandler(earnService, redemptionService, log),
		Customer:   v1.NewCustomerHandler(userService, tierService, redemptionService, log),
		User:       v1.NewUserHandler(userService, log),
		Reward:     v1.NewRewardHandler(rewardService, log),
		Redemption: v1.NewRedemptionHandler(redemptionService, log),
		Rule:       v1.NewRuleHandler(ruleService, log),
		Tier:       v1.NewTierHandler(tierService, log),
		Campaign:   v1.NewCampaignHandler(campaignService, log),
		Branch:     v1.NewBranchHandler(branchService, log),
		Analytics:  v1.NewAnalyticsHandler(analyticsService, log),
	}
}

// runSeed loads the demo dataset before the server accepts traffic
func runSeed(lc fx.Lifecycle, seeder *seed.Seeder, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := seeder.Run(ctx); err != nil {
				log.Errorw("seeding failed", "error", err)
				return err
			}
			return nil
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	router *pubsubRouter.Router,
	consumer *audit.Consumer,
	sched *scheduler.Scheduler,
	db *postgres.DB,
	ps pubsub.PubSub,
	log *logger.Logger,
) {
	// registered first so it runs after every other stop hook
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := ps.Close(); err != nil {
				log.Errorw("failed to close pubsub", "error", err)
			}
			if db != nil {
				return db.Close()
			}
			return nil
		},
	})

	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		startAPIServer(lc, r, cfg, log)
		startScheduler(lc, sched, log)
		startMessageRouter(lc, cfg, router, consumer, log)
	case types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
		startScheduler(lc, sched, log)
	case types.ModeConsumer:
		startMessageRouter(lc, cfg, router, consumer, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}

func startScheduler(lc fx.Lifecycle, sched *scheduler.Scheduler, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return sched.Start()
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping scheduler...")
			return sched.Stop()
		},
	})
}

func startMessageRouter(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	router *pubsubRouter.Router,
	consumer *audit.Consumer,
	log *logger.Logger,
) {
	if !cfg.Event.Enabled {
		log.Info("event consumption is disabled")
		return
	}
	consumer.RegisterHandler(router)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(context.Background()); err != nil {
					log.Errorw("Message router stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down message router...")
			return router.Close()
		},
	})
}
