package api

import (
	v1 "github.com/cbo-rewards/loyalty/internal/api/v1"
	"github.com/cbo-rewards/loyalty/internal/auth"
	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/rest/middleware"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health     *v1.HealthHandler
	Points     *v1.PointsHandler
	Customer   *v1.CustomerHandler
	User       *v1.UserHandler
	Reward     *v1.RewardHandler
	Redemption *v1.RedemptionHandler
	Rule       *v1.RuleHandler
	Tier       *v1.TierHandler
	Campaign   *v1.CampaignHandler
	Branch     *v1.BranchHandler
	Analytics  *v1.AnalyticsHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, provider auth.Provider) *gin.Engine {
	if cfg.Deployment.Mode != types.ModeLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORS(cfg),
		middleware.SentryMiddleware(cfg),
		middleware.PyroscopeMiddleware(cfg),
		middleware.RequestLogger(logger),
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	v1Group.Use(middleware.AuthenticateMiddleware(cfg, provider, logger), middleware.SentryScope())

	perm := middleware.NewPermissionMiddleware(logger)
	admin := perm.RequireRoles(types.UserRoleAdmin)
	staff := perm.RequireStaff()
	self := perm.RequireSelfOrStaff("id")

	user := v1Group.Group("/users")
	{
		user.GET("/me", handlers.User.GetUserInfo)
		user.POST("/staff", admin, handlers.User.CreateStaff)
	}

	points := v1Group.Group("/points", middleware.RateLimit(cfg))
	{
		points.POST("/earn", handlers.Points.EarnPoints)
		points.POST("/redeem", handlers.Points.RedeemPoints)
	}

	customers := v1Group.Group("/customers")
	{
		customers.POST("", staff, handlers.Customer.RegisterCustomer)
		customers.GET("", staff, handlers.Customer.ListCustomers)
		customers.GET("/:id", self, handlers.Customer.GetCustomer)
		customers.GET("/:id/balance", self, handlers.Customer.CheckBalance)
		customers.GET("/:id/transactions", self, handlers.Customer.GetHistory)
		customers.GET("/:id/redemptions", self, handlers.Customer.ListRedemptions)
		customers.PUT("/:id/tier", admin, handlers.Customer.UpdateCustomerTier)
		customers.POST("/:id/tier/promote", admin, handlers.Customer.PromoteCustomer)
	}

	rewards := v1Group.Group("/rewards")
	{
		rewards.GET("", handlers.Reward.ListRewards)
		rewards.GET("/:id", handlers.Reward.GetReward)
		rewards.POST("", admin, handlers.Reward.CreateReward)
		rewards.PUT("/:id", admin, handlers.Reward.UpdateReward)
		rewards.DELETE("/:id", admin, handlers.Reward.DeleteReward)
	}

	redemptions := v1Group.Group("/redemptions")
	{
		redemptions.GET("", staff, handlers.Redemption.ListRedemptions)
		redemptions.GET("/:id", handlers.Redemption.GetRedemption)
		redemptions.GET("/:id/qrcode", handlers.Redemption.GetVoucherQRCode)
	}

	rules := v1Group.Group("/rules", staff)
	{
		rules.GET("", handlers.Rule.ListRules)
		rules.GET("/:id", handlers.Rule.GetRule)
		rules.POST("", admin, handlers.Rule.CreateRule)
		rules.PUT("/:id", admin, handlers.Rule.UpdateRule)
		rules.DELETE("/:id", admin, handlers.Rule.DeleteRule)
	}

	tiers := v1Group.Group("/tiers")
	{
		tiers.GET("", handlers.Tier.ListTiers)
		tiers.GET("/:id", handlers.Tier.GetTier)
		tiers.POST("", admin, handlers.Tier.CreateTier)
		tiers.PUT("/:id", admin, handlers.Tier.UpdateTier)
		tiers.DELETE("/:id", admin, handlers.Tier.DeleteTier)
	}

	campaigns := v1Group.Group("/campaigns")
	{
		campaigns.GET("/active", handlers.Campaign.ListActiveCampaigns)
		campaigns.GET("", staff, handlers.Campaign.ListCampaigns)
		campaigns.GET("/:id", staff, handlers.Campaign.GetCampaign)
		campaigns.POST("", admin, handlers.Campaign.CreateCampaign)
		campaigns.PUT("/:id", admin, handlers.Campaign.UpdateCampaign)
		campaigns.DELETE("/:id", admin, handlers.Campaign.DeleteCampaign)
	}

	branches := v1Group.Group("/branches")
	{
		branches.GET("", handlers.Branch.ListBranches)
		branches.GET("/:id", handlers.Branch.GetBranch)
		branches.POST("", admin, handlers.Branch.CreateBranch)
		branches.PUT("/:id", admin, handlers.Branch.UpdateBranch)
	}

	v1Group.GET("/analytics/dashboard", staff, handlers.Analytics.GetDashboard)

	return router
}
