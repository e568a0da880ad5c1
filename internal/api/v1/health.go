package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/postgres"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	cfg    *config.Configuration
	db     *postgres.DB
	logger *logger.Logger
}

// NewHealthHandler builds the health endpoint. db is nil for memory storage.
func NewHealthHandler(cfg *config.Configuration, db *postgres.DB, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{cfg: cfg, db: db, logger: logger}
}

// @Summary Health check
// @Description Reports the storage backend and whether it answers
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	body := gin.H{
		"status":  "ok",
		"storage": h.cfg.Storage.Provider,
		"mode":    h.cfg.Deployment.Mode,
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Errorw("health check failed", "error", err)
			body["status"] = "unavailable"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
	}
	c.JSON(http.StatusOK, body)
}
