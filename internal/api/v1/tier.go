package v1

import (
	"net/http"
	"strconv"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/service"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/gin-gonic/gin"
)

type TierHandler struct {
	service service.TierService
	log     *logger.Logger
}

func NewTierHandler(service service.TierService, log *logger.Logger) *TierHandler {
	return &TierHandler{service: service, log: log}
}

// @Summary Create a tier
// @Tags Tiers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tier body dto.CreateTierRequest true "Tier"
// @Success 201 {object} dto.TierResponse
// @Router /tiers [post]
func (h *TierHandler) CreateTier(c *gin.Context) {
	var req dto.CreateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateTier(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *TierHandler) GetTier(c *gin.Context) {
	resp, err := h.service.GetTier(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List tiers
// @Description Customers only see active tiers
// @Tags Tiers
// @Produce json
// @Security BearerAuth
// @Param active_only query bool false "Only active tiers"
// @Success 200 {object} dto.ListTiersResponse
// @Router /tiers [get]
func (h *TierHandler) ListTiers(c *gin.Context) {
	activeOnly := !types.IsStaff(c.Request.Context())
	if raw := c.Query("active_only"); raw != "" && !activeOnly {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.Error(ierr.WithError(err).
				WithHint("active_only must be true or false").
				Mark(ierr.ErrValidation))
			return
		}
		activeOnly = parsed
	}

	resp, err := h.service.ListTiers(c.Request.Context(), activeOnly)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TierHandler) UpdateTier(c *gin.Context) {
	var req dto.UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateTier(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *TierHandler) DeleteTier(c *gin.Context) {
	if err := h.service.DeleteTier(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDeletedResponse("tier", c.Param("id")))
}
