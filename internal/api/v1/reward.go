package v1

import (
	"net/http"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/service"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/gin-gonic/gin"
)

type RewardHandler struct {
	service service.RewardService
	log     *logger.Logger
}

func NewRewardHandler(service service.RewardService, log *logger.Logger) *RewardHandler {
	return &RewardHandler{service: service, log: log}
}

// @Summary Create a reward
// @Tags Rewards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reward body dto.CreateRewardRequest true "Reward"
// @Success 201 {object} dto.RewardResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /rewards [post]
func (h *RewardHandler) CreateReward(c *gin.Context) {
	var req dto.CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateReward(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a reward
// @Tags Rewards
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reward ID"
// @Success 200 {object} dto.RewardResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /rewards/{id} [get]
func (h *RewardHandler) GetReward(c *gin.Context) {
	resp, err := h.service.GetReward(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List rewards
// @Description Customers only ever see the active catalog
// @Tags Rewards
// @Produce json
// @Security BearerAuth
// @Param filter query types.RewardFilter false "Filter"
// @Success 200 {object} dto.ListRewardsResponse
// @Router /rewards [get]
func (h *RewardHandler) ListRewards(c *gin.Context) {
	var filter types.RewardFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}
	if !types.IsStaff(c.Request.Context()) {
		filter.ActiveOnly = true
	}

	resp, err := h.service.ListRewards(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a reward
// @Tags Rewards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reward ID"
// @Param reward body dto.UpdateRewardRequest true "Reward"
// @Success 200 {object} dto.RewardResponse
// @Router /rewards/{id} [put]
func (h *RewardHandler) UpdateReward(c *gin.Context) {
	var req dto.UpdateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateReward(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a reward
// @Tags Rewards
// @Security BearerAuth
// @Param id path string true "Reward ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /rewards/{id} [delete]
func (h *RewardHandler) DeleteReward(c *gin.Context) {
	if err := h.service.DeleteReward(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDeletedResponse("reward", c.Param("id")))
}
