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

type CampaignHandler struct {
	service service.CampaignService
	log     *logger.Logger
}

func NewCampaignHandler(service service.CampaignService, log *logger.Logger) *CampaignHandler {
	return &CampaignHandler{service: service, log: log}
}

// @Summary Create a campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param campaign body dto.CreateCampaignRequest true "Campaign"
// @Success 201 {object} dto.CampaignResponse
// @Router /campaigns [post]
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateCampaign(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	resp, err := h.service.GetCampaign(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List campaigns
// @Tags Campaigns
// @Produce json
// @Security BearerAuth
// @Param status query string false "Campaign status"
// @Success 200 {object} dto.ListCampaignsResponse
// @Router /campaigns [get]
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	var filter types.CampaignFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListCampaigns(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Active campaigns
// @Description Campaigns running right now
// @Tags Campaigns
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListCampaignsResponse
// @Router /campaigns/active [get]
func (h *CampaignHandler) ListActiveCampaigns(c *gin.Context) {
	resp, err := h.service.ListActiveCampaigns(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	var req dto.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateCampaign(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	if err := h.service.DeleteCampaign(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDeletedResponse("campaign", c.Param("id")))
}
