package v1

import (
	"net/http"
	"strconv"

	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/service"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/gin-gonic/gin"
)

const defaultQRCodeSize = 256

type RedemptionHandler struct {
	service service.RedemptionService
	log     *logger.Logger
}

func NewRedemptionHandler(service service.RedemptionService, log *logger.Logger) *RedemptionHandler {
	return &RedemptionHandler{service: service, log: log}
}

// @Summary List redemptions
// @Tags Redemptions
// @Produce json
// @Security BearerAuth
// @Param filter query types.RedemptionFilter false "Filter"
// @Success 200 {object} dto.ListRedemptionsResponse
// @Router /redemptions [get]
func (h *RedemptionHandler) ListRedemptions(c *gin.Context) {
	filter := types.NewRedemptionFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListRedemptions(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a redemption
// @Tags Redemptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Redemption ID"
// @Success 200 {object} dto.RedemptionResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /redemptions/{id} [get]
func (h *RedemptionHandler) GetRedemption(c *gin.Context) {
	resp, err := h.service.GetRedemption(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	if err := checkCustomerAccess(c, resp.CustomerID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Voucher QR code
// @Description PNG QR code of the voucher code of a redemption
// @Tags Redemptions
// @Produce png
// @Security BearerAuth
// @Param id path string true "Redemption ID"
// @Param size query int false "Image size in pixels" default(256)
// @Success 200 {file} binary
// @Failure 400 {object} ierr.ErrorResponse
// @Router /redemptions/{id}/qrcode [get]
func (h *RedemptionHandler) GetVoucherQRCode(c *gin.Context) {
	size := defaultQRCodeSize
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.Error(ierr.WithError(err).
				WithHint("Size must be a number").
				Mark(ierr.ErrValidation))
			return
		}
		size = parsed
	}

	ctx := c.Request.Context()
	redemption, err := h.service.GetRedemption(ctx, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	if err := checkCustomerAccess(c, redemption.CustomerID); err != nil {
		c.Error(err)
		return
	}

	png, err := h.service.GetVoucherQRCode(ctx, redemption.ID, size)
	if err != nil {
		c.Error(err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
