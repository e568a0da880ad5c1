package v1

import (
	"net/http"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/service"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type PointsHandler struct {
	earn       service.EarnService
	redemption service.RedemptionService
	log        *logger.Logger
}

func NewPointsHandler(
	earn service.EarnService,
	redemption service.RedemptionService,
	log *logger.Logger,
) *PointsHandler {
	return &PointsHandler{
		earn:       earn,
		redemption: redemption,
		log:        log,
	}
}

// @Summary Earn points
// @Description Credit a customer for a banking action using the matching earning rule
// @Tags Points
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EarnPointsRequest true "Earn request"
// @Success 201 {object} dto.EarnPointsResponse
// @Success 200 {object} dto.EarnPointsResponse "Replayed idempotency key"
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /points/earn [post]
func (h *PointsHandler) EarnPoints(c *gin.Context) {
	var req dto.EarnPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if req.IdempotencyKey == nil {
		if key := c.GetHeader(types.HeaderIdempotency); key != "" {
			req.IdempotencyKey = lo.ToPtr(key)
		}
	}

	if err := checkCustomerAccess(c, req.CustomerID); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.earn.EarnPoints(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	status := http.StatusCreated
	if resp.Duplicate {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}

// @Summary Redeem points
// @Description Exchange points for one unit of a reward
// @Tags Points
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RedeemPointsRequest true "Redeem request"
// @Success 201 {object} dto.RedeemPointsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /points/redeem [post]
func (h *PointsHandler) RedeemPoints(c *gin.Context) {
	var req dto.RedeemPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := checkCustomerAccess(c, req.CustomerID); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.redemption.RedeemPoints(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// checkCustomerAccess rejects customers acting on someone else's account.
// Staff may act for anyone.
func checkCustomerAccess(c *gin.Context, customerID string) error {
	ctx := c.Request.Context()
	if types.IsStaff(ctx) || types.GetUserID(ctx) == customerID {
		return nil
	}
	return ierr.NewError("customer mismatch").
		WithHint("You can only access your own account").
		Mark(ierr.ErrPermissionDenied)
}
