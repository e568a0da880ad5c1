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

type CustomerHandler struct {
	user       service.UserService
	tier       service.TierService
	redemption service.RedemptionService
	log        *logger.Logger
}

func NewCustomerHandler(
	user service.UserService,
	tier service.TierService,
	redemption service.RedemptionService,
	log *logger.Logger,
) *CustomerHandler {
	return &CustomerHandler{
		user:       user,
		tier:       tier,
		redemption: redemption,
		log:        log,
	}
}

// @Summary Register a customer
// @Description Create a customer with a zeroed points balance
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param customer body dto.RegisterCustomerRequest true "Customer"
// @Success 201 {object} dto.RegisterCustomerResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /customers [post]
func (h *CustomerHandler) RegisterCustomer(c *gin.Context) {
	var req dto.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.user.RegisterCustomer(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List customers
// @Description List customers with their balance and tier
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param filter query types.UserFilter false "Filter"
// @Success 200 {object} dto.ListCustomersResponse
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	filter := types.NewUserFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.user.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a customer
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	resp, err := h.user.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Check balance
// @Description Current points, tier and progress to the next tier
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /customers/{id}/balance [get]
func (h *CustomerHandler) CheckBalance(c *gin.Context) {
	resp, err := h.user.CheckBalance(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Transaction history
// @Description Points transactions of a customer, newest first
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Param limit query int false "Maximum number of transactions" default(50)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /customers/{id}/transactions [get]
func (h *CustomerHandler) GetHistory(c *gin.Context) {
	filter := types.NewTransactionFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.user.GetHistory(c.Request.Context(), c.Param("id"), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Customer redemptions
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.ListRedemptionsResponse
// @Router /customers/{id}/redemptions [get]
func (h *CustomerHandler) ListRedemptions(c *gin.Context) {
	filter := types.NewRedemptionFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}
	filter.CustomerID = c.Param("id")

	resp, err := h.redemption.ListRedemptions(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Assign a tier
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Param request body dto.UpdateCustomerTierRequest true "Tier"
// @Success 200 {object} dto.TierAssignmentResponse
// @Router /customers/{id}/tier [put]
func (h *CustomerHandler) UpdateCustomerTier(c *gin.Context) {
	var req dto.UpdateCustomerTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.tier.UpdateCustomerTier(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Promote a customer
// @Description Assign the highest tier the customer's total points reach
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.TierAssignmentResponse
// @Router /customers/{id}/tier/promote [post]
func (h *CustomerHandler) PromoteCustomer(c *gin.Context) {
	resp, err := h.tier.PromoteCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
