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

type RuleHandler struct {
	service service.RuleService
	log     *logger.Logger
}

func NewRuleHandler(service service.RuleService, log *logger.Logger) *RuleHandler {
	return &RuleHandler{service: service, log: log}
}

// @Summary Create an earning rule
// @Tags Rules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param rule body dto.CreateRuleRequest true "Rule"
// @Success 201 {object} dto.RuleResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /rules [post]
func (h *RuleHandler) CreateRule(c *gin.Context) {
	var req dto.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateRule(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get an earning rule
// @Tags Rules
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rule ID"
// @Success 200 {object} dto.RuleResponse
// @Router /rules/{id} [get]
func (h *RuleHandler) GetRule(c *gin.Context) {
	resp, err := h.service.GetRule(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List earning rules
// @Tags Rules
// @Produce json
// @Security BearerAuth
// @Param filter query types.RuleFilter false "Filter"
// @Success 200 {object} dto.ListRulesResponse
// @Router /rules [get]
func (h *RuleHandler) ListRules(c *gin.Context) {
	var filter types.RuleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListRules(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update an earning rule
// @Tags Rules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rule ID"
// @Param rule body dto.UpdateRuleRequest true "Rule"
// @Success 200 {object} dto.RuleResponse
// @Router /rules/{id} [put]
func (h *RuleHandler) UpdateRule(c *gin.Context) {
	var req dto.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateRule(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete an earning rule
// @Tags Rules
// @Security BearerAuth
// @Param id path string true "Rule ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /rules/{id} [delete]
func (h *RuleHandler) DeleteRule(c *gin.Context) {
	if err := h.service.DeleteRule(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDeletedResponse("rule", c.Param("id")))
}
