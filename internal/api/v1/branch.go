package v1

import (
	"net/http"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/cbo-rewards/loyalty/internal/service"
	"github.com/gin-gonic/gin"
)

type BranchHandler struct {
	service service.BranchService
	log     *logger.Logger
}

func NewBranchHandler(service service.BranchService, log *logger.Logger) *BranchHandler {
	return &BranchHandler{service: service, log: log}
}

// @Summary Create a branch
// @Tags Branches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param branch body dto.CreateBranchRequest true "Branch"
// @Success 201 {object} dto.BranchResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /branches [post]
func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateBranch(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a branch
// @Description Look a branch up by ID or slug
// @Tags Branches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Branch ID or slug"
// @Success 200 {object} dto.BranchResponse
// @Router /branches/{id} [get]
func (h *BranchHandler) GetBranch(c *gin.Context) {
	resp, err := h.service.GetBranch(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BranchHandler) ListBranches(c *gin.Context) {
	resp, err := h.service.ListBranches(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	var req dto.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateBranch(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
