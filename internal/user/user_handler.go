package user

import (
	"net/http"

	"go-pos/internal/middleware"
	"go-pos/internal/shared/apperror"
	"go-pos/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service, logger: zap.L().Named("user.handler")}
}

func (h *Handler) ChangePassword(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("bind change password payload failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Request body is not valid JSON", nil)
		return
	}
	req.ID = c.Param("id")

	res, err := h.service.ChangePassword(c.Request.Context(), actor, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(res.StatusCode(false), res)
}

func (h *Handler) ToggleStatus(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	res, err := h.service.ToggleStatus(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(res.StatusCode(false), res)
}

func (h *Handler) Me(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	response.Success(c, http.StatusOK, MeResponse{
		ID:          actor.ID,
		Email:       actor.Email,
		Name:        actor.Name,
		RoleID:      actor.RoleID,
		RoleTitle:   actor.RoleTitle,
		Superadmin:  actor.Superadmin,
		BusinessID:  actor.BusinessID,
		BranchID:    actor.BranchID,
		Permissions: actor.Permissions.Codes(),
	}, nil)
}
