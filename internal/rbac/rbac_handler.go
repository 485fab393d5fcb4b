package rbac

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
	return &Handler{service: service, logger: zap.L().Named("rbac.handler")}
}

func (h *Handler) RolePermissions(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	perms, err := h.service.RolePermissions(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, perms, nil)
}

func (h *Handler) SetPermissions(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	var req SetPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("bind role permissions payload failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Request body is not valid JSON", nil)
		return
	}
	req.RoleID = c.Param("id")

	res, err := h.service.SetPermissions(c.Request.Context(), actor, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(res.StatusCode(false), res)
}
