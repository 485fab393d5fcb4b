package stock

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
	return &Handler{service: service, logger: zap.L().Named("stock.handler")}
}

func (h *Handler) Restock(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("bind restock payload failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Request body is not valid JSON", nil)
		return
	}

	res, err := h.service.Restock(c.Request.Context(), actor, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(res.StatusCode(false), res)
}
