package reporting

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
	return &Handler{service: service, logger: zap.L().Named("reporting.handler")}
}

func (h *Handler) Dashboard(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	stats, err := h.service.DashboardStats(c.Request.Context(), actor, c.Query("businessId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats, nil)
}

func (h *Handler) Branches(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	metrics, err := h.service.BranchPerformance(c.Request.Context(), actor, c.Query("businessId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, metrics, nil)
}

func (h *Handler) Sales(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	points, err := h.service.SalesOverview(c.Request.Context(), actor, c.Query("businessId"), c.DefaultQuery("range", RangeWeek))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, points, nil)
}

func (h *Handler) Stock(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	levels, err := h.service.StockOverview(c.Request.Context(), actor, c.Query("businessId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, levels, nil)
}
