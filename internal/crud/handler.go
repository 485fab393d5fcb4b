package crud

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go-pos/internal/authz"
	"go-pos/internal/middleware"
	"go-pos/internal/shared/apperror"
	"go-pos/internal/shared/contextutil"
	"go-pos/internal/shared/response"
	"go-pos/internal/shared/result"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Service is the contract the generic handler serves. *Repository satisfies
// it; feature services wrapping a repository do too.
type Service[T, A, E any] interface {
	List(ctx context.Context, actor authz.Actor, p ListParams) (Page[T], error)
	Get(ctx context.Context, actor authz.Actor, key string) (*T, error)
	Create(ctx context.Context, actor authz.Actor, in A) (result.Result, error)
	Update(ctx context.Context, actor authz.Actor, in E) (result.Result, error)
	Delete(ctx context.Context, actor authz.Actor, key string) (result.Result, error)
}

type Handler[T, A, E any] struct {
	svc    Service[T, A, E]
	setKey func(in *E, key string)
	logger *zap.Logger
}

// NewHandler serves svc over HTTP. setKey copies the :id path parameter into
// the edit payload.
func NewHandler[T, A, E any](name string, svc Service[T, A, E], setKey func(in *E, key string)) *Handler[T, A, E] {
	return &Handler[T, A, E]{svc: svc, setKey: setKey, logger: zap.L().Named(name + ".handler")}
}

// Register mounts the five routes under path. mutate guards POST/PUT/DELETE.
func (h *Handler[T, A, E]) Register(r *gin.RouterGroup, path string, mutate ...gin.HandlerFunc) {
	g := r.Group(path)
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.POST("", chain(mutate, h.Create)...)
		g.PUT("/:id", chain(mutate, h.Update)...)
		g.DELETE("/:id", chain(mutate, h.Delete)...)
	}
}

func chain(mw []gin.HandlerFunc, last gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	return append(append(out, mw...), last)
}

func (h *Handler[T, A, E]) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	p := ParseListParams(c)
	page, err := h.svc.List(c.Request.Context(), actor, p)
	if err != nil {
		h.writeError(c, err)
		return
	}

	meta := response.NewPaginationMeta(page.Total, p.Skip, p.Take)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler[T, A, E]) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	row, err := h.svc.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, row, nil)
}

func (h *Handler[T, A, E]) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var in A
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Debug("bind create payload failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Request body is not valid JSON", nil)
		return
	}

	res, err := h.svc.Create(c.Request.Context(), actor, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(res.StatusCode(true), res)
}

func (h *Handler[T, A, E]) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var in E
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Debug("bind update payload failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Request body is not valid JSON", nil)
		return
	}
	if h.setKey != nil {
		h.setKey(&in, c.Param("id"))
	}

	res, err := h.svc.Update(c.Request.Context(), actor, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(res.StatusCode(false), res)
}

func (h *Handler[T, A, E]) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	res, err := h.svc.Delete(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(res.StatusCode(false), res)
}

func (h *Handler[T, A, E]) actor(c *gin.Context) (authz.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		h.writeError(c, apperror.ErrUnauthorized)
	}
	return actor, ok
}

func (h *Handler[T, A, E]) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	fields := append(contextutil.ExtractMetadata(c.Request.Context()).Fields(),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	h.logger.Warn("request failed", fields...)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// ParseListParams reads skip, take, orderBy, order and filter[<field>] from
// the query string.
func ParseListParams(c *gin.Context) ListParams {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	take, _ := strconv.Atoi(c.DefaultQuery("take", strconv.Itoa(DefaultTake)))
	if skip < 0 {
		skip = 0
	}
	if take <= 0 {
		take = DefaultTake
	}
	if take > MaxTake {
		take = MaxTake
	}

	p := ListParams{
		Skip:    skip,
		Take:    take,
		OrderBy: c.Query("orderBy"),
		Desc:    strings.EqualFold(c.Query("order"), "desc"),
		Filter:  c.QueryMap("filter"),
	}
	p.IncludeDeleted, _ = strconv.ParseBool(c.Query("includeDeleted"))
	return p
}
