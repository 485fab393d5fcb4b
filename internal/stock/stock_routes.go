package stock

import (
	"strconv"

	"go-pos/internal/crud"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, svc *Service, mutate ...gin.HandlerFunc) {
	h := crud.NewHandler(Resource, svc.Repository, func(in *EditStockRequest, key string) {
		in.ID, _ = strconv.Atoi(key)
	})
	h.Register(r, "/stocks", mutate...)

	restock := NewHandler(svc)
	r.POST("/stocks/restock", append(append([]gin.HandlerFunc{}, mutate...), restock.Restock)...)
}
