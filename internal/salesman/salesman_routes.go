package salesman

import (
	"go-pos/internal/crud"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, repo *Repository, mutate ...gin.HandlerFunc) {
	h := crud.NewHandler(Resource, repo, func(in *EditSalesmanRequest, key string) {
		in.ID = key
	})
	h.Register(r, "/salesmen", mutate...)
}
