package category

import (
	"strconv"

	"go-pos/internal/crud"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, repo *Repository, mutate ...gin.HandlerFunc) {
	h := crud.NewHandler(Resource, repo, func(in *EditCategoryRequest, key string) {
		in.ID, _ = strconv.Atoi(key)
	})
	h.Register(r, "/categories", mutate...)
}
