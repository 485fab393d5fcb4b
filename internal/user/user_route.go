package user

import (
	"go-pos/internal/crud"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, svc *Service, mutate ...gin.HandlerFunc) {
	h := crud.NewHandler(Resource, svc.Repository, func(in *EditUserRequest, key string) {
		in.ID = key
	})
	h.Register(r, "/users", mutate...)

	account := NewHandler(svc)
	r.GET("/me", account.Me)
	users := r.Group("/users", mutate...)
	{
		users.PUT("/:id/password", account.ChangePassword)
		users.PATCH("/:id/status", account.ToggleStatus)
	}
}
