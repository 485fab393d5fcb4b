package rbac

import (
	"strconv"

	"go-pos/internal/crud"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, svc *Service, mutate ...gin.HandlerFunc) {
	roles := crud.NewHandler(RoleResource, svc.Roles, func(in *EditRoleRequest, key string) {
		in.ID = key
	})
	roles.Register(r, "/roles", mutate...)

	perms := crud.NewHandler(PermissionResource, svc.Permissions, func(in *EditPermissionRequest, key string) {
		in.ID, _ = strconv.Atoi(key)
	})
	perms.Register(r, "/permissions", mutate...)

	h := NewHandler(svc)
	r.GET("/roles/:id/permissions", h.RolePermissions)
	r.PUT("/roles/:id/permissions", append(append([]gin.HandlerFunc{}, mutate...), h.SetPermissions)...)
}
