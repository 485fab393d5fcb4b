package middleware

import (
	"go-pos/internal/authz"
	"go-pos/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// RequirePermission guards routes that are not backed by a repository, which
// check permissions themselves.
func RequirePermission(code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}
		if err := authz.Require(actor, code); err != nil {
			abortWith(c, err)
			return
		}
		c.Next()
	}
}
