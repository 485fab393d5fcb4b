package middleware

import (
	"strings"

	"go-pos/internal/auth"
	"go-pos/internal/shared/apperror"
	"go-pos/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const ContextActorEmail = "actor_email"

// AuthMiddleware verifies the HS256 session token (header or access_token
// cookie) and stores its email claim for actor resolution.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		email, err := auth.Email(secret, tokenString)
		if err != nil {
			abortWith(c, err)
			return
		}

		c.Set(ContextActorEmail, email)
		c.Next()
	}
}

func abortWith(c *gin.Context, err error) {
	response.FromError(c, err)
	c.Abort()
}
