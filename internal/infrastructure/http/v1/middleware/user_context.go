package middleware

import (
	"github.com/gin-gonic/gin"

	"moneta/internal/core/apperror"
	appctx "moneta/internal/core/context"
)

const (
	headerUserID    = "X-User-ID"
	headerUserEmail = "X-User-Email"
)

// UserContext middleware extracts the caller identity resolved by the
// upstream gateway and makes it available to services for audit fields.
func UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(headerUserID)
		if userID == "" {
			c.Error(apperror.NewUnauthorized("missing user identity"))
			c.Abort()
			return
		}

		user := &appctx.UserContext{
			UserID:   userID,
			TenantID: c.GetString("tenant_id"),
			Email:    c.GetHeader(headerUserEmail),
		}

		ctx := appctx.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		c.Set("user_id", userID)

		c.Next()
	}
}
