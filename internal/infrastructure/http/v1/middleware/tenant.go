package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"moneta/internal/core/apperror"
	"moneta/internal/core/tenant"
	"moneta/internal/infrastructure/storage/postgres"
)

const headerTenant = "X-Tenant"

// TenantDB middleware resolves the tenant from the X-Tenant header and
// binds its connection pool and transaction manager into the request
// context. Everything below this middleware runs against the tenant's
// own database.
func TenantDB(registry *tenant.Registry, manager *tenant.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(headerTenant)
		if key == "" {
			c.Error(apperror.NewValidation("missing X-Tenant header"))
			c.Abort()
			return
		}

		ctx := c.Request.Context()

		// The header usually carries the slug; a UUID is accepted too.
		var (
			t   *tenant.Tenant
			err error
		)
		if _, parseErr := uuid.Parse(key); parseErr == nil {
			t, err = registry.GetByID(ctx, key)
		} else {
			t, err = registry.GetBySlug(ctx, key)
		}
		if err != nil {
			if errors.Is(err, tenant.ErrTenantNotFound) {
				c.Error(apperror.NewNotFound("tenant", key))
			} else {
				c.Error(apperror.NewInternal(err))
			}
			c.Abort()
			return
		}

		pool, err := manager.GetPool(ctx, t)
		if err != nil {
			switch {
			case errors.Is(err, tenant.ErrTenantSuspended):
				c.Error(apperror.NewForbidden("tenant is suspended"))
			case errors.Is(err, tenant.ErrTenantDeleted):
				c.Error(apperror.NewForbidden("tenant is deleted"))
			default:
				c.Error(apperror.NewInternal(err))
			}
			c.Abort()
			return
		}

		ctx = tenant.WithTenant(ctx, t)
		ctx = tenant.WithPool(ctx, pool)
		ctx = tenant.WithTxManager(ctx, postgres.NewTxManagerFromRawPool(pool))
		c.Request = c.Request.WithContext(ctx)

		c.Set("tenant_id", t.ID)
		c.Set("tenant_slug", t.Slug)

		c.Next()
	}
}
