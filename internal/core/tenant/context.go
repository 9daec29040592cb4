package tenant

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"moneta/internal/core/tx"
)

type contextKey string

const (
	tenantKey    contextKey = "tenant"
	poolKey      contextKey = "tenant_pool"
	txManagerKey contextKey = "tenant_tx_manager"
)

// WithTenant attaches the resolved tenant to the context.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, tenantKey, t)
}

// FromContext extracts the tenant from the context.
func FromContext(ctx context.Context) (*Tenant, error) {
	t, ok := ctx.Value(tenantKey).(*Tenant)
	if !ok || t == nil {
		return nil, ErrNoTenantInContext
	}
	return t, nil
}

// WithPool attaches the tenant's connection pool to the context.
func WithPool(ctx context.Context, pool *pgxpool.Pool) context.Context {
	return context.WithValue(ctx, poolKey, pool)
}

// PoolFromContext extracts the tenant's connection pool from the context.
func PoolFromContext(ctx context.Context) (*pgxpool.Pool, error) {
	pool, ok := ctx.Value(poolKey).(*pgxpool.Pool)
	if !ok || pool == nil {
		return nil, ErrNoTenantInContext
	}
	return pool, nil
}

// WithTxManager attaches the tenant-scoped transaction manager to the
// context. Set per request by the tenant middleware.
func WithTxManager(ctx context.Context, txm tx.Manager) context.Context {
	return context.WithValue(ctx, txManagerKey, txm)
}

// TxManagerFromContext extracts the tenant transaction manager from the
// context.
func TxManagerFromContext(ctx context.Context) (tx.Manager, error) {
	txm, ok := ctx.Value(txManagerKey).(tx.Manager)
	if !ok || txm == nil {
		return nil, ErrNoTenantInContext
	}
	return txm, nil
}
