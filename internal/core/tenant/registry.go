package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Registry manages tenant records in the meta-database.
type Registry struct {
	metaPool *pgxpool.Pool
}

// NewRegistry creates a registry backed by the meta-database pool.
func NewRegistry(metaPool *pgxpool.Pool) *Registry {
	return &Registry{metaPool: metaPool}
}

// GetBySlug looks up a tenant by its URL-safe slug.
func (r *Registry) GetBySlug(ctx context.Context, slug string) (*Tenant, error) {
	var t Tenant
	err := pgxscan.Get(ctx, r.metaPool, &t,
		`SELECT id, slug, display_name, db_name, db_host, db_port, status, created_at, updated_at
		 FROM tenants WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("query tenant by slug: %w", err)
	}
	return &t, nil
}

// GetByID looks up a tenant by its identifier.
func (r *Registry) GetByID(ctx context.Context, id string) (*Tenant, error) {
	var t Tenant
	err := pgxscan.Get(ctx, r.metaPool, &t,
		`SELECT id, slug, display_name, db_name, db_host, db_port, status, created_at, updated_at
		 FROM tenants WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("query tenant by id: %w", err)
	}
	return &t, nil
}

// ListActive returns all tenants that can accept requests.
func (r *Registry) ListActive(ctx context.Context) ([]*Tenant, error) {
	var tenants []*Tenant
	err := pgxscan.Select(ctx, r.metaPool, &tenants,
		`SELECT id, slug, display_name, db_name, db_host, db_port, status, created_at, updated_at
		 FROM tenants WHERE status = $1 ORDER BY slug`, StatusActive)
	if err != nil {
		return nil, fmt.Errorf("list active tenants: %w", err)
	}
	return tenants, nil
}

// Create registers a new tenant record. Provisioning the tenant database
// itself is the caller's responsibility.
func (r *Registry) Create(ctx context.Context, input CreateTenantInput) (*Tenant, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	host := input.DBHost
	if host == "" {
		host = "localhost"
	}
	port := input.DBPort
	if port == 0 {
		port = 5432
	}

	t := &Tenant{
		ID:          uuid.NewString(),
		Slug:        input.Slug,
		DisplayName: input.DisplayName,
		DBName:      input.GenerateDBName(),
		DBHost:      host,
		DBPort:      port,
		Status:      StatusActive,
	}

	err := pgxscan.Get(ctx, r.metaPool, t,
		`INSERT INTO tenants (id, slug, display_name, db_name, db_host, db_port, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, slug, display_name, db_name, db_host, db_port, status, created_at, updated_at`,
		t.ID, t.Slug, t.DisplayName, t.DBName, t.DBHost, t.DBPort, t.Status)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("insert tenant: %w", err)
	}
	return t, nil
}

// UpdateStatus transitions the tenant to a new lifecycle state.
func (r *Registry) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.metaPool.Exec(ctx,
		`UPDATE tenants SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update tenant status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}
