package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when the requested tenant does not exist.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTenantSuspended is returned when the tenant exists but is suspended.
	ErrTenantSuspended = errors.New("tenant is suspended")

	// ErrTenantDeleted is returned when the tenant is marked for deletion.
	ErrTenantDeleted = errors.New("tenant is deleted")

	// ErrSlugTaken is returned when creating a tenant with an existing slug.
	ErrSlugTaken = errors.New("tenant slug is already taken")

	// ErrNoTenantInContext is returned when no tenant was attached to the
	// request context.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
