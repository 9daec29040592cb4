package contact

import (
	"context"

	"moneta/internal/domain"
)

// Repository defines the interface for Contact persistence.
type Repository interface {
	domain.CatalogRepository[*Contact]

	// ListVendors retrieves vendor contacts.
	ListVendors(ctx context.Context, f domain.ListFilter) (domain.ListResult[*Contact], error)

	// ListCustomers retrieves customer contacts.
	ListCustomers(ctx context.Context, f domain.ListFilter) (domain.ListResult[*Contact], error)
}
