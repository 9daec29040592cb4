package product

import (
	"context"

	"moneta/internal/core/id"
	"moneta/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// FindBySKU retrieves a product by SKU.
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// ListByCategory retrieves products in a category.
	ListByCategory(ctx context.Context, categoryID id.ID, f domain.ListFilter) (domain.ListResult[*Product], error)
}
