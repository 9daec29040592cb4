package account

import (
	"context"

	"moneta/internal/domain"
)

// Repository defines the interface for Account persistence.
type Repository interface {
	domain.CatalogRepository[*Account]

	// ListByClass retrieves accounts of the given class.
	ListByClass(ctx context.Context, class Class) ([]*Account, error)

	// ListCashBank retrieves cash and bank accounts.
	ListCashBank(ctx context.Context) ([]*Account, error)
}
