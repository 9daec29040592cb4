package catalog_repo

import (
	"context"

	"moneta/internal/domain"
	"moneta/internal/domain/catalogs/contact"
	"moneta/internal/domain/filter"
	"moneta/internal/infrastructure/storage/postgres"
)

const contactTable = "cat_contacts"

// ContactRepo implements contact.Repository.
type ContactRepo struct {
	*BaseCatalogRepo[*contact.Contact]
}

// NewContactRepo creates a new contact repository.
func NewContactRepo() *ContactRepo {
	return &ContactRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*contact.Contact](
			contactTable,
			postgres.ExtractDBColumns[contact.Contact](),
			func() *contact.Contact { return &contact.Contact{} },
		),
	}
}

// ListVendors retrieves vendor contacts.
func (r *ContactRepo) ListVendors(ctx context.Context, f domain.ListFilter) (domain.ListResult[*contact.Contact], error) {
	return r.listByFlag(ctx, "is_vendor", f)
}

// ListCustomers retrieves customer contacts.
func (r *ContactRepo) ListCustomers(ctx context.Context, f domain.ListFilter) (domain.ListResult[*contact.Contact], error) {
	return r.listByFlag(ctx, "is_customer", f)
}

func (r *ContactRepo) listByFlag(ctx context.Context, field string, f domain.ListFilter) (domain.ListResult[*contact.Contact], error) {
	f.AdvancedFilters = append(f.AdvancedFilters, filter.Item{
		Field:    field,
		Operator: filter.Equal,
		Value:    true,
	})
	return r.List(ctx, f)
}
