package purchase_invoice

import (
	"context"
	"time"

	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
)

// Repository defines persistence for purchase invoice documents.
type Repository interface {
	documents.Repository[*PurchaseInvoice]

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseInvoice], error)
}

// ListFilter for filtering purchase invoices.
type ListFilter struct {
	domain.ListFilter

	VendorID  *id.ID
	IsReceipt *bool
	// HasTax keeps taxed (true) or untaxed (false) invoices only
	HasTax   *bool
	DateFrom *time.Time
	DateTo   *time.Time
}
