package sales_invoice

import (
	"context"
	"time"

	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
)

// Repository defines persistence for sales invoice documents.
type Repository interface {
	documents.Repository[*SalesInvoice]

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*SalesInvoice], error)
}

// ListFilter for filtering sales invoices.
type ListFilter struct {
	domain.ListFilter

	CustomerID *id.ID
	// HasTax keeps taxed (true) or untaxed (false) invoices only
	HasTax   *bool
	DateFrom *time.Time
	DateTo   *time.Time
}
