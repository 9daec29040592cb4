package payable_payment

import (
	"context"
	"time"

	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
)

// Repository defines persistence for payable payment documents.
type Repository interface {
	documents.Repository[*PayablePayment]

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*PayablePayment], error)

	// ListByInvoice returns payments holding an allocation against the
	// given invoice, with only that invoice's allocations attached.
	ListByInvoice(ctx context.Context, invoiceID id.ID) ([]*PayablePayment, error)
}

// ListFilter for filtering payable payments.
type ListFilter struct {
	domain.ListFilter

	VendorID  *id.ID
	AccountID *id.ID
	DateFrom  *time.Time
	DateTo    *time.Time
}
