package receivable_payment

import (
	"context"
	"time"

	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
)

// Repository defines persistence for receivable payment documents.
type Repository interface {
	documents.Repository[*ReceivablePayment]

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*ReceivablePayment], error)

	// ListByInvoice returns payments holding an allocation against the
	// given invoice, with only that invoice's allocations attached.
	ListByInvoice(ctx context.Context, invoiceID id.ID) ([]*ReceivablePayment, error)
}

// ListFilter for filtering receivable payments.
type ListFilter struct {
	domain.ListFilter

	CustomerID *id.ID
	AccountID  *id.ID
	DateFrom   *time.Time
	DateTo     *time.Time
}
