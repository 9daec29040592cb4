package purchase_receipt

import (
	"context"
	"time"

	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
)

// Repository defines persistence for purchase receipt documents.
type Repository interface {
	documents.Repository[*PurchaseReceipt]

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseReceipt], error)
}

// ListFilter for filtering purchase receipts.
type ListFilter struct {
	domain.ListFilter

	VendorID    *id.ID
	IsBeginning *bool
	DateFrom    *time.Time
	DateTo      *time.Time
}
