package cash_transfer

import (
	"context"
	"time"

	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
)

// Repository defines persistence for cash transfer documents.
type Repository interface {
	documents.Repository[*CashTransfer]

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*CashTransfer], error)
}

// ListFilter for filtering cash transfers.
type ListFilter struct {
	domain.ListFilter

	FromAccountID *id.ID
	ToAccountID   *id.ID
	DateFrom      *time.Time
	DateTo        *time.Time
}
