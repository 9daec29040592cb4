package expense

import (
	"context"
	"time"

	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
)

// Repository defines persistence for expense documents.
type Repository interface {
	documents.Repository[*Expense]

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Expense], error)
}

// ListFilter for filtering expenses.
type ListFilter struct {
	domain.ListFilter

	AccountID *id.ID
	DateFrom  *time.Time
	DateTo    *time.Time
}
