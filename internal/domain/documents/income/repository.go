package income

import (
	"context"
	"time"

	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
)

// Repository defines persistence for income documents.
type Repository interface {
	documents.Repository[*Income]

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Income], error)
}

// ListFilter for filtering incomes.
type ListFilter struct {
	domain.ListFilter

	AccountID *id.ID
	DateFrom  *time.Time
	DateTo    *time.Time
}
