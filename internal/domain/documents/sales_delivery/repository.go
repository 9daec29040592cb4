package sales_delivery

import (
	"context"
	"time"

	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
)

// Repository defines persistence for sales delivery documents.
type Repository interface {
	documents.Repository[*SalesDelivery]

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*SalesDelivery], error)
}

// ListFilter for filtering sales deliveries.
type ListFilter struct {
	domain.ListFilter

	CustomerID *id.ID
	DateFrom   *time.Time
	DateTo     *time.Time
}
