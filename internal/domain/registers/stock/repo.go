// Package stock provides the on-hand quantity accumulation register.
// Movements are written by document posting and replaced wholesale when
// the recorder document changes.
package stock

import (
	"context"
	"time"

	"moneta/internal/core/entity"
	"moneta/internal/core/id"
	"moneta/internal/core/types"
)

// Repository defines persistence for stock movements and balances.
type Repository interface {
	// ReplaceByRecorder atomically replaces all movements of a recorder
	// document with the given set. An empty set just clears them.
	ReplaceByRecorder(ctx context.Context, recorderType string, recorderID id.ID, movements []entity.StockMovement) error

	// DeleteByRecorder removes all movements of a recorder document.
	DeleteByRecorder(ctx context.Context, recorderType string, recorderID id.ID) error

	// ListByRecorder retrieves the movements of a recorder document.
	ListByRecorder(ctx context.Context, recorderType string, recorderID id.ID) ([]entity.StockMovement, error)

	// Balance returns the signed on-hand quantity of a product as of
	// the given moment.
	Balance(ctx context.Context, productID id.ID, asOf time.Time) (types.Quantity, error)

	// Balances returns on-hand quantities for all products with any
	// movement up to asOf.
	Balances(ctx context.Context, asOf time.Time) ([]entity.StockBalance, error)

	// Turnover returns total receipts and total expenses of a product
	// over a period.
	Turnover(ctx context.Context, productID id.ID, from, to time.Time) (in, out types.Quantity, err error)
}
