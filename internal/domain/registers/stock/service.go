package stock

import (
	"context"
	"time"

	"moneta/internal/core/apperror"
	"moneta/internal/core/entity"
	"moneta/internal/core/id"
	"moneta/internal/core/types"
)

// Service provides stock register operations. Write operations are
// called by document services inside the document transaction.
type Service struct {
	repo Repository
}

// NewService creates a stock register service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record replaces the movements of a recorder document. Called on
// document create and update.
func (s *Service) Record(ctx context.Context, recorderType string, recorderID id.ID, movements []entity.StockMovement) error {
	return s.repo.ReplaceByRecorder(ctx, recorderType, recorderID, movements)
}

// Clear removes the movements of a recorder document. Called on
// document delete.
func (s *Service) Clear(ctx context.Context, recorderType string, recorderID id.ID) error {
	return s.repo.DeleteByRecorder(ctx, recorderType, recorderID)
}

// ListByRecorder retrieves the movements of a recorder document.
func (s *Service) ListByRecorder(ctx context.Context, recorderType string, recorderID id.ID) ([]entity.StockMovement, error) {
	return s.repo.ListByRecorder(ctx, recorderType, recorderID)
}

// Balance returns the on-hand quantity of a product.
func (s *Service) Balance(ctx context.Context, productID id.ID, asOf time.Time) (types.Quantity, error) {
	if id.IsNil(productID) {
		return 0, apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	return s.repo.Balance(ctx, productID, asOf)
}

// Balances returns on-hand quantities for all moved products.
func (s *Service) Balances(ctx context.Context, asOf time.Time) ([]entity.StockBalance, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	return s.repo.Balances(ctx, asOf)
}

// Turnover returns receipts and expenses of a product over a period.
func (s *Service) Turnover(ctx context.Context, productID id.ID, from, to time.Time) (in, out types.Quantity, err error) {
	if to.Before(from) {
		return 0, 0, apperror.NewValidation("period end before start").
			WithDetail("from", from).
			WithDetail("to", to)
	}
	return s.repo.Turnover(ctx, productID, from, to)
}
