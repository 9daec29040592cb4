package purchase_receipt

import (
	"context"

	"moneta/internal/core/entity"
	"moneta/internal/core/numerator"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
	"moneta/internal/domain/posting"
	"moneta/internal/domain/registers/stock"
)

// Service provides business operations for purchase receipts.
type Service struct {
	*documents.Service[*PurchaseReceipt]
	repo Repository
}

// NewService creates a purchase receipt service.
func NewService(repo Repository, engine *posting.Engine, gen numerator.Generator, stockSvc *stock.Service) *Service {
	base := documents.NewService(documents.ServiceConfig[*PurchaseReceipt]{
		Repo:           repo,
		Engine:         engine,
		Numerator:      gen,
		DocumentName:   "purchase receipt",
		NumberPrefix:   "PR",
		NumberStrategy: numerator.StrategyStrict,
		Stock:          stockSvc,
		Movements: func(doc *PurchaseReceipt) []entity.StockMovement {
			return doc.StockMovements()
		},
	})

	svc := &Service{Service: base, repo: repo}
	base.Hooks().On(domain.BeforeCreate, recalculate)
	base.Hooks().On(domain.BeforeUpdate, recalculate)
	return svc
}

func recalculate(ctx context.Context, doc *PurchaseReceipt) error {
	doc.RecalculateTotals()
	return nil
}

// List retrieves purchase receipts with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseReceipt], error) {
	return s.repo.List(ctx, filter)
}
