package sales_delivery

import (
	"context"

	"moneta/internal/core/entity"
	"moneta/internal/core/numerator"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
	"moneta/internal/domain/posting"
	"moneta/internal/domain/registers/stock"
)

// Service provides business operations for sales deliveries.
type Service struct {
	*documents.Service[*SalesDelivery]
	repo Repository
}

// NewService creates a sales delivery service.
func NewService(repo Repository, engine *posting.Engine, gen numerator.Generator, stockSvc *stock.Service) *Service {
	base := documents.NewService(documents.ServiceConfig[*SalesDelivery]{
		Repo:           repo,
		Engine:         engine,
		Numerator:      gen,
		DocumentName:   "sales delivery",
		NumberPrefix:   "SD",
		NumberStrategy: numerator.StrategyStrict,
		Stock:          stockSvc,
		Movements: func(doc *SalesDelivery) []entity.StockMovement {
			return doc.StockMovements()
		},
	})

	svc := &Service{Service: base, repo: repo}
	base.Hooks().On(domain.BeforeCreate, recalculate)
	base.Hooks().On(domain.BeforeUpdate, recalculate)
	return svc
}

func recalculate(ctx context.Context, doc *SalesDelivery) error {
	doc.RecalculateTotals()
	return nil
}

// List retrieves sales deliveries with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*SalesDelivery], error) {
	return s.repo.List(ctx, filter)
}
