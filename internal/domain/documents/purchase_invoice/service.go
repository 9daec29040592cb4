package purchase_invoice

import (
	"context"

	"moneta/internal/core/numerator"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
	"moneta/internal/domain/posting"
)

// Service provides business operations for purchase invoices.
type Service struct {
	*documents.Service[*PurchaseInvoice]
	repo Repository
}

// NewService creates a purchase invoice service.
func NewService(repo Repository, engine *posting.Engine, gen numerator.Generator) *Service {
	base := documents.NewService(documents.ServiceConfig[*PurchaseInvoice]{
		Repo:           repo,
		Engine:         engine,
		Numerator:      gen,
		DocumentName:   "purchase invoice",
		NumberPrefix:   "PI",
		NumberStrategy: numerator.StrategyStrict,
	})

	svc := &Service{Service: base, repo: repo}
	base.Hooks().On(domain.BeforeCreate, recalculate)
	base.Hooks().On(domain.BeforeUpdate, recalculate)
	return svc
}

func recalculate(ctx context.Context, doc *PurchaseInvoice) error {
	doc.RecalculateTotals()
	return nil
}

// List retrieves purchase invoices with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*PurchaseInvoice], error) {
	return s.repo.List(ctx, filter)
}
