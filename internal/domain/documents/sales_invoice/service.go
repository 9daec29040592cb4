package sales_invoice

import (
	"context"

	"moneta/internal/core/numerator"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
	"moneta/internal/domain/posting"
)

// Service provides business operations for sales invoices.
type Service struct {
	*documents.Service[*SalesInvoice]
	repo Repository
}

// NewService creates a sales invoice service.
func NewService(repo Repository, engine *posting.Engine, gen numerator.Generator) *Service {
	base := documents.NewService(documents.ServiceConfig[*SalesInvoice]{
		Repo:           repo,
		Engine:         engine,
		Numerator:      gen,
		DocumentName:   "sales invoice",
		NumberPrefix:   "SI",
		NumberStrategy: numerator.StrategyStrict,
	})

	svc := &Service{Service: base, repo: repo}
	base.Hooks().On(domain.BeforeCreate, recalculate)
	base.Hooks().On(domain.BeforeUpdate, recalculate)
	return svc
}

func recalculate(ctx context.Context, doc *SalesInvoice) error {
	doc.RecalculateTotals()
	return nil
}

// List retrieves sales invoices with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*SalesInvoice], error) {
	return s.repo.List(ctx, filter)
}
