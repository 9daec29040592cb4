package receivable_payment

import (
	"context"

	"moneta/internal/core/id"
	"moneta/internal/core/numerator"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
	"moneta/internal/domain/posting"
)

// Service provides business operations for receivable payments.
type Service struct {
	*documents.Service[*ReceivablePayment]
	repo Repository
}

// NewService creates a receivable payment service.
func NewService(repo Repository, engine *posting.Engine, gen numerator.Generator) *Service {
	base := documents.NewService(documents.ServiceConfig[*ReceivablePayment]{
		Repo:           repo,
		Engine:         engine,
		Numerator:      gen,
		DocumentName:   "receivable payment",
		NumberPrefix:   "RP",
		NumberStrategy: numerator.StrategyStrict,
	})

	svc := &Service{Service: base, repo: repo}
	base.Hooks().On(domain.BeforeCreate, recalculate)
	base.Hooks().On(domain.BeforeUpdate, recalculate)
	return svc
}

func recalculate(ctx context.Context, doc *ReceivablePayment) error {
	doc.RecalculateTotals()
	return nil
}

// List retrieves receivable payments with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*ReceivablePayment], error) {
	return s.repo.List(ctx, filter)
}

// ListByInvoice retrieves payments allocated against an invoice.
func (s *Service) ListByInvoice(ctx context.Context, invoiceID id.ID) ([]*ReceivablePayment, error) {
	return s.repo.ListByInvoice(ctx, invoiceID)
}
