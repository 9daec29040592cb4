package payable_payment

import (
	"context"

	"moneta/internal/core/id"
	"moneta/internal/core/numerator"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
	"moneta/internal/domain/posting"
)

// Service provides business operations for payable payments.
type Service struct {
	*documents.Service[*PayablePayment]
	repo Repository
}

// NewService creates a payable payment service.
func NewService(repo Repository, engine *posting.Engine, gen numerator.Generator) *Service {
	base := documents.NewService(documents.ServiceConfig[*PayablePayment]{
		Repo:           repo,
		Engine:         engine,
		Numerator:      gen,
		DocumentName:   "payable payment",
		NumberPrefix:   "PP",
		NumberStrategy: numerator.StrategyStrict,
	})

	svc := &Service{Service: base, repo: repo}
	base.Hooks().On(domain.BeforeCreate, recalculate)
	base.Hooks().On(domain.BeforeUpdate, recalculate)
	return svc
}

func recalculate(ctx context.Context, doc *PayablePayment) error {
	doc.RecalculateTotals()
	return nil
}

// List retrieves payable payments with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*PayablePayment], error) {
	return s.repo.List(ctx, filter)
}

// ListByInvoice retrieves payments allocated against an invoice.
func (s *Service) ListByInvoice(ctx context.Context, invoiceID id.ID) ([]*PayablePayment, error) {
	return s.repo.ListByInvoice(ctx, invoiceID)
}
