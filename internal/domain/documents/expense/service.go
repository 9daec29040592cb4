package expense

import (
	"context"

	"moneta/internal/core/numerator"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
	"moneta/internal/domain/posting"
)

// Service provides business operations for expense documents.
type Service struct {
	*documents.Service[*Expense]
	repo Repository
}

// NewService creates an expense service.
func NewService(repo Repository, engine *posting.Engine, gen numerator.Generator) *Service {
	base := documents.NewService(documents.ServiceConfig[*Expense]{
		Repo:           repo,
		Engine:         engine,
		Numerator:      gen,
		DocumentName:   "expense",
		NumberPrefix:   "EXP",
		NumberStrategy: numerator.StrategyStrict,
	})

	svc := &Service{Service: base, repo: repo}
	base.Hooks().On(domain.BeforeCreate, recalculate)
	base.Hooks().On(domain.BeforeUpdate, recalculate)
	return svc
}

func recalculate(ctx context.Context, doc *Expense) error {
	doc.RecalculateTotals()
	return nil
}

// List retrieves expenses with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Expense], error) {
	return s.repo.List(ctx, filter)
}
