package income

import (
	"context"

	"moneta/internal/core/numerator"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
	"moneta/internal/domain/posting"
)

// Service provides business operations for income documents.
type Service struct {
	*documents.Service[*Income]
	repo Repository
}

// NewService creates an income service.
func NewService(repo Repository, engine *posting.Engine, gen numerator.Generator) *Service {
	base := documents.NewService(documents.ServiceConfig[*Income]{
		Repo:           repo,
		Engine:         engine,
		Numerator:      gen,
		DocumentName:   "income",
		NumberPrefix:   "INC",
		NumberStrategy: numerator.StrategyStrict,
	})

	svc := &Service{Service: base, repo: repo}
	base.Hooks().On(domain.BeforeCreate, recalculate)
	base.Hooks().On(domain.BeforeUpdate, recalculate)
	return svc
}

func recalculate(ctx context.Context, doc *Income) error {
	doc.RecalculateTotals()
	return nil
}

// List retrieves incomes with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Income], error) {
	return s.repo.List(ctx, filter)
}
