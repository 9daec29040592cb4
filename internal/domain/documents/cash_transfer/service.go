package cash_transfer

import (
	"context"

	"moneta/internal/core/numerator"
	"moneta/internal/domain"
	"moneta/internal/domain/documents"
	"moneta/internal/domain/posting"
)

// Service provides business operations for cash transfer documents.
type Service struct {
	*documents.Service[*CashTransfer]
	repo Repository
}

// NewService creates a cash transfer service.
func NewService(repo Repository, engine *posting.Engine, gen numerator.Generator) *Service {
	base := documents.NewService(documents.ServiceConfig[*CashTransfer]{
		Repo:           repo,
		Engine:         engine,
		Numerator:      gen,
		DocumentName:   "cash transfer",
		NumberPrefix:   "CT",
		NumberStrategy: numerator.StrategyStrict,
	})
	return &Service{Service: base, repo: repo}
}

// List retrieves cash transfers with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*CashTransfer], error) {
	return s.repo.List(ctx, filter)
}
