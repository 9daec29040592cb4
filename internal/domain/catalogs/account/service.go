package account

import (
	"context"
	"fmt"
	"time"

	"moneta/internal/core/apperror"
	"moneta/internal/core/numerator"
	"moneta/internal/domain"
)

// Service provides business logic for the Account catalog.
type Service struct {
	*domain.CatalogService[*Account]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Account service.
// In database-per-tenant mode the TxManager comes from context.
func NewService(repo Repository, numerator numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Account]{
		Repo:       repo,
		Numerator:  numerator,
		EntityName: "account",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      numerator,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)
	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, acc *Account) error {
	if acc.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("ACC"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		acc.Code = code
		return nil
	}

	if exists, err := s.repo.ExistsByCode(ctx, acc.Code); err == nil && exists {
		return apperror.NewConflict("account with this code already exists").
			WithDetail("code", acc.Code)
	}
	return nil
}

// ListByClass retrieves accounts of the given class.
func (s *Service) ListByClass(ctx context.Context, class Class) ([]*Account, error) {
	if !isValidClass(class) {
		return nil, apperror.NewValidation("invalid account class").
			WithDetail("value", string(class))
	}
	return s.repo.ListByClass(ctx, class)
}

// ListCashBank retrieves cash and bank accounts.
func (s *Service) ListCashBank(ctx context.Context) ([]*Account, error) {
	return s.repo.ListCashBank(ctx)
}
