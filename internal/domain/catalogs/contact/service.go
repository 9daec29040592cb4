package contact

import (
	"context"
	"fmt"
	"time"

	"moneta/internal/core/numerator"
	"moneta/internal/domain"
)

// Service provides business logic for the Contact catalog.
type Service struct {
	*domain.CatalogService[*Contact]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Contact service.
func NewService(repo Repository, numerator numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Contact]{
		Repo:       repo,
		Numerator:  numerator,
		EntityName: "contact",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      numerator,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)
	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, c *Contact) error {
	if c.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("CNT"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		c.Code = code
	}
	return nil
}

// ListVendors retrieves vendor contacts.
func (s *Service) ListVendors(ctx context.Context, f domain.ListFilter) (domain.ListResult[*Contact], error) {
	return s.repo.ListVendors(ctx, f)
}

// ListCustomers retrieves customer contacts.
func (s *Service) ListCustomers(ctx context.Context, f domain.ListFilter) (domain.ListResult[*Contact], error) {
	return s.repo.ListCustomers(ctx, f)
}
