package department

import (
	"context"
	"fmt"
	"time"

	"moneta/internal/core/numerator"
	"moneta/internal/domain"
)

// Repository defines the interface for Department persistence.
type Repository interface {
	domain.CatalogRepository[*Department]
}

// Service provides business logic for the Department catalog.
type Service struct {
	*domain.CatalogService[*Department]
	numerator numerator.Generator
}

// NewService creates a new Department service.
func NewService(repo Repository, gen numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Department]{
		Repo:       repo,
		Numerator:  gen,
		EntityName: "department",
	})

	svc := &Service{
		CatalogService: base,
		numerator:      gen,
	}

	base.Hooks().On(domain.BeforeCreate, func(ctx context.Context, d *Department) error {
		if d.Code == "" {
			code, err := gen.GetNextNumber(ctx, numerator.DefaultConfig("DEP"), nil, time.Now())
			if err != nil {
				return fmt.Errorf("generate code: %w", err)
			}
			d.Code = code
		}
		return nil
	})
	return svc
}
