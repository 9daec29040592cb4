package project

import (
	"context"
	"fmt"
	"time"

	"moneta/internal/core/numerator"
	"moneta/internal/domain"
)

// Repository defines the interface for Project persistence.
type Repository interface {
	domain.CatalogRepository[*Project]
}

// Service provides business logic for the Project catalog.
type Service struct {
	*domain.CatalogService[*Project]
	numerator numerator.Generator
}

// NewService creates a new Project service.
func NewService(repo Repository, gen numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Project]{
		Repo:       repo,
		Numerator:  gen,
		EntityName: "project",
	})

	svc := &Service{
		CatalogService: base,
		numerator:      gen,
	}

	base.Hooks().On(domain.BeforeCreate, func(ctx context.Context, p *Project) error {
		if p.Code == "" {
			code, err := gen.GetNextNumber(ctx, numerator.DefaultConfig("PRJ"), nil, time.Now())
			if err != nil {
				return fmt.Errorf("generate code: %w", err)
			}
			p.Code = code
		}
		return nil
	})
	return svc
}
