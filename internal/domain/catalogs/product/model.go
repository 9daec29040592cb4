// Package product provides the Product catalog: goods and services
// sold or purchased by the tenant.
package product

import (
	"context"

	"github.com/shopspring/decimal"

	"moneta/internal/core/apperror"
	"moneta/internal/core/entity"
	"moneta/internal/core/id"
)

// Product represents an item that can appear on document detail lines.
type Product struct {
	entity.Catalog

	// SKU is the stock keeping unit (unique within the tenant)
	SKU *string `db:"sku" json:"sku,omitempty"`

	// CategoryID links the product to its posting-account mappings
	CategoryID *id.ID `db:"category_id" json:"categoryId,omitempty"`

	// IsStockTracking enables inventory legs and stock movements
	IsStockTracking bool `db:"is_stock_tracking" json:"isStockTracking"`

	// DefaultPrice is the default sales price
	DefaultPrice decimal.Decimal `db:"default_price" json:"defaultPrice"`

	// DefaultCost is the default purchase cost
	DefaultCost decimal.Decimal `db:"default_cost" json:"defaultCost"`

	// Unit is the unit of measure label (pcs, kg, hour)
	Unit string `db:"unit" json:"unit"`

	// Description is an optional free-text note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name string) *Product {
	return &Product{
		Catalog:      entity.NewCatalog(code, name),
		DefaultPrice: decimal.Zero,
		DefaultCost:  decimal.Zero,
		Unit:         "pcs",
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.DefaultPrice.IsNegative() {
		return apperror.NewValidation("default price cannot be negative").
			WithDetail("field", "defaultPrice")
	}
	if p.DefaultCost.IsNegative() {
		return apperror.NewValidation("default cost cannot be negative").
			WithDetail("field", "defaultCost")
	}

	return nil
}
