// Package category provides the product Category catalog.
// A category carries the posting account mappings used by the ledger
// posting engine; every mapping is optional.
package category

import (
	"context"

	"moneta/internal/core/entity"
	"moneta/internal/core/id"
)

// Category groups products and maps them to posting accounts.
type Category struct {
	entity.Catalog

	// PurchaseAccountID is debited for purchased goods (COGS side)
	PurchaseAccountID *id.ID `db:"purchase_account_id" json:"purchaseAccountId,omitempty"`

	// SalesAccountID is credited for sales revenue
	SalesAccountID *id.ID `db:"sales_account_id" json:"salesAccountId,omitempty"`

	// InventoryAccountID tracks on-hand inventory value
	InventoryAccountID *id.ID `db:"inventory_account_id" json:"inventoryAccountId,omitempty"`

	// PurchaseReceiptAccountID accrues goods received not yet invoiced
	PurchaseReceiptAccountID *id.ID `db:"purchase_receipt_account_id" json:"purchaseReceiptAccountId,omitempty"`

	// SalesDeliveryAccountID accrues goods delivered not yet invoiced
	SalesDeliveryAccountID *id.ID `db:"sales_delivery_account_id" json:"salesDeliveryAccountId,omitempty"`
}

// NewCategory creates a new Category with required fields.
func NewCategory(code, name string) *Category {
	return &Category{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable.
// Account mappings are intentionally not required: a missing mapping
// drops the corresponding journal leg at posting time.
func (c *Category) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}

// HasCompleteMappings returns true when every posting account is set.
func (c *Category) HasCompleteMappings() bool {
	return c.PurchaseAccountID != nil &&
		c.SalesAccountID != nil &&
		c.InventoryAccountID != nil &&
		c.PurchaseReceiptAccountID != nil &&
		c.SalesDeliveryAccountID != nil
}
