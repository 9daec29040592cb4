package posting

import (
	"context"

	"moneta/internal/core/id"
)

// ProductPosting is the account mapping a product inherits from its
// category, plus its stock-tracking flag. Every account is nullable; a
// missing account drops the corresponding leg.
type ProductPosting struct {
	ProductID       id.ID `db:"product_id"`
	IsStockTracking bool  `db:"is_stock_tracking"`

	PurchaseAccountID        *id.ID `db:"purchase_account_id"`
	SalesAccountID           *id.ID `db:"sales_account_id"`
	InventoryAccountID       *id.ID `db:"inventory_account_id"`
	PurchaseReceiptAccountID *id.ID `db:"purchase_receipt_account_id"`
	SalesDeliveryAccountID   *id.ID `db:"sales_delivery_account_id"`
}

// InventoryIfTracked returns the inventory account only for
// stock-tracked products; non-tracked products never get an inventory
// leg.
func (p ProductPosting) InventoryIfTracked() *id.ID {
	if !p.IsStockTracking {
		return nil
	}
	return p.InventoryAccountID
}

// Resolver loads the account mappings a document needs to build its
// journal draft. Implementations run against the tenant database inside
// the posting transaction.
type Resolver interface {
	// ProductPostings loads mappings for the given products in one
	// query. Products absent from the result have no category; callers
	// treat every account as nil then.
	ProductPostings(ctx context.Context, productIDs []id.ID) (map[id.ID]ProductPosting, error)

	// InvoiceAccounts returns the header account of each referenced
	// invoice, keyed by invoice id. Used by payment allocations.
	InvoiceAccounts(ctx context.Context, invoiceType string, invoiceIDs []id.ID) (map[id.ID]*id.ID, error)
}
