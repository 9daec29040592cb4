package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"moneta/internal/core/apperror"
	"moneta/internal/core/id"
	"moneta/internal/domain/documents/purchase_invoice"
	"moneta/internal/domain/documents/sales_invoice"
	"moneta/internal/domain/posting"
	"moneta/internal/infrastructure/storage/postgres"
)

// AccountResolver implements posting.Resolver on tenant tables.
// Product mappings come from the product's category; products without
// a category resolve to all-nil accounts.
type AccountResolver struct{}

// NewAccountResolver creates a new account resolver.
func NewAccountResolver() *AccountResolver {
	return &AccountResolver{}
}

func (r *AccountResolver) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *AccountResolver) querier(ctx context.Context) postgres.Querier {
	return postgres.MustGetTxManager(ctx).GetQuerier(ctx)
}

// ProductPostings loads category account mappings for the given
// products in one query.
func (r *AccountResolver) ProductPostings(ctx context.Context, productIDs []id.ID) (map[id.ID]posting.ProductPosting, error) {
	result := make(map[id.ID]posting.ProductPosting, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}

	q := r.builder().
		Select("p.id AS product_id", "p.is_stock_tracking",
			"c.purchase_account_id", "c.sales_account_id", "c.inventory_account_id",
			"c.purchase_receipt_account_id", "c.sales_delivery_account_id").
		From("cat_products p").
		LeftJoin("cat_categories c ON c.id = p.category_id").
		Where(squirrel.Eq{"p.id": productIDs})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build postings query: %w", err)
	}

	var rows []posting.ProductPosting
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("product postings: %w", err)
	}

	for _, row := range rows {
		result[row.ProductID] = row
	}
	return result, nil
}

// InvoiceAccounts returns the header account of each referenced
// invoice, keyed by invoice id.
func (r *AccountResolver) InvoiceAccounts(ctx context.Context, invoiceType string, invoiceIDs []id.ID) (map[id.ID]*id.ID, error) {
	result := make(map[id.ID]*id.ID, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return result, nil
	}

	var table string
	switch invoiceType {
	case purchase_invoice.DocumentType:
		table = "doc_purchase_invoices"
	case sales_invoice.DocumentType:
		table = "doc_sales_invoices"
	default:
		return nil, apperror.NewValidation("unknown invoice type").
			WithDetail("invoiceType", invoiceType)
	}

	q := r.builder().
		Select("id", "account_id").
		From(table).
		Where(squirrel.Eq{"id": invoiceIDs})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build accounts query: %w", err)
	}

	var rows []struct {
		ID        id.ID  `db:"id"`
		AccountID *id.ID `db:"account_id"`
	}
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("invoice accounts: %w", err)
	}

	for _, row := range rows {
		result[row.ID] = row.AccountID
	}
	return result, nil
}

var _ posting.Resolver = (*AccountResolver)(nil)
