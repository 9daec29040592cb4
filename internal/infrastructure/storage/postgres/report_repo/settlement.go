// Package report_repo provides PostgreSQL implementations for the
// derived read models: settlement views and financial insights. All
// queries are read-only aggregates over documents and the ledger.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"moneta/internal/core/apperror"
	"moneta/internal/core/id"
	"moneta/internal/core/types"
	"moneta/internal/domain/documents/purchase_invoice"
	"moneta/internal/domain/documents/sales_invoice"
	"moneta/internal/domain/settlement"
	"moneta/internal/infrastructure/storage/postgres"
)

// settlementTables maps an invoice type to the tables its settlement
// reads join over.
type settlementTables struct {
	invoices   string
	payments   string
	details    string
	contactCol string
}

func tablesFor(invoiceType string) (settlementTables, error) {
	switch invoiceType {
	case purchase_invoice.DocumentType:
		return settlementTables{
			invoices:   "doc_purchase_invoices",
			payments:   "doc_payable_payments",
			details:    "doc_payable_payment_details",
			contactCol: "vendor_id",
		}, nil
	case sales_invoice.DocumentType:
		return settlementTables{
			invoices:   "doc_sales_invoices",
			payments:   "doc_receivable_payments",
			details:    "doc_receivable_payment_details",
			contactCol: "customer_id",
		}, nil
	}
	return settlementTables{}, apperror.NewValidation("unknown invoice type").
		WithDetail("invoiceType", invoiceType)
}

// SettlementRepo implements settlement.Repository.
type SettlementRepo struct{}

// NewSettlementRepo creates a new settlement repository.
func NewSettlementRepo() *SettlementRepo {
	return &SettlementRepo{}
}

func (r *SettlementRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *SettlementRepo) querier(ctx context.Context) postgres.Querier {
	return postgres.MustGetTxManager(ctx).GetQuerier(ctx)
}

// summarySelect builds the invoice summary projection: header figures
// plus the allocation sum from non-deleted payments.
func (r *SettlementRepo) summarySelect(t settlementTables) squirrel.SelectBuilder {
	paidSub := "(SELECT d.invoice_id, SUM(d.amount) AS paid" +
		" FROM " + t.details + " d" +
		" JOIN " + t.payments + " p ON p.id = d.document_id AND p.deletion_mark = false" +
		" GROUP BY d.invoice_id) paid"

	return r.builder().
		Select("i.id AS invoice_id",
			"i.number AS reference_no",
			"i."+t.contactCol+" AS contact_id",
			"c.name AS contact_name",
			"i.date",
			"i.total_amount",
			"i.tax_amount",
			"COALESCE(paid.paid, 0) AS paid_amount").
		From(t.invoices + " i").
		Join("cat_contacts c ON c.id = i." + t.contactCol).
		LeftJoin(paidSub + " ON paid.invoice_id = i.id").
		Where(squirrel.Eq{"i.deletion_mark": false})
}

// applyInvoiceFilters narrows a summary select to the query's contact,
// date range and tax predicate. tax_amount is nullable; NULL counts as
// no tax.
func applyInvoiceFilters(q squirrel.SelectBuilder, t settlementTables, query settlement.InvoiceQuery) squirrel.SelectBuilder {
	if query.ContactID != nil {
		q = q.Where(squirrel.Eq{"i." + t.contactCol: *query.ContactID})
	}
	if query.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"i.date": *query.DateFrom})
	}
	if query.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"i.date": *query.DateTo})
	}
	if query.HasTax != nil {
		if *query.HasTax {
			q = q.Where(squirrel.Gt{"i.tax_amount": 0})
		} else {
			q = q.Where("COALESCE(i.tax_amount, 0) <= 0")
		}
	}
	return q
}

// InvoiceSummaries returns invoices matching the query with their
// allocation sums attached.
func (r *SettlementRepo) InvoiceSummaries(ctx context.Context, query settlement.InvoiceQuery) ([]settlement.InvoiceSummary, error) {
	t, err := tablesFor(query.InvoiceType)
	if err != nil {
		return nil, err
	}

	q := applyInvoiceFilters(r.summarySelect(t), t, query).
		OrderBy("i.date ASC", "i.number ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build summaries query: %w", err)
	}

	summaries := make([]settlement.InvoiceSummary, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &summaries, sql, args...); err != nil {
		return nil, fmt.Errorf("invoice summaries: %w", err)
	}
	return summaries, nil
}

// InvoiceSummary returns one invoice with its allocation sum.
func (r *SettlementRepo) InvoiceSummary(ctx context.Context, invoiceType string, invoiceID id.ID) (settlement.InvoiceSummary, error) {
	var summary settlement.InvoiceSummary

	t, err := tablesFor(invoiceType)
	if err != nil {
		return summary, err
	}

	q := r.summarySelect(t).Where(squirrel.Eq{"i.id": invoiceID})
	sql, args, err := q.ToSql()
	if err != nil {
		return summary, fmt.Errorf("build summary query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), &summary, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return summary, apperror.NewNotFound(invoiceType, invoiceID.String())
		}
		return summary, fmt.Errorf("invoice summary: %w", err)
	}
	return summary, nil
}

// PaidAmount returns the allocation sum for one invoice.
func (r *SettlementRepo) PaidAmount(ctx context.Context, invoiceType string, invoiceID id.ID) (types.Money, error) {
	t, err := tablesFor(invoiceType)
	if err != nil {
		return types.Zero(), err
	}

	q := r.builder().
		Select("COALESCE(SUM(d.amount), 0)").
		From(t.details + " d").
		Join(t.payments + " p ON p.id = d.document_id").
		Where(squirrel.Eq{"p.deletion_mark": false}).
		Where(squirrel.Eq{"d.invoice_id": invoiceID})

	sql, args, err := q.ToSql()
	if err != nil {
		return types.Zero(), fmt.Errorf("build paid query: %w", err)
	}

	var paid types.Money
	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&paid); err != nil {
		return types.Zero(), fmt.Errorf("paid amount: %w", err)
	}
	return paid, nil
}

// Allocations returns the payment details linked to one invoice, in
// payment date order.
func (r *SettlementRepo) Allocations(ctx context.Context, invoiceType string, invoiceID id.ID) ([]settlement.Allocation, error) {
	t, err := tablesFor(invoiceType)
	if err != nil {
		return nil, err
	}

	q := r.builder().
		Select("p.id AS payment_id",
			"p.number AS reference_no",
			"p.date AS payment_date",
			"d.amount").
		From(t.details + " d").
		Join(t.payments + " p ON p.id = d.document_id").
		Where(squirrel.Eq{"p.deletion_mark": false}).
		Where(squirrel.Eq{"d.invoice_id": invoiceID}).
		OrderBy("p.date ASC", "p.number ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build allocations query: %w", err)
	}

	allocations := make([]settlement.Allocation, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &allocations, sql, args...); err != nil {
		return nil, fmt.Errorf("allocations: %w", err)
	}
	return allocations, nil
}

var _ settlement.Repository = (*SettlementRepo)(nil)
