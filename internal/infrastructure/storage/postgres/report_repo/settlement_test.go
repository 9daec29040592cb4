package report_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneta/internal/core/id"
	"moneta/internal/domain/documents/sales_invoice"
	"moneta/internal/domain/settlement"
)

func boolRef(v bool) *bool { return &v }

func summariesSQL(t *testing.T, query settlement.InvoiceQuery) (string, []any) {
	t.Helper()
	tables, err := tablesFor(query.InvoiceType)
	require.NoError(t, err)

	repo := NewSettlementRepo()
	sql, args, err := applyInvoiceFilters(repo.summarySelect(tables), tables, query).ToSql()
	require.NoError(t, err)
	return sql, args
}

func TestApplyInvoiceFilters_NoTaxIncludesNull(t *testing.T) {
	sql, _ := summariesSQL(t, settlement.InvoiceQuery{
		InvoiceType: sales_invoice.DocumentType,
		HasTax:      boolRef(false),
	})

	// NULL tax_amount counts as untaxed; a bare <= comparison would
	// drop those rows.
	assert.Contains(t, sql, "COALESCE(i.tax_amount, 0) <= 0")
	assert.NotContains(t, sql, "i.tax_amount <= ")
}

func TestApplyInvoiceFilters_HasTax(t *testing.T) {
	sql, args := summariesSQL(t, settlement.InvoiceQuery{
		InvoiceType: sales_invoice.DocumentType,
		HasTax:      boolRef(true),
	})

	assert.Contains(t, sql, "i.tax_amount > ")
	assert.Contains(t, args, 0)
}

func TestApplyInvoiceFilters_ContactAndDates(t *testing.T) {
	contactID := id.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	sql, args := summariesSQL(t, settlement.InvoiceQuery{
		InvoiceType: sales_invoice.DocumentType,
		ContactID:   &contactID,
		DateFrom:    &from,
		DateTo:      &to,
	})

	assert.Contains(t, sql, "i.customer_id = ")
	assert.Contains(t, sql, "i.date >= ")
	assert.Contains(t, sql, "i.date <= ")
	assert.Contains(t, args, contactID)
	assert.Contains(t, args, from)
	assert.Contains(t, args, to)
}
