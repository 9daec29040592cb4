package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneta/internal/core/id"
	"moneta/internal/core/types"
)

type memRepo struct {
	summaries   []InvoiceSummary
	allocations map[id.ID][]Allocation
}

func (m *memRepo) InvoiceSummaries(_ context.Context, q InvoiceQuery) ([]InvoiceSummary, error) {
	out := make([]InvoiceSummary, 0)
	for _, s := range m.summaries {
		if q.ContactID != nil && s.ContactID != *q.ContactID {
			continue
		}
		if q.DateFrom != nil && s.Date.Before(*q.DateFrom) {
			continue
		}
		if q.DateTo != nil && s.Date.After(*q.DateTo) {
			continue
		}
		if q.HasTax != nil && s.TaxAmount.IsPositive() != *q.HasTax {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memRepo) InvoiceSummary(_ context.Context, _ string, invoiceID id.ID) (InvoiceSummary, error) {
	for _, s := range m.summaries {
		if s.InvoiceID == invoiceID {
			return s, nil
		}
	}
	return InvoiceSummary{}, nil
}

func (m *memRepo) PaidAmount(_ context.Context, _ string, invoiceID id.ID) (types.Money, error) {
	total := types.Zero()
	for _, a := range m.allocations[invoiceID] {
		total = total.Add(a.Amount)
	}
	return total, nil
}

func (m *memRepo) Allocations(_ context.Context, _ string, invoiceID id.ID) ([]Allocation, error) {
	return m.allocations[invoiceID], nil
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestAgeInvoices_FortyDaysOld(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	invoiceID := id.New()

	repo := &memRepo{summaries: []InvoiceSummary{{
		InvoiceID:   invoiceID,
		ContactID:   id.New(),
		Date:        today.AddDate(0, 0, -40),
		TotalAmount: types.MustMoney("500.00"),
		PaidAmount:  types.Zero(),
	}}}
	svc := NewService(repo, fixedClock(today))

	aged, err := svc.AgeInvoices(context.Background(), InvoiceQuery{InvoiceType: "purchase_invoice"})
	require.NoError(t, err)
	require.Len(t, aged, 1)

	assert.True(t, aged[0].Outstanding.Equal(types.MustMoney("500.00")))
	assert.True(t, aged[0].Aging.Between30And60.Equal(types.MustMoney("500.00")))
	assert.True(t, aged[0].Aging.Lt30.Equal(types.Zero()))
	assert.True(t, aged[0].Aging.Gt90.Equal(types.Zero()))
}

func TestAgeAllocations_PaymentHundredDaysLate(t *testing.T) {
	invoiceDate := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	invoiceID := id.New()

	repo := &memRepo{
		summaries: []InvoiceSummary{{
			InvoiceID:   invoiceID,
			Date:        invoiceDate,
			TotalAmount: types.MustMoney("300.00"),
			PaidAmount:  types.MustMoney("300.00"),
		}},
		allocations: map[id.ID][]Allocation{invoiceID: {{
			PaymentID:   id.New(),
			PaymentDate: invoiceDate.AddDate(0, 0, 100),
			Amount:      types.MustMoney("300.00"),
		}}},
	}
	svc := NewService(repo, nil)

	aged, err := svc.AgeAllocations(context.Background(), "purchase_invoice", invoiceID)
	require.NoError(t, err)
	require.Len(t, aged, 1)
	assert.True(t, aged[0].Aging.Gt90.Equal(types.MustMoney("-300.00")))
}

func TestOutstandingByContact(t *testing.T) {
	vendorA := id.New()
	vendorB := id.New()
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	repo := &memRepo{summaries: []InvoiceSummary{
		{
			InvoiceID: id.New(), ContactID: vendorA, ContactName: "Acme",
			Date:        today.AddDate(0, 0, -10),
			TotalAmount: types.MustMoney("1000.00"),
			TaxAmount:   types.MustMoney("100.00"),
			PaidAmount:  types.MustMoney("400.00"),
		},
		{
			InvoiceID: id.New(), ContactID: vendorA, ContactName: "Acme",
			Date:        today.AddDate(0, 0, -5),
			TotalAmount: types.MustMoney("200.00"),
			PaidAmount:  types.MustMoney("250.00"), // over-paid
		},
		{
			InvoiceID: id.New(), ContactID: vendorB, ContactName: "Globex",
			Date:        today.AddDate(0, 0, -3),
			TotalAmount: types.MustMoney("900.00"),
			PaidAmount:  types.Zero(),
		},
	}}
	svc := NewService(repo, fixedClock(today))

	grouped, err := svc.OutstandingByContact(context.Background(), InvoiceQuery{InvoiceType: "purchase_invoice"})
	require.NoError(t, err)
	require.Len(t, grouped, 2)

	acme := grouped[0]
	assert.Equal(t, vendorA, acme.ContactID)
	assert.Equal(t, 2, acme.InvoiceCount)
	assert.True(t, acme.TotalAmount.Equal(types.MustMoney("1200.00")))
	assert.True(t, acme.PaidAmount.Equal(types.MustMoney("650.00")))
	// the over-paid invoice contributes zero, not −50
	assert.True(t, acme.Outstanding.Equal(types.MustMoney("600.00")))

	globex := grouped[1]
	assert.True(t, globex.Outstanding.Equal(types.MustMoney("900.00")))
}

func TestOutstandingByContact_TaxPredicate(t *testing.T) {
	vendor := id.New()
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	repo := &memRepo{summaries: []InvoiceSummary{
		{InvoiceID: id.New(), ContactID: vendor, Date: today,
			TotalAmount: types.MustMoney("110.00"), TaxAmount: types.MustMoney("10.00")},
		{InvoiceID: id.New(), ContactID: vendor, Date: today,
			TotalAmount: types.MustMoney("200.00"), TaxAmount: types.Zero()},
	}}
	svc := NewService(repo, fixedClock(today))

	hasTax := true
	taxed, err := svc.OutstandingByContact(context.Background(),
		InvoiceQuery{InvoiceType: "purchase_invoice", HasTax: &hasTax})
	require.NoError(t, err)
	require.Len(t, taxed, 1)
	assert.True(t, taxed[0].TotalAmount.Equal(types.MustMoney("110.00")))

	hasTax = false
	untaxed, err := svc.OutstandingByContact(context.Background(),
		InvoiceQuery{InvoiceType: "purchase_invoice", HasTax: &hasTax})
	require.NoError(t, err)
	require.Len(t, untaxed, 1)
	assert.True(t, untaxed[0].TotalAmount.Equal(types.MustMoney("200.00")))
}
