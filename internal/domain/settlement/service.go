package settlement

import (
	"context"
	"time"

	"moneta/internal/core/apperror"
	"moneta/internal/core/id"
	"moneta/internal/core/types"
)

// AgedInvoice is one invoice with its outstanding amount placed in the
// aging schedule.
type AgedInvoice struct {
	InvoiceSummary
	Outstanding types.Money `json:"outstanding"`
	Aging       Schedule    `json:"aging"`
}

// AgedAllocation is one payment allocation with its negated amount
// placed in the aging schedule.
type AgedAllocation struct {
	Allocation
	Aging Schedule `json:"aging"`
}

// ContactOutstanding groups an invoice side by contact.
type ContactOutstanding struct {
	ContactID    id.ID       `json:"contactId"`
	ContactName  string      `json:"contactName"`
	InvoiceCount int         `json:"invoiceCount"`
	TotalAmount  types.Money `json:"totalAmount"`
	PaidAmount   types.Money `json:"paidAmount"`
	Outstanding  types.Money `json:"outstanding"`
}

// Clock returns the current time; swapped in tests.
type Clock func() time.Time

// Service derives settlement figures from the repository reads.
type Service struct {
	repo Repository
	now  Clock
}

// NewService creates a settlement service.
func NewService(repo Repository, clock Clock) *Service {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Service{repo: repo, now: clock}
}

// Outstanding returns the unpaid remainder of one invoice.
func (s *Service) Outstanding(ctx context.Context, invoiceType string, invoiceID id.ID) (types.Money, error) {
	summary, err := s.repo.InvoiceSummary(ctx, invoiceType, invoiceID)
	if err != nil {
		return types.Zero(), err
	}
	return Outstanding(summary.TotalAmount, summary.PaidAmount), nil
}

// PaidAmount returns the allocation sum for one invoice.
func (s *Service) PaidAmount(ctx context.Context, invoiceType string, invoiceID id.ID) (types.Money, error) {
	return s.repo.PaidAmount(ctx, invoiceType, invoiceID)
}

// AgeInvoices returns the invoices matching the query with outstanding
// amounts placed in aging buckets as of today.
func (s *Service) AgeInvoices(ctx context.Context, q InvoiceQuery) ([]AgedInvoice, error) {
	if q.InvoiceType == "" {
		return nil, apperror.NewValidation("invoice type is required")
	}

	summaries, err := s.repo.InvoiceSummaries(ctx, q)
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	aged := make([]AgedInvoice, 0, len(summaries))
	for _, summary := range summaries {
		outstanding := Outstanding(summary.TotalAmount, summary.PaidAmount)
		aged = append(aged, AgedInvoice{
			InvoiceSummary: summary,
			Outstanding:    outstanding,
			Aging:          AgingBuckets(summary.Date, asOf, outstanding),
		})
	}
	return aged, nil
}

// AgeAllocations returns the payment allocations of one invoice, each
// negated and aged from the invoice date to its payment date. Shown on
// the invoice detail view next to the invoice's own aging.
func (s *Service) AgeAllocations(ctx context.Context, invoiceType string, invoiceID id.ID) ([]AgedAllocation, error) {
	summary, err := s.repo.InvoiceSummary(ctx, invoiceType, invoiceID)
	if err != nil {
		return nil, err
	}

	allocations, err := s.repo.Allocations(ctx, invoiceType, invoiceID)
	if err != nil {
		return nil, err
	}

	aged := make([]AgedAllocation, 0, len(allocations))
	for _, allocation := range allocations {
		aged = append(aged, AgedAllocation{
			Allocation: allocation,
			Aging:      AllocationAging(summary.Date, allocation.PaymentDate, allocation.Amount),
		})
	}
	return aged, nil
}

// OutstandingByContact groups the invoices matching the query by
// contact, summing totals, payments and the floored outstanding of each
// invoice.
func (s *Service) OutstandingByContact(ctx context.Context, q InvoiceQuery) ([]ContactOutstanding, error) {
	if q.InvoiceType == "" {
		return nil, apperror.NewValidation("invoice type is required")
	}

	summaries, err := s.repo.InvoiceSummaries(ctx, q)
	if err != nil {
		return nil, err
	}

	byContact := make(map[id.ID]*ContactOutstanding)
	order := make([]id.ID, 0)
	for _, summary := range summaries {
		group, ok := byContact[summary.ContactID]
		if !ok {
			group = &ContactOutstanding{
				ContactID:   summary.ContactID,
				ContactName: summary.ContactName,
				TotalAmount: types.Zero(),
				PaidAmount:  types.Zero(),
				Outstanding: types.Zero(),
			}
			byContact[summary.ContactID] = group
			order = append(order, summary.ContactID)
		}
		group.InvoiceCount++
		group.TotalAmount = group.TotalAmount.Add(summary.TotalAmount)
		group.PaidAmount = group.PaidAmount.Add(summary.PaidAmount)
		group.Outstanding = group.Outstanding.Add(Outstanding(summary.TotalAmount, summary.PaidAmount))
	}

	grouped := make([]ContactOutstanding, 0, len(order))
	for _, contactID := range order {
		grouped = append(grouped, *byContact[contactID])
	}
	return grouped, nil
}
