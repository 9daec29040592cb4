package settlement

import (
	"context"
	"time"

	"moneta/internal/core/id"
	"moneta/internal/core/types"
)

// InvoiceSummary is the settlement view of one invoice: header figures
// plus the paid sum aggregated from payment allocations.
type InvoiceSummary struct {
	InvoiceID   id.ID       `db:"invoice_id" json:"invoiceId"`
	ReferenceNo string      `db:"reference_no" json:"referenceNo"`
	ContactID   id.ID       `db:"contact_id" json:"contactId"`
	ContactName string      `db:"contact_name" json:"contactName"`
	Date        time.Time   `db:"date" json:"date"`
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
	TaxAmount   types.Money `db:"tax_amount" json:"taxAmount"`
	PaidAmount  types.Money `db:"paid_amount" json:"paidAmount"`
}

// Allocation is one payment detail linked to an invoice.
type Allocation struct {
	PaymentID   id.ID       `db:"payment_id" json:"paymentId"`
	ReferenceNo string      `db:"reference_no" json:"referenceNo"`
	PaymentDate time.Time   `db:"payment_date" json:"paymentDate"`
	Amount      types.Money `db:"amount" json:"amount"`
}

// InvoiceQuery narrows the invoice summaries a settlement read covers.
type InvoiceQuery struct {
	// InvoiceType selects the side: purchase_invoice for payables,
	// sales_invoice for receivables
	InvoiceType string

	ContactID *id.ID
	DateFrom  *time.Time
	DateTo    *time.Time

	// HasTax keeps taxed (true) or untaxed (false) invoices only;
	// nil keeps both
	HasTax *bool
}

// Repository defines the read queries settlement derives from.
type Repository interface {
	// InvoiceSummaries returns invoices matching the query with their
	// allocation sums attached.
	InvoiceSummaries(ctx context.Context, q InvoiceQuery) ([]InvoiceSummary, error)

	// InvoiceSummary returns one invoice with its allocation sum.
	InvoiceSummary(ctx context.Context, invoiceType string, invoiceID id.ID) (InvoiceSummary, error)

	// PaidAmount returns the allocation sum for one invoice.
	PaidAmount(ctx context.Context, invoiceType string, invoiceID id.ID) (types.Money, error)

	// Allocations returns the payment details linked to one invoice, in
	// payment date order.
	Allocations(ctx context.Context, invoiceType string, invoiceID id.ID) ([]Allocation, error)
}
