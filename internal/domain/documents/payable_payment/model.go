// Package payable_payment provides the PayablePayment document: money
// paid out to a vendor, allocated across purchase invoices.
package payable_payment

import (
	"context"
	"time"

	"moneta/internal/core/apperror"
	"moneta/internal/core/entity"
	"moneta/internal/core/id"
	"moneta/internal/core/types"
	"moneta/internal/domain/documents/purchase_invoice"
	"moneta/internal/domain/posting"
)

// DocumentType is the stable type name used in the journal source key.
const DocumentType = "payable_payment"

// PayablePayment credits the paying cash or bank account on its header
// and debits, per allocation, the payable account of the settled
// invoice.
type PayablePayment struct {
	entity.Document

	VendorID id.ID `db:"vendor_id" json:"vendorId"`

	// AccountID is the cash or bank account the payment leaves from
	AccountID id.ID `db:"account_id" json:"accountId"`

	// TotalAmount is calculated from allocations
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	Details []PaymentDetail `db:"-" json:"details"`
}

// PaymentDetail allocates part of the payment to one invoice.
type PaymentDetail struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	InvoiceID id.ID       `db:"invoice_id" json:"invoiceId"`
	Amount    types.Money `db:"amount" json:"amount"`

	DepartmentID *id.ID `db:"department_id" json:"departmentId,omitempty"`
	ProjectID    *id.ID `db:"project_id" json:"projectId,omitempty"`
	Note         string `db:"note" json:"note,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewPayablePayment creates a new payable payment document.
func NewPayablePayment(organizationID string, vendorID, accountID id.ID) *PayablePayment {
	return &PayablePayment{
		Document:    entity.NewDocument(organizationID),
		VendorID:    vendorID,
		AccountID:   accountID,
		TotalAmount: types.Zero(),
		Details:     make([]PaymentDetail, 0),
	}
}

// Allocate appends an allocation and recalculates the total.
func (p *PayablePayment) Allocate(invoiceID id.ID, amount types.Money) {
	now := time.Now().UTC()
	p.Details = append(p.Details, PaymentDetail{
		LineID:    id.New(),
		LineNo:    len(p.Details) + 1,
		InvoiceID: invoiceID,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	})
	p.RecalculateTotals()
}

// RecalculateTotals updates the document total from its allocations.
func (p *PayablePayment) RecalculateTotals() {
	total := types.Zero()
	for _, detail := range p.Details {
		total = total.Add(detail.Amount)
	}
	p.TotalAmount = total
}

// Validate implements entity.Validatable.
func (p *PayablePayment) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.VendorID) {
		return apperror.NewValidation("vendor is required").
			WithDetail("field", "vendorId")
	}
	if id.IsNil(p.AccountID) {
		return apperror.NewValidation("paying account is required").
			WithDetail("field", "accountId")
	}
	if len(p.Details) == 0 {
		return apperror.NewValidation("at least one allocation is required").
			WithDetail("field", "details")
	}
	for i, detail := range p.Details {
		if id.IsNil(detail.InvoiceID) {
			return apperror.NewValidation("invoice is required").
				WithDetail("field", "details").
				WithDetail("lineNo", i+1)
		}
		if !detail.Amount.IsPositive() {
			return apperror.NewValidation("allocation amount must be positive").
				WithDetail("field", "details").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// GetDocumentType implements posting.Source.
func (p *PayablePayment) GetDocumentType() string {
	return DocumentType
}

// GetTotalAmount implements posting.Source.
func (p *PayablePayment) GetTotalAmount() types.Money {
	return p.TotalAmount
}

// BuildJournal implements posting.Source. The header credits the paying
// account at the default department for the payment total; each
// allocation debits the payable account of its target invoice.
func (p *PayablePayment) BuildJournal(ctx context.Context, r posting.Resolver) (*posting.Draft, error) {
	accounts, err := r.InvoiceAccounts(ctx, purchase_invoice.DocumentType, p.invoiceIDs())
	if err != nil {
		return nil, err
	}

	draft := posting.NewDraft(entity.CategoryPayablePayment)
	draft.Credit("paying_account", &p.AccountID, p.TotalAmount, posting.LineSpec{
		Note:      p.Description,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})

	for _, detail := range p.Details {
		draft.Debit("payable", accounts[detail.InvoiceID], detail.Amount, posting.LineSpec{
			DepartmentID: detail.DepartmentID,
			ProjectID:    detail.ProjectID,
			Note:         detail.Note,
			CreatedBy:    p.CreatedBy,
			CreatedAt:    detail.CreatedAt,
			UpdatedAt:    detail.UpdatedAt,
		})
	}
	return draft, nil
}

func (p *PayablePayment) invoiceIDs() []id.ID {
	ids := make([]id.ID, 0, len(p.Details))
	for _, detail := range p.Details {
		ids = append(ids, detail.InvoiceID)
	}
	return ids
}

var _ posting.Source = (*PayablePayment)(nil)
