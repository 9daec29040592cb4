// Package receivable_payment provides the ReceivablePayment document:
// money received from a customer, allocated across sales invoices.
package receivable_payment

import (
	"context"
	"time"

	"moneta/internal/core/apperror"
	"moneta/internal/core/entity"
	"moneta/internal/core/id"
	"moneta/internal/core/types"
	"moneta/internal/domain/documents/sales_invoice"
	"moneta/internal/domain/posting"
)

// DocumentType is the stable type name used in the journal source key.
const DocumentType = "receivable_payment"

// ReceivablePayment debits the receiving cash or bank account on its
// header and credits, per allocation, the receivable account of the
// settled invoice.
type ReceivablePayment struct {
	entity.Document

	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// AccountID is the cash or bank account the payment arrives into
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

// NewReceivablePayment creates a new receivable payment document.
func NewReceivablePayment(organizationID string, customerID, accountID id.ID) *ReceivablePayment {
	return &ReceivablePayment{
		Document:    entity.NewDocument(organizationID),
		CustomerID:  customerID,
		AccountID:   accountID,
		TotalAmount: types.Zero(),
		Details:     make([]PaymentDetail, 0),
	}
}

// Allocate appends an allocation and recalculates the total.
func (rp *ReceivablePayment) Allocate(invoiceID id.ID, amount types.Money) {
	now := time.Now().UTC()
	rp.Details = append(rp.Details, PaymentDetail{
		LineID:    id.New(),
		LineNo:    len(rp.Details) + 1,
		InvoiceID: invoiceID,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	})
	rp.RecalculateTotals()
}

// RecalculateTotals updates the document total from its allocations.
func (rp *ReceivablePayment) RecalculateTotals() {
	total := types.Zero()
	for _, detail := range rp.Details {
		total = total.Add(detail.Amount)
	}
	rp.TotalAmount = total
}

// Validate implements entity.Validatable.
func (rp *ReceivablePayment) Validate(ctx context.Context) error {
	if err := rp.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(rp.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if id.IsNil(rp.AccountID) {
		return apperror.NewValidation("receiving account is required").
			WithDetail("field", "accountId")
	}
	if len(rp.Details) == 0 {
		return apperror.NewValidation("at least one allocation is required").
			WithDetail("field", "details")
	}
	for i, detail := range rp.Details {
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
func (rp *ReceivablePayment) GetDocumentType() string {
	return DocumentType
}

// GetTotalAmount implements posting.Source.
func (rp *ReceivablePayment) GetTotalAmount() types.Money {
	return rp.TotalAmount
}

// BuildJournal implements posting.Source. The header debits the
// receiving account at the default department for the payment total;
// each allocation credits the receivable account of its target invoice.
func (rp *ReceivablePayment) BuildJournal(ctx context.Context, r posting.Resolver) (*posting.Draft, error) {
	accounts, err := r.InvoiceAccounts(ctx, sales_invoice.DocumentType, rp.invoiceIDs())
	if err != nil {
		return nil, err
	}

	draft := posting.NewDraft(entity.CategoryReceivablePayment)
	draft.Debit("receiving_account", &rp.AccountID, rp.TotalAmount, posting.LineSpec{
		Note:      rp.Description,
		CreatedBy: rp.CreatedBy,
		CreatedAt: rp.CreatedAt,
		UpdatedAt: rp.UpdatedAt,
	})

	for _, detail := range rp.Details {
		draft.Credit("receivable", accounts[detail.InvoiceID], detail.Amount, posting.LineSpec{
			DepartmentID: detail.DepartmentID,
			ProjectID:    detail.ProjectID,
			Note:         detail.Note,
			CreatedBy:    rp.CreatedBy,
			CreatedAt:    detail.CreatedAt,
			UpdatedAt:    detail.UpdatedAt,
		})
	}
	return draft, nil
}

func (rp *ReceivablePayment) invoiceIDs() []id.ID {
	ids := make([]id.ID, 0, len(rp.Details))
	for _, detail := range rp.Details {
		ids = append(ids, detail.InvoiceID)
	}
	return ids
}

var _ posting.Source = (*ReceivablePayment)(nil)
