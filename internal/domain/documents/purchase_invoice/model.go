// Package purchase_invoice provides the PurchaseInvoice document:
// a vendor bill that settles either a prior goods receipt or a direct
// inventory purchase, and opens a payable.
package purchase_invoice

import (
	"context"
	"time"

	"moneta/internal/core/apperror"
	"moneta/internal/core/entity"
	"moneta/internal/core/id"
	"moneta/internal/core/types"
	"moneta/internal/domain/posting"
)

// DocumentType is the stable type name used in the journal source key.
const DocumentType = "purchase_invoice"

// PurchaseInvoice credits the payable account on its header and debits,
// per line, the goods-received accrual (invoice against a receipt) or
// the inventory account (direct invoice).
type PurchaseInvoice struct {
	entity.Document

	VendorID id.ID `db:"vendor_id" json:"vendorId"`

	// AccountID is the payable account credited for the invoice total
	AccountID id.ID `db:"account_id" json:"accountId"`

	// IsReceipt marks an invoice raised against a goods receipt; its
	// lines settle the accrual instead of restating inventory
	IsReceipt bool `db:"is_receipt" json:"isReceipt"`

	DueDate time.Time `db:"due_date" json:"dueDate"`

	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
	TaxAmount   types.Money `db:"tax_amount" json:"taxAmount"`

	Lines []InvoiceLine `db:"-" json:"lines"`
}

// InvoiceLine is one billed product.
type InvoiceLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`

	Quantity types.Quantity `db:"quantity" json:"quantity"`
	Price    types.Money    `db:"price" json:"price"`
	Amount   types.Money    `db:"amount" json:"amount"`

	DepartmentID *id.ID `db:"department_id" json:"departmentId,omitempty"`
	ProjectID    *id.ID `db:"project_id" json:"projectId,omitempty"`
	Note         string `db:"note" json:"note,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewPurchaseInvoice creates a new purchase invoice document.
func NewPurchaseInvoice(organizationID string, vendorID, accountID id.ID) *PurchaseInvoice {
	doc := &PurchaseInvoice{
		Document:    entity.NewDocument(organizationID),
		VendorID:    vendorID,
		AccountID:   accountID,
		TotalAmount: types.Zero(),
		TaxAmount:   types.Zero(),
		Lines:       make([]InvoiceLine, 0),
	}
	doc.DueDate = doc.Date.AddDate(0, 1, 0)
	return doc
}

// AddLine appends an invoice line and recalculates the total.
func (p *PurchaseInvoice) AddLine(productID id.ID, quantity types.Quantity, price types.Money) {
	now := time.Now().UTC()
	amount := price.Mul(quantity.Decimal())
	p.Lines = append(p.Lines, InvoiceLine{
		LineID:    id.New(),
		LineNo:    len(p.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		Price:     price,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	})
	p.RecalculateTotals()
}

// RecalculateTotals updates the document total from its lines plus tax.
func (p *PurchaseInvoice) RecalculateTotals() {
	total := types.Zero()
	for _, line := range p.Lines {
		total = total.Add(line.Amount)
	}
	p.TotalAmount = total.Add(p.TaxAmount)
}

// HasTax reports whether the invoice carries a tax amount.
func (p *PurchaseInvoice) HasTax() bool {
	return p.TaxAmount.IsPositive()
}

// Validate implements entity.Validatable.
func (p *PurchaseInvoice) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.VendorID) {
		return apperror.NewValidation("vendor is required").
			WithDetail("field", "vendorId")
	}
	if id.IsNil(p.AccountID) {
		return apperror.NewValidation("payable account is required").
			WithDetail("field", "accountId")
	}
	if len(p.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	if p.TaxAmount.IsNegative() {
		return apperror.NewValidation("tax amount cannot be negative").
			WithDetail("field", "taxAmount")
	}
	for i, line := range p.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// GetDocumentType implements posting.Source.
func (p *PurchaseInvoice) GetDocumentType() string {
	return DocumentType
}

// GetTotalAmount implements posting.Source.
func (p *PurchaseInvoice) GetTotalAmount() types.Money {
	return p.TotalAmount
}

// BuildJournal implements posting.Source. The header credits the
// payable account at the default department for the invoice total;
// each line debits the goods-received accrual when IsReceipt, the
// inventory account otherwise, dropped when the account is not mapped.
func (p *PurchaseInvoice) BuildJournal(ctx context.Context, r posting.Resolver) (*posting.Draft, error) {
	postings, err := r.ProductPostings(ctx, p.productIDs())
	if err != nil {
		return nil, err
	}

	draft := posting.NewDraft(entity.CategoryPurchaseInvoice)
	draft.Credit("payable", &p.AccountID, p.TotalAmount, posting.LineSpec{
		Note:      p.Description,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})

	for _, line := range p.Lines {
		pp := postings[line.ProductID]
		account := pp.InventoryAccountID
		role := "inventory"
		if p.IsReceipt {
			account = pp.PurchaseReceiptAccountID
			role = "purchase_receipt"
		}
		draft.Debit(role, account, line.Amount, posting.LineSpec{
			DepartmentID: line.DepartmentID,
			ProjectID:    line.ProjectID,
			Note:         line.Note,
			CreatedBy:    p.CreatedBy,
			CreatedAt:    line.CreatedAt,
			UpdatedAt:    line.UpdatedAt,
		})
	}
	return draft, nil
}

func (p *PurchaseInvoice) productIDs() []id.ID {
	ids := make([]id.ID, 0, len(p.Lines))
	for _, line := range p.Lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}

var _ posting.Source = (*PurchaseInvoice)(nil)
