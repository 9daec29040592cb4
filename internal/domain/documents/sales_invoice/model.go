// Package sales_invoice provides the SalesInvoice document: a customer
// bill that recognizes revenue and opens a receivable.
package sales_invoice

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
const DocumentType = "sales_invoice"

// SalesInvoice debits the receivable account on its header and emits up
// to three legs per line: cost of goods (debit), revenue (credit) and
// inventory relief (credit). Each leg depends on the product category's
// account mappings and is dropped when unmapped, which can leave the
// journal unbalanced when the setup is incomplete.
type SalesInvoice struct {
	entity.Document

	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// AccountID is the receivable account debited for the invoice total
	AccountID id.ID `db:"account_id" json:"accountId"`

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

// NewSalesInvoice creates a new sales invoice document.
func NewSalesInvoice(organizationID string, customerID, accountID id.ID) *SalesInvoice {
	doc := &SalesInvoice{
		Document:    entity.NewDocument(organizationID),
		CustomerID:  customerID,
		AccountID:   accountID,
		TotalAmount: types.Zero(),
		TaxAmount:   types.Zero(),
		Lines:       make([]InvoiceLine, 0),
	}
	doc.DueDate = doc.Date.AddDate(0, 1, 0)
	return doc
}

// AddLine appends an invoice line and recalculates the total.
func (s *SalesInvoice) AddLine(productID id.ID, quantity types.Quantity, price types.Money) {
	now := time.Now().UTC()
	amount := price.Mul(quantity.Decimal())
	s.Lines = append(s.Lines, InvoiceLine{
		LineID:    id.New(),
		LineNo:    len(s.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		Price:     price,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	})
	s.RecalculateTotals()
}

// RecalculateTotals updates the document total from its lines plus tax.
func (s *SalesInvoice) RecalculateTotals() {
	total := types.Zero()
	for _, line := range s.Lines {
		total = total.Add(line.Amount)
	}
	s.TotalAmount = total.Add(s.TaxAmount)
}

// HasTax reports whether the invoice carries a tax amount.
func (s *SalesInvoice) HasTax() bool {
	return s.TaxAmount.IsPositive()
}

// Validate implements entity.Validatable.
func (s *SalesInvoice) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(s.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if id.IsNil(s.AccountID) {
		return apperror.NewValidation("receivable account is required").
			WithDetail("field", "accountId")
	}
	if len(s.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	if s.TaxAmount.IsNegative() {
		return apperror.NewValidation("tax amount cannot be negative").
			WithDetail("field", "taxAmount")
	}
	for i, line := range s.Lines {
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
func (s *SalesInvoice) GetDocumentType() string {
	return DocumentType
}

// GetTotalAmount implements posting.Source.
func (s *SalesInvoice) GetTotalAmount() types.Money {
	return s.TotalAmount
}

// BuildJournal implements posting.Source. The header debits the
// receivable account at the default department for the invoice total.
// Per line, each mapped account adds a leg for the line amount: debit
// the purchase account, credit the sales account, credit the inventory
// account. Unmapped legs are dropped independently; a category mapping
// only some of the three leaves the journal unbalanced, which is
// reported but never fixed up.
func (s *SalesInvoice) BuildJournal(ctx context.Context, r posting.Resolver) (*posting.Draft, error) {
	postings, err := r.ProductPostings(ctx, s.productIDs())
	if err != nil {
		return nil, err
	}

	draft := posting.NewDraft(entity.CategorySalesInvoice)
	draft.Debit("receivable", &s.AccountID, s.TotalAmount, posting.LineSpec{
		Note:      s.Description,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	})

	for _, line := range s.Lines {
		pp := postings[line.ProductID]
		spec := posting.LineSpec{
			DepartmentID: line.DepartmentID,
			ProjectID:    line.ProjectID,
			Note:         line.Note,
			CreatedBy:    s.CreatedBy,
			CreatedAt:    line.CreatedAt,
			UpdatedAt:    line.UpdatedAt,
		}
		draft.Debit("purchase", pp.PurchaseAccountID, line.Amount, spec)
		draft.Credit("sales", pp.SalesAccountID, line.Amount, spec)
		draft.Credit("inventory", pp.InventoryAccountID, line.Amount, spec)
	}
	return draft, nil
}

func (s *SalesInvoice) productIDs() []id.ID {
	ids := make([]id.ID, 0, len(s.Lines))
	for _, line := range s.Lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}

var _ posting.Source = (*SalesInvoice)(nil)
