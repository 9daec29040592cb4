// Package purchase_receipt provides the PurchaseReceipt document:
// goods received from a vendor, not yet invoiced.
package purchase_receipt

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
const DocumentType = "purchase_receipt"

// PurchaseReceipt records incoming goods. Regular receipts debit
// inventory and credit the goods-received accrual; beginning-balance
// receipts load opening stock and post no journal at all.
type PurchaseReceipt struct {
	entity.Document

	VendorID id.ID `db:"vendor_id" json:"vendorId"`

	// IsBeginning marks an opening-balance receipt: stock is recorded,
	// the ledger is not touched
	IsBeginning bool `db:"is_beginning" json:"isBeginning"`

	// TotalAmount is calculated from lines
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	// Table part
	Lines []ReceiptLine `db:"-" json:"lines"`
}

// ReceiptLine is one received product.
type ReceiptLine struct {
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

// NewPurchaseReceipt creates a new purchase receipt document.
func NewPurchaseReceipt(organizationID string, vendorID id.ID) *PurchaseReceipt {
	return &PurchaseReceipt{
		Document:    entity.NewDocument(organizationID),
		VendorID:    vendorID,
		TotalAmount: types.Zero(),
		Lines:       make([]ReceiptLine, 0),
	}
}

// AddLine appends a receipt line and recalculates the total.
func (p *PurchaseReceipt) AddLine(productID id.ID, quantity types.Quantity, price types.Money) {
	now := time.Now().UTC()
	amount := price.Mul(quantity.Decimal())
	p.Lines = append(p.Lines, ReceiptLine{
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

// RecalculateTotals updates the document total from its lines.
func (p *PurchaseReceipt) RecalculateTotals() {
	total := types.Zero()
	for _, line := range p.Lines {
		total = total.Add(line.Amount)
	}
	p.TotalAmount = total
}

// Validate implements entity.Validatable.
func (p *PurchaseReceipt) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.VendorID) {
		return apperror.NewValidation("vendor is required").
			WithDetail("field", "vendorId")
	}
	if len(p.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
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
func (p *PurchaseReceipt) GetDocumentType() string {
	return DocumentType
}

// GetTotalAmount implements posting.Source.
func (p *PurchaseReceipt) GetTotalAmount() types.Money {
	return p.TotalAmount
}

// BuildJournal implements posting.Source. Beginning-balance receipts
// return a nil draft. Otherwise, per line: debit the category's
// inventory account (stock-tracked products only), credit the
// category's goods-received account, both for the line amount; either
// leg is dropped independently when its account is not mapped.
func (p *PurchaseReceipt) BuildJournal(ctx context.Context, r posting.Resolver) (*posting.Draft, error) {
	if p.IsBeginning {
		return nil, nil
	}

	postings, err := r.ProductPostings(ctx, p.productIDs())
	if err != nil {
		return nil, err
	}

	draft := posting.NewDraft(entity.CategoryPurchaseReceipt)
	for _, line := range p.Lines {
		pp := postings[line.ProductID]
		spec := posting.LineSpec{
			DepartmentID: line.DepartmentID,
			ProjectID:    line.ProjectID,
			Note:         line.Note,
			CreatedBy:    p.CreatedBy,
			CreatedAt:    line.CreatedAt,
			UpdatedAt:    line.UpdatedAt,
		}
		draft.Debit("inventory", pp.InventoryIfTracked(), line.Amount, spec)
		draft.Credit("purchase_receipt", pp.PurchaseReceiptAccountID, line.Amount, spec)
	}
	return draft, nil
}

// StockMovements records every line as a receipt into the stock
// register, beginning receipts included.
func (p *PurchaseReceipt) StockMovements() []entity.StockMovement {
	movements := make([]entity.StockMovement, 0, len(p.Lines))
	for _, line := range p.Lines {
		movements = append(movements, entity.NewStockMovement(
			p.ID, DocumentType, p.Date, entity.RecordTypeReceipt,
			line.ProductID, line.Quantity,
		))
	}
	return movements
}

func (p *PurchaseReceipt) productIDs() []id.ID {
	ids := make([]id.ID, 0, len(p.Lines))
	for _, line := range p.Lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}

var _ posting.Source = (*PurchaseReceipt)(nil)
