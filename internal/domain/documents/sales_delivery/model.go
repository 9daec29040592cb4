// Package sales_delivery provides the SalesDelivery document: goods
// shipped to a customer, not yet invoiced.
package sales_delivery

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
const DocumentType = "sales_delivery"

// SalesDelivery moves goods out of stock and accrues the delivered
// value: per line, debit the goods-delivered account and credit
// inventory.
type SalesDelivery struct {
	entity.Document

	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// TotalAmount is calculated from lines
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	Lines []DeliveryLine `db:"-" json:"lines"`
}

// DeliveryLine is one shipped product, valued at cost.
type DeliveryLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`

	Quantity types.Quantity `db:"quantity" json:"quantity"`
	Cost     types.Money    `db:"cost" json:"cost"`
	Amount   types.Money    `db:"amount" json:"amount"`

	DepartmentID *id.ID `db:"department_id" json:"departmentId,omitempty"`
	ProjectID    *id.ID `db:"project_id" json:"projectId,omitempty"`
	Note         string `db:"note" json:"note,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewSalesDelivery creates a new sales delivery document.
func NewSalesDelivery(organizationID string, customerID id.ID) *SalesDelivery {
	return &SalesDelivery{
		Document:    entity.NewDocument(organizationID),
		CustomerID:  customerID,
		TotalAmount: types.Zero(),
		Lines:       make([]DeliveryLine, 0),
	}
}

// AddLine appends a delivery line and recalculates the total.
func (s *SalesDelivery) AddLine(productID id.ID, quantity types.Quantity, cost types.Money) {
	now := time.Now().UTC()
	amount := cost.Mul(quantity.Decimal())
	s.Lines = append(s.Lines, DeliveryLine{
		LineID:    id.New(),
		LineNo:    len(s.Lines) + 1,
		ProductID: productID,
		Quantity:  quantity,
		Cost:      cost,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	})
	s.RecalculateTotals()
}

// RecalculateTotals updates the document total from its lines.
func (s *SalesDelivery) RecalculateTotals() {
	total := types.Zero()
	for _, line := range s.Lines {
		total = total.Add(line.Amount)
	}
	s.TotalAmount = total
}

// Validate implements entity.Validatable.
func (s *SalesDelivery) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(s.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if len(s.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
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
func (s *SalesDelivery) GetDocumentType() string {
	return DocumentType
}

// GetTotalAmount implements posting.Source.
func (s *SalesDelivery) GetTotalAmount() types.Money {
	return s.TotalAmount
}

// BuildJournal implements posting.Source. Per line: debit the
// category's goods-delivered account, credit the category's inventory
// account, both for the line amount; either leg is dropped when its
// account is not mapped.
func (s *SalesDelivery) BuildJournal(ctx context.Context, r posting.Resolver) (*posting.Draft, error) {
	postings, err := r.ProductPostings(ctx, s.productIDs())
	if err != nil {
		return nil, err
	}

	draft := posting.NewDraft(entity.CategorySalesDelivery)
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
		draft.Debit("sales_delivery", pp.SalesDeliveryAccountID, line.Amount, spec)
		draft.Credit("inventory", pp.InventoryAccountID, line.Amount, spec)
	}
	return draft, nil
}

// StockMovements records every line as an expense out of the stock
// register.
func (s *SalesDelivery) StockMovements() []entity.StockMovement {
	movements := make([]entity.StockMovement, 0, len(s.Lines))
	for _, line := range s.Lines {
		movements = append(movements, entity.NewStockMovement(
			s.ID, DocumentType, s.Date, entity.RecordTypeExpense,
			line.ProductID, line.Quantity,
		))
	}
	return movements
}

func (s *SalesDelivery) productIDs() []id.ID {
	ids := make([]id.ID, 0, len(s.Lines))
	for _, line := range s.Lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}

var _ posting.Source = (*SalesDelivery)(nil)
