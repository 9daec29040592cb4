// Package income provides the Income document: money received into a
// cash/bank account, itemized into income lines.
package income

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
const DocumentType = "income"

// Income records money received, debited to the header account and
// credited to the income account of each line. Mirror image of Expense.
type Income struct {
	entity.Document

	// AccountID is the cash/bank account the money arrives at
	AccountID id.ID `db:"account_id" json:"accountId"`

	// TotalAmount is calculated from lines
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	// Table part
	Lines []IncomeLine `db:"-" json:"lines"`
}

// IncomeLine is one itemized income.
type IncomeLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// AccountID is the income account; a missing account drops the
	// journal leg at posting time
	AccountID *id.ID `db:"account_id" json:"accountId,omitempty"`

	Amount       types.Money `db:"amount" json:"amount"`
	DepartmentID *id.ID      `db:"department_id" json:"departmentId,omitempty"`
	ProjectID    *id.ID      `db:"project_id" json:"projectId,omitempty"`
	Note         string      `db:"note" json:"note,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewIncome creates a new income document.
func NewIncome(organizationID string, accountID id.ID) *Income {
	return &Income{
		Document:    entity.NewDocument(organizationID),
		AccountID:   accountID,
		TotalAmount: types.Zero(),
		Lines:       make([]IncomeLine, 0),
	}
}

// AddLine appends an income line and recalculates the total.
func (in *Income) AddLine(accountID *id.ID, amount types.Money, note string) {
	now := time.Now().UTC()
	in.Lines = append(in.Lines, IncomeLine{
		LineID:    id.New(),
		LineNo:    len(in.Lines) + 1,
		AccountID: accountID,
		Amount:    amount,
		Note:      note,
		CreatedAt: now,
		UpdatedAt: now,
	})
	in.RecalculateTotals()
}

// RecalculateTotals updates the document total from its lines.
func (in *Income) RecalculateTotals() {
	total := types.Zero()
	for _, line := range in.Lines {
		total = total.Add(line.Amount)
	}
	in.TotalAmount = total
}

// Validate implements entity.Validatable.
func (in *Income) Validate(ctx context.Context) error {
	if err := in.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(in.AccountID) {
		return apperror.NewValidation("receiving account is required").
			WithDetail("field", "accountId")
	}
	if len(in.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	for i, line := range in.Lines {
		if !line.Amount.IsPositive() {
			return apperror.NewValidation("line amount must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// GetDocumentType implements posting.Source.
func (in *Income) GetDocumentType() string {
	return DocumentType
}

// GetTotalAmount implements posting.Source.
func (in *Income) GetTotalAmount() types.Money {
	return in.TotalAmount
}

// BuildJournal implements posting.Source: debit the receiving account
// for the document total at the default department, credit each line's
// income account.
func (in *Income) BuildJournal(ctx context.Context, r posting.Resolver) (*posting.Draft, error) {
	draft := posting.NewDraft(entity.CategoryIncome)

	draft.Debit("receiving_account", &in.AccountID, in.TotalAmount, posting.LineSpec{
		CreatedBy: in.CreatedBy,
		CreatedAt: in.CreatedAt,
		UpdatedAt: in.UpdatedAt,
	})

	for _, line := range in.Lines {
		draft.Credit("income_account", line.AccountID, line.Amount, posting.LineSpec{
			DepartmentID: line.DepartmentID,
			ProjectID:    line.ProjectID,
			Note:         line.Note,
			CreatedBy:    in.CreatedBy,
			CreatedAt:    line.CreatedAt,
			UpdatedAt:    line.UpdatedAt,
		})
	}

	return draft, nil
}

var _ posting.Source = (*Income)(nil)
