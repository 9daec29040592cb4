// Package expense provides the Expense document: money paid out of a
// cash/bank account, itemized into expense lines.
package expense

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
const DocumentType = "expense"

// Expense records money paid out, credited from the header account and
// debited to the expense account of each line.
type Expense struct {
	entity.Document

	// AccountID is the cash/bank account the money leaves
	AccountID id.ID `db:"account_id" json:"accountId"`

	// TotalAmount is calculated from lines
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	// Table part
	Lines []ExpenseLine `db:"-" json:"lines"`
}

// ExpenseLine is one itemized expense.
type ExpenseLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// AccountID is the expense account; a missing account drops the
	// journal leg at posting time
	AccountID *id.ID `db:"account_id" json:"accountId,omitempty"`

	Amount       types.Money `db:"amount" json:"amount"`
	DepartmentID *id.ID      `db:"department_id" json:"departmentId,omitempty"`
	ProjectID    *id.ID      `db:"project_id" json:"projectId,omitempty"`
	Note         string      `db:"note" json:"note,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewExpense creates a new expense document.
func NewExpense(organizationID string, accountID id.ID) *Expense {
	return &Expense{
		Document:    entity.NewDocument(organizationID),
		AccountID:   accountID,
		TotalAmount: types.Zero(),
		Lines:       make([]ExpenseLine, 0),
	}
}

// AddLine appends an expense line and recalculates the total.
func (e *Expense) AddLine(accountID *id.ID, amount types.Money, note string) {
	now := time.Now().UTC()
	e.Lines = append(e.Lines, ExpenseLine{
		LineID:    id.New(),
		LineNo:    len(e.Lines) + 1,
		AccountID: accountID,
		Amount:    amount,
		Note:      note,
		CreatedAt: now,
		UpdatedAt: now,
	})
	e.RecalculateTotals()
}

// RecalculateTotals updates the document total from its lines.
func (e *Expense) RecalculateTotals() {
	total := types.Zero()
	for _, line := range e.Lines {
		total = total.Add(line.Amount)
	}
	e.TotalAmount = total
}

// Validate implements entity.Validatable.
func (e *Expense) Validate(ctx context.Context) error {
	if err := e.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(e.AccountID) {
		return apperror.NewValidation("paying account is required").
			WithDetail("field", "accountId")
	}
	if len(e.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}
	for i, line := range e.Lines {
		if !line.Amount.IsPositive() {
			return apperror.NewValidation("line amount must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// GetDocumentType implements posting.Source.
func (e *Expense) GetDocumentType() string {
	return DocumentType
}

// GetTotalAmount implements posting.Source.
func (e *Expense) GetTotalAmount() types.Money {
	return e.TotalAmount
}

// BuildJournal implements posting.Source: credit the paying account for
// the document total at the default department, debit each line's
// expense account.
func (e *Expense) BuildJournal(ctx context.Context, r posting.Resolver) (*posting.Draft, error) {
	draft := posting.NewDraft(entity.CategoryExpense)

	draft.Credit("paying_account", &e.AccountID, e.TotalAmount, posting.LineSpec{
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	})

	for _, line := range e.Lines {
		draft.Debit("expense_account", line.AccountID, line.Amount, posting.LineSpec{
			DepartmentID: line.DepartmentID,
			ProjectID:    line.ProjectID,
			Note:         line.Note,
			CreatedBy:    e.CreatedBy,
			CreatedAt:    line.CreatedAt,
			UpdatedAt:    line.UpdatedAt,
		})
	}

	return draft, nil
}

var _ posting.Source = (*Expense)(nil)
