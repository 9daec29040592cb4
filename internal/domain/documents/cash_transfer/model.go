// Package cash_transfer provides the CashTransfer document: moving
// money between two cash/bank accounts.
package cash_transfer

import (
	"context"

	"moneta/internal/core/apperror"
	"moneta/internal/core/entity"
	"moneta/internal/core/id"
	"moneta/internal/core/types"
	"moneta/internal/domain/posting"
)

// DocumentType is the stable type name used in the journal source key.
const DocumentType = "cash_transfer"

// CashTransfer moves an amount from one cash/bank account to another.
// It has no detail lines; the journal is built from the header alone.
type CashTransfer struct {
	entity.Document

	FromAccountID id.ID `db:"from_account_id" json:"fromAccountId"`
	ToAccountID   id.ID `db:"to_account_id" json:"toAccountId"`

	Amount types.Money `db:"amount" json:"amount"`
}

// NewCashTransfer creates a new cash transfer document.
func NewCashTransfer(organizationID string, from, to id.ID, amount types.Money) *CashTransfer {
	return &CashTransfer{
		Document:      entity.NewDocument(organizationID),
		FromAccountID: from,
		ToAccountID:   to,
		Amount:        amount,
	}
}

// Validate implements entity.Validatable.
func (c *CashTransfer) Validate(ctx context.Context) error {
	if err := c.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(c.FromAccountID) {
		return apperror.NewValidation("source account is required").
			WithDetail("field", "fromAccountId")
	}
	if id.IsNil(c.ToAccountID) {
		return apperror.NewValidation("target account is required").
			WithDetail("field", "toAccountId")
	}
	if c.FromAccountID == c.ToAccountID {
		return apperror.NewValidation("source and target accounts must differ").
			WithDetail("field", "toAccountId")
	}
	if !c.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}

	return nil
}

// GetDocumentType implements posting.Source.
func (c *CashTransfer) GetDocumentType() string {
	return DocumentType
}

// GetTotalAmount implements posting.Source.
func (c *CashTransfer) GetTotalAmount() types.Money {
	return c.Amount
}

// BuildJournal implements posting.Source: debit the target account,
// credit the source account, both for the full amount.
func (c *CashTransfer) BuildJournal(ctx context.Context, r posting.Resolver) (*posting.Draft, error) {
	provenance := posting.LineSpec{
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	draft := posting.NewDraft(entity.CategoryCashTransfer)
	draft.Debit("to_account", &c.ToAccountID, c.Amount, provenance)
	draft.Credit("from_account", &c.FromAccountID, c.Amount, provenance)
	return draft, nil
}

var _ posting.Source = (*CashTransfer)(nil)
