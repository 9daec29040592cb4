// Package account provides the chart-of-accounts catalog.
package account

import (
	"context"

	"moneta/internal/core/apperror"
	"moneta/internal/core/entity"
)

// Class defines the account classification.
type Class string

const (
	ClassAsset     Class = "asset"
	ClassLiability Class = "liability"
	ClassEquity    Class = "equity"
	ClassRevenue   Class = "revenue"
	ClassExpense   Class = "expense"
)

// Account represents a ledger account in the chart of accounts.
type Account struct {
	entity.Catalog

	// Class defines the account classification
	Class Class `db:"class" json:"class"`

	// IsCashBank marks cash and bank accounts usable by payment and
	// transfer documents
	IsCashBank bool `db:"is_cash_bank" json:"isCashBank"`

	// Description is an optional free-text note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewAccount creates a new Account with required fields.
func NewAccount(code, name string, class Class) *Account {
	return &Account{
		Catalog: entity.NewCatalog(code, name),
		Class:   class,
	}
}

// Validate implements entity.Validatable.
func (a *Account) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidClass(a.Class) {
		return apperror.NewValidation("invalid account class").
			WithDetail("field", "class").
			WithDetail("value", string(a.Class))
	}

	// Cash/bank accounts are always assets
	if a.IsCashBank && a.Class != ClassAsset {
		return apperror.NewValidation("cash/bank account must be an asset").
			WithDetail("field", "isCashBank")
	}

	return nil
}

// IsDebit returns true for accounts whose normal balance is on the
// debit side (assets and expenses).
func (a *Account) IsDebit() bool {
	return a.Class == ClassAsset || a.Class == ClassExpense
}

func isValidClass(c Class) bool {
	switch c {
	case ClassAsset, ClassLiability, ClassEquity, ClassRevenue, ClassExpense:
		return true
	}
	return false
}
