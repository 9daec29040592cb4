package insights

import (
	"context"
	"time"

	"moneta/internal/core/types"
)

// PeriodTotals holds the summed journal lines of a period, split by the
// account class they posted to.
type PeriodTotals struct {
	Revenue types.Money `db:"revenue" json:"revenue"`
	Expense types.Money `db:"expense" json:"expense"`
}

// Profit is revenue less expense.
func (t PeriodTotals) Profit() types.Money {
	return t.Revenue.Sub(t.Expense)
}

// Repository defines the aggregate reads insights derives from.
type Repository interface {
	// PeriodTotals sums journal lines in [from, to) against revenue and
	// expense class accounts. Revenue counts credit minus debit,
	// expense counts debit minus credit.
	PeriodTotals(ctx context.Context, from, to time.Time) (PeriodTotals, error)
}
