package insights

import (
	"context"
	"time"

	"moneta/internal/core/apperror"
	"moneta/internal/core/types"
)

// Summary is the dashboard view of one period.
type Summary struct {
	From    time.Time    `json:"from"`
	To      time.Time    `json:"to"`
	Revenue types.Money  `json:"revenue"`
	Expense types.Money  `json:"expense"`
	Profit  types.Money  `json:"profit"`
	Margin  *types.Money `json:"margin,omitempty"`
}

// Comparison sets a period's summary against the preceding period of
// equal length.
type Comparison struct {
	Current       Summary      `json:"current"`
	Previous      Summary      `json:"previous"`
	RevenueGrowth *types.Money `json:"revenueGrowth,omitempty"`
	ExpenseGrowth *types.Money `json:"expenseGrowth,omitempty"`
	ProfitGrowth  *types.Money `json:"profitGrowth,omitempty"`
}

// Service derives dashboard figures.
type Service struct {
	repo Repository
}

// NewService creates an insights service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Summarize returns the period's revenue, expense, profit and margin.
func (s *Service) Summarize(ctx context.Context, from, to time.Time) (Summary, error) {
	if !to.After(from) {
		return Summary{}, apperror.NewValidation("period end must be after period start")
	}

	totals, err := s.repo.PeriodTotals(ctx, from, to)
	if err != nil {
		return Summary{}, err
	}

	profit := totals.Profit()
	return Summary{
		From:    from,
		To:      to,
		Revenue: totals.Revenue,
		Expense: totals.Expense,
		Profit:  profit,
		Margin:  Margin(profit, totals.Revenue),
	}, nil
}

// Compare summarizes the period and the immediately preceding period of
// the same length, with growth percentages between the two.
func (s *Service) Compare(ctx context.Context, from, to time.Time) (Comparison, error) {
	current, err := s.Summarize(ctx, from, to)
	if err != nil {
		return Comparison{}, err
	}

	span := to.Sub(from)
	previous, err := s.Summarize(ctx, from.Add(-span), from)
	if err != nil {
		return Comparison{}, err
	}

	return Comparison{
		Current:       current,
		Previous:      previous,
		RevenueGrowth: Growth(current.Revenue, previous.Revenue),
		ExpenseGrowth: Growth(current.Expense, previous.Expense),
		ProfitGrowth:  Growth(current.Profit, previous.Profit),
	}, nil
}
