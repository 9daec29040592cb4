package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"moneta/internal/core/id"
	"moneta/internal/core/types"
	"moneta/internal/domain/catalogs/account"
	"moneta/internal/domain/insights"
	"moneta/internal/infrastructure/storage/postgres"
)

// InsightsRepo implements insights.Repository over the journal
// register and the chart of accounts.
type InsightsRepo struct{}

// NewInsightsRepo creates a new insights repository.
func NewInsightsRepo() *InsightsRepo {
	return &InsightsRepo{}
}

// PeriodTotals sums journal lines in [from, to) by account class.
// Revenue accounts accumulate on the credit side, expense accounts on
// the debit side, so each class nets the opposite side off.
func (r *InsightsRepo) PeriodTotals(ctx context.Context, from, to time.Time) (insights.PeriodTotals, error) {
	var totals insights.PeriodTotals

	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select().
		Column(squirrel.Alias(squirrel.Expr(
			"COALESCE(SUM(CASE WHEN a.class = ? THEN l.credit - l.debit ELSE 0 END), 0)",
			account.ClassRevenue), "revenue")).
		Column(squirrel.Alias(squirrel.Expr(
			"COALESCE(SUM(CASE WHEN a.class = ? THEN l.debit - l.credit ELSE 0 END), 0)",
			account.ClassExpense), "expense")).
		From("reg_journal_lines l").
		Join("reg_journals j ON j.id = l.journal_id").
		Join("cat_accounts a ON a.id = l.account_id").
		Where(squirrel.GtOrEq{"j.date": from}).
		Where(squirrel.Lt{"j.date": to})

	sql, args, err := q.ToSql()
	if err != nil {
		return totals, fmt.Errorf("build totals query: %w", err)
	}

	querier := postgres.MustGetTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&totals.Revenue, &totals.Expense); err != nil {
		return totals, fmt.Errorf("period totals: %w", err)
	}
	return totals, nil
}

// AccountTurnover sums one account's journal activity in [from, to).
// Kept alongside PeriodTotals for drill-down views.
func (r *InsightsRepo) AccountTurnover(ctx context.Context, accountID id.ID, from, to time.Time) (debit, credit types.Money, err error) {
	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("COALESCE(SUM(l.debit), 0)", "COALESCE(SUM(l.credit), 0)").
		From("reg_journal_lines l").
		Join("reg_journals j ON j.id = l.journal_id").
		Where(squirrel.Eq{"l.account_id": accountID}).
		Where(squirrel.GtOrEq{"j.date": from}).
		Where(squirrel.Lt{"j.date": to})

	sql, args, err := q.ToSql()
	if err != nil {
		return types.Zero(), types.Zero(), fmt.Errorf("build turnover query: %w", err)
	}

	querier := postgres.MustGetTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&debit, &credit); err != nil {
		return types.Zero(), types.Zero(), fmt.Errorf("account turnover: %w", err)
	}
	return debit, credit, nil
}

var _ insights.Repository = (*InsightsRepo)(nil)
