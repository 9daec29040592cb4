package register_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"moneta/internal/core/entity"
	"moneta/internal/core/id"
	"moneta/internal/core/types"
	"moneta/internal/domain/registers/stock"
	"moneta/internal/infrastructure/storage/postgres"
)

const stockMovementsTable = "reg_stock_movements"

var stockMovementColumns = []string{
	"line_id", "recorder_id", "recorder_type", "period",
	"record_type", "product_id", "quantity", "created_at",
}

// StockRepo is the stock movement register store.
type StockRepo struct{}

// NewStockRepo creates a new stock movement repository.
func NewStockRepo() *StockRepo {
	return &StockRepo{}
}

func (r *StockRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *StockRepo) querier(ctx context.Context) postgres.Querier {
	return postgres.MustGetTxManager(ctx).GetQuerier(ctx)
}

// ReplaceByRecorder replaces all movements of a recorder document.
// Runs inside the caller's transaction so readers never observe a
// half-replaced set.
func (r *StockRepo) ReplaceByRecorder(ctx context.Context, recorderType string, recorderID id.ID, movements []entity.StockMovement) error {
	if err := r.DeleteByRecorder(ctx, recorderType, recorderID); err != nil {
		return err
	}
	if len(movements) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(movements))
	for _, m := range movements {
		rows = append(rows, []any{
			m.LineID, m.RecorderID, m.RecorderType, m.Period,
			m.RecordType, m.ProductID, m.Quantity, m.CreatedAt,
		})
	}

	inserter := postgres.NewBatchInserter(postgres.MustGetTxManager(ctx))
	n, err := inserter.CopyFromSlice(ctx, stockMovementsTable, stockMovementColumns, rows)
	if err != nil {
		return fmt.Errorf("copy stock movements: %w", err)
	}
	if n != int64(len(movements)) {
		return fmt.Errorf("copy stock movements: wrote %d of %d", n, len(movements))
	}
	return nil
}

// DeleteByRecorder removes all movements of a recorder document.
func (r *StockRepo) DeleteByRecorder(ctx context.Context, recorderType string, recorderID id.ID) error {
	sql, args, err := r.builder().
		Delete(stockMovementsTable).
		Where(squirrel.Eq{"recorder_type": recorderType}).
		Where(squirrel.Eq{"recorder_id": recorderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete stock movements: %w", err)
	}
	return nil
}

// ListByRecorder retrieves the movements of a recorder document.
func (r *StockRepo) ListByRecorder(ctx context.Context, recorderType string, recorderID id.ID) ([]entity.StockMovement, error) {
	q := r.builder().
		Select(stockMovementColumns...).
		From(stockMovementsTable).
		Where(squirrel.Eq{"recorder_type": recorderType}).
		Where(squirrel.Eq{"recorder_id": recorderID}).
		OrderBy("created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	movements := make([]entity.StockMovement, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return movements, nil
}

// Balance returns the signed on-hand quantity of a product as of the
// given moment. Receipts add, expenses subtract.
func (r *StockRepo) Balance(ctx context.Context, productID id.ID, asOf time.Time) (types.Quantity, error) {
	q := r.builder().
		Select(signedQuantitySum()).
		From(stockMovementsTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.LtOrEq{"period": asOf})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build balance query: %w", err)
	}

	var balance int64
	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&balance); err != nil {
		return 0, fmt.Errorf("stock balance: %w", err)
	}
	return types.Quantity(balance), nil
}

// Balances returns on-hand quantities of all products with any
// movement up to asOf.
func (r *StockRepo) Balances(ctx context.Context, asOf time.Time) ([]entity.StockBalance, error) {
	q := r.builder().
		Select("product_id",
			signedQuantitySum()+" AS quantity",
			"MAX(period) AS last_movement_at",
			"MAX(created_at) AS updated_at").
		From(stockMovementsTable).
		Where(squirrel.LtOrEq{"period": asOf}).
		GroupBy("product_id").
		OrderBy("product_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build balances query: %w", err)
	}

	balances := make([]entity.StockBalance, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("stock balances: %w", err)
	}
	return balances, nil
}

// Turnover returns total receipts and total expenses of a product over
// a period.
func (r *StockRepo) Turnover(ctx context.Context, productID id.ID, from, to time.Time) (types.Quantity, types.Quantity, error) {
	q := r.builder().
		Select().
		Column(squirrel.Alias(squirrel.Expr(
			"COALESCE(SUM(quantity) FILTER (WHERE record_type = ?), 0)",
			entity.RecordTypeReceipt), "total_in")).
		Column(squirrel.Alias(squirrel.Expr(
			"COALESCE(SUM(quantity) FILTER (WHERE record_type = ?), 0)",
			entity.RecordTypeExpense), "total_out")).
		From(stockMovementsTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.GtOrEq{"period": from}).
		Where(squirrel.LtOrEq{"period": to})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("build turnover query: %w", err)
	}

	var in, out int64
	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&in, &out); err != nil {
		return 0, 0, fmt.Errorf("stock turnover: %w", err)
	}
	return types.Quantity(in), types.Quantity(out), nil
}

func signedQuantitySum() string {
	return "COALESCE(SUM(CASE WHEN record_type = '" + string(entity.RecordTypeReceipt) +
		"' THEN quantity ELSE -quantity END), 0)"
}

var _ stock.Repository = (*StockRepo)(nil)
