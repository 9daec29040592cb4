package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/internal/domain/documents/expense"
	"moneta/internal/infrastructure/storage/postgres"
)

const (
	expensesTable     = "doc_expenses"
	expenseLinesTable = "doc_expense_lines"
)

// ExpenseRepo implements expense.Repository.
type ExpenseRepo struct {
	*BaseDocumentRepo[*expense.Expense]
}

// NewExpenseRepo creates a new expense repository.
func NewExpenseRepo() *ExpenseRepo {
	return &ExpenseRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*expense.Expense](
			expensesTable,
			postgres.ExtractDBColumns[expense.Expense](),
			func() *expense.Expense { return &expense.Expense{} },
		),
	}
}

// Create inserts the header and its lines.
func (r *ExpenseRepo) Create(ctx context.Context, doc *expense.Expense) error {
	if err := r.CreateHeader(ctx, doc); err != nil {
		return err
	}
	return r.saveLines(ctx, doc.ID, doc.Lines)
}

// Update saves the header and replaces the line set.
func (r *ExpenseRepo) Update(ctx context.Context, doc *expense.Expense) error {
	if err := r.UpdateHeader(ctx, doc); err != nil {
		return err
	}
	return r.saveLines(ctx, doc.ID, doc.Lines)
}

// GetByID retrieves a document with its lines.
func (r *ExpenseRepo) GetByID(ctx context.Context, docID id.ID) (*expense.Expense, error) {
	doc, err := r.GetHeaderByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc.Lines, err = r.getLines(ctx, docID); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetByNumber retrieves a document by reference number with its lines.
func (r *ExpenseRepo) GetByNumber(ctx context.Context, number string) (*expense.Expense, error) {
	doc, err := r.GetHeaderByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if doc.Lines, err = r.getLines(ctx, doc.ID); err != nil {
		return nil, err
	}
	return doc, nil
}

// List retrieves expenses matching the filter.
func (r *ExpenseRepo) List(ctx context.Context, filter expense.ListFilter) (domain.ListResult[*expense.Expense], error) {
	q := r.BaseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}
	if filter.AccountID != nil {
		q = q.Where(squirrel.Eq{"account_id": *filter.AccountID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"number": "%" + filter.Search + "%"})
	}

	return r.ListHeaders(ctx, q, filter.ListFilter)
}

func (r *ExpenseRepo) getLines(ctx context.Context, docID id.ID) ([]expense.ExpenseLine, error) {
	q := r.Builder().
		Select("line_id", "line_no", "account_id", "amount",
			"department_id", "project_id", "note", "created_at", "updated_at").
		From(expenseLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lines query: %w", err)
	}

	lines := make([]expense.ExpenseLine, 0)
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	return lines, nil
}

func (r *ExpenseRepo) saveLines(ctx context.Context, docID id.ID, lines []expense.ExpenseLine) error {
	querier := r.getTxManager(ctx).GetQuerier(ctx)

	delSQL, delArgs, err := r.Builder().
		Delete(expenseLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build lines delete: %w", err)
	}
	if _, err := querier.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("delete lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	ins := r.Builder().
		Insert(expenseLinesTable).
		Columns("line_id", "document_id", "line_no", "account_id", "amount",
			"department_id", "project_id", "note", "created_at", "updated_at")
	for _, line := range lines {
		ins = ins.Values(line.LineID, docID, line.LineNo, line.AccountID, line.Amount,
			line.DepartmentID, line.ProjectID, line.Note, line.CreatedAt, line.UpdatedAt)
	}

	insSQL, insArgs, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build lines insert: %w", err)
	}
	if _, err := querier.Exec(ctx, insSQL, insArgs...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}
	return nil
}

var _ expense.Repository = (*ExpenseRepo)(nil)
