package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/internal/domain/documents/sales_delivery"
	"moneta/internal/infrastructure/storage/postgres"
)

const (
	salesDeliveriesTable    = "doc_sales_deliveries"
	salesDeliveryLinesTable = "doc_sales_delivery_lines"
)

// SalesDeliveryRepo implements sales_delivery.Repository.
type SalesDeliveryRepo struct {
	*BaseDocumentRepo[*sales_delivery.SalesDelivery]
}

// NewSalesDeliveryRepo creates a new sales delivery repository.
func NewSalesDeliveryRepo() *SalesDeliveryRepo {
	return &SalesDeliveryRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*sales_delivery.SalesDelivery](
			salesDeliveriesTable,
			postgres.ExtractDBColumns[sales_delivery.SalesDelivery](),
			func() *sales_delivery.SalesDelivery { return &sales_delivery.SalesDelivery{} },
		),
	}
}

// Create inserts the header and its lines.
func (r *SalesDeliveryRepo) Create(ctx context.Context, doc *sales_delivery.SalesDelivery) error {
	if err := r.CreateHeader(ctx, doc); err != nil {
		return err
	}
	return r.saveLines(ctx, doc.ID, doc.Lines)
}

// Update saves the header and replaces the line set.
func (r *SalesDeliveryRepo) Update(ctx context.Context, doc *sales_delivery.SalesDelivery) error {
	if err := r.UpdateHeader(ctx, doc); err != nil {
		return err
	}
	return r.saveLines(ctx, doc.ID, doc.Lines)
}

// GetByID retrieves a document with its lines.
func (r *SalesDeliveryRepo) GetByID(ctx context.Context, docID id.ID) (*sales_delivery.SalesDelivery, error) {
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
func (r *SalesDeliveryRepo) GetByNumber(ctx context.Context, number string) (*sales_delivery.SalesDelivery, error) {
	doc, err := r.GetHeaderByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if doc.Lines, err = r.getLines(ctx, doc.ID); err != nil {
		return nil, err
	}
	return doc, nil
}

// List retrieves sales deliveries matching the filter.
func (r *SalesDeliveryRepo) List(ctx context.Context, filter sales_delivery.ListFilter) (domain.ListResult[*sales_delivery.SalesDelivery], error) {
	q := r.BaseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}
	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
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

func (r *SalesDeliveryRepo) getLines(ctx context.Context, docID id.ID) ([]sales_delivery.DeliveryLine, error) {
	q := r.Builder().
		Select("line_id", "line_no", "product_id", "quantity", "cost", "amount",
			"department_id", "project_id", "note", "created_at", "updated_at").
		From(salesDeliveryLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lines query: %w", err)
	}

	lines := make([]sales_delivery.DeliveryLine, 0)
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	return lines, nil
}

func (r *SalesDeliveryRepo) saveLines(ctx context.Context, docID id.ID, lines []sales_delivery.DeliveryLine) error {
	querier := r.getTxManager(ctx).GetQuerier(ctx)

	delSQL, delArgs, err := r.Builder().
		Delete(salesDeliveryLinesTable).
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
		Insert(salesDeliveryLinesTable).
		Columns("line_id", "document_id", "line_no", "product_id", "quantity", "cost",
			"amount", "department_id", "project_id", "note", "created_at", "updated_at")
	for _, line := range lines {
		ins = ins.Values(line.LineID, docID, line.LineNo, line.ProductID, line.Quantity,
			line.Cost, line.Amount, line.DepartmentID, line.ProjectID, line.Note,
			line.CreatedAt, line.UpdatedAt)
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

var _ sales_delivery.Repository = (*SalesDeliveryRepo)(nil)
