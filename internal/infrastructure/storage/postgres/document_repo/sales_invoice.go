package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/internal/domain/documents/sales_invoice"
	"moneta/internal/infrastructure/storage/postgres"
)

const (
	salesInvoicesTable     = "doc_sales_invoices"
	salesInvoiceLinesTable = "doc_sales_invoice_lines"
)

// SalesInvoiceRepo implements sales_invoice.Repository.
type SalesInvoiceRepo struct {
	*BaseDocumentRepo[*sales_invoice.SalesInvoice]
}

// NewSalesInvoiceRepo creates a new sales invoice repository.
func NewSalesInvoiceRepo() *SalesInvoiceRepo {
	return &SalesInvoiceRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*sales_invoice.SalesInvoice](
			salesInvoicesTable,
			postgres.ExtractDBColumns[sales_invoice.SalesInvoice](),
			func() *sales_invoice.SalesInvoice { return &sales_invoice.SalesInvoice{} },
		),
	}
}

// Create inserts the header and its lines.
func (r *SalesInvoiceRepo) Create(ctx context.Context, doc *sales_invoice.SalesInvoice) error {
	if err := r.CreateHeader(ctx, doc); err != nil {
		return err
	}
	return r.saveLines(ctx, doc.ID, doc.Lines)
}

// Update saves the header and replaces the line set.
func (r *SalesInvoiceRepo) Update(ctx context.Context, doc *sales_invoice.SalesInvoice) error {
	if err := r.UpdateHeader(ctx, doc); err != nil {
		return err
	}
	return r.saveLines(ctx, doc.ID, doc.Lines)
}

// GetByID retrieves a document with its lines.
func (r *SalesInvoiceRepo) GetByID(ctx context.Context, docID id.ID) (*sales_invoice.SalesInvoice, error) {
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
func (r *SalesInvoiceRepo) GetByNumber(ctx context.Context, number string) (*sales_invoice.SalesInvoice, error) {
	doc, err := r.GetHeaderByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if doc.Lines, err = r.getLines(ctx, doc.ID); err != nil {
		return nil, err
	}
	return doc, nil
}

// List retrieves sales invoices matching the filter.
func (r *SalesInvoiceRepo) List(ctx context.Context, filter sales_invoice.ListFilter) (domain.ListResult[*sales_invoice.SalesInvoice], error) {
	q := r.BaseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}
	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.HasTax != nil {
		if *filter.HasTax {
			q = q.Where(squirrel.Gt{"tax_amount": 0})
		} else {
			q = q.Where(squirrel.LtOrEq{"tax_amount": 0})
		}
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

func (r *SalesInvoiceRepo) getLines(ctx context.Context, docID id.ID) ([]sales_invoice.InvoiceLine, error) {
	q := r.Builder().
		Select("line_id", "line_no", "product_id", "quantity", "price", "amount",
			"department_id", "project_id", "note", "created_at", "updated_at").
		From(salesInvoiceLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lines query: %w", err)
	}

	lines := make([]sales_invoice.InvoiceLine, 0)
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	return lines, nil
}

func (r *SalesInvoiceRepo) saveLines(ctx context.Context, docID id.ID, lines []sales_invoice.InvoiceLine) error {
	querier := r.getTxManager(ctx).GetQuerier(ctx)

	delSQL, delArgs, err := r.Builder().
		Delete(salesInvoiceLinesTable).
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
		Insert(salesInvoiceLinesTable).
		Columns("line_id", "document_id", "line_no", "product_id", "quantity", "price",
			"amount", "department_id", "project_id", "note", "created_at", "updated_at")
	for _, line := range lines {
		ins = ins.Values(line.LineID, docID, line.LineNo, line.ProductID, line.Quantity,
			line.Price, line.Amount, line.DepartmentID, line.ProjectID, line.Note,
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

var _ sales_invoice.Repository = (*SalesInvoiceRepo)(nil)
