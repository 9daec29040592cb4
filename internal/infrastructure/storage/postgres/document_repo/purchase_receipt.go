package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/internal/domain/documents/purchase_receipt"
	"moneta/internal/infrastructure/storage/postgres"
)

const (
	purchaseReceiptsTable     = "doc_purchase_receipts"
	purchaseReceiptLinesTable = "doc_purchase_receipt_lines"
)

// PurchaseReceiptRepo implements purchase_receipt.Repository.
type PurchaseReceiptRepo struct {
	*BaseDocumentRepo[*purchase_receipt.PurchaseReceipt]
}

// NewPurchaseReceiptRepo creates a new purchase receipt repository.
func NewPurchaseReceiptRepo() *PurchaseReceiptRepo {
	return &PurchaseReceiptRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*purchase_receipt.PurchaseReceipt](
			purchaseReceiptsTable,
			postgres.ExtractDBColumns[purchase_receipt.PurchaseReceipt](),
			func() *purchase_receipt.PurchaseReceipt { return &purchase_receipt.PurchaseReceipt{} },
		),
	}
}

// Create inserts the header and its lines.
func (r *PurchaseReceiptRepo) Create(ctx context.Context, doc *purchase_receipt.PurchaseReceipt) error {
	if err := r.CreateHeader(ctx, doc); err != nil {
		return err
	}
	return r.saveLines(ctx, doc.ID, doc.Lines)
}

// Update saves the header and replaces the line set.
func (r *PurchaseReceiptRepo) Update(ctx context.Context, doc *purchase_receipt.PurchaseReceipt) error {
	if err := r.UpdateHeader(ctx, doc); err != nil {
		return err
	}
	return r.saveLines(ctx, doc.ID, doc.Lines)
}

// GetByID retrieves a document with its lines.
func (r *PurchaseReceiptRepo) GetByID(ctx context.Context, docID id.ID) (*purchase_receipt.PurchaseReceipt, error) {
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
func (r *PurchaseReceiptRepo) GetByNumber(ctx context.Context, number string) (*purchase_receipt.PurchaseReceipt, error) {
	doc, err := r.GetHeaderByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if doc.Lines, err = r.getLines(ctx, doc.ID); err != nil {
		return nil, err
	}
	return doc, nil
}

// List retrieves purchase receipts matching the filter. Lines are not
// loaded for listings.
func (r *PurchaseReceiptRepo) List(ctx context.Context, filter purchase_receipt.ListFilter) (domain.ListResult[*purchase_receipt.PurchaseReceipt], error) {
	q := r.BaseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}
	if filter.VendorID != nil {
		q = q.Where(squirrel.Eq{"vendor_id": *filter.VendorID})
	}
	if filter.IsBeginning != nil {
		q = q.Where(squirrel.Eq{"is_beginning": *filter.IsBeginning})
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

func (r *PurchaseReceiptRepo) getLines(ctx context.Context, docID id.ID) ([]purchase_receipt.ReceiptLine, error) {
	q := r.Builder().
		Select("line_id", "line_no", "product_id", "quantity", "price", "amount",
			"department_id", "project_id", "note", "created_at", "updated_at").
		From(purchaseReceiptLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lines query: %w", err)
	}

	lines := make([]purchase_receipt.ReceiptLine, 0)
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	return lines, nil
}

// saveLines replaces all lines of a document.
func (r *PurchaseReceiptRepo) saveLines(ctx context.Context, docID id.ID, lines []purchase_receipt.ReceiptLine) error {
	querier := r.getTxManager(ctx).GetQuerier(ctx)

	delSQL, delArgs, err := r.Builder().
		Delete(purchaseReceiptLinesTable).
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
		Insert(purchaseReceiptLinesTable).
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

var _ purchase_receipt.Repository = (*PurchaseReceiptRepo)(nil)
