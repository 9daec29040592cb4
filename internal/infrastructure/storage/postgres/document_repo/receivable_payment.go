package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/internal/domain/documents/receivable_payment"
	"moneta/internal/infrastructure/storage/postgres"
)

const (
	receivablePaymentsTable       = "doc_receivable_payments"
	receivablePaymentDetailsTable = "doc_receivable_payment_details"
)

// ReceivablePaymentRepo implements receivable_payment.Repository.
type ReceivablePaymentRepo struct {
	*BaseDocumentRepo[*receivable_payment.ReceivablePayment]
}

// NewReceivablePaymentRepo creates a new receivable payment repository.
func NewReceivablePaymentRepo() *ReceivablePaymentRepo {
	return &ReceivablePaymentRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*receivable_payment.ReceivablePayment](
			receivablePaymentsTable,
			postgres.ExtractDBColumns[receivable_payment.ReceivablePayment](),
			func() *receivable_payment.ReceivablePayment { return &receivable_payment.ReceivablePayment{} },
		),
	}
}

// Create inserts the header and its allocations.
func (r *ReceivablePaymentRepo) Create(ctx context.Context, doc *receivable_payment.ReceivablePayment) error {
	if err := r.CreateHeader(ctx, doc); err != nil {
		return err
	}
	return r.saveDetails(ctx, doc.ID, doc.Details)
}

// Update saves the header and replaces the allocation set.
func (r *ReceivablePaymentRepo) Update(ctx context.Context, doc *receivable_payment.ReceivablePayment) error {
	if err := r.UpdateHeader(ctx, doc); err != nil {
		return err
	}
	return r.saveDetails(ctx, doc.ID, doc.Details)
}

// GetByID retrieves a payment with its allocations.
func (r *ReceivablePaymentRepo) GetByID(ctx context.Context, docID id.ID) (*receivable_payment.ReceivablePayment, error) {
	doc, err := r.GetHeaderByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc.Details, err = r.getDetails(ctx, docID, nil); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetByNumber retrieves a payment by reference number with its allocations.
func (r *ReceivablePaymentRepo) GetByNumber(ctx context.Context, number string) (*receivable_payment.ReceivablePayment, error) {
	doc, err := r.GetHeaderByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if doc.Details, err = r.getDetails(ctx, doc.ID, nil); err != nil {
		return nil, err
	}
	return doc, nil
}

// List retrieves receivable payments matching the filter.
func (r *ReceivablePaymentRepo) List(ctx context.Context, filter receivable_payment.ListFilter) (domain.ListResult[*receivable_payment.ReceivablePayment], error) {
	q := r.BaseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}
	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
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

// ListByInvoice returns payments allocating against the given invoice,
// each carrying only that invoice's allocations.
func (r *ReceivablePaymentRepo) ListByInvoice(ctx context.Context, invoiceID id.ID) ([]*receivable_payment.ReceivablePayment, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Expr(
			"id IN (SELECT document_id FROM "+receivablePaymentDetailsTable+" WHERE invoice_id = ?)",
			invoiceID,
		)).
		OrderBy("date ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*receivable_payment.ReceivablePayment
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by invoice: %w", err)
	}

	for _, item := range items {
		if item.Details, err = r.getDetails(ctx, item.ID, &invoiceID); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *ReceivablePaymentRepo) getDetails(ctx context.Context, docID id.ID, invoiceID *id.ID) ([]receivable_payment.PaymentDetail, error) {
	q := r.Builder().
		Select("line_id", "line_no", "invoice_id", "amount",
			"department_id", "project_id", "note", "created_at", "updated_at").
		From(receivablePaymentDetailsTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no ASC")
	if invoiceID != nil {
		q = q.Where(squirrel.Eq{"invoice_id": *invoiceID})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build details query: %w", err)
	}

	details := make([]receivable_payment.PaymentDetail, 0)
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &details, sql, args...); err != nil {
		return nil, fmt.Errorf("get details: %w", err)
	}
	return details, nil
}

func (r *ReceivablePaymentRepo) saveDetails(ctx context.Context, docID id.ID, details []receivable_payment.PaymentDetail) error {
	querier := r.getTxManager(ctx).GetQuerier(ctx)

	delSQL, delArgs, err := r.Builder().
		Delete(receivablePaymentDetailsTable).
		Where(squirrel.Eq{"document_id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build details delete: %w", err)
	}
	if _, err := querier.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("delete details: %w", err)
	}

	if len(details) == 0 {
		return nil
	}

	ins := r.Builder().
		Insert(receivablePaymentDetailsTable).
		Columns("line_id", "document_id", "line_no", "invoice_id", "amount",
			"department_id", "project_id", "note", "created_at", "updated_at")
	for _, detail := range details {
		ins = ins.Values(detail.LineID, docID, detail.LineNo, detail.InvoiceID, detail.Amount,
			detail.DepartmentID, detail.ProjectID, detail.Note, detail.CreatedAt, detail.UpdatedAt)
	}

	insSQL, insArgs, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build details insert: %w", err)
	}
	if _, err := querier.Exec(ctx, insSQL, insArgs...); err != nil {
		return fmt.Errorf("insert details: %w", err)
	}
	return nil
}

var _ receivable_payment.Repository = (*ReceivablePaymentRepo)(nil)
