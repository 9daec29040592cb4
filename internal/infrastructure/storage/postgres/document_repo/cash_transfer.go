package document_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/internal/domain/documents/cash_transfer"
	"moneta/internal/infrastructure/storage/postgres"
)

const cashTransfersTable = "doc_cash_transfers"

// CashTransferRepo implements cash_transfer.Repository. Transfers have
// no table part, so the base handles everything.
type CashTransferRepo struct {
	*BaseDocumentRepo[*cash_transfer.CashTransfer]
}

// NewCashTransferRepo creates a new cash transfer repository.
func NewCashTransferRepo() *CashTransferRepo {
	return &CashTransferRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*cash_transfer.CashTransfer](
			cashTransfersTable,
			postgres.ExtractDBColumns[cash_transfer.CashTransfer](),
			func() *cash_transfer.CashTransfer { return &cash_transfer.CashTransfer{} },
		),
	}
}

// Create inserts the transfer.
func (r *CashTransferRepo) Create(ctx context.Context, doc *cash_transfer.CashTransfer) error {
	return r.CreateHeader(ctx, doc)
}

// Update saves the transfer.
func (r *CashTransferRepo) Update(ctx context.Context, doc *cash_transfer.CashTransfer) error {
	return r.UpdateHeader(ctx, doc)
}

// GetByID retrieves a transfer by ID.
func (r *CashTransferRepo) GetByID(ctx context.Context, docID id.ID) (*cash_transfer.CashTransfer, error) {
	return r.GetHeaderByID(ctx, docID)
}

// GetByNumber retrieves a transfer by reference number.
func (r *CashTransferRepo) GetByNumber(ctx context.Context, number string) (*cash_transfer.CashTransfer, error) {
	return r.GetHeaderByNumber(ctx, number)
}

// List retrieves cash transfers matching the filter.
func (r *CashTransferRepo) List(ctx context.Context, filter cash_transfer.ListFilter) (domain.ListResult[*cash_transfer.CashTransfer], error) {
	q := r.BaseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}
	if filter.FromAccountID != nil {
		q = q.Where(squirrel.Eq{"from_account_id": *filter.FromAccountID})
	}
	if filter.ToAccountID != nil {
		q = q.Where(squirrel.Eq{"to_account_id": *filter.ToAccountID})
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

var _ cash_transfer.Repository = (*CashTransferRepo)(nil)
