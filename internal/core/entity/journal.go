package entity

import (
	"time"

	"moneta/internal/core/id"
	"moneta/internal/core/types"
)

// JournalCategory identifies the document type that produced a journal.
// The numeric values are stable and used in reporting filters.
type JournalCategory int

const (
	CategoryCashTransfer      JournalCategory = 1
	CategoryExpense           JournalCategory = 2
	CategoryIncome            JournalCategory = 3
	CategoryPurchaseReceipt   JournalCategory = 4
	CategoryPurchaseInvoice   JournalCategory = 5
	CategorySalesDelivery     JournalCategory = 6
	CategorySalesInvoice      JournalCategory = 7
	CategoryPayablePayment    JournalCategory = 8
	CategoryReceivablePayment JournalCategory = 9
	CategoryBeginningBalance  JournalCategory = 10
	CategoryManualEntry       JournalCategory = 11
)

// String returns the category name used in logs and API payloads.
func (c JournalCategory) String() string {
	switch c {
	case CategoryCashTransfer:
		return "cash_transfer"
	case CategoryExpense:
		return "expense"
	case CategoryIncome:
		return "income"
	case CategoryPurchaseReceipt:
		return "purchase_receipt"
	case CategoryPurchaseInvoice:
		return "purchase_invoice"
	case CategorySalesDelivery:
		return "sales_delivery"
	case CategorySalesInvoice:
		return "sales_invoice"
	case CategoryPayablePayment:
		return "payable_payment"
	case CategoryReceivablePayment:
		return "receivable_payment"
	case CategoryBeginningBalance:
		return "beginning_balance"
	case CategoryManualEntry:
		return "manual_entry"
	default:
		return "unknown"
	}
}

// Journal is a double-entry ledger record header. Lines hang off it.
//
// A journal belongs to exactly one source document, addressed by the
// (SourceType, SourceID) composite key. ReferenceNo mirrors the source
// document's number and is kept in sync on every replace; it is a display
// and lookup convenience, not the ownership key.
type Journal struct {
	ID          id.ID           `db:"id" json:"id"`
	Category    JournalCategory `db:"category" json:"category"`
	SourceType  string          `db:"source_type" json:"sourceType"`
	SourceID    id.ID           `db:"source_id" json:"sourceId"`
	ReferenceNo string          `db:"reference_no" json:"referenceNo"`
	Date        time.Time       `db:"date" json:"date"`
	Description string          `db:"description" json:"description,omitempty"`
	CreatedBy   string          `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

// NewJournal creates a journal header for a source document.
func NewJournal(category JournalCategory, sourceType string, sourceID id.ID) *Journal {
	now := time.Now().UTC()
	return &Journal{
		ID:         id.New(),
		Category:   category,
		SourceType: sourceType,
		SourceID:   sourceID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// JournalLine is one debit-or-credit leg of a journal.
//
// CreatedAt/UpdatedAt are copied from the originating detail row, not set at
// posting time: the ledger preserves the provenance timestamps of the data it
// was derived from.
type JournalLine struct {
	LineID       id.ID       `db:"line_id" json:"lineId"`
	JournalID    id.ID       `db:"journal_id" json:"journalId"`
	AccountID    id.ID       `db:"account_id" json:"accountId"`
	Debit        types.Money `db:"debit" json:"debit"`
	Credit       types.Money `db:"credit" json:"credit"`
	DepartmentID id.ID       `db:"department_id" json:"departmentId"`
	ProjectID    *id.ID      `db:"project_id" json:"projectId,omitempty"`
	Note         string      `db:"note" json:"note,omitempty"`
	CreatedBy    string      `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updatedAt"`
}

// JournalTotals holds the summed sides of a journal's lines.
type JournalTotals struct {
	JournalID id.ID       `db:"journal_id" json:"journalId"`
	Debit     types.Money `db:"debit" json:"debit"`
	Credit    types.Money `db:"credit" json:"credit"`
}

// Balanced reports whether the two sides agree to the cent.
func (t JournalTotals) Balanced() bool {
	return t.Debit.Round(2).Equal(t.Credit.Round(2))
}
