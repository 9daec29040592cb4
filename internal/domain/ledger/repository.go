// Package ledger is the read side of the journal register: lookups,
// line listings, totals and the reconciliation scan. All writes go
// through the posting engine.
package ledger

import (
	"context"
	"time"

	"moneta/internal/core/entity"
	"moneta/internal/core/id"
	"moneta/internal/domain"
)

// Filter narrows journal header listings.
type Filter struct {
	domain.ListFilter

	Category   *entity.JournalCategory
	SourceType *string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// LineFilter narrows journal line listings.
type LineFilter struct {
	JournalID    *id.ID
	AccountID    *id.ID
	DepartmentID *id.ID
	ProjectID    *id.ID
	DateFrom     *time.Time
	DateTo       *time.Time

	Limit  int
	Offset int
}

// UnbalancedJournal is one reconciliation finding: a journal whose
// sides disagree, with the difference.
type UnbalancedJournal struct {
	Journal entity.Journal       `json:"journal"`
	Totals  entity.JournalTotals `json:"totals"`
}

// Repository defines read access to journals and their lines.
type Repository interface {
	GetByID(ctx context.Context, journalID id.ID) (*entity.Journal, error)

	// GetBySource resolves a journal by its owning document.
	GetBySource(ctx context.Context, sourceType string, sourceID id.ID) (*entity.Journal, error)

	// GetByReferenceNo resolves a journal by its display number.
	GetByReferenceNo(ctx context.Context, referenceNo string) (*entity.Journal, error)

	List(ctx context.Context, filter Filter) (domain.ListResult[*entity.Journal], error)

	Lines(ctx context.Context, filter LineFilter) ([]entity.JournalLine, error)

	Totals(ctx context.Context, journalID id.ID) (entity.JournalTotals, error)

	// ScanUnbalanced finds journals in the period whose debit and
	// credit totals disagree.
	ScanUnbalanced(ctx context.Context, from, to time.Time) ([]UnbalancedJournal, error)
}
