package posting

import (
	"context"
	"fmt"
	"time"

	"moneta/internal/core/apperror"
	"moneta/internal/core/entity"
	"moneta/internal/core/id"
	"moneta/pkg/logger"
)

// JournalRepository is the persistence contract the engine writes
// through. Implementations run against the transaction carried in ctx.
type JournalRepository interface {
	Insert(ctx context.Context, journal *entity.Journal) error

	// GetBySource looks a journal up by its owning document.
	GetBySource(ctx context.Context, sourceType string, sourceID id.ID) (*entity.Journal, error)

	UpdateHeader(ctx context.Context, journal *entity.Journal) error
	Delete(ctx context.Context, journalID id.ID) error

	InsertLines(ctx context.Context, lines []entity.JournalLine) error
	DeleteLines(ctx context.Context, journalID id.ID) error

	Totals(ctx context.Context, journalID id.ID) (entity.JournalTotals, error)
}

// Engine is the ledger posting engine. All operations run inside the
// caller's transaction: the document write and its journal commit or
// roll back together.
type Engine struct {
	journals JournalRepository
	resolver Resolver
	audit    AuditSink
	guard    *Guard
	cfg      Config
}

// NewEngine creates a posting engine.
func NewEngine(journals JournalRepository, resolver Resolver, audit AuditSink, guard *Guard, cfg Config) *Engine {
	if audit == nil {
		audit = NopSink{}
	}
	return &Engine{
		journals: journals,
		resolver: resolver,
		audit:    audit,
		guard:    guard,
		cfg:      cfg,
	}
}

// Resolver exposes the account resolver for document services that need
// it outside a posting call.
func (e *Engine) Resolver() Resolver {
	return e.resolver
}

// Post creates the journal for a newly created document. A nil draft
// means the document does not post; nothing is written.
func (e *Engine) Post(ctx context.Context, src Source) error {
	if err := e.checkGuard(ctx, src); err != nil {
		return err
	}

	draft, err := src.BuildJournal(ctx, e.resolver)
	if err != nil {
		return fmt.Errorf("build journal for %s %s: %w", src.GetDocumentType(), src.GetID(), err)
	}
	if draft == nil {
		return nil
	}

	journal := e.newHeader(draft, src)
	if err := e.journals.Insert(ctx, journal); err != nil {
		return fmt.Errorf("insert journal: %w", err)
	}

	if err := e.writeLines(ctx, journal, draft, src); err != nil {
		return err
	}

	return e.auditBalance(ctx, journal, src)
}

// Repost replaces the journal for an updated document. The journal row
// is kept (same journal id); its header is refreshed and the lines are
// regenerated from the document's current detail rows.
//
// A missing journal is a hard error: an updated document that was
// posted before must still own a journal. A nil draft from a document
// that no longer posts degrades to a tolerant Unpost.
func (e *Engine) Repost(ctx context.Context, src Source) error {
	if err := e.checkGuard(ctx, src); err != nil {
		return err
	}

	draft, err := src.BuildJournal(ctx, e.resolver)
	if err != nil {
		return fmt.Errorf("build journal for %s %s: %w", src.GetDocumentType(), src.GetID(), err)
	}
	if draft == nil {
		return e.Unpost(ctx, src)
	}

	journal, err := e.journals.GetBySource(ctx, src.GetDocumentType(), src.GetID())
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewJournalMissing(src.GetDocumentType(), src.GetID().String())
		}
		return fmt.Errorf("load journal: %w", err)
	}

	journal.Category = draft.Category
	journal.ReferenceNo = src.GetReferenceNo()
	journal.Date = src.GetDate()
	journal.Description = src.GetDescription()
	journal.UpdatedAt = time.Now().UTC()
	if err := e.journals.UpdateHeader(ctx, journal); err != nil {
		return fmt.Errorf("update journal header: %w", err)
	}

	if err := e.journals.DeleteLines(ctx, journal.ID); err != nil {
		return fmt.Errorf("delete journal lines: %w", err)
	}
	if err := e.writeLines(ctx, journal, draft, src); err != nil {
		return err
	}

	return e.auditBalance(ctx, journal, src)
}

// Unpost removes the journal for a deleted document. A missing journal
// is tolerated silently for every document type: deleting a document
// that never posted, or whose journal is already gone, succeeds.
func (e *Engine) Unpost(ctx context.Context, src Source) error {
	journal, err := e.journals.GetBySource(ctx, src.GetDocumentType(), src.GetID())
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("load journal: %w", err)
	}

	if err := e.journals.DeleteLines(ctx, journal.ID); err != nil {
		return fmt.Errorf("delete journal lines: %w", err)
	}
	if err := e.journals.Delete(ctx, journal.ID); err != nil {
		return fmt.Errorf("delete journal: %w", err)
	}
	return nil
}

// CheckBalance reports the totals of a single journal without mutating
// it.
func (e *Engine) CheckBalance(ctx context.Context, journalID id.ID) (entity.JournalTotals, error) {
	return e.journals.Totals(ctx, journalID)
}

func (e *Engine) checkGuard(ctx context.Context, src Source) error {
	err := e.guard.Check(ctx, src)
	if err != nil && apperror.IsAppError(err) {
		e.audit.Record(ctx, Event{
			Kind:       EventGuardRejected,
			SourceType: src.GetDocumentType(),
			SourceID:   src.GetID(),
			Details:    map[string]any{"error": err.Error()},
			OccurredAt: time.Now().UTC(),
		})
	}
	return err
}

func (e *Engine) newHeader(draft *Draft, src Source) *entity.Journal {
	journal := entity.NewJournal(draft.Category, src.GetDocumentType(), src.GetID())
	journal.ReferenceNo = src.GetReferenceNo()
	journal.Date = src.GetDate()
	journal.Description = src.GetDescription()
	journal.CreatedBy = src.GetCreatedBy()
	return journal
}

func (e *Engine) writeLines(ctx context.Context, journal *entity.Journal, draft *Draft, src Source) error {
	lines, skipped := draft.materialize(journal, e.cfg.DefaultDepartmentID)

	for _, leg := range skipped {
		logger.Warn(ctx, "journal leg skipped: no account mapping",
			"document_type", src.GetDocumentType(),
			"document_id", src.GetID(),
			"role", leg.Role,
			"debit", leg.Debit,
			"credit", leg.Credit,
		)
		e.audit.Record(ctx, Event{
			Kind:       EventLegSkipped,
			SourceType: src.GetDocumentType(),
			SourceID:   src.GetID(),
			JournalID:  &journal.ID,
			Details: map[string]any{
				"role":   leg.Role,
				"debit":  leg.Debit.String(),
				"credit": leg.Credit.String(),
				"note":   leg.Note,
			},
			OccurredAt: time.Now().UTC(),
		})
	}

	if len(lines) == 0 {
		return nil
	}
	if err := e.journals.InsertLines(ctx, lines); err != nil {
		return fmt.Errorf("insert journal lines: %w", err)
	}
	return nil
}

// auditBalance checks the written journal's totals and records an audit
// event when they disagree. Partial account configuration can produce an
// unbalanced journal; that is reported, never aborted.
func (e *Engine) auditBalance(ctx context.Context, journal *entity.Journal, src Source) error {
	if !e.cfg.BalanceAudit {
		return nil
	}

	totals, err := e.journals.Totals(ctx, journal.ID)
	if err != nil {
		return fmt.Errorf("journal totals: %w", err)
	}
	if totals.Balanced() {
		return nil
	}

	logger.Warn(ctx, "journal is unbalanced",
		"journal_id", journal.ID,
		"document_type", src.GetDocumentType(),
		"document_id", src.GetID(),
		"debit", totals.Debit,
		"credit", totals.Credit,
	)
	e.audit.Record(ctx, Event{
		Kind:       EventUnbalanced,
		SourceType: src.GetDocumentType(),
		SourceID:   src.GetID(),
		JournalID:  &journal.ID,
		Details: map[string]any{
			"debit":  totals.Debit.String(),
			"credit": totals.Credit.String(),
		},
		OccurredAt: time.Now().UTC(),
	})
	return nil
}
