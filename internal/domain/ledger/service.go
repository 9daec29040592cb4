package ledger

import (
	"context"
	"time"

	"moneta/internal/core/apperror"
	"moneta/internal/core/entity"
	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/pkg/logger"
)

// Service exposes journal reads to handlers and reports.
type Service struct {
	repo   Repository
	logger *logger.Logger
}

// NewService creates a ledger read service.
func NewService(repo Repository, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{repo: repo, logger: log}
}

// GetByID retrieves a journal header.
func (s *Service) GetByID(ctx context.Context, journalID id.ID) (*entity.Journal, error) {
	if id.IsNil(journalID) {
		return nil, apperror.NewValidation("journal id is required")
	}
	return s.repo.GetByID(ctx, journalID)
}

// GetBySource retrieves the journal posted for a document.
func (s *Service) GetBySource(ctx context.Context, sourceType string, sourceID id.ID) (*entity.Journal, error) {
	if sourceType == "" || id.IsNil(sourceID) {
		return nil, apperror.NewValidation("source type and id are required")
	}
	return s.repo.GetBySource(ctx, sourceType, sourceID)
}

// GetByReferenceNo retrieves a journal by its display number.
func (s *Service) GetByReferenceNo(ctx context.Context, referenceNo string) (*entity.Journal, error) {
	if referenceNo == "" {
		return nil, apperror.NewValidation("reference no is required")
	}
	return s.repo.GetByReferenceNo(ctx, referenceNo)
}

// List retrieves journal headers with filtering.
func (s *Service) List(ctx context.Context, filter Filter) (domain.ListResult[*entity.Journal], error) {
	if filter.Limit <= 0 {
		filter.ListFilter = domain.DefaultListFilter()
		filter.OrderBy = "-date"
	}
	return s.repo.List(ctx, filter)
}

// Lines retrieves journal lines with filtering.
func (s *Service) Lines(ctx context.Context, filter LineFilter) ([]entity.JournalLine, error) {
	if filter.Limit <= 0 {
		filter.Limit = 200
	}
	return s.repo.Lines(ctx, filter)
}

// Totals returns the summed debit and credit sides of a journal.
func (s *Service) Totals(ctx context.Context, journalID id.ID) (entity.JournalTotals, error) {
	if id.IsNil(journalID) {
		return entity.JournalTotals{}, apperror.NewValidation("journal id is required")
	}
	return s.repo.Totals(ctx, journalID)
}

// ScanUnbalanced reports journals in the period whose sides disagree.
// Findings are logged; nothing is mutated.
func (s *Service) ScanUnbalanced(ctx context.Context, from, to time.Time) ([]UnbalancedJournal, error) {
	if !to.After(from) {
		return nil, apperror.NewValidation("period end must be after period start")
	}

	findings, err := s.repo.ScanUnbalanced(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, f := range findings {
		s.logger.WithContext(ctx).Warnw("unbalanced journal",
			"journal_id", f.Journal.ID,
			"reference_no", f.Journal.ReferenceNo,
			"debit", f.Totals.Debit,
			"credit", f.Totals.Credit,
		)
	}
	return findings, nil
}
