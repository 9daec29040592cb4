// Package register_repo provides PostgreSQL implementations for the
// accumulation registers: the journal (ledger) and stock movements.
// In Database-per-Tenant architecture, TxManager is obtained from
// context per-request.
package register_repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"moneta/internal/core/apperror"
	"moneta/internal/core/entity"
	"moneta/internal/core/id"
	"moneta/internal/domain"
	"moneta/internal/domain/ledger"
	"moneta/internal/domain/posting"
	"moneta/internal/infrastructure/storage/postgres"
)

const (
	journalsTable     = "reg_journals"
	journalLinesTable = "reg_journal_lines"
)

var journalColumns = []string{
	"id", "category", "source_type", "source_id", "reference_no",
	"date", "description", "created_by", "created_at", "updated_at",
}

var journalLineColumns = []string{
	"line_id", "journal_id", "account_id", "debit", "credit",
	"department_id", "project_id", "note", "created_by", "created_at", "updated_at",
}

// JournalRepo is the journal register store. The posting engine writes
// through it, the ledger read side queries through it.
type JournalRepo struct{}

// NewJournalRepo creates a new journal repository.
func NewJournalRepo() *JournalRepo {
	return &JournalRepo{}
}

func (r *JournalRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *JournalRepo) querier(ctx context.Context) postgres.Querier {
	return postgres.MustGetTxManager(ctx).GetQuerier(ctx)
}

// Insert writes a journal header.
func (r *JournalRepo) Insert(ctx context.Context, journal *entity.Journal) error {
	q := r.builder().
		Insert(journalsTable).
		Columns(journalColumns...).
		Values(journal.ID, journal.Category, journal.SourceType, journal.SourceID,
			journal.ReferenceNo, journal.Date, journal.Description, journal.CreatedBy,
			journal.CreatedAt, journal.UpdatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert journal: %w", err)
	}
	return nil
}

// GetByID retrieves a journal header by ID.
func (r *JournalRepo) GetByID(ctx context.Context, journalID id.ID) (*entity.Journal, error) {
	q := r.baseSelect().Where(squirrel.Eq{"id": journalID})
	return r.getOne(ctx, q, journalID.String())
}

// GetBySource resolves a journal by its owning document. Returns
// NotFound when the document never posted.
func (r *JournalRepo) GetBySource(ctx context.Context, sourceType string, sourceID id.ID) (*entity.Journal, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"source_type": sourceType}).
		Where(squirrel.Eq{"source_id": sourceID})
	return r.getOne(ctx, q, sourceType+"/"+sourceID.String())
}

// GetByReferenceNo resolves a journal by its display number.
func (r *JournalRepo) GetByReferenceNo(ctx context.Context, referenceNo string) (*entity.Journal, error) {
	q := r.baseSelect().Where(squirrel.Eq{"reference_no": referenceNo})
	return r.getOne(ctx, q, referenceNo)
}

// UpdateHeader rewrites the mutable header fields.
func (r *JournalRepo) UpdateHeader(ctx context.Context, journal *entity.Journal) error {
	q := r.builder().
		Update(journalsTable).
		Set("category", journal.Category).
		Set("reference_no", journal.ReferenceNo).
		Set("date", journal.Date).
		Set("description", journal.Description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": journal.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update journal: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("journal", journal.ID.String())
	}
	return nil
}

// Delete removes a journal header. Lines must be deleted first.
func (r *JournalRepo) Delete(ctx context.Context, journalID id.ID) error {
	sql, args, err := r.builder().
		Delete(journalsTable).
		Where(squirrel.Eq{"id": journalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete journal: %w", err)
	}
	return nil
}

// InsertLines bulk-loads journal lines through the COPY protocol.
// Requires a transaction in ctx.
func (r *JournalRepo) InsertLines(ctx context.Context, lines []entity.JournalLine) error {
	if len(lines) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, []any{
			line.LineID, line.JournalID, line.AccountID, line.Debit, line.Credit,
			line.DepartmentID, line.ProjectID, line.Note, line.CreatedBy,
			line.CreatedAt, line.UpdatedAt,
		})
	}

	inserter := postgres.NewBatchInserter(postgres.MustGetTxManager(ctx))
	n, err := inserter.CopyFromSlice(ctx, journalLinesTable, journalLineColumns, rows)
	if err != nil {
		return fmt.Errorf("copy journal lines: %w", err)
	}
	if n != int64(len(lines)) {
		return fmt.Errorf("copy journal lines: wrote %d of %d", n, len(lines))
	}
	return nil
}

// DeleteLines removes all lines of a journal.
func (r *JournalRepo) DeleteLines(ctx context.Context, journalID id.ID) error {
	sql, args, err := r.builder().
		Delete(journalLinesTable).
		Where(squirrel.Eq{"journal_id": journalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build lines delete: %w", err)
	}
	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete journal lines: %w", err)
	}
	return nil
}

// List retrieves journal headers matching the filter.
func (r *JournalRepo) List(ctx context.Context, filter ledger.Filter) (domain.ListResult[*entity.Journal], error) {
	result := domain.ListResult[*entity.Journal]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()
	if filter.Category != nil {
		q = q.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.SourceType != nil {
		q = q.Where(squirrel.Eq{"source_type": *filter.SourceType})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"reference_no": "%" + filter.Search + "%"})
	}

	countQ := r.builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}
	querier := r.querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list journals: %w", err)
	}
	return result, nil
}

// Lines retrieves journal lines matching the filter, joined to the
// header for date filtering.
func (r *JournalRepo) Lines(ctx context.Context, filter ledger.LineFilter) ([]entity.JournalLine, error) {
	cols := make([]string, 0, len(journalLineColumns))
	for _, c := range journalLineColumns {
		cols = append(cols, "l."+c)
	}

	q := r.builder().
		Select(cols...).
		From(journalLinesTable + " l").
		Join(journalsTable + " j ON j.id = l.journal_id").
		OrderBy("j.date ASC", "l.created_at ASC")

	if filter.JournalID != nil {
		q = q.Where(squirrel.Eq{"l.journal_id": *filter.JournalID})
	}
	if filter.AccountID != nil {
		q = q.Where(squirrel.Eq{"l.account_id": *filter.AccountID})
	}
	if filter.DepartmentID != nil {
		q = q.Where(squirrel.Eq{"l.department_id": *filter.DepartmentID})
	}
	if filter.ProjectID != nil {
		q = q.Where(squirrel.Eq{"l.project_id": *filter.ProjectID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"j.date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"j.date": *filter.DateTo})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lines query: %w", err)
	}

	lines := make([]entity.JournalLine, 0)
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("list journal lines: %w", err)
	}
	return lines, nil
}

// Totals sums both sides of a journal. A journal with no lines sums to
// zero on both sides.
func (r *JournalRepo) Totals(ctx context.Context, journalID id.ID) (entity.JournalTotals, error) {
	totals := entity.JournalTotals{JournalID: journalID}

	q := r.builder().
		Select("COALESCE(SUM(debit), 0) AS debit", "COALESCE(SUM(credit), 0) AS credit").
		From(journalLinesTable).
		Where(squirrel.Eq{"journal_id": journalID})

	sql, args, err := q.ToSql()
	if err != nil {
		return totals, fmt.Errorf("build totals query: %w", err)
	}
	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&totals.Debit, &totals.Credit); err != nil {
		return totals, fmt.Errorf("journal totals: %w", err)
	}
	return totals, nil
}

// ScanUnbalanced finds journals in the period whose sides disagree.
func (r *JournalRepo) ScanUnbalanced(ctx context.Context, from, to time.Time) ([]ledger.UnbalancedJournal, error) {
	cols := make([]string, 0, len(journalColumns)+2)
	for _, c := range journalColumns {
		cols = append(cols, "j."+c)
	}
	cols = append(cols, "t.debit AS total_debit", "t.credit AS total_credit")

	sub := "(SELECT journal_id, SUM(debit) AS debit, SUM(credit) AS credit " +
		"FROM " + journalLinesTable + " GROUP BY journal_id " +
		"HAVING SUM(debit) <> SUM(credit)) t"

	q := r.builder().
		Select(cols...).
		From(journalsTable + " j").
		Join(sub + " ON t.journal_id = j.id").
		Where(squirrel.GtOrEq{"j.date": from}).
		Where(squirrel.LtOrEq{"j.date": to}).
		OrderBy("j.date ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build scan query: %w", err)
	}

	rows, err := r.querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("scan unbalanced: %w", err)
	}
	defer rows.Close()

	findings := make([]ledger.UnbalancedJournal, 0)
	for rows.Next() {
		var f ledger.UnbalancedJournal
		if err := rows.Scan(
			&f.Journal.ID, &f.Journal.Category, &f.Journal.SourceType, &f.Journal.SourceID,
			&f.Journal.ReferenceNo, &f.Journal.Date, &f.Journal.Description, &f.Journal.CreatedBy,
			&f.Journal.CreatedAt, &f.Journal.UpdatedAt,
			&f.Totals.Debit, &f.Totals.Credit,
		); err != nil {
			return nil, fmt.Errorf("scan unbalanced row: %w", err)
		}
		f.Totals.JournalID = f.Journal.ID
		findings = append(findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan unbalanced rows: %w", err)
	}
	return findings, nil
}

func (r *JournalRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(journalColumns...).
		From(journalsTable)
}

func (r *JournalRepo) getOne(ctx context.Context, q squirrel.SelectBuilder, key string) (*entity.Journal, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var journal entity.Journal
	if err := pgxscan.Get(ctx, r.querier(ctx), &journal, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("journal", key)
		}
		return nil, fmt.Errorf("get journal: %w", err)
	}
	return &journal, nil
}

func (r *JournalRepo) parseOrderBy(orderBy string) (string, error) {
	if strings.TrimSpace(orderBy) == "" {
		return "date DESC", nil
	}

	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	}

	switch field {
	case "date", "reference_no", "category", "created_at":
		return field + " " + direction, nil
	}
	return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
}

var (
	_ posting.JournalRepository = (*JournalRepo)(nil)
	_ ledger.Repository         = (*JournalRepo)(nil)
)
