package posting

import (
	"time"

	"moneta/internal/core/entity"
	"moneta/internal/core/id"
	"moneta/internal/core/types"
)

// LineSpec is one intended journal leg. AccountID is a pointer on
// purpose: a nil account marks an optional leg that is dropped at
// materialization without failing the posting.
type LineSpec struct {
	// Role names the leg for logs and audit events, e.g. "inventory".
	Role string

	AccountID    *id.ID
	Debit        types.Money
	Credit       types.Money
	DepartmentID *id.ID
	ProjectID    *id.ID
	Note         string
	CreatedBy    string

	// CreatedAt/UpdatedAt carry the provenance timestamps of the detail
	// row the leg was derived from. Zero values default to the journal
	// header timestamps.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Draft is the journal a document intends to produce: header fields
// plus line specs, before optional-leg resolution.
type Draft struct {
	Category entity.JournalCategory
	Lines    []LineSpec
}

// NewDraft creates a draft for the given journal category.
func NewDraft(category entity.JournalCategory) *Draft {
	return &Draft{Category: category}
}

// Debit appends a debit leg spec.
func (d *Draft) Debit(role string, accountID *id.ID, amount types.Money, spec LineSpec) {
	spec.Role = role
	spec.AccountID = accountID
	spec.Debit = amount
	spec.Credit = types.Zero()
	d.Lines = append(d.Lines, spec)
}

// Credit appends a credit leg spec.
func (d *Draft) Credit(role string, accountID *id.ID, amount types.Money, spec LineSpec) {
	spec.Role = role
	spec.AccountID = accountID
	spec.Credit = amount
	spec.Debit = types.Zero()
	d.Lines = append(d.Lines, spec)
}

// SkippedLeg describes a line spec dropped for lack of an account
// mapping.
type SkippedLeg struct {
	Role   string
	Debit  types.Money
	Credit types.Money
	Note   string
}

// materialize converts the draft's line specs into journal lines.
// Specs without an account are dropped and reported, never failed.
func (d *Draft) materialize(journal *entity.Journal, defaultDepartmentID id.ID) ([]entity.JournalLine, []SkippedLeg) {
	lines := make([]entity.JournalLine, 0, len(d.Lines))
	var skipped []SkippedLeg

	for _, spec := range d.Lines {
		if spec.AccountID == nil || id.IsNil(*spec.AccountID) {
			skipped = append(skipped, SkippedLeg{
				Role:   spec.Role,
				Debit:  spec.Debit,
				Credit: spec.Credit,
				Note:   spec.Note,
			})
			continue
		}

		departmentID := defaultDepartmentID
		if spec.DepartmentID != nil && !id.IsNil(*spec.DepartmentID) {
			departmentID = *spec.DepartmentID
		}

		createdAt := spec.CreatedAt
		if createdAt.IsZero() {
			createdAt = journal.CreatedAt
		}
		updatedAt := spec.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = journal.UpdatedAt
		}

		createdBy := spec.CreatedBy
		if createdBy == "" {
			createdBy = journal.CreatedBy
		}

		lines = append(lines, entity.JournalLine{
			LineID:       id.New(),
			JournalID:    journal.ID,
			AccountID:    *spec.AccountID,
			Debit:        spec.Debit,
			Credit:       spec.Credit,
			DepartmentID: departmentID,
			ProjectID:    spec.ProjectID,
			Note:         spec.Note,
			CreatedBy:    createdBy,
			CreatedAt:    createdAt,
			UpdatedAt:    updatedAt,
		})
	}

	return lines, skipped
}

// Totals sums the draft's line specs including optional legs. Used by
// tests and the balance diagnostic.
func (d *Draft) Totals() (debit, credit types.Money) {
	debit, credit = types.Zero(), types.Zero()
	for _, spec := range d.Lines {
		debit = debit.Add(spec.Debit)
		credit = credit.Add(spec.Credit)
	}
	return debit, credit
}
